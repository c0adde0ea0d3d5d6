package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"time"
)

// ReportService covers the read/complete side of progress reports; the
// scheduler owns creation and the overdue sweep.

type ReportService struct {
	ReportRepo *repository.ProgressReportRepository
}

func NewReportService(reportRepo *repository.ProgressReportRepository) *ReportService {
	return &ReportService{ReportRepo: reportRepo}
}

func (s *ReportService) ListByStudent(studentID uint) ([]model.ProgressReport, error) {
	return s.ReportRepo.FindByStudentID(studentID)
}

func (s *ReportService) ListByStatus(status model.ReportStatus) ([]model.ProgressReport, error) {
	return s.ReportRepo.FindByStatus(status)
}

func (s *ReportService) ListAll() ([]model.ProgressReport, error) {
	return s.ReportRepo.FindAll()
}

func (s *ReportService) GetReport(id string) (*model.ProgressReport, error) {
	return s.ReportRepo.FindByID(id)
}

// CompleteReport records the report as written and filed. Works from both
// scheduled and overdue.
func (s *ReportService) CompleteReport(id string) (*model.ProgressReport, error) {
	report, err := s.ReportRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report.Status = model.ReportCompleted
	report.CompletedDate = &now
	return report, s.ReportRepo.Update(report)
}
