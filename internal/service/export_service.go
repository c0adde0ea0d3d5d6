package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/util"
	"strconv"
	"time"
)

// ExportService produces the caseload CSV and the per-student record
// export handed to parents or a receiving district.

type ExportService struct {
	StudentRepo *repository.StudentRepository
	GoalRepo    *repository.GoalRepository
	SessionRepo *repository.SessionRepository
	ReportRepo  *repository.ProgressReportRepository
	CommRepo    *repository.CommunicationRepository
	Hierarchy   *GoalHierarchyService
}

func NewExportService(
	studentRepo *repository.StudentRepository,
	goalRepo *repository.GoalRepository,
	sessionRepo *repository.SessionRepository,
	reportRepo *repository.ProgressReportRepository,
	commRepo *repository.CommunicationRepository,
	hierarchy *GoalHierarchyService,
) *ExportService {
	return &ExportService{
		StudentRepo: studentRepo,
		GoalRepo:    goalRepo,
		SessionRepo: sessionRepo,
		ReportRepo:  reportRepo,
		CommRepo:    commRepo,
		Hierarchy:   hierarchy,
	}
}

var caseloadCSVHeader = []string{
	"Last Name", "First Name", "Grade", "School",
	"Sessions/Week", "Minutes/Week", "IEP Date", "Annual Review",
	"Active Goals", "Active",
}

// ExportCaseloadCSV writes a therapist's full caseload as CSV, one row
// per student.
func (s *ExportService) ExportCaseloadCSV(therapistID uint) ([]byte, error) {
	students, _, err := s.StudentRepo.FindByTherapist(therapistID, "", false, 1, 10000)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(caseloadCSVHeader); err != nil {
		return nil, err
	}

	for _, student := range students {
		goals, err := s.GoalRepo.FindByStudentIDAndStatus(student.ID, model.GoalInProgress)
		if err != nil {
			return nil, err
		}

		school := ""
		if student.School != nil {
			school = student.School.Name
		}

		row := []string{
			student.LastName,
			student.FirstName,
			student.Grade,
			school,
			strconv.Itoa(student.SessionsPerWeek),
			strconv.Itoa(student.MinutesPerWeek),
			formatDatePtr(student.IEPDate),
			formatDatePtr(student.AnnualReviewDate),
			strconv.Itoa(len(goals)),
			strconv.FormatBool(student.Active),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StudentRecord bundles everything on file for one student.
type StudentRecord struct {
	Student        model.Student          `json:"student"`
	Goals          []model.Goal           `json:"goals"`
	GoalHierarchy  GoalHierarchy          `json:"goalHierarchy"`
	Sessions       []model.SessionLog     `json:"sessions"`
	Reports        []model.ProgressReport `json:"reports"`
	Communications []model.Communication  `json:"communications"`
}

// ExportStudentRecord assembles the complete record for one student on a
// therapist's caseload.
func (s *ExportService) ExportStudentRecord(therapistID, studentID uint) (*StudentRecord, error) {
	student, err := s.StudentRepo.FindByIDAndTherapist(studentID, therapistID)
	if err != nil {
		return nil, err
	}

	goals, err := s.GoalRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	hierarchy := s.Hierarchy.Organize(goals)

	sessions, _, err := s.SessionRepo.FindByStudentID(studentID, 1, 10000)
	if err != nil {
		return nil, err
	}

	reports, err := s.ReportRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	comms, _, err := s.CommRepo.FindByStudentID(studentID, 1, 10000)
	if err != nil {
		return nil, err
	}

	return &StudentRecord{
		Student:        *student,
		Goals:          goals,
		GoalHierarchy:  hierarchy,
		Sessions:       sessions,
		Reports:        reports,
		Communications: comms,
	}, nil
}

// CaseloadExportFilename names the CSV download, e.g.
// caseload_2026-08-24.csv.
func CaseloadExportFilename(date string) string {
	return fmt.Sprintf("caseload_%s.csv", date)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(util.DateFormat)
}
