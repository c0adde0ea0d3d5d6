package repository

import (
	"slp_caseload_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// ProgressReportRepository handles progress report data access. Scheduling
// idempotency lives here: CreateIfAbsent runs the existence check and the
// insert in one transaction, backed by the composite unique index on
// (student_id, report_type, period_start, period_end).

type ProgressReportRepository struct {
	DB *gorm.DB
}

func NewProgressReportRepository(db *gorm.DB) *ProgressReportRepository {
	return &ProgressReportRepository{DB: db}
}

// CreateIfAbsent inserts the report unless one already exists for the same
// (student, type, period) tuple. Returns whether a row was created.
func (r *ProgressReportRepository) CreateIfAbsent(report *model.ProgressReport) (bool, error) {
	created := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ProgressReport{}).
			Where("student_id = ? AND report_type = ? AND period_start = ? AND period_end = ?",
				report.StudentID, report.ReportType, report.PeriodStart, report.PeriodEnd).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *ProgressReportRepository) Exists(studentID uint, reportType model.ReportType, periodStart, periodEnd string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ProgressReport{}).
		Where("student_id = ? AND report_type = ? AND period_start = ? AND period_end = ?",
			studentID, reportType, periodStart, periodEnd).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressReportRepository) FindByID(id string) (*model.ProgressReport, error) {
	var report model.ProgressReport
	err := r.DB.First(&report, "id = ?", id).Error
	return &report, err
}

func (r *ProgressReportRepository) Update(report *model.ProgressReport) error {
	return r.DB.Save(report).Error
}

func (r *ProgressReportRepository) FindByStudentID(studentID uint) ([]model.ProgressReport, error) {
	var reports []model.ProgressReport
	err := r.DB.Where("student_id = ?", studentID).
		Order("due_date").Find(&reports).Error
	return reports, err
}

func (r *ProgressReportRepository) FindByStatus(status model.ReportStatus) ([]model.ProgressReport, error) {
	var reports []model.ProgressReport
	err := r.DB.Where("status = ?", status).Order("due_date").Find(&reports).Error
	return reports, err
}

// FindScheduledDueBefore returns scheduled reports whose due date has
// passed, the candidates for the overdue sweep.
func (r *ProgressReportRepository) FindScheduledDueBefore(cutoff string) ([]model.ProgressReport, error) {
	var reports []model.ProgressReport
	err := r.DB.Where("status = ? AND due_date < ?", model.ReportScheduled, cutoff).
		Find(&reports).Error
	return reports, err
}

// MarkOverdue flips every scheduled report past its due date to overdue in
// one bulk update. Completed and future-dated reports are untouched.
func (r *ProgressReportRepository) MarkOverdue(cutoff string) (int64, error) {
	result := r.DB.Model(&model.ProgressReport{}).
		Where("status = ? AND due_date < ?", model.ReportScheduled, cutoff).
		Updates(map[string]interface{}{
			"status":     model.ReportOverdue,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *ProgressReportRepository) FindAll() ([]model.ProgressReport, error) {
	var reports []model.ProgressReport
	err := r.DB.Order("due_date").Find(&reports).Error
	return reports, err
}
