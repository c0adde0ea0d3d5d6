package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/util"
	"slp_caseload_backend/pkg/logger"
	"slp_caseload_backend/pkg/monitoring"
	"slp_caseload_backend/pkg/notify"
	"time"

	"go.uber.org/zap"
)

const (
	// quarterly reports fall due two weeks after the quarter closes
	quarterlyDueLagDays = 14
	// every report must land at least three weeks before the annual review
	annualReviewLeadDays = 21
	// quarters closed longer than this are not scheduled retroactively
	quarterGraceMonths = 3
)

// ReportSchedulerService derives progress-report obligations from a
// student's IEP dates and keeps their overdue state current. Scheduling is
// idempotent: re-runs for an already-covered period create nothing.

type ReportSchedulerService struct {
	ReportRepo *repository.ProgressReportRepository
	Publisher  *notify.Publisher
}

func NewReportSchedulerService(reportRepo *repository.ProgressReportRepository, publisher *notify.Publisher) *ReportSchedulerService {
	return &ReportSchedulerService{
		ReportRepo: reportRepo,
		Publisher:  publisher,
	}
}

// reportPlan is one report the scheduler wants to exist. Creation may
// still be skipped when the period is already covered.
type reportPlan struct {
	reportType  model.ReportType
	periodStart time.Time
	periodEnd   time.Time
	dueDate     time.Time
}

// planQuarterlyReports computes the candidate quarterly reports for the
// school year containing iepDate (or now when absent).
func planQuarterlyReports(iepDate, annualReviewDate *time.Time, now time.Time) []reportPlan {
	anchor := util.DateOnly(now)
	if iepDate != nil {
		anchor = util.DateOnly(*iepDate)
	}

	var plans []reportPlan
	for _, q := range util.SchoolYearQuarters(anchor) {
		// skip quarters closed beyond the grace period
		if q.End.AddDate(0, quarterGraceMonths, 0).Before(util.DateOnly(now)) {
			continue
		}

		due := q.End.AddDate(0, 0, quarterlyDueLagDays)
		if annualReviewDate != nil {
			cutoff := util.DateOnly(*annualReviewDate).AddDate(0, 0, -annualReviewLeadDays)
			if due.After(cutoff) {
				due = cutoff
			}
		}

		plans = append(plans, reportPlan{
			reportType:  model.ReportQuarterly,
			periodStart: q.Start,
			periodEnd:   q.End,
			dueDate:     due,
		})
	}
	return plans
}

// planAnnualReport derives the annual report window. Returns nil when
// neither date is known: nothing to anchor on, a no-op rather than an
// error.
func planAnnualReport(annualReviewDate, iepDate *time.Time) *reportPlan {
	var review time.Time
	switch {
	case annualReviewDate != nil:
		review = util.DateOnly(*annualReviewDate)
	case iepDate != nil:
		review = util.DateOnly(*iepDate).AddDate(1, 0, 0)
	default:
		return nil
	}

	return &reportPlan{
		reportType:  model.ReportAnnual,
		periodStart: review.AddDate(-1, 0, 0),
		periodEnd:   review,
		dueDate:     review.AddDate(0, 0, -annualReviewLeadDays),
	}
}

// ScheduleQuarterlyReports creates the quarterly reports for the school
// year containing the IEP date and returns only the reports created by
// this call; an immediate re-run returns an empty list.
func (s *ReportSchedulerService) ScheduleQuarterlyReports(studentID uint, iepDate, annualReviewDate *time.Time) ([]model.ProgressReport, error) {
	now := time.Now()

	var created []model.ProgressReport
	for _, plan := range planQuarterlyReports(iepDate, annualReviewDate, now) {
		report, ok, err := s.createFromPlan(studentID, plan, now)
		if err != nil {
			return created, err
		}
		if ok {
			created = append(created, *report)
		}
	}
	return created, nil
}

// ScheduleAnnualReport creates the annual report for the review window.
// Returns nil without error when no anchor date is known or the period is
// already covered.
func (s *ReportSchedulerService) ScheduleAnnualReport(studentID uint, annualReviewDate, iepDate *time.Time) (*model.ProgressReport, error) {
	plan := planAnnualReport(annualReviewDate, iepDate)
	if plan == nil {
		return nil, nil
	}

	report, ok, err := s.createFromPlan(studentID, *plan, time.Now())
	if err != nil || !ok {
		return nil, err
	}
	return report, nil
}

// ScheduleForStudent runs both schedulers after a caseload entry is
// created or its IEP dates change.
func (s *ReportSchedulerService) ScheduleForStudent(student *model.Student) ([]model.ProgressReport, error) {
	created, err := s.ScheduleQuarterlyReports(student.ID, student.IEPDate, student.AnnualReviewDate)
	if err != nil {
		return created, err
	}

	annual, err := s.ScheduleAnnualReport(student.ID, student.AnnualReviewDate, student.IEPDate)
	if err != nil {
		return created, err
	}
	if annual != nil {
		created = append(created, *annual)
	}
	return created, nil
}

func (s *ReportSchedulerService) createFromPlan(studentID uint, plan reportPlan, now time.Time) (*model.ProgressReport, bool, error) {
	status := model.ReportScheduled
	if plan.dueDate.Before(util.DateOnly(now)) {
		status = model.ReportOverdue
	}

	report := &model.ProgressReport{
		StudentID:     studentID,
		ReportType:    plan.reportType,
		PeriodStart:   util.FormatDate(plan.periodStart),
		PeriodEnd:     util.FormatDate(plan.periodEnd),
		DueDate:       util.FormatDate(plan.dueDate),
		ScheduledDate: now,
		Status:        status,
	}

	created, err := s.ReportRepo.CreateIfAbsent(report)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return nil, false, nil
	}

	monitoring.ReportsScheduled.WithLabelValues(string(plan.reportType)).Inc()
	if err := s.Publisher.Publish(notify.KeyReportScheduled, notify.ReportEvent{
		ReportID:   report.ID,
		StudentID:  studentID,
		ReportType: string(plan.reportType),
		DueDate:    report.DueDate,
		OccurredAt: now,
	}); err != nil {
		logger.Log.Warn("failed to publish report scheduled event", zap.Error(err))
	}

	return report, true, nil
}

// RefreshOverdueStatuses flips every scheduled report with a due date
// before now to overdue. Safe to re-run; completed and future reports are
// untouched. Driven by the hourly background sweep.
func (s *ReportSchedulerService) RefreshOverdueStatuses(now time.Time) error {
	cutoff := util.FormatDate(util.DateOnly(now))

	flipped, err := s.ReportRepo.FindScheduledDueBefore(cutoff)
	if err != nil {
		return err
	}
	if len(flipped) == 0 {
		return nil
	}

	n, err := s.ReportRepo.MarkOverdue(cutoff)
	if err != nil {
		return err
	}
	monitoring.ReportsOverdue.Add(float64(n))

	for _, report := range flipped {
		if err := s.Publisher.Publish(notify.KeyReportOverdue, notify.ReportEvent{
			ReportID:   report.ID,
			StudentID:  report.StudentID,
			ReportType: string(report.ReportType),
			DueDate:    report.DueDate,
			OccurredAt: now,
		}); err != nil {
			logger.Log.Warn("failed to publish report overdue event", zap.Error(err))
		}
	}

	logger.Log.Info("overdue sweep complete", zap.Int64("reports", n))
	return nil
}

// SchoolYearQuarters exposes the quarter windows for the school year
// containing the anchor date (today when nil), for the planner UI.
func (s *ReportSchedulerService) SchoolYearQuarters(anchor *time.Time) [4]util.Quarter {
	d := util.DateOnly(time.Now())
	if anchor != nil {
		d = util.DateOnly(*anchor)
	}
	return util.SchoolYearQuarters(d)
}
