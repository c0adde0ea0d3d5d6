package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/util"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := util.Date(year, month, day)
	return &d
}

func TestPlanQuarterlyReportsFullYear(t *testing.T) {
	iep := datePtr(2024, time.September, 15)
	now := util.Date(2024, time.October, 1)

	plans := planQuarterlyReports(iep, nil, now)

	if len(plans) != 4 {
		t.Fatalf("plans = %d, want 4", len(plans))
	}

	wantDue := []time.Time{
		util.Date(2024, time.December, 14), // Nov 30 + 14
		util.Date(2025, time.March, 14),    // Feb 28 + 14
		util.Date(2025, time.June, 14),     // May 31 + 14
		util.Date(2025, time.September, 14),
	}
	for i, plan := range plans {
		if plan.reportType != model.ReportQuarterly {
			t.Errorf("plan %d type = %s, want quarterly", i, plan.reportType)
		}
		if !plan.dueDate.Equal(wantDue[i]) {
			t.Errorf("plan %d due = %v, want %v", i, plan.dueDate, wantDue[i])
		}
	}

	if !plans[0].periodStart.Equal(util.Date(2024, time.September, 1)) ||
		!plans[0].periodEnd.Equal(util.Date(2024, time.November, 30)) {
		t.Errorf("Q1 period = [%v, %v], want [2024-09-01, 2024-11-30]",
			plans[0].periodStart, plans[0].periodEnd)
	}
}

func TestPlanQuarterlyReportsClampsToAnnualReview(t *testing.T) {
	iep := datePtr(2024, time.September, 15)
	annual := datePtr(2025, time.January, 10)
	now := util.Date(2024, time.October, 1)

	plans := planQuarterlyReports(iep, annual, now)

	if len(plans) != 4 {
		t.Fatalf("plans = %d, want 4", len(plans))
	}

	cutoff := util.Date(2024, time.December, 20) // review - 21 days

	// Q1 due Dec 14 is already inside the cutoff and stays put
	if !plans[0].dueDate.Equal(util.Date(2024, time.December, 14)) {
		t.Errorf("Q1 due = %v, want 2024-12-14", plans[0].dueDate)
	}
	// later quarters would land past the review and get pulled back
	for i := 1; i < 4; i++ {
		if !plans[i].dueDate.Equal(cutoff) {
			t.Errorf("plan %d due = %v, want clamped to %v", i, plans[i].dueDate, cutoff)
		}
	}
}

func TestPlanQuarterlyReportsSkipsStaleQuarters(t *testing.T) {
	iep := datePtr(2024, time.September, 15)
	now := util.Date(2025, time.June, 15)

	plans := planQuarterlyReports(iep, nil, now)

	// Q1 and Q2 closed more than three months before now
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if !plans[0].periodEnd.Equal(util.Date(2025, time.May, 31)) {
		t.Errorf("first kept quarter ends %v, want 2025-05-31", plans[0].periodEnd)
	}
	if !plans[1].periodEnd.Equal(util.Date(2025, time.August, 31)) {
		t.Errorf("second kept quarter ends %v, want 2025-08-31", plans[1].periodEnd)
	}
}

func TestPlanQuarterlyReportsAnchorsOnNowWithoutIEP(t *testing.T) {
	now := util.Date(2025, time.January, 15)

	plans := planQuarterlyReports(nil, nil, now)

	if len(plans) == 0 {
		t.Fatal("plans empty, want school year 2024-25 quarters")
	}
	// the school year containing Jan 2025 starts Sep 2024
	if !plans[0].periodStart.Equal(util.Date(2024, time.September, 1)) &&
		!plans[0].periodStart.Equal(util.Date(2024, time.December, 1)) {
		t.Errorf("first plan starts %v, want a 2024-25 school year quarter", plans[0].periodStart)
	}
}

func newSchedulerTestService(t *testing.T) *ReportSchedulerService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ProgressReport{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewReportSchedulerService(repository.NewProgressReportRepository(db), nil)
}

func TestScheduleQuarterlyReportsCreatesOverdueForPastDuePeriods(t *testing.T) {
	svc := newSchedulerTestService(t)

	// an annual review ten days ago pulls every quarter's due date back to
	// review minus three weeks, so each created report is already past due
	iep := util.DateOnly(time.Now())
	review := iep.AddDate(0, 0, -10)

	created, err := svc.ScheduleQuarterlyReports(7, &iep, &review)
	if err != nil {
		t.Fatalf("ScheduleQuarterlyReports: %v", err)
	}
	if len(created) == 0 {
		t.Fatal("created no reports, want at least the current quarter")
	}
	for i, report := range created {
		if report.Status != model.ReportOverdue {
			t.Errorf("report %d status = %s, want overdue (due %s)", i, report.Status, report.DueDate)
		}
	}

	// re-running for the same periods creates nothing
	again, err := svc.ScheduleQuarterlyReports(7, &iep, &review)
	if err != nil {
		t.Fatalf("second ScheduleQuarterlyReports: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second run created %d reports, want 0", len(again))
	}
}

func TestScheduleAnnualReportStatusTracksDueDate(t *testing.T) {
	t.Run("past review window starts overdue", func(t *testing.T) {
		svc := newSchedulerTestService(t)
		review := util.DateOnly(time.Now()).AddDate(0, 0, -7)

		report, err := svc.ScheduleAnnualReport(3, &review, nil)
		if err != nil {
			t.Fatalf("ScheduleAnnualReport: %v", err)
		}
		if report == nil {
			t.Fatal("report = nil, want value")
		}
		if report.Status != model.ReportOverdue {
			t.Errorf("status = %s, want overdue", report.Status)
		}

		// the period is now covered; a re-run creates nothing
		again, err := svc.ScheduleAnnualReport(3, &review, nil)
		if err != nil {
			t.Fatalf("second ScheduleAnnualReport: %v", err)
		}
		if again != nil {
			t.Errorf("second run = %+v, want nil", again)
		}
	})

	t.Run("future review window starts scheduled", func(t *testing.T) {
		svc := newSchedulerTestService(t)
		review := util.DateOnly(time.Now()).AddDate(0, 2, 0)

		report, err := svc.ScheduleAnnualReport(3, &review, nil)
		if err != nil {
			t.Fatalf("ScheduleAnnualReport: %v", err)
		}
		if report == nil {
			t.Fatal("report = nil, want value")
		}
		if report.Status != model.ReportScheduled {
			t.Errorf("status = %s, want scheduled", report.Status)
		}
	})
}

func TestPlanAnnualReport(t *testing.T) {
	t.Run("from annual review date", func(t *testing.T) {
		plan := planAnnualReport(datePtr(2025, time.January, 10), datePtr(2024, time.September, 15))
		if plan == nil {
			t.Fatal("plan = nil, want value")
		}
		if plan.reportType != model.ReportAnnual {
			t.Errorf("type = %s, want annual", plan.reportType)
		}
		if !plan.periodStart.Equal(util.Date(2024, time.January, 10)) {
			t.Errorf("period start = %v, want 2024-01-10", plan.periodStart)
		}
		if !plan.periodEnd.Equal(util.Date(2025, time.January, 10)) {
			t.Errorf("period end = %v, want 2025-01-10", plan.periodEnd)
		}
		if !plan.dueDate.Equal(util.Date(2024, time.December, 20)) {
			t.Errorf("due = %v, want 2024-12-20", plan.dueDate)
		}
	})

	t.Run("falls back to IEP date plus one year", func(t *testing.T) {
		plan := planAnnualReport(nil, datePtr(2024, time.September, 15))
		if plan == nil {
			t.Fatal("plan = nil, want value")
		}
		if !plan.periodEnd.Equal(util.Date(2025, time.September, 15)) {
			t.Errorf("period end = %v, want 2025-09-15", plan.periodEnd)
		}
		if !plan.dueDate.Equal(util.Date(2025, time.August, 25)) {
			t.Errorf("due = %v, want 2025-08-25", plan.dueDate)
		}
	})

	t.Run("nothing to anchor on", func(t *testing.T) {
		if plan := planAnnualReport(nil, nil); plan != nil {
			t.Errorf("plan = %+v, want nil", plan)
		}
	})
}
