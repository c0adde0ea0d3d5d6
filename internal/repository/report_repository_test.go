package repository

import (
	"slp_caseload_backend/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func sampleReport(studentID uint) *model.ProgressReport {
	return &model.ProgressReport{
		StudentID:   studentID,
		ReportType:  model.ReportQuarterly,
		PeriodStart: "2024-09-01",
		PeriodEnd:   "2024-11-30",
		DueDate:     "2024-12-14",
		Status:      model.ReportScheduled,
	}
}

func TestCreateIfAbsentIsIdempotent(t *testing.T) {
	repo := NewProgressReportRepository(newTestDB(t))

	created, err := repo.CreateIfAbsent(sampleReport(1))
	if err != nil {
		t.Fatalf("first CreateIfAbsent: %v", err)
	}
	if !created {
		t.Fatal("first call created = false, want true")
	}

	created, err = repo.CreateIfAbsent(sampleReport(1))
	if err != nil {
		t.Fatalf("second CreateIfAbsent: %v", err)
	}
	if created {
		t.Error("second call created = true, want false")
	}

	var count int64
	repo.DB.Model(&model.ProgressReport{}).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestCreateIfAbsentDistinguishesPeriodsAndStudents(t *testing.T) {
	repo := NewProgressReportRepository(newTestDB(t))

	if _, err := repo.CreateIfAbsent(sampleReport(1)); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}

	other := sampleReport(1)
	other.PeriodStart = "2024-12-01"
	other.PeriodEnd = "2025-02-28"
	if created, err := repo.CreateIfAbsent(other); err != nil || !created {
		t.Errorf("different period: created = %v, err = %v, want true, nil", created, err)
	}

	if created, err := repo.CreateIfAbsent(sampleReport(2)); err != nil || !created {
		t.Errorf("different student: created = %v, err = %v, want true, nil", created, err)
	}

	annual := sampleReport(1)
	annual.ReportType = model.ReportAnnual
	if created, err := repo.CreateIfAbsent(annual); err != nil || !created {
		t.Errorf("different type: created = %v, err = %v, want true, nil", created, err)
	}
}

func TestMarkOverdueFlipsOnlyPastDueScheduled(t *testing.T) {
	repo := NewProgressReportRepository(newTestDB(t))

	pastDue := sampleReport(1)
	if _, err := repo.CreateIfAbsent(pastDue); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}

	future := sampleReport(1)
	future.PeriodStart = "2024-12-01"
	future.PeriodEnd = "2025-02-28"
	future.DueDate = "2025-03-14"
	if _, err := repo.CreateIfAbsent(future); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}

	done := sampleReport(2)
	done.Status = model.ReportCompleted
	if _, err := repo.CreateIfAbsent(done); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}

	n, err := repo.MarkOverdue("2025-01-01")
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if n != 1 {
		t.Errorf("flipped = %d, want 1", n)
	}

	overdue, err := repo.FindByStatus(model.ReportOverdue)
	if err != nil {
		t.Fatalf("FindByStatus: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != pastDue.ID {
		t.Errorf("overdue = %v, want only the past-due scheduled report", overdue)
	}

	completed, err := repo.FindByStatus(model.ReportCompleted)
	if err != nil {
		t.Fatalf("FindByStatus: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("completed reports touched by the sweep: %v", completed)
	}
}
