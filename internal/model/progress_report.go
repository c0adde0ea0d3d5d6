package model

import "time"

type ReportType string

const (
	ReportQuarterly ReportType = "quarterly"
	ReportAnnual    ReportType = "annual"
)

type ReportStatus string

const (
	ReportScheduled ReportStatus = "scheduled"
	ReportOverdue   ReportStatus = "overdue"
	ReportCompleted ReportStatus = "completed"
)

// ProgressReport is one scheduled reporting obligation. Period and due
// dates are date-only strings (YYYY-MM-DD); the composite unique index is
// what makes scheduling idempotent under concurrent callers.
// swagger:model ProgressReport
type ProgressReport struct {
	UUIDBase
	StudentID     uint         `gorm:"uniqueIndex:idx_report_period;not null" json:"studentId"`
	ReportType    ReportType   `gorm:"uniqueIndex:idx_report_period;size:20;not null" json:"reportType"`
	PeriodStart   string       `gorm:"uniqueIndex:idx_report_period;size:10;not null" json:"periodStart"`
	PeriodEnd     string       `gorm:"uniqueIndex:idx_report_period;size:10;not null" json:"periodEnd"`
	DueDate       string       `gorm:"size:10;not null" json:"dueDate"`
	ScheduledDate time.Time    `json:"scheduledDate"`
	CompletedDate *time.Time   `json:"completedDate,omitempty"`
	Status        ReportStatus `gorm:"index;size:20;default:'scheduled'" json:"status"`
}

func (ProgressReport) TableName() string {
	return "progress_reports"
}
