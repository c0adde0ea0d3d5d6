package model

import "time"

// ScheduleSlot is a recurring weekly session slot on the therapist's
// calendar. StartTime is wall-clock "HH:MM".
// swagger:model ScheduleSlot
type ScheduleSlot struct {
	BaseModel
	TherapistID     uint         `gorm:"index;not null" json:"therapistId"`
	StudentID       uint         `gorm:"index;not null" json:"studentId"`
	Student         *Student     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Weekday         time.Weekday `gorm:"not null" json:"weekday"` // 0=Sunday .. 6=Saturday
	StartTime       string       `gorm:"size:5;not null" json:"startTime"`
	DurationMinutes int          `gorm:"not null" json:"durationMinutes"`
	SessionType     SessionType  `gorm:"size:20;default:'individual'" json:"sessionType"`
	Location        string       `gorm:"size:100" json:"location"`
}

func (ScheduleSlot) TableName() string {
	return "schedule_slots"
}
