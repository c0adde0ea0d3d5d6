package model

import "time"

// Student is one caseload entry. IEPDate anchors quarterly report
// scheduling; AnnualReviewDate caps quarterly due dates and drives the
// annual report.
// swagger:model Student
type Student struct {
	BaseModel
	TherapistID      uint       `gorm:"index;not null" json:"therapistId"`
	FirstName        string     `gorm:"size:100;not null" json:"firstName"`
	LastName         string     `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Grade            string     `gorm:"size:20" json:"grade"`
	SchoolID         *uint      `gorm:"index" json:"schoolId,omitempty"`
	School           *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	SessionsPerWeek  int        `gorm:"default:0" json:"sessionsPerWeek"`
	MinutesPerWeek   int        `gorm:"default:0" json:"minutesPerWeek"`
	IEPDate          *time.Time `gorm:"type:date" json:"iepDate,omitempty"`
	AnnualReviewDate *time.Time `gorm:"type:date" json:"annualReviewDate,omitempty"`
	Active           bool       `gorm:"default:true" json:"active"`
	Notes            string     `gorm:"type:text" json:"notes"`
}

func (Student) TableName() string {
	return "students"
}
