package model

import "time"

type CommunicationMethod string

const (
	CommCall    CommunicationMethod = "call"
	CommEmail   CommunicationMethod = "email"
	CommMeeting CommunicationMethod = "meeting"
	CommNote    CommunicationMethod = "note"
)

// Communication logs one parent/teacher contact about a student.
// AttachmentURL points into the storage provider when a document was
// attached.
// swagger:model Communication
type Communication struct {
	BaseModel
	StudentID      uint                `gorm:"index;not null" json:"studentId"`
	ContactID      *uint               `gorm:"index" json:"contactId,omitempty"`
	Contact        *Contact            `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Date           time.Time           `gorm:"not null" json:"date"`
	Method         CommunicationMethod `gorm:"size:20;not null" json:"method"`
	Summary        string              `gorm:"type:text" json:"summary"`
	FollowUpNeeded bool                `gorm:"default:false" json:"followUpNeeded"`
	AttachmentURL  string              `gorm:"size:255" json:"attachmentUrl,omitempty"`
}

func (Communication) TableName() string {
	return "communications"
}
