package model

import "time"

type GoalStatus string

const (
	GoalInProgress GoalStatus = "in_progress"
	GoalAchieved   GoalStatus = "achieved"
	GoalModified   GoalStatus = "modified"
)

type GoalPriority string

const (
	PriorityHigh   GoalPriority = "high"
	PriorityMedium GoalPriority = "medium"
	PriorityLow    GoalPriority = "low"
)

// Goal is one therapy goal. ParentGoalID links a sub-goal to the goal it
// refines; the link is fixed at creation and deleting a parent does not
// cascade to its children.
// swagger:model Goal
type Goal struct {
	UUIDBase
	StudentID    uint         `gorm:"index;not null" json:"studentId"`
	ParentGoalID *string      `gorm:"index;type:varchar(36)" json:"parentGoalId,omitempty"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Baseline     string       `gorm:"type:text" json:"baseline"`
	Target       string       `gorm:"type:text" json:"target"`
	Status       GoalStatus   `gorm:"size:20;default:'in_progress'" json:"status"`
	Priority     GoalPriority `gorm:"size:10" json:"priority,omitempty"`
	Domain       string       `gorm:"size:100" json:"domain,omitempty"` // e.g. "Articulation"
	DateAchieved *time.Time   `json:"dateAchieved,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}
