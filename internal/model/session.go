package model

import "time"

type SessionType string

const (
	SessionIndividual SessionType = "individual"
	SessionGroup      SessionType = "group"
	SessionEvaluation SessionType = "evaluation"
	SessionMakeup     SessionType = "makeup"
)

// SessionLog records one delivered therapy session and the trial data
// collected against each goal targeted in it.
// swagger:model SessionLog
type SessionLog struct {
	UUIDBase
	StudentID       uint          `gorm:"index;not null" json:"studentId"`
	SessionDate     time.Time     `gorm:"index;not null" json:"sessionDate"`
	DurationMinutes int           `gorm:"default:0" json:"durationMinutes"`
	SessionType     SessionType   `gorm:"size:20;default:'individual'" json:"sessionType"`
	Notes           string        `gorm:"type:text" json:"notes"`
	TrialResults    []TrialResult `gorm:"foreignKey:SessionLogID" json:"trialResults,omitempty"`
}

func (SessionLog) TableName() string {
	return "session_logs"
}

// TrialResult is per-goal performance inside a session. Either Accuracy is
// recorded directly, or Correct/Incorrect counts are and the percentage is
// derived when aggregating.
// swagger:model TrialResult
type TrialResult struct {
	BaseModel
	SessionLogID string   `gorm:"index;type:varchar(36);not null" json:"sessionLogId"`
	GoalID       string   `gorm:"index;type:varchar(36);not null" json:"goalId"`
	Accuracy     *float64 `json:"accuracy,omitempty"` // percent, 0-100
	Correct      *int     `json:"correct,omitempty"`
	Incorrect    *int     `json:"incorrect,omitempty"`
	Notes        string   `gorm:"size:255" json:"notes"`
}

func (TrialResult) TableName() string {
	return "trial_results"
}
