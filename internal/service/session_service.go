package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/util"
	"time"
)

// SessionService records delivered sessions and their trial data.

type SessionService struct {
	SessionRepo *repository.SessionRepository
	GoalRepo    *repository.GoalRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository, goalRepo *repository.GoalRepository) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		GoalRepo:    goalRepo,
	}
}

type TrialResultRequest struct {
	GoalID    string   `json:"goalId" binding:"required"`
	Accuracy  *float64 `json:"accuracy" binding:"omitempty,min=0,max=100"`
	Correct   *int     `json:"correct" binding:"omitempty,min=0"`
	Incorrect *int     `json:"incorrect" binding:"omitempty,min=0"`
	Notes     string   `json:"notes" binding:"max=255"`
}

type CreateSessionRequest struct {
	SessionDate     time.Time            `json:"sessionDate" binding:"required"`
	DurationMinutes int                  `json:"durationMinutes" binding:"min=0"`
	SessionType     string               `json:"sessionType" binding:"omitempty,oneof=individual group evaluation makeup"`
	Notes           string               `json:"notes"`
	TrialResults    []TrialResultRequest `json:"trialResults" binding:"dive"`
}

func (s *SessionService) CreateSession(studentID uint, req CreateSessionRequest) (*model.SessionLog, error) {
	// trial rows must reference goals on this student's plan
	for _, tr := range req.TrialResults {
		goal, err := s.GoalRepo.FindByID(tr.GoalID)
		if err != nil {
			return nil, err
		}
		if goal.StudentID != studentID {
			return nil, util.ErrTrialGoalMismatch
		}
	}

	sessionType := model.SessionIndividual
	if req.SessionType != "" {
		sessionType = model.SessionType(req.SessionType)
	}

	session := &model.SessionLog{
		StudentID:       studentID,
		SessionDate:     req.SessionDate,
		DurationMinutes: req.DurationMinutes,
		SessionType:     sessionType,
		Notes:           req.Notes,
	}
	for _, tr := range req.TrialResults {
		session.TrialResults = append(session.TrialResults, model.TrialResult{
			GoalID:    tr.GoalID,
			Accuracy:  tr.Accuracy,
			Correct:   tr.Correct,
			Incorrect: tr.Incorrect,
			Notes:     tr.Notes,
		})
	}

	return session, s.SessionRepo.Create(session)
}

func (s *SessionService) UpdateSession(sessionID string, req CreateSessionRequest) (*model.SessionLog, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	for _, tr := range req.TrialResults {
		goal, err := s.GoalRepo.FindByID(tr.GoalID)
		if err != nil {
			return nil, err
		}
		if goal.StudentID != session.StudentID {
			return nil, util.ErrTrialGoalMismatch
		}
	}

	session.SessionDate = req.SessionDate
	session.DurationMinutes = req.DurationMinutes
	if req.SessionType != "" {
		session.SessionType = model.SessionType(req.SessionType)
	}
	session.Notes = req.Notes

	// replace trial rows wholesale; partial edits are not a thing in the UI
	if err := s.SessionRepo.DB.Delete(&model.TrialResult{}, "session_log_id = ?", session.ID).Error; err != nil {
		return nil, err
	}
	session.TrialResults = nil
	for _, tr := range req.TrialResults {
		session.TrialResults = append(session.TrialResults, model.TrialResult{
			SessionLogID: session.ID,
			GoalID:       tr.GoalID,
			Accuracy:     tr.Accuracy,
			Correct:      tr.Correct,
			Incorrect:    tr.Incorrect,
			Notes:        tr.Notes,
		})
	}

	return session, s.SessionRepo.Update(session)
}

func (s *SessionService) DeleteSession(sessionID string) error {
	if _, err := s.SessionRepo.FindByID(sessionID); err != nil {
		return err
	}
	return s.SessionRepo.Delete(sessionID)
}

func (s *SessionService) GetSession(sessionID string) (*model.SessionLog, error) {
	return s.SessionRepo.FindByID(sessionID)
}

func (s *SessionService) ListByStudent(studentID uint, page, pageSize int) ([]model.SessionLog, int64, error) {
	return s.SessionRepo.FindByStudentID(studentID, page, pageSize)
}
