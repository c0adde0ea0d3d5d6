package repository

import (
	"slp_caseload_backend/internal/model"

	"gorm.io/gorm"
)

// SessionRepository handles session log and trial result data access.

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.SessionLog) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) Update(session *model.SessionLog) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(session).Error
}

func (r *SessionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TrialResult{}, "session_log_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SessionLog{}, "id = ?", id).Error
	})
}

func (r *SessionRepository) FindByID(id string) (*model.SessionLog, error) {
	var session model.SessionLog
	err := r.DB.Preload("TrialResults").First(&session, "id = ?", id).Error
	return &session, err
}

func (r *SessionRepository) FindByStudentID(studentID uint, page, pageSize int) ([]model.SessionLog, int64, error) {
	var sessions []model.SessionLog
	var total int64

	query := r.DB.Model(&model.SessionLog{}).Where("student_id = ?", studentID)
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Preload("TrialResults").
		Order("session_date DESC").
		Offset(offset).Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}

// FindTrialsForGoal returns a goal's trial results joined with their
// session dates, oldest first. This is the chronological feed the
// recent-performance aggregation consumes.
func (r *SessionRepository) FindTrialsForGoal(goalID string) ([]model.TrialResult, []model.SessionLog, error) {
	var trials []model.TrialResult
	err := r.DB.
		Joins("JOIN session_logs ON session_logs.id = trial_results.session_log_id").
		Where("trial_results.goal_id = ?", goalID).
		Order("session_logs.session_date").
		Find(&trials).Error
	if err != nil {
		return nil, nil, err
	}

	if len(trials) == 0 {
		return trials, nil, nil
	}

	sessionIDs := make([]string, 0, len(trials))
	for _, t := range trials {
		sessionIDs = append(sessionIDs, t.SessionLogID)
	}

	var sessions []model.SessionLog
	if err := r.DB.Where("id IN ?", sessionIDs).Find(&sessions).Error; err != nil {
		return nil, nil, err
	}
	return trials, sessions, nil
}

func (r *SessionRepository) CountByStudentID(studentID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.SessionLog{}).Where("student_id = ?", studentID).Count(&total).Error
	return total, err
}
