package repository

import (
	"slp_caseload_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// GoalRepository handles therapy goal data access.

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Model(&model.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"description":   goal.Description,
			"baseline":      goal.Baseline,
			"target":        goal.Target,
			"status":        goal.Status,
			"priority":      goal.Priority,
			"domain":        goal.Domain,
			"date_achieved": goal.DateAchieved,
			"updated_at":    time.Now(),
		}).Error
}

// Delete removes a single goal. Children keep their parent_goal_id; the
// hierarchy builder treats the dangling link as "no parent".
func (r *GoalRepository) Delete(id string) error {
	return r.DB.Delete(&model.Goal{}, "id = ?", id).Error
}

func (r *GoalRepository) FindByID(id string) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.First(&goal, "id = ?", id).Error
	return &goal, err
}

// FindByStudentID returns all goals for one student in creation order,
// the scope the hierarchy builder operates on.
func (r *GoalRepository) FindByStudentID(studentID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("student_id = ?", studentID).Order("created_at").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByStudentIDAndStatus(studentID uint, status model.GoalStatus) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("student_id = ? AND status = ?", studentID, status).
		Order("created_at").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByIDs(ids []string) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("id IN ?", ids).Order("created_at").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) CountChildren(parentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Goal{}).Where("parent_goal_id = ?", parentID).Count(&count).Error
	return count, err
}
