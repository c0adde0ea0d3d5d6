package service

import (
	"errors"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// GoalService handles therapy goal CRUD and feeds the hierarchy builder.

type GoalService struct {
	GoalRepo    *repository.GoalRepository
	SessionRepo *repository.SessionRepository
	Hierarchy   *GoalHierarchyService
}

func NewGoalService(goalRepo *repository.GoalRepository, sessionRepo *repository.SessionRepository, hierarchy *GoalHierarchyService) *GoalService {
	return &GoalService{
		GoalRepo:    goalRepo,
		SessionRepo: sessionRepo,
		Hierarchy:   hierarchy,
	}
}

type CreateGoalRequest struct {
	ParentGoalID *string `json:"parentGoalId"`
	Description  string  `json:"description" binding:"required,max=2000"`
	Baseline     string  `json:"baseline" binding:"max=2000"`
	Target       string  `json:"target" binding:"max=2000"`
	Priority     string  `json:"priority" binding:"omitempty,oneof=high medium low"`
	Domain       string  `json:"domain" binding:"max=100"`
}

type UpdateGoalRequest struct {
	Description string `json:"description" binding:"max=2000"`
	Baseline    string `json:"baseline" binding:"max=2000"`
	Target      string `json:"target" binding:"max=2000"`
	Status      string `json:"status" binding:"omitempty,oneof=in_progress achieved modified"`
	Priority    string `json:"priority" binding:"omitempty,oneof=high medium low"`
	Domain      string `json:"domain" binding:"max=100"`
}

// CreateGoal validates the parent link at creation; the link is immutable
// afterwards (no re-parenting operation exists).
func (s *GoalService) CreateGoal(studentID uint, req CreateGoalRequest) (*model.Goal, error) {
	if req.ParentGoalID != nil {
		parent, err := s.GoalRepo.FindByID(*req.ParentGoalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrParentNotFound
			}
			return nil, err
		}
		if parent.StudentID != studentID {
			return nil, util.ErrParentNotFound
		}
	}

	goal := &model.Goal{
		StudentID:    studentID,
		ParentGoalID: req.ParentGoalID,
		Description:  req.Description,
		Baseline:     req.Baseline,
		Target:       req.Target,
		Status:       model.GoalInProgress,
		Priority:     model.GoalPriority(req.Priority),
		Domain:       req.Domain,
	}

	return goal, s.GoalRepo.Create(goal)
}

func (s *GoalService) UpdateGoal(goalID string, req UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		goal.Description = req.Description
	}
	if req.Baseline != "" {
		goal.Baseline = req.Baseline
	}
	if req.Target != "" {
		goal.Target = req.Target
	}
	if req.Priority != "" {
		goal.Priority = model.GoalPriority(req.Priority)
	}
	if req.Domain != "" {
		goal.Domain = req.Domain
	}
	if req.Status != "" {
		newStatus := model.GoalStatus(req.Status)
		if newStatus == model.GoalAchieved && goal.Status != model.GoalAchieved {
			now := time.Now()
			goal.DateAchieved = &now
		}
		if newStatus != model.GoalAchieved {
			goal.DateAchieved = nil
		}
		goal.Status = newStatus
	}

	return goal, s.GoalRepo.Update(goal)
}

// DeleteGoal removes only the goal itself. Children are left in place
// with a dangling parent link; the hierarchy builder demotes them to
// roots.
func (s *GoalService) DeleteGoal(goalID string) error {
	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		return err
	}
	return s.GoalRepo.Delete(goalID)
}

func (s *GoalService) GetGoal(goalID string) (*model.Goal, error) {
	return s.GoalRepo.FindByID(goalID)
}

func (s *GoalService) ListByStudent(studentID uint) ([]model.Goal, error) {
	return s.GoalRepo.FindByStudentID(studentID)
}

// GetHierarchy groups a student's goals for the expandable goal list.
func (s *GoalService) GetHierarchy(studentID uint) (GoalHierarchy, error) {
	goals, err := s.GoalRepo.FindByStudentID(studentID)
	if err != nil {
		return GoalHierarchy{}, err
	}
	return s.Hierarchy.Organize(goals), nil
}

// GoalDetail is a goal plus its position in the tree.
type GoalDetail struct {
	Goal  model.Goal `json:"goal"`
	Depth int        `json:"depth"`
	Path  []string   `json:"path"`
}

func (s *GoalService) GetGoalDetail(goalID string) (*GoalDetail, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err != nil {
		return nil, err
	}

	scope, err := s.GoalRepo.FindByStudentID(goal.StudentID)
	if err != nil {
		return nil, err
	}

	depth, err := s.Hierarchy.DepthOf(*goal, scope)
	if err != nil {
		return nil, err
	}
	path, err := s.Hierarchy.PathOf(*goal, scope)
	if err != nil {
		return nil, err
	}

	return &GoalDetail{Goal: *goal, Depth: depth, Path: path}, nil
}

// GetGoalProgress aggregates recent trial data for one goal.
func (s *GoalService) GetGoalProgress(goalID string) (RecentPerformance, error) {
	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		return RecentPerformance{}, err
	}

	trials, sessions, err := s.SessionRepo.FindTrialsForGoal(goalID)
	if err != nil {
		return RecentPerformance{}, err
	}

	dates := make(map[string]time.Time, len(sessions))
	for _, sess := range sessions {
		dates[sess.ID] = sess.SessionDate
	}

	entries := make([]PerformanceEntry, 0, len(trials))
	for _, t := range trials {
		entries = append(entries, PerformanceEntry{
			SessionDate: util.FormatDate(dates[t.SessionLogID]),
			Accuracy:    t.Accuracy,
			Correct:     t.Correct,
			Incorrect:   t.Incorrect,
		})
	}

	return s.Hierarchy.RecentPerformanceFor(entries), nil
}
