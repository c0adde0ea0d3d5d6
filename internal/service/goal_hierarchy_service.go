package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/util"
)

// GoalHierarchyService groups a student's flat goal list into the
// parent/sub-goal structure the UI renders and answers depth/path/progress
// queries over it. All methods are pure functions of their input.

type GoalHierarchyService struct{}

func NewGoalHierarchyService() *GoalHierarchyService {
	return &GoalHierarchyService{}
}

// GoalHierarchy is the grouped view of one scope of goals. Every input
// goal lands in exactly one of ParentGoals, OrphanGoals, or a bucket of
// SubGoalsByParent.
type GoalHierarchy struct {
	// ParentGoals are root goals that have at least one sub-goal.
	ParentGoals []model.Goal `json:"parentGoals"`
	// SubGoalsByParent maps a parent goal id to its direct children in
	// input order. Multi-level trees collapse into direct edges; callers
	// walk the map transitively to rebuild nesting.
	SubGoalsByParent map[string][]model.Goal `json:"subGoalsByParent"`
	// OrphanGoals are childless root goals, shown standalone.
	OrphanGoals []model.Goal `json:"orphanGoals"`
	// DanglingGoalIDs lists goals whose parentGoalId did not resolve
	// inside the input scope. They are demoted to roots above rather than
	// dropped, and surfaced here so callers can flag them.
	DanglingGoalIDs []string `json:"danglingGoalIds,omitempty"`
}

// Organize builds the hierarchy in two passes: index children under every
// resolvable parent, then classify the roots. Goals whose parent is not in
// the input scope are treated as roots.
func (s *GoalHierarchyService) Organize(goals []model.Goal) GoalHierarchy {
	result := GoalHierarchy{
		ParentGoals:      []model.Goal{},
		SubGoalsByParent: map[string][]model.Goal{},
		OrphanGoals:      []model.Goal{},
	}

	byID := make(map[string]model.Goal, len(goals))
	for _, g := range goals {
		if g.ID == "" {
			continue
		}
		byID[g.ID] = g
	}

	for _, g := range goals {
		if g.ID == "" {
			continue
		}
		if g.ParentGoalID == nil {
			continue
		}
		if _, ok := byID[*g.ParentGoalID]; !ok {
			continue
		}
		result.SubGoalsByParent[*g.ParentGoalID] = append(result.SubGoalsByParent[*g.ParentGoalID], g)
	}

	for _, g := range goals {
		if g.ID == "" {
			continue
		}
		isRoot := g.ParentGoalID == nil
		if !isRoot {
			if _, ok := byID[*g.ParentGoalID]; !ok {
				isRoot = true
				result.DanglingGoalIDs = append(result.DanglingGoalIDs, g.ID)
			}
		}
		if !isRoot {
			continue
		}
		if len(result.SubGoalsByParent[g.ID]) > 0 {
			result.ParentGoals = append(result.ParentGoals, g)
		} else {
			result.OrphanGoals = append(result.OrphanGoals, g)
		}
	}

	return result
}

// DepthOf returns how many parent links sit above the goal within the
// given scope: 0 for roots (including dangling parent references). The
// walk carries a visited set so cyclic parent links report ErrGoalCycle
// instead of recursing forever.
func (s *GoalHierarchyService) DepthOf(goal model.Goal, allGoals []model.Goal) (int, error) {
	byID := indexGoals(allGoals)

	depth := 0
	visited := map[string]bool{goal.ID: true}
	current := goal
	for current.ParentGoalID != nil {
		parent, ok := byID[*current.ParentGoalID]
		if !ok {
			break
		}
		if visited[parent.ID] {
			return 0, util.ErrGoalCycle
		}
		visited[parent.ID] = true
		depth++
		current = parent
	}
	return depth, nil
}

// PathOf returns the goal descriptions from the root down to the given
// goal. len(path) == DepthOf(goal)+1.
func (s *GoalHierarchyService) PathOf(goal model.Goal, allGoals []model.Goal) ([]string, error) {
	byID := indexGoals(allGoals)

	path := []string{goal.Description}
	visited := map[string]bool{goal.ID: true}
	current := goal
	for current.ParentGoalID != nil {
		parent, ok := byID[*current.ParentGoalID]
		if !ok {
			break
		}
		if visited[parent.ID] {
			return nil, util.ErrGoalCycle
		}
		visited[parent.ID] = true
		path = append(path, parent.Description)
		current = parent
	}

	// collected leaf-to-root, flip it
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

func indexGoals(goals []model.Goal) map[string]model.Goal {
	byID := make(map[string]model.Goal, len(goals))
	for _, g := range goals {
		if g.ID == "" {
			continue
		}
		byID[g.ID] = g
	}
	return byID
}

// recentSessionWindow is how many of the latest data points feed the
// recent-performance average.
const recentSessionWindow = 3

// PerformanceEntry is one session's worth of trial data for a goal,
// already in chronological order when handed to RecentPerformance.
type PerformanceEntry struct {
	SessionDate string   `json:"sessionDate"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
	Correct     *int     `json:"correct,omitempty"`
	Incorrect   *int     `json:"incorrect,omitempty"`
}

// RecentPerformance summarizes the last few data points for a goal.
// Average is nil, not zero, when no entry carries usable trial data.
type RecentPerformance struct {
	RecentSessions []PerformanceEntry `json:"recentSessions"`
	Average        *float64           `json:"average"`
}

// AccuracyPercent converts an entry to a percentage: the recorded accuracy
// when present, otherwise correct/(correct+incorrect)*100. Returns false
// when the entry has no usable data.
func (e PerformanceEntry) AccuracyPercent() (float64, bool) {
	if e.Accuracy != nil {
		return *e.Accuracy, true
	}
	if e.Correct != nil && e.Incorrect != nil {
		total := *e.Correct + *e.Incorrect
		if total > 0 {
			return float64(*e.Correct) / float64(total) * 100, true
		}
	}
	return 0, false
}

// RecentPerformanceFor takes a goal's chronologically ordered entries and
// averages the trailing window.
func (s *GoalHierarchyService) RecentPerformanceFor(entries []PerformanceEntry) RecentPerformance {
	recent := entries
	if len(recent) > recentSessionWindow {
		recent = recent[len(recent)-recentSessionWindow:]
	}

	sum := 0.0
	usable := 0
	for _, e := range recent {
		if pct, ok := e.AccuracyPercent(); ok {
			sum += pct
			usable++
		}
	}

	result := RecentPerformance{RecentSessions: recent}
	if usable > 0 {
		avg := sum / float64(usable)
		result.Average = &avg
	}
	return result
}
