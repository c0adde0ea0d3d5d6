package service

import (
	"errors"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/util"
	"testing"
)

func makeGoal(id string, parentID *string, description string) model.Goal {
	g := model.Goal{
		StudentID:   1,
		Description: description,
	}
	g.ID = id
	g.ParentGoalID = parentID
	return g
}

func strPtr(s string) *string { return &s }

func TestOrganizeGroupsParentsAndSubGoals(t *testing.T) {
	svc := NewGoalHierarchyService()

	goals := []model.Goal{
		makeGoal("a", nil, "produce /r/ in conversation"),
		makeGoal("b", strPtr("a"), "produce /r/ in sentences"),
		makeGoal("c", strPtr("b"), "produce /r/ in words"),
		makeGoal("d", nil, "follow two-step directions"),
	}

	h := svc.Organize(goals)

	if len(h.ParentGoals) != 2 {
		t.Fatalf("ParentGoals = %d, want 2", len(h.ParentGoals))
	}
	if h.ParentGoals[0].ID != "a" || h.ParentGoals[1].ID != "b" {
		t.Errorf("ParentGoals = [%s, %s], want [a, b]", h.ParentGoals[0].ID, h.ParentGoals[1].ID)
	}
	if len(h.SubGoalsByParent["a"]) != 1 || h.SubGoalsByParent["a"][0].ID != "b" {
		t.Errorf("children of a = %v, want [b]", h.SubGoalsByParent["a"])
	}
	if len(h.SubGoalsByParent["b"]) != 1 || h.SubGoalsByParent["b"][0].ID != "c" {
		t.Errorf("children of b = %v, want [c]", h.SubGoalsByParent["b"])
	}
	if len(h.OrphanGoals) != 1 || h.OrphanGoals[0].ID != "d" {
		t.Errorf("OrphanGoals = %v, want [d]", h.OrphanGoals)
	}
	if len(h.DanglingGoalIDs) != 0 {
		t.Errorf("DanglingGoalIDs = %v, want none", h.DanglingGoalIDs)
	}
}

// Every input goal must land in exactly one bucket. Note "b" is both a
// parent (of c) and a child (of a): it appears as a value in a's bucket
// and as a key, but only once as a classified goal.
func TestOrganizePartitionsInput(t *testing.T) {
	svc := NewGoalHierarchyService()

	goals := []model.Goal{
		makeGoal("a", nil, "root with children"),
		makeGoal("b", strPtr("a"), "middle"),
		makeGoal("c", strPtr("b"), "leaf"),
		makeGoal("d", nil, "standalone"),
		makeGoal("e", strPtr("missing"), "dangling"),
	}

	h := svc.Organize(goals)

	seen := map[string]int{}
	for _, g := range h.ParentGoals {
		seen[g.ID]++
	}
	for _, g := range h.OrphanGoals {
		seen[g.ID]++
	}
	for _, children := range h.SubGoalsByParent {
		for _, g := range children {
			seen[g.ID]++
		}
	}

	for _, g := range goals {
		if seen[g.ID] != 1 {
			t.Errorf("goal %s appears %d times across buckets, want exactly 1", g.ID, seen[g.ID])
		}
	}
}

func TestOrganizeDemotesDanglingParentsToRoots(t *testing.T) {
	svc := NewGoalHierarchyService()

	goals := []model.Goal{
		makeGoal("a", strPtr("deleted-parent"), "was a sub-goal"),
		makeGoal("b", strPtr("a"), "child of a"),
	}

	h := svc.Organize(goals)

	// a keeps its child so it surfaces as a parent root, not an orphan
	if len(h.ParentGoals) != 1 || h.ParentGoals[0].ID != "a" {
		t.Fatalf("ParentGoals = %v, want [a]", h.ParentGoals)
	}
	if len(h.DanglingGoalIDs) != 1 || h.DanglingGoalIDs[0] != "a" {
		t.Errorf("DanglingGoalIDs = %v, want [a]", h.DanglingGoalIDs)
	}
}

func TestDepthAndPath(t *testing.T) {
	svc := NewGoalHierarchyService()

	goals := []model.Goal{
		makeGoal("a", nil, "long term"),
		makeGoal("b", strPtr("a"), "short term"),
		makeGoal("c", strPtr("b"), "objective"),
	}

	tests := []struct {
		goal      model.Goal
		wantDepth int
		wantPath  []string
	}{
		{goals[0], 0, []string{"long term"}},
		{goals[1], 1, []string{"long term", "short term"}},
		{goals[2], 2, []string{"long term", "short term", "objective"}},
	}

	for _, tt := range tests {
		depth, err := svc.DepthOf(tt.goal, goals)
		if err != nil {
			t.Fatalf("DepthOf(%s): %v", tt.goal.ID, err)
		}
		if depth != tt.wantDepth {
			t.Errorf("DepthOf(%s) = %d, want %d", tt.goal.ID, depth, tt.wantDepth)
		}

		path, err := svc.PathOf(tt.goal, goals)
		if err != nil {
			t.Fatalf("PathOf(%s): %v", tt.goal.ID, err)
		}
		if len(path) != len(tt.wantPath) {
			t.Fatalf("PathOf(%s) = %v, want %v", tt.goal.ID, path, tt.wantPath)
		}
		for i := range path {
			if path[i] != tt.wantPath[i] {
				t.Errorf("PathOf(%s)[%d] = %q, want %q", tt.goal.ID, i, path[i], tt.wantPath[i])
			}
		}
		if len(path) != depth+1 {
			t.Errorf("len(path) = %d, want depth+1 = %d", len(path), depth+1)
		}
	}
}

func TestDepthOfTreatsDanglingParentAsRoot(t *testing.T) {
	svc := NewGoalHierarchyService()

	goals := []model.Goal{
		makeGoal("a", strPtr("gone"), "detached"),
	}

	depth, err := svc.DepthOf(goals[0], goals)
	if err != nil {
		t.Fatalf("DepthOf: %v", err)
	}
	if depth != 0 {
		t.Errorf("depth = %d, want 0", depth)
	}
}

func TestCyclicParentLinksReportError(t *testing.T) {
	svc := NewGoalHierarchyService()

	goals := []model.Goal{
		makeGoal("a", strPtr("b"), "first"),
		makeGoal("b", strPtr("a"), "second"),
	}

	if _, err := svc.DepthOf(goals[0], goals); !errors.Is(err, util.ErrGoalCycle) {
		t.Errorf("DepthOf error = %v, want ErrGoalCycle", err)
	}
	if _, err := svc.PathOf(goals[1], goals); !errors.Is(err, util.ErrGoalCycle) {
		t.Errorf("PathOf error = %v, want ErrGoalCycle", err)
	}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestRecentPerformanceAveragesLastThree(t *testing.T) {
	svc := NewGoalHierarchyService()

	entries := []PerformanceEntry{
		{SessionDate: "2024-09-02", Accuracy: floatPtr(10)}, // outside the window
		{SessionDate: "2024-09-09", Accuracy: floatPtr(60)},
		{SessionDate: "2024-09-16", Correct: intPtr(8), Incorrect: intPtr(2)}, // 80%
		{SessionDate: "2024-09-23", Accuracy: floatPtr(70)},
	}

	perf := svc.RecentPerformanceFor(entries)

	if len(perf.RecentSessions) != 3 {
		t.Fatalf("RecentSessions = %d, want 3", len(perf.RecentSessions))
	}
	if perf.RecentSessions[0].SessionDate != "2024-09-09" {
		t.Errorf("window starts at %s, want 2024-09-09", perf.RecentSessions[0].SessionDate)
	}
	if perf.Average == nil {
		t.Fatal("Average = nil, want value")
	}
	if want := 70.0; *perf.Average != want {
		t.Errorf("Average = %v, want %v", *perf.Average, want)
	}
}

func TestRecentPerformanceSkipsUnusableEntries(t *testing.T) {
	svc := NewGoalHierarchyService()

	entries := []PerformanceEntry{
		{SessionDate: "2024-09-09", Accuracy: floatPtr(50)},
		{SessionDate: "2024-09-16"}, // no data recorded
		{SessionDate: "2024-09-23", Accuracy: floatPtr(90)},
	}

	perf := svc.RecentPerformanceFor(entries)

	if perf.Average == nil {
		t.Fatal("Average = nil, want value")
	}
	if want := 70.0; *perf.Average != want {
		t.Errorf("Average = %v, want %v", *perf.Average, want)
	}
}

func TestRecentPerformanceNoData(t *testing.T) {
	svc := NewGoalHierarchyService()

	perf := svc.RecentPerformanceFor(nil)
	if perf.Average != nil {
		t.Errorf("Average = %v, want nil", *perf.Average)
	}

	perf = svc.RecentPerformanceFor([]PerformanceEntry{
		{SessionDate: "2024-09-09"},
		{SessionDate: "2024-09-16", Correct: intPtr(0), Incorrect: intPtr(0)},
	})
	if perf.Average != nil {
		t.Errorf("Average = %v, want nil for entries without usable data", *perf.Average)
	}
}

func TestAccuracyPercentPrefersRecordedAccuracy(t *testing.T) {
	e := PerformanceEntry{Accuracy: floatPtr(42), Correct: intPtr(9), Incorrect: intPtr(1)}
	pct, ok := e.AccuracyPercent()
	if !ok || pct != 42 {
		t.Errorf("AccuracyPercent = (%v, %v), want (42, true)", pct, ok)
	}

	e = PerformanceEntry{Correct: intPtr(3), Incorrect: intPtr(1)}
	pct, ok = e.AccuracyPercent()
	if !ok || pct != 75 {
		t.Errorf("AccuracyPercent = (%v, %v), want (75, true)", pct, ok)
	}
}
