package controller

import (
	"errors"
	"net/http"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GoalController struct {
	GoalService    *service.GoalService
	StudentService *service.StudentService
}

func NewGoalController(goalService *service.GoalService, studentService *service.StudentService) *GoalController {
	return &GoalController{
		GoalService:    goalService,
		StudentService: studentService,
	}
}

// ownedStudentID parses the :id param and checks the student belongs to
// the caller's caseload.
func (c *GoalController) ownedStudentID(ctx *gin.Context) (uint, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return 0, false
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid student id")
		return 0, false
	}

	if _, err := c.StudentService.GetStudent(user.UserID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return 0, false
	}
	return uint(id), true
}

// CreateGoal godoc
// @Summary Add a therapy goal
// @Description Creates a goal, optionally as a sub-goal of an existing one
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body service.CreateGoalRequest true "Goal details"
// @Success 201 {object} util.Response{data=model.Goal}
// @Failure 400 {object} util.Response "Parent goal not found on this student"
// @Router /api/students/{id}/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	studentID, ok := c.ownedStudentID(ctx)
	if !ok {
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(studentID, req)
	if err != nil {
		if errors.Is(err, util.ErrParentNotFound) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, goal)
}

// ListGoals godoc
// @Summary List a student's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response{data=[]model.Goal}
// @Router /api/students/{id}/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	studentID, ok := c.ownedStudentID(ctx)
	if !ok {
		return
	}

	goals, err := c.GoalService.ListByStudent(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// GetHierarchy godoc
// @Summary Goal hierarchy view
// @Description Groups a student's goals into parents, sub-goals and standalone goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response{data=service.GoalHierarchy}
// @Router /api/students/{id}/goals/hierarchy [get]
func (c *GoalController) GetHierarchy(ctx *gin.Context) {
	studentID, ok := c.ownedStudentID(ctx)
	if !ok {
		return
	}

	hierarchy, err := c.GoalService.GetHierarchy(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, hierarchy)
}

// GetGoal godoc
// @Summary Get one goal with its tree position
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "Goal ID"
// @Success 200 {object} util.Response{data=service.GoalDetail}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response "Goal hierarchy contains a cycle"
// @Router /api/goals/{goalId} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	detail, err := c.GoalService.GetGoalDetail(ctx.Param("goalId"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGoalCycle):
			util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// UpdateGoal godoc
// @Summary Update a goal
// @Description Updates goal fields; marking a goal achieved stamps the date
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "Goal ID"
// @Param body body service.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Goal}
// @Failure 404 {object} util.Response
// @Router /api/goals/{goalId} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(ctx.Param("goalId"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Description Deletes the goal only; its sub-goals become standalone goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "Goal ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{goalId} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	if err := c.GoalService.DeleteGoal(ctx.Param("goalId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// GetGoalProgress godoc
// @Summary Recent performance for a goal
// @Description Returns the last few sessions' trial data and their average accuracy
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "Goal ID"
// @Success 200 {object} util.Response{data=service.RecentPerformance}
// @Failure 404 {object} util.Response
// @Router /api/goals/{goalId}/progress [get]
func (c *GoalController) GetGoalProgress(ctx *gin.Context) {
	progress, err := c.GoalService.GetGoalProgress(ctx.Param("goalId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}
