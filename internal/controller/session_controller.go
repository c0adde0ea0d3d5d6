package controller

import (
	"errors"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SessionController struct {
	SessionService *service.SessionService
	StudentService *service.StudentService
}

func NewSessionController(sessionService *service.SessionService, studentService *service.StudentService) *SessionController {
	return &SessionController{
		SessionService: sessionService,
		StudentService: studentService,
	}
}

func (c *SessionController) ownedStudentID(ctx *gin.Context) (uint, bool) {
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

// CreateSession godoc
// @Summary Log a therapy session
// @Description Records a delivered session with per-goal trial data
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body service.CreateSessionRequest true "Session details"
// @Success 201 {object} util.Response{data=model.SessionLog}
// @Failure 400 {object} util.Response "Trial references a goal from another student"
// @Router /api/students/{id}/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	studentID, ok := c.ownedStudentID(ctx)
	if !ok {
		return
	}

	var req service.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.CreateSession(studentID, req)
	if err != nil {
		if errors.Is(err, util.ErrTrialGoalMismatch) || errors.Is(err, gorm.ErrRecordNotFound) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary List a student's sessions
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/students/{id}/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	studentID, ok := c.ownedStudentID(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	sessions, total, err := c.SessionService.ListByStudent(studentID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  sessions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetSession godoc
// @Summary Get one session log
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=model.SessionLog}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{sessionId} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	session, err := c.SessionService.GetSession(ctx.Param("sessionId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// UpdateSession godoc
// @Summary Update a session log
// @Description Replaces session fields and its trial rows
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param body body service.CreateSessionRequest true "Session details"
// @Success 200 {object} util.Response{data=model.SessionLog}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{sessionId} [put]
func (c *SessionController) UpdateSession(ctx *gin.Context) {
	var req service.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.UpdateSession(ctx.Param("sessionId"), req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTrialGoalMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// DeleteSession godoc
// @Summary Delete a session log
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions/{sessionId} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	if err := c.SessionService.DeleteSession(ctx.Param("sessionId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
