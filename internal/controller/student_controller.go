package controller

import (
	"errors"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// CreateStudent godoc
// @Summary Add a caseload entry
// @Description Creates a student and schedules their progress reports
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateStudentRequest true "Student details"
// @Success 201 {object} util.Response{data=model.Student}
// @Failure 400 {object} util.Response
// @Router /api/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.CreateStudent(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, student)
}

// ListStudents godoc
// @Summary List the caseload
// @Description Lists the therapist's students, filterable by name and active flag
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name filter"
// @Param active query bool false "Active students only"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	name := ctx.Query("name")
	activeOnly := ctx.Query("active") == "true"
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	students, total, err := c.StudentService.ListStudents(user.UserID, name, activeOnly, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  students,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetStudent godoc
// @Summary Get one student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response{data=model.Student}
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid student id")
		return
	}

	student, err := c.StudentService.GetStudent(user.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, student)
}

// UpdateStudent godoc
// @Summary Update a caseload entry
// @Description Updates student fields; IEP date changes reschedule reports
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body service.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Student}
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid student id")
		return
	}

	var req service.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.UpdateStudent(user.UserID, uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, student)
}

// DeleteStudent godoc
// @Summary Remove a caseload entry
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid student id")
		return
	}

	if err := c.StudentService.DeleteStudent(user.UserID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// GetCaseloadSummary godoc
// @Summary Caseload dashboard summary
// @Description Aggregated counts for the dashboard, cached for a few minutes
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CaseloadSummary}
// @Router /api/students/summary [get]
func (c *StudentController) GetCaseloadSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.StudentService.GetCaseloadSummary(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
