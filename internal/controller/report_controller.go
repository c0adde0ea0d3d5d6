package controller

import (
	"errors"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	ReportService  *service.ReportService
	Scheduler      *service.ReportSchedulerService
	StudentService *service.StudentService
}

func NewReportController(reportService *service.ReportService, scheduler *service.ReportSchedulerService, studentService *service.StudentService) *ReportController {
	return &ReportController{
		ReportService:  reportService,
		Scheduler:      scheduler,
		StudentService: studentService,
	}
}

// ListStudentReports godoc
// @Summary List a student's progress reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response{data=[]model.ProgressReport}
// @Router /api/students/{id}/reports [get]
func (c *ReportController) ListStudentReports(ctx *gin.Context) {
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

	if _, err := c.StudentService.GetStudent(user.UserID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	reports, err := c.ReportService.ListByStudent(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, reports)
}

// ListReports godoc
// @Summary List progress reports
// @Description Lists reports, optionally filtered by status
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Report status" Enums(scheduled, overdue, completed)
// @Success 200 {object} util.Response{data=[]model.ProgressReport}
// @Router /api/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	status := ctx.Query("status")
	if status == "" {
		reports, err := c.ReportService.ListAll()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, reports)
		return
	}

	switch model.ReportStatus(status) {
	case model.ReportScheduled, model.ReportOverdue, model.ReportCompleted:
	default:
		util.BadRequest(ctx, "Invalid status. Must be 'scheduled', 'overdue' or 'completed'")
		return
	}

	reports, err := c.ReportService.ListByStatus(model.ReportStatus(status))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, reports)
}

// CompleteReport godoc
// @Summary Mark a report completed
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param reportId path string true "Report ID"
// @Success 200 {object} util.Response{data=model.ProgressReport}
// @Failure 404 {object} util.Response
// @Router /api/reports/{reportId}/complete [patch]
func (c *ReportController) CompleteReport(ctx *gin.Context) {
	report, err := c.ReportService.CompleteReport(ctx.Param("reportId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, report)
}

// RescheduleStudent godoc
// @Summary Re-run report scheduling for a student
// @Description Creates any reports missing for the current IEP dates; existing periods are untouched
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response{data=[]model.ProgressReport} "Reports created by this run"
// @Failure 404 {object} util.Response
// @Router /api/students/{id}/reports/schedule [post]
func (c *ReportController) RescheduleStudent(ctx *gin.Context) {
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

	created, err := c.Scheduler.ScheduleForStudent(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, created)
}

// RefreshOverdue godoc
// @Summary Run the overdue sweep now
// @Description Flips scheduled reports past their due date to overdue; admin only
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/reports/refresh-overdue [post]
func (c *ReportController) RefreshOverdue(ctx *gin.Context) {
	if err := c.Scheduler.RefreshOverdueStatuses(time.Now()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// GetSchoolYearQuarters godoc
// @Summary School year quarter windows
// @Description Returns the four quarter windows for the school year containing the anchor date
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param anchor query string false "Anchor date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} util.Response{data=[]util.Quarter}
// @Router /api/reports/quarters [get]
func (c *ReportController) GetSchoolYearQuarters(ctx *gin.Context) {
	var anchor *time.Time
	if raw := ctx.Query("anchor"); raw != "" {
		parsed, err := time.Parse(util.DateFormat, raw)
		if err != nil {
			util.BadRequest(ctx, "Invalid anchor date, expected YYYY-MM-DD")
			return
		}
		anchor = &parsed
	}

	quarters := c.Scheduler.SchoolYearQuarters(anchor)
	util.Success(ctx, quarters)
}
