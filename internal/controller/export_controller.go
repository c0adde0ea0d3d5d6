package controller

import (
	"errors"
	"io"
	"net/http"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportController struct {
	ExportService *service.ExportService
	BackupService *service.BackupService
}

func NewExportController(exportService *service.ExportService, backupService *service.BackupService) *ExportController {
	return &ExportController{
		ExportService: exportService,
		BackupService: backupService,
	}
}

// ExportCaseloadCSV godoc
// @Summary Download the caseload as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/export/caseload.csv [get]
func (c *ExportController) ExportCaseloadCSV(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.ExportService.ExportCaseloadCSV(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := service.CaseloadExportFilename(time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, util.MimeCSV, data)
}

// ExportStudentRecord godoc
// @Summary Export a student's full record
// @Description Bundles the student, goals, sessions, reports and communications as JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response{data=service.StudentRecord}
// @Failure 404 {object} util.Response
// @Router /api/students/{id}/export [get]
func (c *ExportController) ExportStudentRecord(ctx *gin.Context) {
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

	record, err := c.ExportService.ExportStudentRecord(user.UserID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, record)
}

// CreateBackup godoc
// @Summary Snapshot all clinical data
// @Description Writes a JSON backup to the configured storage; admin only
// @Tags export
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=object}
// @Router /api/backup [post]
func (c *ExportController) CreateBackup(ctx *gin.Context) {
	url, err := c.BackupService.CreateBackup(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"url": url})
}

// RestoreBackup godoc
// @Summary Restore from a backup file
// @Description Replaces all clinical data with the uploaded snapshot; admin only
// @Tags export
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Backup JSON"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Invalid backup file"
// @Router /api/backup/restore [post]
func (c *ExportController) RestoreBackup(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Missing file")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.BackupService.RestoreBackup(data); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}
