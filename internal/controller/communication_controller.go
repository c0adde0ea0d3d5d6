package controller

import (
	"errors"
	"path/filepath"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunicationController struct {
	CommunicationService *service.CommunicationService
	StudentService       *service.StudentService
}

func NewCommunicationController(communicationService *service.CommunicationService, studentService *service.StudentService) *CommunicationController {
	return &CommunicationController{
		CommunicationService: communicationService,
		StudentService:       studentService,
	}
}

func (c *CommunicationController) ownedStudentID(ctx *gin.Context) (uint, bool) {
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

// CreateCommunication godoc
// @Summary Log a parent or teacher contact
// @Tags communications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body service.CommunicationRequest true "Communication details"
// @Success 201 {object} util.Response{data=model.Communication}
// @Router /api/students/{id}/communications [post]
func (c *CommunicationController) CreateCommunication(ctx *gin.Context) {
	studentID, ok := c.ownedStudentID(ctx)
	if !ok {
		return
	}

	var req service.CommunicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comm, err := c.CommunicationService.CreateCommunication(studentID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, comm)
}

// ListCommunications godoc
// @Summary List a student's communication log
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/students/{id}/communications [get]
func (c *CommunicationController) ListCommunications(ctx *gin.Context) {
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

	comms, total, err := c.CommunicationService.ListByStudent(studentID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  comms,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ListFollowUps godoc
// @Summary Communications needing follow-up
// @Description Lists open follow-ups across the therapist's caseload
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Communication}
// @Router /api/communications/follow-ups [get]
func (c *CommunicationController) ListFollowUps(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	comms, err := c.CommunicationService.ListNeedingFollowUp(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, comms)
}

// UpdateCommunication godoc
// @Summary Update a communication entry
// @Tags communications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commId path int true "Communication ID"
// @Param body body service.CommunicationRequest true "Communication details"
// @Success 200 {object} util.Response{data=model.Communication}
// @Failure 404 {object} util.Response
// @Router /api/communications/{commId} [put]
func (c *CommunicationController) UpdateCommunication(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("commId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid communication id")
		return
	}

	var req service.CommunicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comm, err := c.CommunicationService.UpdateCommunication(uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, comm)
}

// DeleteCommunication godoc
// @Summary Delete a communication entry
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param commId path int true "Communication ID"
// @Success 200 {object} util.Response
// @Router /api/communications/{commId} [delete]
func (c *CommunicationController) DeleteCommunication(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("commId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid communication id")
		return
	}

	if err := c.CommunicationService.DeleteCommunication(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// AttachFile godoc
// @Summary Attach a document to a communication
// @Tags communications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param commId path int true "Communication ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} util.Response{data=model.Communication}
// @Failure 400 {object} util.Response "Unsupported file type"
// @Failure 404 {object} util.Response
// @Router /api/communications/{commId}/attachment [post]
func (c *CommunicationController) AttachFile(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("commId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid communication id")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Missing file")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range util.AllowedAttachmentExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "Unsupported file type "+ext)
		return
	}

	comm, err := c.CommunicationService.AttachFile(ctx.Request.Context(), uint(id), header)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, comm)
}
