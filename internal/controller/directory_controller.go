package controller

import (
	"errors"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DirectoryController struct {
	DirectoryService *service.DirectoryService
}

func NewDirectoryController(directoryService *service.DirectoryService) *DirectoryController {
	return &DirectoryController{DirectoryService: directoryService}
}

// CreateSchool godoc
// @Summary Add a school
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SchoolRequest true "School details"
// @Success 201 {object} util.Response{data=model.School}
// @Router /api/schools [post]
func (c *DirectoryController) CreateSchool(ctx *gin.Context) {
	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.DirectoryService.CreateSchool(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, school)
}

// ListSchools godoc
// @Summary List schools
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.School}
// @Router /api/schools [get]
func (c *DirectoryController) ListSchools(ctx *gin.Context) {
	schools, err := c.DirectoryService.ListSchools()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, schools)
}

// UpdateSchool godoc
// @Summary Update a school
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param body body service.SchoolRequest true "School details"
// @Success 200 {object} util.Response{data=model.School}
// @Failure 404 {object} util.Response
// @Router /api/schools/{id} [put]
func (c *DirectoryController) UpdateSchool(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid school id")
		return
	}

	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.DirectoryService.UpdateSchool(uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, school)
}

// DeleteSchool godoc
// @Summary Delete a school
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} util.Response
// @Router /api/schools/{id} [delete]
func (c *DirectoryController) DeleteSchool(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid school id")
		return
	}

	if err := c.DirectoryService.DeleteSchool(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// CreateContact godoc
// @Summary Add a contact
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ContactRequest true "Contact details"
// @Success 201 {object} util.Response{data=model.Contact}
// @Router /api/contacts [post]
func (c *DirectoryController) CreateContact(ctx *gin.Context) {
	var req service.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contact, err := c.DirectoryService.CreateContact(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, contact)
}

// ListContacts godoc
// @Summary List contacts
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name filter"
// @Param schoolId query int false "Filter by school"
// @Success 200 {object} util.Response{data=[]model.Contact}
// @Router /api/contacts [get]
func (c *DirectoryController) ListContacts(ctx *gin.Context) {
	if schoolIDStr := ctx.Query("schoolId"); schoolIDStr != "" {
		schoolID, err := strconv.ParseUint(schoolIDStr, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "Invalid school id")
			return
		}
		contacts, err := c.DirectoryService.ListContactsBySchool(uint(schoolID))
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, contacts)
		return
	}

	contacts, err := c.DirectoryService.ListContacts(ctx.Query("name"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, contacts)
}

// UpdateContact godoc
// @Summary Update a contact
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param body body service.ContactRequest true "Contact details"
// @Success 200 {object} util.Response{data=model.Contact}
// @Failure 404 {object} util.Response
// @Router /api/contacts/{id} [put]
func (c *DirectoryController) UpdateContact(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid contact id")
		return
	}

	var req service.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contact, err := c.DirectoryService.UpdateContact(uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, contact)
}

// DeleteContact godoc
// @Summary Delete a contact
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} util.Response
// @Router /api/contacts/{id} [delete]
func (c *DirectoryController) DeleteContact(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid contact id")
		return
	}

	if err := c.DirectoryService.DeleteContact(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
