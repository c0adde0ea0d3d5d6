package controller

import (
	"errors"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScheduleController struct {
	ScheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// CreateSlot godoc
// @Summary Add a weekly schedule slot
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SlotRequest true "Slot details"
// @Success 201 {object} util.Response{data=model.ScheduleSlot}
// @Failure 400 {object} util.Response
// @Router /api/schedule [post]
func (c *ScheduleController) CreateSlot(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	slot, err := c.ScheduleService.CreateSlot(user.UserID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.BadRequest(ctx, "Student not on your caseload")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, slot)
}

// GetWeekView godoc
// @Summary Weekly calendar view
// @Description Groups the therapist's slots by weekday
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/schedule/week [get]
func (c *ScheduleController) GetWeekView(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	week, err := c.ScheduleService.WeekView(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, week)
}

// ListSlots godoc
// @Summary List schedule slots
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ScheduleSlot}
// @Router /api/schedule [get]
func (c *ScheduleController) ListSlots(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	slots, err := c.ScheduleService.ListSlots(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, slots)
}

// UpdateSlot godoc
// @Summary Update a schedule slot
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slotId path int true "Slot ID"
// @Param body body service.SlotRequest true "Slot details"
// @Success 200 {object} util.Response{data=model.ScheduleSlot}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/schedule/{slotId} [put]
func (c *ScheduleController) UpdateSlot(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	slotID, err := strconv.ParseUint(ctx.Param("slotId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid slot id")
		return
	}

	var req service.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	slot, err := c.ScheduleService.UpdateSlot(user.UserID, uint(slotID), req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, slot)
}

// DeleteSlot godoc
// @Summary Delete a schedule slot
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param slotId path int true "Slot ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/schedule/{slotId} [delete]
func (c *ScheduleController) DeleteSlot(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	slotID, err := strconv.ParseUint(ctx.Param("slotId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid slot id")
		return
	}

	if err := c.ScheduleService.DeleteSlot(user.UserID, uint(slotID)); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
