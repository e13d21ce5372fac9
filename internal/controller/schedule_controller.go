package controller

import (
	"time"

	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	ScheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// MySchedule returns the caller's shared-schedule rows, optionally bounded
// by from/to (YYYY-MM-DD).
func (c *ScheduleController) MySchedule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var from, to *time.Time
	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			util.BadRequest(ctx, "from must be YYYY-MM-DD")
			return
		}
		from = &parsed
	}
	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			util.BadRequest(ctx, "to must be YYYY-MM-DD")
			return
		}
		to = &parsed
	}

	events, err := c.ScheduleService.MySchedule(user, from, to)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// CalendarEvents flattens the caller's dated assignments and tests for
// external calendar consumers.
func (c *ScheduleController) CalendarEvents(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	events, err := c.ScheduleService.CalendarEvents(user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, events)
}
