package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ParentController struct {
	ParentService *service.ParentService
}

func NewParentController(parentService *service.ParentService) *ParentController {
	return &ParentController{ParentService: parentService}
}

func (c *ParentController) Dashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	dashboard, err := c.ParentService.Dashboard(ctx.Request.Context(), user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

func (c *ParentController) ChildAttendance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	records, err := c.ParentService.ChildAttendance(user.ID, ctx.Param("childId"), ctx.Query("month"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

func (c *ParentController) ChildTimeline(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	items, err := c.ParentService.ChildTimeline(user.ID, ctx.Param("childId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

func (c *ParentController) ChildTrend(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	points, err := c.ParentService.ChildTrend(user.ID, ctx.Param("childId"), ctx.Query("classId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

func (c *ParentController) ChildComments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	comments, err := c.ParentService.ChildComments(user.ID, ctx.Param("childId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

func (c *ParentController) PostComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.ParentCommentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	comment, err := c.ParentService.PostComment(user.ID, ctx.Param("childId"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}
