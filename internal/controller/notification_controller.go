package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

func (c *NotificationController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	notifications, err := c.NotificationService.List(user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	count, err := c.NotificationService.UnreadCount(user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": count})
}

func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.NotificationService.MarkRead(ctx.Param("id"), user.ID); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.NotificationService.MarkAllRead(user.ID); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
