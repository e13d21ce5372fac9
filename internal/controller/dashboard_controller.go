package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

func (c *DashboardController) Student(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	dashboard, err := c.DashboardService.StudentOverview(ctx.Request.Context(), user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
