package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

func (c *TestController) MyResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	results, err := c.TestService.MyResults(user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

func (c *TestController) MyTrend(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	points, err := c.TestService.MyTrend(user.ID, ctx.Query("classId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

func (c *TestController) MyResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	result, err := c.TestService.MyResult(user.ID, ctx.Param("testId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
