package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

func (c *ClassController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.CreateClassInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.CreateClass(user.ID, &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, class)
}

func (c *ClassController) Join(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.JoinClassInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.ClassService.JoinClass(user.ID, &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

func (c *ClassController) My(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	summaries, err := c.ClassService.MyClasses(user)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

func (c *ClassController) Detail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	class, err := c.ClassService.GetClassDetail(user, ctx.Param("id"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, class)
}
