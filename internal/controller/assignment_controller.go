package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

func (c *AssignmentController) My(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	assignments, err := c.AssignmentService.MyAssignments(user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

func (c *AssignmentController) Detail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	assignment, err := c.AssignmentService.GetAssignment(user.ID, ctx.Param("id"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

func (c *AssignmentController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.SubmitInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	submission, err := c.AssignmentService.Submit(user.ID, ctx.Param("id"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
