package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService  *service.StudentService
	ScheduleService *service.ScheduleService
}

func NewStudentController(studentService *service.StudentService, scheduleService *service.ScheduleService) *StudentController {
	return &StudentController{StudentService: studentService, ScheduleService: scheduleService}
}

func (c *StudentController) ClassRecords(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	view, err := c.StudentService.ClassRecords(user, ctx.Param("classId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *StudentController) ClassComments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	comments, err := c.StudentService.ClassComments(user, ctx.Param("classId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

func (c *StudentController) PostClassComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.ClassCommentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	comment, err := c.StudentService.PostClassComment(user, ctx.Param("classId"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// IntegratedSchedule returns the caller's rows from the Hub shared
// calendar; an unlinked account gets an empty list.
func (c *StudentController) IntegratedSchedule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	events, err := c.ScheduleService.MySchedule(user, nil, nil)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, events)
}
