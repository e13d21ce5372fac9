package controller

import (
	"time"

	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TeacherController exposes the class-management surface; every route is
// behind the teacher role gate.
type TeacherController struct {
	TeacherService *service.TeacherService
}

func NewTeacherController(teacherService *service.TeacherService) *TeacherController {
	return &TeacherController{TeacherService: teacherService}
}

func (c *TeacherController) ClassStudents(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	enrollments, err := c.TeacherService.ClassStudents(user.ID, ctx.Param("classId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// ---- Lesson plans & records ----

func (c *TeacherController) CreateLessonPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.LessonPlanInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	plan, err := c.TeacherService.CreateLessonPlan(user.ID, ctx.Param("classId"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, plan)
}

func (c *TeacherController) ListLessonPlans(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	plans, err := c.TeacherService.ListLessonPlans(user.ID, ctx.Param("classId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

func (c *TeacherController) UpdateLessonPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.LessonPlanInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	plan, err := c.TeacherService.UpdateLessonPlan(user.ID, ctx.Param("planId"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, plan)
}

func (c *TeacherController) DeleteLessonPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.TeacherService.DeleteLessonPlan(user.ID, ctx.Param("planId")); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *TeacherController) CreateLessonRecord(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.LessonRecordInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	record, err := c.TeacherService.CreateLessonRecord(user.ID, ctx.Param("planId"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// ---- Attendance ----

func (c *TeacherController) RecordAttendance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.BulkAttendanceInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.TeacherService.RecordAttendance(user.ID, ctx.Param("classId"), &req); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *TeacherController) ClassAttendance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var date *time.Time
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			util.BadRequest(ctx, "date must be YYYY-MM-DD")
			return
		}
		date = &parsed
	}
	records, err := c.TeacherService.ClassAttendance(user.ID, ctx.Param("classId"), date)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// ---- Tests ----

func (c *TeacherController) CreateTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.TestInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	test, err := c.TeacherService.CreateTest(user.ID, &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

func (c *TeacherController) RecordTestResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.BulkTestResultsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.TeacherService.RecordTestResults(user.ID, ctx.Param("testId"), &req); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *TeacherController) TestResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	view, err := c.TeacherService.TestResults(user.ID, ctx.Param("testId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *TeacherController) DeleteTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.TeacherService.DeleteTest(user.ID, ctx.Param("testId")); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ---- Assignments ----

func (c *TeacherController) CreateAssignment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.AssignmentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assignment, err := c.TeacherService.CreateAssignment(user.ID, &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

func (c *TeacherController) AssignmentSubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	submissions, err := c.TeacherService.AssignmentSubmissions(user.ID, ctx.Param("assignmentId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

func (c *TeacherController) GradeSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.GradeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	submission, err := c.TeacherService.GradeSubmission(user.ID, ctx.Param("submissionId"), &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

func (c *TeacherController) DeleteAssignment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.TeacherService.DeleteAssignment(user.ID, ctx.Param("assignmentId")); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ---- Comments ----

func (c *TeacherController) CreateComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var req service.CommentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	comment, err := c.TeacherService.CreateComment(user.ID, &req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

func (c *TeacherController) StudentComments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	comments, err := c.TeacherService.StudentComments(user.ID, ctx.Param("studentId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// ---- Dashboard ----

func (c *TeacherController) Dashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	dashboard, err := c.TeacherService.Dashboard(ctx.Request.Context(), user.ID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
