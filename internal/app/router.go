package app

import (
	"tutorboard_backend/internal/config"
	"tutorboard_backend/internal/middleware"
	"tutorboard_backend/internal/model"
	"tutorboard_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	router.POST("/auth/sso/exchange", c.auth.SSOExchange)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(cfg, c.auth.AuthService))
	{
		authed.GET("/auth/me", c.auth.Me)

		classes := authed.Group("/classes")
		{
			classes.POST("", middleware.RoleMiddleware(model.Teacher), c.class.Create)
			classes.POST("/join", middleware.RoleMiddleware(model.Student), c.class.Join)
			classes.GET("/my", c.class.My)
			classes.GET("/:id", c.class.Detail)
		}

		teacher := authed.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.GET("/dashboard", c.teacher.Dashboard)
			teacher.GET("/classes/:classId/students", c.teacher.ClassStudents)

			teacher.POST("/classes/:classId/lessons", c.teacher.CreateLessonPlan)
			teacher.GET("/classes/:classId/lessons", c.teacher.ListLessonPlans)
			teacher.PUT("/lessons/:planId", c.teacher.UpdateLessonPlan)
			teacher.DELETE("/lessons/:planId", c.teacher.DeleteLessonPlan)
			teacher.POST("/lessons/:planId/records", c.teacher.CreateLessonRecord)

			teacher.POST("/classes/:classId/attendance", c.teacher.RecordAttendance)
			teacher.GET("/classes/:classId/attendance", c.teacher.ClassAttendance)

			teacher.POST("/tests", c.teacher.CreateTest)
			teacher.POST("/tests/:testId/results", c.teacher.RecordTestResults)
			teacher.GET("/tests/:testId/results", c.teacher.TestResults)
			teacher.DELETE("/tests/:testId", c.teacher.DeleteTest)

			teacher.POST("/assignments", c.teacher.CreateAssignment)
			teacher.GET("/assignments/:assignmentId/submissions", c.teacher.AssignmentSubmissions)
			teacher.DELETE("/assignments/:assignmentId", c.teacher.DeleteAssignment)
			teacher.PUT("/submissions/:submissionId/grade", c.teacher.GradeSubmission)

			teacher.POST("/comments", c.teacher.CreateComment)
			teacher.GET("/students/:studentId/comments", c.teacher.StudentComments)
		}

		assignments := authed.Group("/assignments")
		assignments.Use(middleware.RoleMiddleware(model.Student))
		{
			assignments.GET("/my", c.assignment.My)
			assignments.GET("/:id", c.assignment.Detail)
			assignments.POST("/:id/submit", c.assignment.Submit)
		}

		tests := authed.Group("/tests")
		tests.Use(middleware.RoleMiddleware(model.Student))
		{
			tests.GET("/my/results", c.test.MyResults)
			tests.GET("/my/trend", c.test.MyTrend)
			tests.GET("/:testId/result", c.test.MyResult)
		}

		student := authed.Group("/student")
		{
			student.GET("/classes/:classId/records", c.student.ClassRecords)
			student.GET("/classes/:classId/comments", c.student.ClassComments)
			student.POST("/classes/:classId/comments", c.student.PostClassComment)
			student.GET("/schedule/integrated", c.student.IntegratedSchedule)
		}

		parent := authed.Group("/parent")
		parent.Use(middleware.RoleMiddleware(model.Parent))
		{
			parent.GET("/dashboard", c.parent.Dashboard)
			parent.GET("/children/:childId/attendance", c.parent.ChildAttendance)
			parent.GET("/children/:childId/timeline", c.parent.ChildTimeline)
			parent.GET("/children/:childId/trend", c.parent.ChildTrend)
			parent.GET("/children/:childId/comments", c.parent.ChildComments)
			parent.POST("/children/:childId/comments", c.parent.PostComment)
		}

		authed.GET("/dashboard/student", middleware.RoleMiddleware(model.Student), c.dashboard.Student)

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", c.notification.List)
			notifications.GET("/unread-count", c.notification.UnreadCount)
			notifications.PUT("/:id/read", c.notification.MarkRead)
			notifications.PUT("/read-all", c.notification.MarkAllRead)
		}

		authed.GET("/shared-schedule", c.schedule.MySchedule)
		authed.GET("/integration/calendar-events", c.schedule.CalendarEvents)

		authed.POST("/uploads", c.upload.Upload)
	}
}
