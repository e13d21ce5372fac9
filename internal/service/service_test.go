package service

import (
	"fmt"
	"testing"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the full
// schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.ClassEnrollment{},
		&model.LessonPlan{},
		&model.LessonRecord{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Test{},
		&model.TestResult{},
		&model.Attendance{},
		&model.PrivateComment{},
		&model.Notification{},
		&model.StudentBadge{},
		&model.SharedScheduleEvent{},
	)
	require.NoError(t, err)
	return db
}

type testEnv struct {
	db    *gorm.DB
	repos struct {
		user         *repository.UserRepository
		class        *repository.ClassRepository
		lesson       *repository.LessonRepository
		assignment   *repository.AssignmentRepository
		test         *repository.TestRepository
		attendance   *repository.AttendanceRepository
		comment      *repository.CommentRepository
		notification *repository.NotificationRepository
		badge        *repository.BadgeRepository
		schedule     *repository.ScheduleRepository
	}
	access        *AccessService
	notifications *NotificationService
	schedule      *ScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{db: newTestDB(t)}
	env.repos.user = repository.NewUserRepository(env.db)
	env.repos.class = repository.NewClassRepository(env.db)
	env.repos.lesson = repository.NewLessonRepository(env.db)
	env.repos.assignment = repository.NewAssignmentRepository(env.db)
	env.repos.test = repository.NewTestRepository(env.db)
	env.repos.attendance = repository.NewAttendanceRepository(env.db)
	env.repos.comment = repository.NewCommentRepository(env.db)
	env.repos.notification = repository.NewNotificationRepository(env.db)
	env.repos.badge = repository.NewBadgeRepository(env.db)
	env.repos.schedule = repository.NewScheduleRepository(env.db)
	env.access = NewAccessService(env.repos.class)
	env.notifications = NewNotificationService(env.repos.notification)
	env.schedule = NewScheduleService(env.repos.schedule, env.repos.class, env.repos.assignment, env.repos.test)
	return env
}

func (e *testEnv) teacherService() *TeacherService {
	return NewTeacherService(e.db, e.repos.class, e.repos.lesson, e.repos.assignment,
		e.repos.test, e.repos.attendance, e.repos.comment, e.access, e.notifications, e.schedule)
}

func (e *testEnv) createUser(t *testing.T, role model.UserRole, hubID *int64) *model.User {
	t.Helper()
	user := &model.User{
		HubUserID: hubID,
		Username:  fmt.Sprintf("%s-%d", role, time.Now().UnixNano()),
		Email:     fmt.Sprintf("%d@example.test", time.Now().UnixNano()),
		Role:      role,
	}
	require.NoError(t, e.repos.user.Create(user))
	return user
}

func (e *testEnv) createClass(t *testing.T, teacherID string) *model.Class {
	t.Helper()
	class := &model.Class{
		TeacherID:  teacherID,
		Name:       "Algebra",
		Subject:    "Math",
		InviteCode: fmt.Sprintf("C%d", time.Now().UnixNano()%1e7),
	}
	require.NoError(t, e.repos.class.Create(class))
	return class
}

func (e *testEnv) enroll(t *testing.T, classID, studentID string, parentID *string) *model.ClassEnrollment {
	t.Helper()
	enrollment := &model.ClassEnrollment{ClassID: classID, StudentID: studentID, ParentID: parentID}
	require.NoError(t, e.repos.class.CreateEnrollment(enrollment))
	return enrollment
}

func (e *testEnv) createPlan(t *testing.T, classID string, progress int, scheduled *time.Time) *model.LessonPlan {
	t.Helper()
	plan := &model.LessonPlan{ClassID: classID, Title: "Fractions", Progress: progress, ScheduledDate: scheduled}
	require.NoError(t, e.repos.lesson.CreatePlan(plan))
	return plan
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }
