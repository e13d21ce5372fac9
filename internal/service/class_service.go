package service

import (
	"errors"
	"math"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"

	"gorm.io/gorm"
)

type ClassService struct {
	classRepo *repository.ClassRepository
	access    *AccessService
}

func NewClassService(classRepo *repository.ClassRepository, access *AccessService) *ClassService {
	return &ClassService{classRepo: classRepo, access: access}
}

type CreateClassInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type JoinClassInput struct {
	InviteCode string  `json:"inviteCode" binding:"required"`
	ParentID   *string `json:"parentId"`
}

// ClassSummary is the per-class card on the "my classes" views.
type ClassSummary struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Subject         string     `json:"subject,omitempty"`
	Description     string     `json:"description,omitempty"`
	TeacherName     string     `json:"teacherName,omitempty"`
	InviteCode      string     `json:"inviteCode,omitempty"`
	StudentCount    int        `json:"studentCount"`
	LessonCount     int        `json:"lessonCount"`
	AverageProgress int        `json:"averageProgress"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
}

func (s *ClassService) CreateClass(teacherID string, input *CreateClassInput) (*model.Class, error) {
	code, err := s.uniqueInviteCode()
	if err != nil {
		return nil, err
	}
	class := &model.Class{
		TeacherID:   teacherID,
		Name:        input.Name,
		Description: input.Description,
		Subject:     input.Subject,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		InviteCode:  code,
	}
	if err := s.classRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

// uniqueInviteCode retries on the unlikely collision; with a 32^8 space a
// handful of attempts is plenty.
func (s *ClassService) uniqueInviteCode() (string, error) {
	for i := 0; i < 5; i++ {
		code := util.NewInviteCode()
		exists, err := s.classRepo.InviteCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique invite code")
}

// JoinClass enrolls a student through an invite code. Joining a class twice
// is a no-op returning the existing enrollment.
func (s *ClassService) JoinClass(studentID string, input *JoinClassInput) (*model.ClassEnrollment, error) {
	class, err := s.classRepo.FindByInviteCode(input.InviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidInviteCode
		}
		return nil, err
	}

	existing, err := s.classRepo.FindEnrollment(class.ID, studentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.ClassEnrollment{
		ClassID:   class.ID,
		StudentID: studentID,
		ParentID:  input.ParentID,
	}
	if err := s.classRepo.CreateEnrollment(enrollment); err != nil {
		return nil, err
	}
	enrollment.Class = class
	return enrollment, nil
}

// MyClasses returns the caller's classes shaped for their role: owned
// classes for teachers, enrolled classes for students, children's classes
// for parents.
func (s *ClassService) MyClasses(user *model.User) ([]ClassSummary, error) {
	switch user.Role {
	case model.Teacher:
		classes, err := s.classRepo.FindByTeacher(user.ID)
		if err != nil {
			return nil, err
		}
		summaries := make([]ClassSummary, 0, len(classes))
		for i := range classes {
			c := &classes[i]
			summary := summarizeClass(c)
			summary.InviteCode = c.InviteCode
			summary.StudentCount = len(c.Enrollments)
			summaries = append(summaries, summary)
		}
		return summaries, nil

	case model.Parent:
		enrollments, err := s.classRepo.FindEnrollmentsByParent(user.ID)
		if err != nil {
			return nil, err
		}
		return s.summariesFromEnrollments(enrollments)

	default:
		enrollments, err := s.classRepo.FindEnrollmentsByStudent(user.ID)
		if err != nil {
			return nil, err
		}
		return s.summariesFromEnrollments(enrollments)
	}
}

func (s *ClassService) summariesFromEnrollments(enrollments []model.ClassEnrollment) ([]ClassSummary, error) {
	summaries := make([]ClassSummary, 0, len(enrollments))
	seen := make(map[string]bool)
	for i := range enrollments {
		class := enrollments[i].Class
		if class == nil || seen[class.ID] {
			continue
		}
		seen[class.ID] = true
		summaries = append(summaries, summarizeClass(class))
	}
	return summaries, nil
}

func summarizeClass(class *model.Class) ClassSummary {
	summary := ClassSummary{
		ID:              class.ID,
		Name:            class.Name,
		Subject:         class.Subject,
		Description:     class.Description,
		StartDate:       class.StartDate,
		EndDate:         class.EndDate,
		LessonCount:     len(class.LessonPlans),
		AverageProgress: AverageProgress(class.LessonPlans),
	}
	if class.Teacher != nil {
		summary.TeacherName = class.Teacher.Username
	}
	return summary
}

// AverageProgress reduces lesson plans to a whole-number mean, 0 when the
// class has no plans yet.
func AverageProgress(plans []model.LessonPlan) int {
	if len(plans) == 0 {
		return 0
	}
	total := 0
	for i := range plans {
		total += plans[i].Progress
	}
	return int(math.Round(float64(total) / float64(len(plans))))
}

func (s *ClassService) GetClassDetail(user *model.User, classID string) (*model.Class, error) {
	if _, err := s.access.VerifyClassAccess(user, classID); err != nil {
		return nil, err
	}
	return s.classRepo.FindByIDWithDetail(classID)
}
