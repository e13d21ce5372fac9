package service

import (
	"errors"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"

	"gorm.io/gorm"
)

// AccessService is the single place class-visibility is decided. Every
// class-scoped read in the other services goes through it.
type AccessService struct {
	classRepo *repository.ClassRepository
}

func NewAccessService(classRepo *repository.ClassRepository) *AccessService {
	return &AccessService{classRepo: classRepo}
}

// VerifyClassAccess grants access when the user owns the class, is enrolled
// in it as a student, or is enrolled as a parent. Checks short-circuit in
// that order. A missing class is indistinguishable from a class the user
// cannot see: both come back as access denied.
func (s *AccessService) VerifyClassAccess(user *model.User, classID string) (*model.Class, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAccessDenied
		}
		return nil, err
	}

	if class.TeacherID == user.ID {
		return class, nil
	}

	if _, err := s.classRepo.FindEnrollment(classID, user.ID); err == nil {
		return class, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.classRepo.FindEnrollmentAsParent(classID, user.ID); err == nil {
		return class, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, util.ErrAccessDenied
}

// VerifyClassOwner requires the class to exist and belong to the teacher.
func (s *AccessService) VerifyClassOwner(teacherID, classID string) (*model.Class, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, util.ErrAccessDenied
	}
	return class, nil
}

// VerifyParentOfChild requires at least one enrollment linking the parent to
// the student.
func (s *AccessService) VerifyParentOfChild(parentID, studentID string) error {
	_, err := s.classRepo.FindParentChildEnrollment(parentID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAccessDenied
	}
	return err
}
