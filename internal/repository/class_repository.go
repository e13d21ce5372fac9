package repository

import (
	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id string) (*model.Class, error) {
	var class model.Class
	err := r.DB.First(&class, "id = ?", id).Error
	return &class, err
}

// FindByIDWithDetail loads the class with its teacher, roster and lesson
// plans (including each plan's assignments, tests and records).
func (r *ClassRepository) FindByIDWithDetail(id string) (*model.Class, error) {
	var class model.Class
	err := r.DB.
		Preload("Teacher").
		Preload("Enrollments.Student").
		Preload("Enrollments.Parent").
		Preload("LessonPlans", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_date ASC")
		}).
		Preload("LessonPlans.Assignments").
		Preload("LessonPlans.Tests").
		Preload("LessonPlans.Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("record_date DESC")
		}).
		First(&class, "id = ?", id).Error
	return &class, err
}

func (r *ClassRepository) FindByInviteCode(code string) (*model.Class, error) {
	var class model.Class
	err := r.DB.Preload("Teacher").Where("invite_code = ?", code).First(&class).Error
	return &class, err
}

func (r *ClassRepository) FindByTeacher(teacherID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.
		Preload("Enrollments.Student").
		Preload("LessonPlans").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) InviteCodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Class{}).Where("invite_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *ClassRepository) CreateEnrollment(enrollment *model.ClassEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *ClassRepository) FindEnrollment(classID, studentID string) (*model.ClassEnrollment, error) {
	var enrollment model.ClassEnrollment
	err := r.DB.Where("class_id = ? AND student_id = ?", classID, studentID).First(&enrollment).Error
	return &enrollment, err
}

func (r *ClassRepository) FindEnrollmentAsParent(classID, parentID string) (*model.ClassEnrollment, error) {
	var enrollment model.ClassEnrollment
	err := r.DB.Where("class_id = ? AND parent_id = ?", classID, parentID).First(&enrollment).Error
	return &enrollment, err
}

// FindParentChildEnrollment reports whether the parent is linked to the
// student through at least one enrollment.
func (r *ClassRepository) FindParentChildEnrollment(parentID, studentID string) (*model.ClassEnrollment, error) {
	var enrollment model.ClassEnrollment
	err := r.DB.Where("parent_id = ? AND student_id = ?", parentID, studentID).First(&enrollment).Error
	return &enrollment, err
}

func (r *ClassRepository) FindEnrollmentsByClass(classID string) ([]model.ClassEnrollment, error) {
	var enrollments []model.ClassEnrollment
	err := r.DB.
		Preload("Student").
		Preload("Parent").
		Where("class_id = ?", classID).
		Find(&enrollments).Error
	return enrollments, err
}

func (r *ClassRepository) FindEnrollmentsByStudent(studentID string) ([]model.ClassEnrollment, error) {
	var enrollments []model.ClassEnrollment
	err := r.DB.
		Preload("Class.Teacher").
		Preload("Class.LessonPlans").
		Where("student_id = ?", studentID).
		Find(&enrollments).Error
	return enrollments, err
}

func (r *ClassRepository) FindEnrollmentsByParent(parentID string) ([]model.ClassEnrollment, error) {
	var enrollments []model.ClassEnrollment
	err := r.DB.
		Preload("Student").
		Preload("Class.Teacher").
		Where("parent_id = ?", parentID).
		Find(&enrollments).Error
	return enrollments, err
}
