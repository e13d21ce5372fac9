package repository

import (
	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.PrivateComment) error {
	return r.DB.Create(comment).Error
}

// FindThread returns the two-way conversation between teacher and
// counterpart about one student, oldest first.
func (r *CommentRepository) FindThread(teacherID, counterpartID, studentID string) ([]model.PrivateComment, error) {
	var comments []model.PrivateComment
	err := r.DB.
		Preload("Author").
		Preload("Target").
		Where("student_id = ? AND ((author_id = ? AND target_id = ?) OR (author_id = ? AND target_id = ?))",
			studentID, teacherID, counterpartID, counterpartID, teacherID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// FindClassThread returns the comments exchanged between the user and
// the class teacher within one class context.
func (r *CommentRepository) FindClassThread(classID, userID, teacherID string) ([]model.PrivateComment, error) {
	var comments []model.PrivateComment
	err := r.DB.
		Preload("Author").
		Preload("Target").
		Where("context_type = ? AND context_id = ? AND ((author_id = ? AND target_id = ?) OR (author_id = ? AND target_id = ?))",
			"class", classID, userID, teacherID, teacherID, userID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindForStudent(studentID string) ([]model.PrivateComment, error) {
	var comments []model.PrivateComment
	err := r.DB.
		Preload("Author").
		Preload("Target").
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
