package repository

import (
	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) Create(badge *model.StudentBadge) error {
	return r.DB.Create(badge).Error
}

func (r *BadgeRepository) FindRecentByStudent(studentID string, limit int) ([]model.StudentBadge, error) {
	var badges []model.StudentBadge
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("earned_at DESC").
		Limit(limit).
		Find(&badges).Error
	return badges, err
}
