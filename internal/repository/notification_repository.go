package repository

import (
	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.DB.Create(notification).Error
}

func (r *NotificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.DB.Create(&notifications).Error
}

func (r *NotificationRepository) FindByUser(userID string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	query := r.DB.Where("user_id = ?", userID).Order("sent_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&notifications).Error
	return notifications, err
}

// MarkRead flips one notification to read; scoping by user keeps a
// recipient from touching someone else's inbox.
func (r *NotificationRepository) MarkRead(id, userID string) (int64, error) {
	result := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	return r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (r *NotificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
