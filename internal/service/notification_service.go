package service

import (
	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/pkg/logger"

	"go.uber.org/zap"
)

// defaultInboxSize caps the notification list endpoint.
const defaultInboxSize = 20

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify inserts one notification best-effort: a failure is logged and never
// bubbles into the action that produced it.
func (s *NotificationService) Notify(userID, message string, typ model.NotificationType, referenceID, referenceType string) {
	n := &model.Notification{
		UserID:        userID,
		Message:       message,
		Type:          typ,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.Log.Warn("notification insert failed",
			zap.String("userId", userID), zap.String("type", string(typ)), zap.Error(err))
	}
}

// NotifyBatch inserts many notifications best-effort, as one statement.
func (s *NotificationService) NotifyBatch(notifications []model.Notification) {
	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		logger.Log.Warn("notification batch insert failed",
			zap.Int("count", len(notifications)), zap.Error(err))
	}
}

func (s *NotificationService) List(userID string) ([]model.Notification, error) {
	return s.notificationRepo.FindByUser(userID, defaultInboxSize)
}

func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(id, userID string) error {
	_, err := s.notificationRepo.MarkRead(id, userID)
	return err
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notificationRepo.MarkAllRead(userID)
}
