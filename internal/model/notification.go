package model

import "time"

type NotificationType string

const (
	NotifyAssignment NotificationType = "assignment"
	NotifyTest       NotificationType = "test"
	NotifyAttendance NotificationType = "attendance"
	NotifyComment    NotificationType = "comment"
)

// Notification rows are created synchronously on state-changing actions and
// are best-effort: a failed insert is logged and never fails the write that
// triggered it.
type Notification struct {
	UUIDBase
	UserID        string           `gorm:"size:36;not null;index" json:"userId"`
	Message       string           `gorm:"size:500;not null" json:"message"`
	Type          NotificationType `gorm:"size:30;not null" json:"type"`
	ReferenceID   string           `gorm:"size:36" json:"referenceId,omitempty"`
	ReferenceType string           `gorm:"size:30" json:"referenceType,omitempty"`
	Read          bool             `gorm:"default:false" json:"read"`
	SentAt        time.Time        `gorm:"autoCreateTime" json:"sentAt"`
}

func (Notification) TableName() string {
	return "tb_notifications"
}
