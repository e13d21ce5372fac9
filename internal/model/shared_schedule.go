package model

import (
	"time"

	"gorm.io/datatypes"
)

const SourceApp = "tutorboard"

type ScheduleEventType string

const (
	EventAssignment ScheduleEventType = "assignment"
	EventTest       ScheduleEventType = "test"
)

// SharedScheduleEvent maps the externally-owned hub_shared_schedule table.
// The Hub aggregates events from several applications into it; we only write
// rows with sourceApp "tutorboard". Upsert key is (sourceApp, eventType,
// sourceId), last write wins. No soft delete: the table is not ours.
type SharedScheduleEvent struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	HubUserID   string            `gorm:"size:36;not null;index" json:"hubUserId"`
	SourceApp   string            `gorm:"size:30;not null;uniqueIndex:uk_hub_schedule_source" json:"sourceApp"`
	EventType   ScheduleEventType `gorm:"size:20;not null;uniqueIndex:uk_hub_schedule_source" json:"eventType"`
	SourceID    string            `gorm:"size:36;not null;uniqueIndex:uk_hub_schedule_source" json:"sourceId"`
	Title       string            `gorm:"size:200;not null" json:"title"`
	Description string            `gorm:"size:500" json:"description,omitempty"`
	EventDate   time.Time         `gorm:"not null;index" json:"eventDate"`
	StartTime   string            `gorm:"size:5" json:"startTime,omitempty"`
	EndTime     string            `gorm:"size:5" json:"endTime,omitempty"`
	Subject     string            `gorm:"size:50" json:"subject,omitempty"`
	Metadata    datatypes.JSON    `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (SharedScheduleEvent) TableName() string {
	return "hub_shared_schedule"
}
