package repository

import (
	"time"

	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// Upsert writes one shared calendar row keyed by (source_app,
// event_type, source_id). Replays update the descriptive fields only;
// the owning hub user never changes after the first write.
func (r *ScheduleRepository) Upsert(event *model.SharedScheduleEvent) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_app"}, {Name: "event_type"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "event_date", "start_time", "end_time", "subject", "metadata", "updated_at",
		}),
	}).Create(event).Error
}

func (r *ScheduleRepository) DeleteBySource(eventType model.ScheduleEventType, sourceID string) error {
	return r.DB.
		Where("source_app = ? AND event_type = ? AND source_id = ?", model.SourceApp, eventType, sourceID).
		Delete(&model.SharedScheduleEvent{}).Error
}

func (r *ScheduleRepository) FindByHubUser(hubUserID string, from, to *time.Time) ([]model.SharedScheduleEvent, error) {
	query := r.DB.Where("hub_user_id = ?", hubUserID)
	if from != nil {
		query = query.Where("event_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("event_date < ?", *to)
	}
	var events []model.SharedScheduleEvent
	err := query.Order("event_date ASC, start_time ASC").Find(&events).Error
	return events, err
}
