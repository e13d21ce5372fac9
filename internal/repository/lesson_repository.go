package repository

import (
	"time"

	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) CreatePlan(plan *model.LessonPlan) error {
	return r.DB.Create(plan).Error
}

func (r *LessonRepository) FindPlanByID(id string) (*model.LessonPlan, error) {
	var plan model.LessonPlan
	err := r.DB.First(&plan, "id = ?", id).Error
	return &plan, err
}

func (r *LessonRepository) FindPlanWithClass(id string) (*model.LessonPlan, error) {
	var plan model.LessonPlan
	err := r.DB.Preload("Class").First(&plan, "id = ?", id).Error
	return &plan, err
}

func (r *LessonRepository) UpdatePlan(id string, updates map[string]interface{}) error {
	return r.DB.Model(&model.LessonPlan{}).Where("id = ?", id).Updates(updates).Error
}

func (r *LessonRepository) DeletePlan(id string) error {
	return r.DB.Delete(&model.LessonPlan{}, "id = ?", id).Error
}

func (r *LessonRepository) FindPlansByClass(classID string) ([]model.LessonPlan, error) {
	var plans []model.LessonPlan
	err := r.DB.
		Preload("Assignments").
		Preload("Tests").
		Preload("Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("record_date DESC")
		}).
		Where("class_id = ?", classID).
		Order("scheduled_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *LessonRepository) FindPlansByClassIDs(classIDs []string) ([]model.LessonPlan, error) {
	var plans []model.LessonPlan
	if len(classIDs) == 0 {
		return plans, nil
	}
	err := r.DB.Where("class_id IN ?", classIDs).Find(&plans).Error
	return plans, err
}

// FindUpcomingByClassIDs returns plans scheduled inside [from, to),
// soonest first.
func (r *LessonRepository) FindUpcomingByClassIDs(classIDs []string, from, to time.Time) ([]model.LessonPlan, error) {
	var plans []model.LessonPlan
	if len(classIDs) == 0 {
		return plans, nil
	}
	err := r.DB.
		Preload("Class.Teacher").
		Where("class_id IN ? AND scheduled_date >= ? AND scheduled_date < ?", classIDs, from, to).
		Order("scheduled_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *LessonRepository) FindTodayByTeacher(teacherID string, dayStart, dayEnd time.Time) ([]model.LessonPlan, error) {
	var plans []model.LessonPlan
	err := r.DB.
		Preload("Class").
		Joins("JOIN tb_classes ON tb_classes.id = tb_lesson_plans.class_id").
		Where("tb_classes.teacher_id = ? AND tb_lesson_plans.scheduled_date >= ? AND tb_lesson_plans.scheduled_date < ?",
			teacherID, dayStart, dayEnd).
		Order("tb_lesson_plans.scheduled_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *LessonRepository) CreateRecord(record *model.LessonRecord) error {
	return r.DB.Create(record).Error
}

func (r *LessonRepository) FindRecordsByClass(classID string) ([]model.LessonRecord, error) {
	var records []model.LessonRecord
	err := r.DB.
		Preload("LessonPlan").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_lesson_records.lesson_plan_id").
		Where("tb_lesson_plans.class_id = ?", classID).
		Order("tb_lesson_records.record_date DESC").
		Find(&records).Error
	return records, err
}

// FindRecentRecords returns the latest lesson records across the given
// classes, for activity timelines.
func (r *LessonRepository) FindRecentRecords(classIDs []string, limit int) ([]model.LessonRecord, error) {
	var records []model.LessonRecord
	if len(classIDs) == 0 {
		return records, nil
	}
	err := r.DB.
		Preload("LessonPlan.Class").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_lesson_records.lesson_plan_id").
		Where("tb_lesson_plans.class_id IN ?", classIDs).
		Order("tb_lesson_records.record_date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
