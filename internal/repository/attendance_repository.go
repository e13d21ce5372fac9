package repository

import (
	"time"

	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// BulkUpsert saves a day's register atomically. Re-saving the same
// (class, student, date) row replaces its status and note.
func (r *AttendanceRepository) BulkUpsert(records []model.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "class_id"}, {Name: "student_id"}, {Name: "date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"status": records[i].Status,
					"note":   records[i].Note,
				}),
			}).Create(&records[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AttendanceRepository) FindByClass(classID string, date *time.Time) ([]model.Attendance, error) {
	query := r.DB.Preload("Student").Where("class_id = ?", classID)
	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		query = query.Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}
	var records []model.Attendance
	err := query.Order("date DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) FindByStudentInClass(classID, studentID string) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.DB.
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) FindByStudent(studentID string, from, to *time.Time) ([]model.Attendance, error) {
	query := r.DB.Preload("Class").Where("student_id = ?", studentID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", *to)
	}
	var records []model.Attendance
	err := query.Order("date DESC").Find(&records).Error
	return records, err
}

// FindByTeacherOnDate collects one day's register across every class the
// teacher owns.
func (r *AttendanceRepository) FindByTeacherOnDate(teacherID string, dayStart, dayEnd time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.DB.
		Preload("Student").
		Preload("Class").
		Joins("JOIN tb_classes ON tb_classes.id = tb_attendances.class_id").
		Where("tb_classes.teacher_id = ? AND tb_attendances.date >= ? AND tb_attendances.date < ?",
			teacherID, dayStart, dayEnd).
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) FindByStudentsOnDate(studentIDs []string, dayStart, dayEnd time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	if len(studentIDs) == 0 {
		return records, nil
	}
	err := r.DB.
		Preload("Class").
		Preload("Student").
		Where("student_id IN ? AND date >= ? AND date < ?", studentIDs, dayStart, dayEnd).
		Find(&records).Error
	return records, err
}
