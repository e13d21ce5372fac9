package repository

import (
	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindWithLesson(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.Preload("Lesson.Class").First(&test, "id = ?", id).Error
	return &test, err
}

func (r *TestRepository) FindByClassIDs(classIDs []string) ([]model.Test, error) {
	var tests []model.Test
	if len(classIDs) == 0 {
		return tests, nil
	}
	err := r.DB.
		Preload("Lesson.Class").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_tests.lesson_id").
		Where("tb_lesson_plans.class_id IN ?", classIDs).
		Order("tb_tests.test_date ASC").
		Find(&tests).Error
	return tests, err
}

func (r *TestRepository) Delete(id string) error {
	return r.DB.Delete(&model.Test{}, "id = ?", id).Error
}

// BulkUpsertResults writes a batch of scores atomically. A second save
// for the same (test, student) pair overwrites the earlier score.
func (r *TestRepository) BulkUpsertResults(results []model.TestResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range results {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "test_id"}, {Name: "student_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"score":    results[i].Score,
					"feedback": results[i].Feedback,
				}),
			}).Create(&results[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) FindResultsByTest(testID string) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.DB.
		Preload("Student").
		Where("test_id = ?", testID).
		Order("score DESC").
		Find(&results).Error
	return results, err
}

func (r *TestRepository) FindResult(testID, studentID string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.DB.
		Preload("Test.Lesson.Class").
		Where("test_id = ? AND student_id = ?", testID, studentID).
		First(&result).Error
	return &result, err
}

func (r *TestRepository) FindResultsByStudent(studentID string) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.DB.
		Preload("Test.Lesson.Class").
		Where("student_id = ?", studentID).
		Order("taken_at DESC").
		Find(&results).Error
	return results, err
}

func (r *TestRepository) FindRecentResultsByStudent(studentID string, limit int) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.DB.
		Preload("Test").
		Where("student_id = ?", studentID).
		Order("taken_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

// FindTrend returns the student's scores oldest first, optionally
// scoped to one class, capped at 20 points.
func (r *TestRepository) FindTrend(studentID string, classID string) ([]model.TestResult, error) {
	query := r.DB.
		Preload("Test").
		Joins("JOIN tb_tests ON tb_tests.id = tb_test_results.test_id").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_tests.lesson_id").
		Where("tb_test_results.student_id = ?", studentID)
	if classID != "" {
		query = query.Where("tb_lesson_plans.class_id = ?", classID)
	}
	var results []model.TestResult
	err := query.
		Order("tb_test_results.taken_at ASC").
		Limit(20).
		Find(&results).Error
	return results, err
}

func (r *TestRepository) FindRecentResultsInClasses(studentID string, classIDs []string, limit int) ([]model.TestResult, error) {
	var results []model.TestResult
	if len(classIDs) == 0 {
		return results, nil
	}
	err := r.DB.
		Preload("Test.Lesson.Class").
		Joins("JOIN tb_tests ON tb_tests.id = tb_test_results.test_id").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_tests.lesson_id").
		Where("tb_test_results.student_id = ? AND tb_lesson_plans.class_id IN ?", studentID, classIDs).
		Order("tb_test_results.taken_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
