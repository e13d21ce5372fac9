package service

import (
	"errors"
	"math"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"

	"gorm.io/gorm"
)

// TestService is the student-facing view over test results.
type TestService struct {
	classRepo *repository.ClassRepository
	testRepo  *repository.TestRepository
}

func NewTestService(classRepo *repository.ClassRepository, testRepo *repository.TestRepository) *TestService {
	return &TestService{classRepo: classRepo, testRepo: testRepo}
}

// StudentResult is one score with its percentage of the test maximum,
// rounded to a whole number.
type StudentResult struct {
	model.TestResult
	ClassName  string `json:"className"`
	Percentage int    `json:"percentage"`
}

func percentage(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(maxScore) * 100))
}

func toStudentResult(result *model.TestResult) StudentResult {
	item := StudentResult{TestResult: *result}
	if result.Test != nil {
		item.Percentage = percentage(result.Score, result.Test.MaxScore)
		if result.Test.Lesson != nil && result.Test.Lesson.Class != nil {
			item.ClassName = result.Test.Lesson.Class.Name
		}
	}
	return item
}

func (s *TestService) MyResults(studentID string) ([]StudentResult, error) {
	results, err := s.testRepo.FindResultsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	items := make([]StudentResult, 0, len(results))
	for i := range results {
		items = append(items, toStudentResult(&results[i]))
	}
	return items, nil
}

// TrendPoint is one chart point of the score-over-time series.
type TrendPoint struct {
	TestID     string    `json:"testId"`
	TestTitle  string    `json:"testTitle"`
	Score      int       `json:"score"`
	MaxScore   int       `json:"maxScore"`
	Percentage int       `json:"percentage"`
	TakenAt    time.Time `json:"takenAt"`
}

// MyTrend charts the student's scores oldest first, optionally scoped to a
// class.
func (s *TestService) MyTrend(studentID, classID string) ([]TrendPoint, error) {
	results, err := s.testRepo.FindTrend(studentID, classID)
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, 0, len(results))
	for i := range results {
		r := &results[i]
		point := TrendPoint{TestID: r.TestID, Score: r.Score, TakenAt: r.TakenAt}
		if r.Test != nil {
			point.TestTitle = r.Test.Title
			point.MaxScore = r.Test.MaxScore
			point.Percentage = percentage(r.Score, r.Test.MaxScore)
		}
		points = append(points, point)
	}
	return points, nil
}

func (s *TestService) MyResult(studentID, testID string) (*StudentResult, error) {
	result, err := s.testRepo.FindResult(testID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	item := toStudentResult(result)
	return &item, nil
}
