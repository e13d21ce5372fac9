package model

import "time"

type Test struct {
	UUIDBase
	LessonID    string     `gorm:"size:36;not null;index" json:"lessonId"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	TestDate    *time.Time `json:"testDate,omitempty"`
	MaxScore    int        `gorm:"not null;default:100" json:"maxScore"`

	Lesson  *LessonPlan  `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Results []TestResult `gorm:"foreignKey:TestID" json:"results,omitempty"`
}

func (Test) TableName() string {
	return "tb_tests"
}

// TestResult is unique per (test, student); repeated bulk entry overwrites
// score and feedback.
type TestResult struct {
	UUIDBase
	TestID    string    `gorm:"size:36;not null;uniqueIndex:uk_result_test_student" json:"testId"`
	StudentID string    `gorm:"size:36;not null;uniqueIndex:uk_result_test_student;index" json:"studentId"`
	Score     int       `gorm:"not null" json:"score"`
	Feedback  string    `gorm:"size:1000" json:"feedback,omitempty"`
	TakenAt   time.Time `gorm:"autoCreateTime" json:"takenAt"`

	Test    *Test `gorm:"foreignKey:TestID" json:"test,omitempty"`
	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (TestResult) TableName() string {
	return "tb_test_results"
}
