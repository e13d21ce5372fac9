package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

type Assignment struct {
	UUIDBase
	LessonID    string     `gorm:"size:36;not null;index" json:"lessonId"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	FileURL     string     `gorm:"size:255" json:"fileUrl,omitempty"`

	Lesson      *LessonPlan            `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Submissions []AssignmentSubmission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

func (Assignment) TableName() string {
	return "tb_assignments"
}

// AssignmentSubmission is pre-created as pending for every enrolled student
// when the assignment is created. Unique per (assignment, student).
type AssignmentSubmission struct {
	UUIDBase
	AssignmentID      string           `gorm:"size:36;not null;uniqueIndex:uk_submission_assignment_student" json:"assignmentId"`
	StudentID         string           `gorm:"size:36;not null;uniqueIndex:uk_submission_assignment_student;index" json:"studentId"`
	Status            SubmissionStatus `gorm:"size:20;default:'pending'" json:"status"`
	SubmissionFileURL string           `gorm:"size:255" json:"submissionFileUrl,omitempty"`
	Grade             *int             `json:"grade,omitempty"`
	Feedback          string           `gorm:"size:1000" json:"feedback,omitempty"`
	SubmittedAt       *time.Time       `json:"submittedAt,omitempty"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Student    *User       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "tb_assignment_submissions"
}
