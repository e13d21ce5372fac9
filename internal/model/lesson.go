package model

import "time"

// LessonPlan holds per-class curriculum progress (0-100).
type LessonPlan struct {
	UUIDBase
	ClassID       string     `gorm:"size:36;not null;index" json:"classId"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"size:1000" json:"description,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Progress      int        `gorm:"default:0" json:"progress"`

	Class       *Class         `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Assignments []Assignment   `gorm:"foreignKey:LessonID" json:"assignments,omitempty"`
	Tests       []Test         `gorm:"foreignKey:LessonID" json:"tests,omitempty"`
	Records     []LessonRecord `gorm:"foreignKey:LessonPlanID" json:"records,omitempty"`
}

func (LessonPlan) TableName() string {
	return "tb_lesson_plans"
}

// LessonRecord is a dated note against a lesson plan (what was covered).
type LessonRecord struct {
	UUIDBase
	LessonPlanID string    `gorm:"size:36;not null;index" json:"lessonPlanId"`
	RecordDate   time.Time `gorm:"not null" json:"recordDate"`
	Summary      string    `gorm:"size:1000" json:"summary,omitempty"`
	PagesFrom    *int      `json:"pagesFrom,omitempty"`
	PagesTo      *int      `json:"pagesTo,omitempty"`
	ConceptNote  string    `gorm:"size:1000" json:"conceptNote,omitempty"`
	FileURL      string    `gorm:"size:255" json:"fileUrl,omitempty"`

	LessonPlan *LessonPlan `gorm:"foreignKey:LessonPlanID" json:"lessonPlan,omitempty"`
}

func (LessonRecord) TableName() string {
	return "tb_lesson_records"
}
