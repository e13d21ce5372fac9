package model

import "time"

type Class struct {
	UUIDBase
	TeacherID   string     `gorm:"size:36;not null;index" json:"teacherId"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"size:500" json:"description,omitempty"`
	Subject     string     `gorm:"size:50" json:"subject,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	InviteCode  string     `gorm:"size:16;uniqueIndex;not null" json:"inviteCode"`

	Teacher     *User             `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Enrollments []ClassEnrollment `gorm:"foreignKey:ClassID" json:"enrollments,omitempty"`
	LessonPlans []LessonPlan      `gorm:"foreignKey:ClassID" json:"lessonPlans,omitempty"`
}

func (Class) TableName() string {
	return "tb_classes"
}

// ClassEnrollment links one student (and optionally one parent) to a class.
type ClassEnrollment struct {
	UUIDBase
	ClassID   string  `gorm:"size:36;not null;index" json:"classId"`
	StudentID string  `gorm:"size:36;not null;index" json:"studentId"`
	ParentID  *string `gorm:"size:36;index" json:"parentId,omitempty"`

	Class   *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Student *User  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Parent  *User  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}

func (ClassEnrollment) TableName() string {
	return "tb_class_enrollments"
}
