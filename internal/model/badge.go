package model

import "time"

type StudentBadge struct {
	UUIDBase
	StudentID   string    `gorm:"size:36;not null;index" json:"studentId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	IconURL     string    `gorm:"size:255" json:"iconUrl,omitempty"`
	EarnedAt    time.Time `gorm:"autoCreateTime" json:"earnedAt"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (StudentBadge) TableName() string {
	return "tb_student_badges"
}
