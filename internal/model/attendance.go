package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance has one row per (class, student, date); bulk check-in upserts.
type Attendance struct {
	UUIDBase
	ClassID   string           `gorm:"size:36;not null;uniqueIndex:uk_attendance_class_student_date" json:"classId"`
	StudentID string           `gorm:"size:36;not null;uniqueIndex:uk_attendance_class_student_date;index" json:"studentId"`
	Date      time.Time        `gorm:"not null;uniqueIndex:uk_attendance_class_student_date" json:"date"`
	Status    AttendanceStatus `gorm:"size:20;not null" json:"status"`
	Note      string           `gorm:"size:500" json:"note,omitempty"`

	Class   *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Student *User  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Attendance) TableName() string {
	return "tb_attendances"
}
