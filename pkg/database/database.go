package database

import (
	"fmt"
	"log"

	"tutorboard_backend/internal/config"
	"tutorboard_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates/updates the tutorboard tables. hub_shared_schedule is
// owned by the Hub in production; migrating it here keeps local and dev
// environments self-contained.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.ClassEnrollment{},
		&model.LessonPlan{},
		&model.LessonRecord{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Test{},
		&model.TestResult{},
		&model.Attendance{},
		&model.PrivateComment{},
		&model.Notification{},
		&model.StudentBadge{},
		&model.SharedScheduleEvent{},
	)
}
