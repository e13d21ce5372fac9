package service

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/pkg/logger"
	"tutorboard_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ScheduleService mirrors assignments and tests into the Hub's shared
// calendar table. Every method is best-effort: failures are logged and
// counted, never returned, so a broken sync can't fail the write that
// triggered it.
type ScheduleService struct {
	scheduleRepo   *repository.ScheduleRepository
	classRepo      *repository.ClassRepository
	assignmentRepo *repository.AssignmentRepository
	testRepo       *repository.TestRepository
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	classRepo *repository.ClassRepository,
	assignmentRepo *repository.AssignmentRepository,
	testRepo *repository.TestRepository,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:   scheduleRepo,
		classRepo:      classRepo,
		assignmentRepo: assignmentRepo,
		testRepo:       testRepo,
	}
}

type scheduleMeta struct {
	ClassName   string `json:"className"`
	LessonTitle string `json:"lessonTitle"`
}

// SyncAssignment upserts one calendar row per hub-linked student. Students
// without a hub id, and assignments without a due date, are skipped.
func (s *ScheduleService) SyncAssignment(assignment *model.Assignment, class *model.Class, lesson *model.LessonPlan, student *model.User) {
	if assignment.DueDate == nil {
		return
	}
	s.upsert(model.EventAssignment, assignment.ID, "[Assignment] "+assignment.Title,
		assignment.Description, *assignment.DueDate, class, lesson, student)
}

// SyncTest upserts one calendar row per hub-linked student; tests without a
// date are skipped.
func (s *ScheduleService) SyncTest(test *model.Test, class *model.Class, lesson *model.LessonPlan, student *model.User) {
	if test.TestDate == nil {
		return
	}
	s.upsert(model.EventTest, test.ID, "[Test] "+test.Title,
		test.Description, *test.TestDate, class, lesson, student)
}

func (s *ScheduleService) upsert(eventType model.ScheduleEventType, sourceID, title, description string,
	date time.Time, class *model.Class, lesson *model.LessonPlan, student *model.User) {
	if student == nil || student.HubUserID == nil {
		return
	}

	meta := scheduleMeta{}
	if class != nil {
		meta.ClassName = class.Name
	}
	if lesson != nil {
		meta.LessonTitle = lesson.Title
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	event := &model.SharedScheduleEvent{
		HubUserID:   strconv.FormatInt(*student.HubUserID, 10),
		SourceApp:   model.SourceApp,
		EventType:   eventType,
		SourceID:    sourceID,
		Title:       title,
		Description: description,
		EventDate:   date,
		Metadata:    datatypes.JSON(metaJSON),
	}
	if class != nil {
		event.Subject = class.Subject
	}

	if err := s.scheduleRepo.Upsert(event); err != nil {
		monitoring.ScheduleSyncFailures.WithLabelValues(string(eventType)).Inc()
		logger.Log.Warn("shared schedule sync failed",
			zap.String("eventType", string(eventType)),
			zap.String("sourceId", sourceID),
			zap.Error(err))
	}
}

// RemoveEvent deletes the calendar rows previously synced for a deleted
// assignment or test. Best-effort like the sync itself.
func (s *ScheduleService) RemoveEvent(eventType model.ScheduleEventType, sourceID string) {
	if err := s.scheduleRepo.DeleteBySource(eventType, sourceID); err != nil {
		monitoring.ScheduleSyncFailures.WithLabelValues(string(eventType)).Inc()
		logger.Log.Warn("shared schedule removal failed",
			zap.String("eventType", string(eventType)),
			zap.String("sourceId", sourceID),
			zap.Error(err))
	}
}

// CalendarEvent is the integration shape other tools consume: dated
// assignments and tests across the caller's classes.
type CalendarEvent struct {
	Type      string    `json:"type"`
	SourceID  string    `json:"sourceId"`
	Title     string    `json:"title"`
	ClassName string    `json:"className,omitempty"`
	Date      time.Time `json:"date"`
}

// CalendarEvents flattens the caller's dated assignments and tests into a
// single chronologically sorted feed.
func (s *ScheduleService) CalendarEvents(studentID string) ([]CalendarEvent, error) {
	enrollments, err := s.classRepo.FindEnrollmentsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]string, 0, len(enrollments))
	for i := range enrollments {
		classIDs = append(classIDs, enrollments[i].ClassID)
	}

	events := []CalendarEvent{}

	assignments, err := s.assignmentRepo.FindByClassIDs(classIDs)
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		a := &assignments[i]
		if a.DueDate == nil {
			continue
		}
		event := CalendarEvent{Type: string(model.EventAssignment), SourceID: a.ID, Title: a.Title, Date: *a.DueDate}
		if a.Lesson != nil && a.Lesson.Class != nil {
			event.ClassName = a.Lesson.Class.Name
		}
		events = append(events, event)
	}

	tests, err := s.testRepo.FindByClassIDs(classIDs)
	if err != nil {
		return nil, err
	}
	for i := range tests {
		t := &tests[i]
		if t.TestDate == nil {
			continue
		}
		event := CalendarEvent{Type: string(model.EventTest), SourceID: t.ID, Title: t.Title, Date: *t.TestDate}
		if t.Lesson != nil && t.Lesson.Class != nil {
			event.ClassName = t.Lesson.Class.Name
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

// MySchedule returns the caller's shared calendar rows; users without a
// linked hub identity get an empty list, not an error.
func (s *ScheduleService) MySchedule(user *model.User, from, to *time.Time) ([]model.SharedScheduleEvent, error) {
	if user.HubUserID == nil {
		return []model.SharedScheduleEvent{}, nil
	}
	return s.scheduleRepo.FindByHubUser(strconv.FormatInt(*user.HubUserID, 10), from, to)
}
