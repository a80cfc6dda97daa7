package dummydb

import (
	"sync"

	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/feedback"
	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/lesson"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

// DB is an in-memory store for tests and local hacking; it mirrors the
// Postgres repositories' behavior, including the attendance natural key.
type (
	DB struct {
		profile    *profileTable
		student    *studentTable
		attendance *attendanceTable
		grade      *gradeTable
		lesson     *lessonTable
		feedback   *feedbackTable
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	attendanceTable struct {
		sync.RWMutex
		table map[string]*attendance.Attendance
	}

	gradeTable struct {
		sync.RWMutex
		table map[string]*grade.Grade
	}

	lessonTable struct {
		sync.RWMutex
		table map[string]*lesson.Lesson
	}

	feedbackTable struct {
		sync.RWMutex
		table map[string]*feedback.Feedback
	}
)

func Open() (*DB, error) {
	db := &DB{
		profile:    &profileTable{table: make(map[string]*profile.Profile)},
		student:    &studentTable{table: make(map[string]*student.Student)},
		attendance: &attendanceTable{table: make(map[string]*attendance.Attendance)},
		grade:      &gradeTable{table: make(map[string]*grade.Grade)},
		lesson:     &lessonTable{table: make(map[string]*lesson.Lesson)},
		feedback:   &feedbackTable{table: make(map[string]*feedback.Feedback)},
	}
	return db, nil
}
