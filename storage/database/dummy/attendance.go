package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack/edutrack/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

// UpsertAttendance scans for the natural key under the write lock, so
// concurrent upserts for the same (student, date) serialize into
// last-write-wins, same as the Postgres ON CONFLICT path.
func (repo *attendanceRepository) UpsertAttendance(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.StudentID == att.StudentID && existing.LessonDate == att.LessonDate {
			existing.Status = att.Status
			existing.Memo = att.Memo
			return *existing, nil
		}
	}

	att.ID = uuid.New().String()
	att.CreatedAt = time.Now().UTC()
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) QueryAttendancesByStudent(_ context.Context, studentID string) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	atts := make([]attendance.Attendance, 0)
	for _, att := range repo.db.table {
		if att.StudentID == studentID {
			atts = append(atts, *att)
		}
	}
	sort.Slice(atts, func(i, j int) bool { return atts[i].LessonDate > atts[j].LessonDate })
	return atts, nil
}
