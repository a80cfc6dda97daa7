package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// UpsertAttendance relies on the UNIQUE (student_id, lesson_date) key: a
// conflicting insert turns into an update of status/memo, keeping the
// existing row's id and created_at. This makes concurrent upserts for the
// same key last-write-wins instead of a read-then-write race.
func (repo *attendanceRepository) UpsertAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO attendances (id, student_id, lesson_date, status, memo)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, lesson_date) DO UPDATE
		SET status = EXCLUDED.status, memo = EXCLUDED.memo
		RETURNING id, student_id, lesson_date::text AS lesson_date, status, memo, created_at`,
		uuid.New().String(), att.StudentID, att.LessonDate, att.Status, att.Memo,
	).StructScan(&att)
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "upserting attendance")
	}
	return att, nil
}

func (repo *attendanceRepository) QueryAttendancesByStudent(ctx context.Context, studentID string) ([]attendance.Attendance, error) {
	atts := make([]attendance.Attendance, 0)
	err := repo.db.SelectContext(ctx, &atts, `
		SELECT id, student_id, lesson_date::text AS lesson_date, status, memo, created_at
		FROM attendances
		WHERE student_id = $1
		ORDER BY lesson_date DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendances by student")
	}
	return atts, nil
}
