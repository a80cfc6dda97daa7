package attendance

import (
	"context"

	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

type (
	Repository interface {
		// UpsertAttendance inserts a row for (att.StudentID, att.LessonDate) or,
		// when one exists, updates its status/memo in place keeping its id and
		// creation timestamp. The natural key is backed by a uniqueness
		// constraint so concurrent upserts cannot produce duplicate rows.
		UpsertAttendance(ctx context.Context, att Attendance) (Attendance, error)
		// QueryAttendancesByStudent lists a student's records, most recent
		// lesson date first.
		QueryAttendancesByStudent(ctx context.Context, studentID string) ([]Attendance, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
	}
)

func NewService(repo Repository, students *student.Service) *Service {
	return &Service{repo: repo, students: students}
}

// Upsert records a student's attendance for a lesson date on behalf of the
// caller. The owning student is resolved first: student.ErrNotFound when it
// does not exist, core.ErrPermissionDenied when the caller is neither the
// assigned teacher nor an admin. The attendance table is only touched after
// both checks pass.
func (svc *Service) Upsert(ctx context.Context, caller profile.Profile, ua UpsertAttendance) (Attendance, error) {
	if _, err := svc.students.GetOwned(ctx, caller, ua.StudentID); err != nil {
		return Attendance{}, err
	}

	att := Attendance{
		StudentID:  ua.StudentID,
		LessonDate: ua.LessonDate,
		Status:     ua.Status,
	}
	if ua.Memo != "" {
		att.Memo = &ua.Memo
	}
	return svc.repo.UpsertAttendance(ctx, att)
}

// QueryByStudent lists an owned student's attendance history.
func (svc *Service) QueryByStudent(ctx context.Context, caller profile.Profile, studentID string) ([]Attendance, error) {
	if _, err := svc.students.GetOwned(ctx, caller, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryAttendancesByStudent(ctx, studentID)
}
