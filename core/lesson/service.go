package lesson

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/profile"
)

var (
	// errors
	ErrNotFound = errors.New("lesson not found")
)

type (
	Repository interface {
		CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
		// QueryLessons lists lessons with lesson_at in [start, end), earliest
		// first; teacherID narrows to one teacher when non-empty.
		QueryLessons(ctx context.Context, start, end time.Time, teacherID string) ([]Lesson, error)
		DeleteLesson(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create schedules a lesson. Admin-only; the role check lives in the HTTP
// layer's admin middleware.
func (svc *Service) Create(ctx context.Context, nl NewLesson) (Lesson, error) {
	l := Lesson{
		LessonAt:  nl.Time(),
		TeacherID: nl.TeacherID,
		CreatedAt: time.Now().UTC(),
	}
	if nl.Title != "" {
		l.Title = &nl.Title
	}
	return svc.repo.CreateLesson(ctx, l)
}

// QueryMonth lists the month's lessons: all of them for admins, only the
// caller's own for teachers. Ownership here is the lesson's teacher_id
// directly, not derived from student assignment.
func (svc *Service) QueryMonth(ctx context.Context, caller profile.Profile, month string) ([]Lesson, error) {
	start, end, err := MonthWindow(month)
	if err != nil {
		return nil, core.NewValidationError(err, core.FieldError{
			Field: "month",
			Error: "must be a month in YYYY-MM format",
		})
	}

	teacherID := ""
	if !caller.IsAdmin() {
		teacherID = caller.ID
	}
	return svc.repo.QueryLessons(ctx, start, end, teacherID)
}

// GetOwned resolves a lesson and applies the ownership guard against its
// teacher_id.
func (svc *Service) GetOwned(ctx context.Context, caller profile.Profile, id string) (Lesson, error) {
	l, err := svc.repo.GetLessonByID(ctx, id)
	if err != nil {
		return Lesson{}, err
	}
	if !caller.Owns(l.TeacherID) {
		return Lesson{}, core.ErrPermissionDenied
	}
	return l, nil
}

// Delete removes a lesson. Admin-only; enforced by the HTTP layer.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteLesson(ctx, id)
}
