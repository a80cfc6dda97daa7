package lesson

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/edutrack/core"
)

type Lesson struct {
	ID        string    `json:"id" db:"id"`
	LessonAt  time.Time `json:"lesson_at" db:"lesson_at"` // UTC
	TeacherID string    `json:"teacher_id" db:"teacher_id"`
	Title     *string   `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewLesson contains information needed to schedule a lesson.
type NewLesson struct {
	LessonAt  string `json:"lesson_at" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
	Title     string `json:"title"`

	lessonAt time.Time
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.LessonAt = core.CleanString(nl.LessonAt)
	nl.TeacherID = core.CleanString(nl.TeacherID)
	nl.Title = core.CleanString(nl.Title)

	if err := validate.Struct(nl); err != nil {
		return err
	}
	at, err := time.Parse(time.RFC3339, nl.LessonAt)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{
			Field: "lesson_at",
			Error: "must be a valid RFC 3339 timestamp",
		})
	}
	nl.lessonAt = at.UTC()
	return nil
}

// Time returns the parsed timestamp; only valid after Validate succeeded.
func (nl NewLesson) Time() time.Time { return nl.lessonAt }

// MonthWindow resolves a YYYY-MM month to its [start, end) UTC window.
func MonthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(core.YearMonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = start.UTC()
	return start, start.AddDate(0, 1, 0), nil
}
