package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/edutrack/core"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// Attendance is one record per (student, lesson date); lesson_date is a
// plain YYYY-MM-DD calendar date.
type Attendance struct {
	ID         string    `json:"id" db:"id"`
	StudentID  string    `json:"student_id" db:"student_id"`
	LessonDate string    `json:"lesson_date" db:"lesson_date"`
	Status     string    `json:"status" db:"status"`
	Memo       *string   `json:"memo" db:"memo"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
}

// UpsertAttendance contains the natural key and the values to set.
type UpsertAttendance struct {
	StudentID  string `json:"student_id" validate:"required"`
	LessonDate string `json:"lesson_date" validate:"required,dateonly"`
	Status     string `json:"status" validate:"required,oneof=present absent late"`
	Memo       string `json:"memo"`
}

func (ua *UpsertAttendance) Validate(validate *validator.Validate) error {
	ua.LessonDate = core.CleanString(ua.LessonDate)
	ua.Status = core.CleanString(ua.Status, true /* lower */)
	ua.Memo = core.CleanString(ua.Memo)
	return validate.Struct(ua)
}
