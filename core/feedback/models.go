package feedback

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/grade"
)

// Feedback lifecycle: drafts live only in the caller's session; a saved row
// has sent=false; a successful dispatch stamps sent/sent_at/send_to_email
// exactly once.
type Feedback struct {
	ID          string     `json:"id" db:"id"`
	StudentID   string     `json:"student_id" db:"student_id"`
	Content     string     `json:"content" db:"content"`
	Sent        bool       `json:"sent" db:"sent"`
	SentAt      *time.Time `json:"sent_at" db:"sent_at"` // UTC
	SendToEmail *string    `json:"send_to_email" db:"send_to_email"`
	CreatedBy   string     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"` // UTC
}

// NewFeedback contains a generated-or-edited text to persist for a student.
// Content is saved as supplied; it was already reviewed by the caller.
type NewFeedback struct {
	StudentID string `json:"student_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

func (nf *NewFeedback) Validate(validate *validator.Validate) error {
	nf.Content = core.CleanString(nf.Content)
	return validate.Struct(nf)
}

// GenerateRequest asks for a fresh draft for one student.
type GenerateRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

func (gr *GenerateRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(gr)
}

type (
	// Prompt is the aggregated history handed to the text generator,
	// most recent records first.
	Prompt struct {
		StudentName string
		Attendances []attendance.Attendance
		Grades      []grade.Grade
	}

	// Generator is any service that can write a parent-facing feedback text
	// from a student's history. The call is stateless; an empty history is a
	// valid input.
	Generator interface {
		GenerateFeedback(ctx context.Context, prompt Prompt) (string, error)
	}
)
