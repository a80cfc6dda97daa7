package grade

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/edutrack/core"
)

// Grade is an append-only score record; duplicate test entries for the same
// date are permitted by design.
type Grade struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id"`
	TestName  string    `json:"test_name" db:"test_name"`
	Score     int       `json:"score" db:"score"`
	MaxScore  int       `json:"max_score" db:"max_score"`
	Comment   *string   `json:"comment" db:"comment"`
	TestDate  string    `json:"test_date" db:"test_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewGrade contains information needed to record a score.
// Invariant: 0 <= score <= max_score and max_score > 0.
type NewGrade struct {
	StudentID string `json:"student_id" validate:"required"`
	TestName  string `json:"test_name" validate:"required"`
	Score     int    `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore  int    `json:"max_score" validate:"gt=0"`
	Comment   string `json:"comment"`
	TestDate  string `json:"test_date" validate:"required,dateonly"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.TestName = core.CleanString(ng.TestName)
	ng.Comment = core.CleanString(ng.Comment)
	ng.TestDate = core.CleanString(ng.TestDate)
	return validate.Struct(ng)
}
