package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/edutrack/core"
)

type Student struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	GradeLevel   *string   `json:"grade_level" db:"grade_level"`
	TeacherID    *string   `json:"teacher_id" db:"teacher_id"`
	StudentEmail *string   `json:"student_email" db:"student_email"`
	ParentEmail  *string   `json:"parent_email" db:"parent_email"`
	Memo         *string   `json:"memo" db:"memo"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// AssignedTeacherID returns the owning teacher's id, or "" when unassigned.
func (s Student) AssignedTeacherID() string {
	if s.TeacherID == nil {
		return ""
	}
	return *s.TeacherID
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name         string `json:"name" validate:"required"`
	GradeLevel   string `json:"grade_level"`
	TeacherID    string `json:"teacher_id"`
	StudentEmail string `json:"student_email" validate:"omitempty,email"`
	ParentEmail  string `json:"parent_email" validate:"omitempty,email"`
	Memo         string `json:"memo"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.GradeLevel = core.CleanString(ns.GradeLevel)
	ns.StudentEmail = core.CleanString(ns.StudentEmail, true /* lower */)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	ns.Memo = core.CleanString(ns.Memo)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Empty fields keep their current value; TeacherID may be
// cleared explicitly by re-assignment to another teacher only.
type UpdateStudent struct {
	Name         string `json:"name"`
	GradeLevel   string `json:"grade_level"`
	TeacherID    string `json:"teacher_id"`
	StudentEmail string `json:"student_email" validate:"omitempty,email"`
	ParentEmail  string `json:"parent_email" validate:"omitempty,email"`
	Memo         string `json:"memo"`
}

func (us *UpdateStudent) Validate(orig Student, validate *validator.Validate) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	us.GradeLevel = core.CleanString(us.GradeLevel)
	us.TeacherID = core.CleanString(us.TeacherID)
	us.StudentEmail = core.CleanString(us.StudentEmail, true /* lower */)
	us.ParentEmail = core.CleanString(us.ParentEmail, true /* lower */)
	us.Memo = core.CleanString(us.Memo)
	return validate.Struct(us)
}
