package profile

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/edutrack/edutrack/core"
)

// Role is the closed set of account roles. Every authorization decision in
// the app derives from it through Profile.Owns or Profile.IsAdmin; callers
// must not compare the raw string themselves.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var Roles = []Role{RoleTeacher, RoleAdmin}

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleAdmin
}

type Profile struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (p *Profile) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (p *Profile) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(pwd))
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Owns is the ownership guard: it reports whether the caller may act on a
// record assigned to teacherID. Admins may act on anything; teachers only on
// records assigned to them. An unassigned record (empty teacherID) is
// admin-only.
func (p Profile) Owns(teacherID string) bool {
	if p.IsAdmin() {
		return true
	}
	return teacherID != "" && teacherID == p.ID
}

// NewProfile contains information needed to sign a new Profile up.
type NewProfile struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (np *NewProfile) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	np.Name = core.CleanString(np.Name)
	np.Email = core.CleanString(np.Email, true /* lower */)

	if err := validate.Struct(np); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, np.Email)
}

// QueryFilter narrows profile listings.
type QueryFilter struct {
	Role Role `query:"role"`
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Role == "" }
