package student

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/profile"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		QueryStudentsByTeacher(ctx context.Context, teacherID string) ([]Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	s := Student{
		Name:         ns.Name,
		GradeLevel:   nilIfEmpty(ns.GradeLevel),
		TeacherID:    nilIfEmpty(ns.TeacherID),
		StudentEmail: nilIfEmpty(ns.StudentEmail),
		ParentEmail:  nilIfEmpty(ns.ParentEmail),
		Memo:         nilIfEmpty(ns.Memo),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateStudent(ctx, s)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// GetOwned resolves the student and applies the ownership guard for the
// caller. It is the shared authorization step for every targeted read or
// write of a student's records.
func (svc *Service) GetOwned(ctx context.Context, caller profile.Profile, id string) (Student, error) {
	s, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if !caller.Owns(s.AssignedTeacherID()) {
		return Student{}, core.ErrPermissionDenied
	}
	return s, nil
}

// QueryForProfile lists all students for admins, and only the assigned ones
// for teachers.
func (svc *Service) QueryForProfile(ctx context.Context, caller profile.Profile) ([]Student, error) {
	if caller.IsAdmin() {
		return svc.repo.QueryAllStudents(ctx)
	}
	return svc.repo.QueryStudentsByTeacher(ctx, caller.ID)
}

// Update overwrites the fields set in `us`; empty fields keep their current
// value (nullable columns cannot be cleared through this path).
func (svc *Service) Update(ctx context.Context, orig Student, us UpdateStudent) (Student, error) {
	s := orig
	s.Name = us.Name
	if us.GradeLevel != "" {
		s.GradeLevel = &us.GradeLevel
	}
	if us.TeacherID != "" {
		s.TeacherID = &us.TeacherID
	}
	if us.StudentEmail != "" {
		s.StudentEmail = &us.StudentEmail
	}
	if us.ParentEmail != "" {
		s.ParentEmail = &us.ParentEmail
	}
	if us.Memo != "" {
		s.Memo = &us.Memo
	}
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, s)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
