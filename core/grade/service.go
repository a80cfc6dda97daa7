package grade

import (
	"context"
	"time"

	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		// QueryGradesByStudent lists a student's grades, most recent test date
		// first.
		QueryGradesByStudent(ctx context.Context, studentID string) ([]Grade, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
	}
)

func NewService(repo Repository, students *student.Service) *Service {
	return &Service{repo: repo, students: students}
}

// Record inserts a score record for an owned student. There is no update
// path: grades are append-only.
func (svc *Service) Record(ctx context.Context, caller profile.Profile, ng NewGrade) (Grade, error) {
	if _, err := svc.students.GetOwned(ctx, caller, ng.StudentID); err != nil {
		return Grade{}, err
	}

	g := Grade{
		StudentID: ng.StudentID,
		TestName:  ng.TestName,
		Score:     ng.Score,
		MaxScore:  ng.MaxScore,
		TestDate:  ng.TestDate,
		CreatedAt: time.Now().UTC(),
	}
	if ng.Comment != "" {
		g.Comment = &ng.Comment
	}
	return svc.repo.CreateGrade(ctx, g)
}

// QueryByStudent lists an owned student's grade history.
func (svc *Service) QueryByStudent(ctx context.Context, caller profile.Profile, studentID string) ([]Grade, error) {
	if _, err := svc.students.GetOwned(ctx, caller, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryGradesByStudent(ctx, studentID)
}
