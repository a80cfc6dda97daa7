package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	g.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO grades (id, student_id, test_name, score, max_score, comment, test_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.StudentID, g.TestName, g.Score, g.MaxScore, g.Comment, g.TestDate, g.CreatedAt)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo *gradeRepository) QueryGradesByStudent(ctx context.Context, studentID string) ([]grade.Grade, error) {
	grades := make([]grade.Grade, 0)
	err := repo.db.SelectContext(ctx, &grades, `
		SELECT id, student_id, test_name, score, max_score, comment, test_date::text AS test_date, created_at
		FROM grades
		WHERE student_id = $1
		ORDER BY test_date DESC, created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades by student")
	}
	return grades, nil
}
