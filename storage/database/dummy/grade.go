package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/edutrack/edutrack/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	g.ID = uuid.New().String()
	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) QueryGradesByStudent(_ context.Context, studentID string) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.table {
		if g.StudentID == studentID {
			grades = append(grades, *g)
		}
	}
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].TestDate != grades[j].TestDate {
			return grades[i].TestDate > grades[j].TestDate
		}
		return grades[i].CreatedAt.After(grades[j].CreatedAt)
	})
	return grades, nil
}
