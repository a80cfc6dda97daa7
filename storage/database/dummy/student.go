package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/edutrack/edutrack/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CreateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ID = uuid.New().String()
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return *s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		students = append(students, *s)
	}
	sortStudents(students)
	return students, nil
}

func (repo *studentRepository) QueryStudentsByTeacher(_ context.Context, teacherID string) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0)
	for _, s := range repo.db.table {
		if s.TeacherID != nil && *s.TeacherID == teacherID {
			students = append(students, *s)
		}
	}
	sortStudents(students)
	return students, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[s.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.table[s.ID] = &s
	return s, nil
}

func sortStudents(students []student.Student) {
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
}
