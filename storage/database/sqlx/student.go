package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

const studentColumns = `id, name, grade_level, teacher_id, student_email, parent_email, memo, created_at, updated_at`

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	s.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO students (id, name, grade_level, teacher_id, student_email, parent_email, memo, created_at, updated_at)
		VALUES (:id, :name, :grade_level, :teacher_id, :student_email, :parent_email, :memo, :created_at, :updated_at)`, s)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return s, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var s student.Student
	err := repo.db.GetContext(ctx, &s, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "getting student by id")
	}
	return s, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students, `SELECT `+studentColumns+` FROM students ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) QueryStudentsByTeacher(ctx context.Context, teacherID string) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students, `
		SELECT `+studentColumns+` FROM students WHERE teacher_id = $1 ORDER BY name`, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying students by teacher")
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE students
		SET name = :name, grade_level = :grade_level, teacher_id = :teacher_id,
		    student_email = :student_email, parent_email = :parent_email, memo = :memo,
		    updated_at = :updated_at
		WHERE id = :id`, s)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}
