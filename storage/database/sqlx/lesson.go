package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/lesson"
)

type lessonRepository struct {
	db *sqlx.DB
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *sqlx.DB) lesson.Repository {
	return &lessonRepository{db: db}
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	l.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO lessons (id, lesson_at, teacher_id, title, created_at)
		VALUES (:id, :lesson_at, :teacher_id, :title, :created_at)`, l)
	if err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return l, nil
}

func (repo *lessonRepository) GetLessonByID(ctx context.Context, id string) (lesson.Lesson, error) {
	var l lesson.Lesson
	err := repo.db.GetContext(ctx, &l, `
		SELECT id, lesson_at, teacher_id, title, created_at FROM lessons WHERE id = $1`, id)
	if err != nil {
		return lesson.Lesson{}, trapNoRowsErr(err, lesson.ErrNotFound, "getting lesson by id")
	}
	return l, nil
}

func (repo *lessonRepository) QueryLessons(ctx context.Context, start, end time.Time, teacherID string) ([]lesson.Lesson, error) {
	q := `SELECT id, lesson_at, teacher_id, title, created_at
		FROM lessons
		WHERE lesson_at >= $1 AND lesson_at < $2`
	args := []interface{}{start, end}
	if teacherID != "" {
		q += ` AND teacher_id = $3`
		args = append(args, teacherID)
	}
	q += ` ORDER BY lesson_at`

	lessons := make([]lesson.Lesson, 0)
	if err := repo.db.SelectContext(ctx, &lessons, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	return lessons, nil
}

func (repo *lessonRepository) DeleteLesson(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return lesson.ErrNotFound
	}
	return nil
}
