package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack/edutrack/core/lesson"
)

type lessonRepository struct {
	db *lessonTable
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db.lesson}
}

func (repo *lessonRepository) CreateLesson(_ context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = uuid.New().String()
	repo.db.table[l.ID] = &l
	return l, nil
}

func (repo *lessonRepository) GetLessonByID(_ context.Context, id string) (lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if l, ok := repo.db.table[id]; ok {
		return *l, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) QueryLessons(_ context.Context, start, end time.Time, teacherID string) ([]lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]lesson.Lesson, 0)
	for _, l := range repo.db.table {
		if l.LessonAt.Before(start) || !l.LessonAt.Before(end) {
			continue
		}
		if teacherID != "" && l.TeacherID != teacherID {
			continue
		}
		lessons = append(lessons, *l)
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].LessonAt.Before(lessons[j].LessonAt) })
	return lessons, nil
}

func (repo *lessonRepository) DeleteLesson(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return lesson.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
