package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack/edutrack/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) CreateFeedback(_ context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	fb.ID = uuid.New().String()
	fb.Sent = false
	repo.db.table[fb.ID] = &fb
	return fb, nil
}

func (repo *feedbackRepository) GetFeedbackByID(_ context.Context, id string) (feedback.Feedback, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if fb, ok := repo.db.table[id]; ok {
		return *fb, nil
	}
	return feedback.Feedback{}, feedback.ErrNotFound
}

func (repo *feedbackRepository) QueryFeedbacksByStudent(_ context.Context, studentID string) ([]feedback.Feedback, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	fbs := make([]feedback.Feedback, 0)
	for _, fb := range repo.db.table {
		if fb.StudentID == studentID {
			fbs = append(fbs, *fb)
		}
	}
	sort.Slice(fbs, func(i, j int) bool { return fbs[i].CreatedAt.After(fbs[j].CreatedAt) })
	return fbs, nil
}

func (repo *feedbackRepository) MarkFeedbackSent(_ context.Context, id string, sentAt time.Time, sendTo string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	fb, ok := repo.db.table[id]
	if !ok {
		return feedback.ErrNotFound
	}
	fb.Sent = true
	fb.SentAt = &sentAt
	fb.SendToEmail = &sendTo
	return nil
}
