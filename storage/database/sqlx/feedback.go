package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/feedback"
)

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *sqlx.DB) feedback.Repository {
	return &feedbackRepository{db: db}
}

const feedbackColumns = `id, student_id, content, sent, sent_at, send_to_email, created_by, created_at`

func (repo *feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	fb.ID = uuid.New().String()
	fb.Sent = false
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO feedbacks (id, student_id, content, sent, created_by, created_at)
		VALUES (:id, :student_id, :content, :sent, :created_by, :created_at)`, fb)
	if err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "inserting feedback")
	}
	return fb, nil
}

func (repo *feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (feedback.Feedback, error) {
	var fb feedback.Feedback
	err := repo.db.GetContext(ctx, &fb, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return feedback.Feedback{}, trapNoRowsErr(err, feedback.ErrNotFound, "getting feedback by id")
	}
	return fb, nil
}

func (repo *feedbackRepository) QueryFeedbacksByStudent(ctx context.Context, studentID string) ([]feedback.Feedback, error) {
	fbs := make([]feedback.Feedback, 0)
	err := repo.db.SelectContext(ctx, &fbs, `
		SELECT `+feedbackColumns+` FROM feedbacks WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying feedbacks by student")
	}
	return fbs, nil
}

func (repo *feedbackRepository) MarkFeedbackSent(ctx context.Context, id string, sentAt time.Time, sendTo string) error {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE feedbacks SET sent = true, sent_at = $2, send_to_email = $3 WHERE id = $1`, id, sentAt, sendTo)
	if err != nil {
		return errors.Wrap(err, "marking feedback sent")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return feedback.ErrNotFound
	}
	return nil
}
