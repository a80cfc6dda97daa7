package feedback

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

var (
	// errors
	ErrNotFound        = errors.New("feedback not found")
	ErrNoParentEmail   = errors.New("no parent email on the student record")
	ErrEmptyGeneration = errors.New("text generation returned empty content")
)

type (
	Repository interface {
		CreateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
		GetFeedbackByID(ctx context.Context, id string) (Feedback, error)
		// QueryFeedbacksByStudent lists a student's saved feedbacks, newest
		// first.
		QueryFeedbacksByStudent(ctx context.Context, studentID string) ([]Feedback, error)
		// MarkFeedbackSent stamps sent/sent_at/send_to_email on a saved row.
		MarkFeedbackSent(ctx context.Context, id string, sentAt time.Time, sendTo string) error
	}

	Service struct {
		repo        Repository
		students    *student.Service
		attendances attendance.Repository
		grades      grade.Repository
		generator   Generator
		mailSvc     core.EmailService
		conf        *core.Config
	}
)

func NewService(
	repo Repository,
	students *student.Service,
	attendances attendance.Repository,
	grades grade.Repository,
	generator Generator,
	mailSvc core.EmailService,
	conf *core.Config,
) *Service {
	return &Service{
		repo:        repo,
		students:    students,
		attendances: attendances,
		grades:      grades,
		generator:   generator,
		mailSvc:     mailSvc,
		conf:        conf,
	}
}

// Save persists a draft as an unsent feedback row for an owned student.
func (svc *Service) Save(ctx context.Context, caller profile.Profile, nf NewFeedback) (Feedback, error) {
	if _, err := svc.students.GetOwned(ctx, caller, nf.StudentID); err != nil {
		return Feedback{}, err
	}

	fb := Feedback{
		StudentID: nf.StudentID,
		Content:   nf.Content,
		CreatedBy: caller.ID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateFeedback(ctx, fb)
}

// Generate aggregates the student's full attendance and grade history (most
// recent first) and asks the text generator for a parent-facing draft. The
// draft is returned to the caller for review; nothing is persisted here.
func (svc *Service) Generate(ctx context.Context, caller profile.Profile, studentID string) (string, error) {
	s, err := svc.students.GetOwned(ctx, caller, studentID)
	if err != nil {
		return "", err
	}

	atts, err := svc.attendances.QueryAttendancesByStudent(ctx, studentID)
	if err != nil {
		return "", pkgerrors.Wrap(err, "querying attendance history")
	}
	grades, err := svc.grades.QueryGradesByStudent(ctx, studentID)
	if err != nil {
		return "", pkgerrors.Wrap(err, "querying grade history")
	}

	content, err := svc.generator.GenerateFeedback(ctx, Prompt{
		StudentName: s.Name,
		Attendances: atts,
		Grades:      grades,
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "generating feedback")
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyGeneration
	}
	return content, nil
}

// Send dispatches a saved feedback to the student's parent email and stamps
// the row on success. On dispatch failure the row remains unsent and the
// error is surfaced; no retry is attempted.
func (svc *Service) Send(ctx context.Context, caller profile.Profile, id string) error {
	fb, err := svc.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return err
	}

	s, err := svc.students.GetOwned(ctx, caller, fb.StudentID)
	if err != nil {
		return pkgerrors.Wrap(err, "resolving feedback student")
	}
	if s.ParentEmail == nil || *s.ParentEmail == "" {
		return ErrNoParentEmail
	}
	to := *s.ParentEmail

	msg := svc.buildMessage(to, fb.Content)
	if err := svc.mailSvc.SendMessage(ctx, msg); err != nil {
		return pkgerrors.Wrap(err, "sending feedback email")
	}

	return svc.repo.MarkFeedbackSent(ctx, fb.ID, time.Now().UTC(), to)
}

// QueryByStudent lists an owned student's saved feedbacks.
func (svc *Service) QueryByStudent(ctx context.Context, caller profile.Profile, studentID string) ([]Feedback, error) {
	if _, err := svc.students.GetOwned(ctx, caller, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryFeedbacksByStudent(ctx, studentID)
}

func (svc *Service) buildMessage(to, content string) *core.EmailMessage {
	var body strings.Builder
	body.WriteString("<p>Dear parent,</p>\n")
	body.WriteString("<p>Here is the latest feedback on your child's learning.</p>\n<hr />\n")
	fmt.Fprintf(&body, "<div style=\"white-space: pre-wrap;\">%s</div>\n<hr />\n", html.EscapeString(content))
	fmt.Fprintf(&body, "<p style=\"color:#666;font-size:12px;\">This email was sent automatically by %s.</p>", svc.conf.AppName)

	return &core.EmailMessage{
		To:          []mail.Address{{Address: to}},
		Subject:     "Your child's learning feedback",
		TextContent: content,
		HTMLContent: body.String(),
	}
}
