package dummymail

import (
	"context"
	"sync"

	"github.com/edutrack/edutrack/core"
)

// Service is a mock EmailService for tests: it records sent messages and can
// be told to fail delivery.
type Service struct {
	mu           sync.Mutex
	sentMessages []core.EmailMessage

	// SendErr, when set, is returned by every SendMessage call.
	SendErr error
}

var _ core.EmailService = (*Service)(nil)

func NewService() *Service {
	return &Service{}
}

func (svc *Service) SendMessage(_ context.Context, msg *core.EmailMessage) error {
	if svc.SendErr != nil {
		return svc.SendErr
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sentMessages = append(svc.sentMessages, *msg)
	return nil
}

// SentMessages returns a snapshot of everything delivered so far.
func (svc *Service) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]core.EmailMessage, len(svc.sentMessages))
	copy(out, svc.sentMessages)
	return out
}
