package dummytext

import (
	"context"
	"sync"

	"github.com/edutrack/edutrack/core/feedback"
)

// Service is a mock feedback.Generator for tests.
type Service struct {
	mu sync.Mutex

	// Output is returned by GenerateFeedback when Err is nil.
	Output string
	// Err, when set, is returned by GenerateFeedback.
	Err error

	prompts []feedback.Prompt
}

var _ feedback.Generator = (*Service)(nil)

func NewService() *Service {
	return &Service{Output: "Your child is making steady progress."}
}

func (svc *Service) GenerateFeedback(ctx context.Context, prompt feedback.Prompt) (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.prompts = append(svc.prompts, prompt)
	if svc.Err != nil {
		return "", svc.Err
	}
	return svc.Output, nil
}

// Prompts returns a snapshot of the prompts seen so far.
func (svc *Service) Prompts() []feedback.Prompt {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	prompts := make([]feedback.Prompt, len(svc.prompts))
	copy(prompts, svc.prompts)
	return prompts
}
