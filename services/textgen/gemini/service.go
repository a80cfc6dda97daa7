package geminitext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/feedback"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type service struct {
	key    string
	model  string
	client *http.Client
}

var _ feedback.Generator = (*service)(nil)

func NewService(conf *core.Config) feedback.Generator {
	return &service{
		key:    conf.GeminiAPIKey,
		model:  conf.GeminiModel,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type (
	generateRequest struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	part struct {
		Text string `json:"text"`
	}

	generationConfig struct {
		MaxOutputTokens int `json:"maxOutputTokens"`
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func (svc *service) GenerateFeedback(ctx context.Context, prompt feedback.Prompt) (string, error) {
	if svc.key == "" {
		return "", errors.New("gemini API key not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: buildPrompt(prompt)}}}},
		GenerationConfig: generationConfig{MaxOutputTokens: 800},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshalling gemini request")
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, svc.model, svc.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building gemini request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling gemini")
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading gemini response")
	}
	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("gemini returned %d: %s", res.StatusCode, resBody)
	}

	var genRes generateResponse
	if err := json.Unmarshal(resBody, &genRes); err != nil {
		return "", errors.Wrap(err, "unmarshalling gemini response")
	}
	if len(genRes.Candidates) == 0 || len(genRes.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from gemini")
	}
	return genRes.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt flattens the student's history into a single instruction; the
// generator call is stateless and an empty history is a valid input.
func buildPrompt(p feedback.Prompt) string {
	var attLines []string
	for _, a := range p.Attendances {
		memo := "(none)"
		if a.Memo != nil && *a.Memo != "" {
			memo = *a.Memo
		}
		attLines = append(attLines, fmt.Sprintf("date: %s, attendance: %s, lesson memo: %s", a.LessonDate, a.Status, memo))
	}
	attSummary := strings.Join(attLines, "\n")
	if attSummary == "" {
		attSummary = "(no records)"
	}

	gradeSummary, err := json.Marshal(p.Grades)
	if err != nil {
		gradeSummary = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("You are a professional private tutor.\n\n")
	fmt.Fprintf(&b, "Student: %s\n\n", p.StudentName)
	fmt.Fprintf(&b, "[Attendance and lesson memos]\n%s\n\n", attSummary)
	fmt.Fprintf(&b, "[Grade summary]\n%s\n\n", gradeSummary)
	b.WriteString("Write feedback for the student's parents covering:\n")
	b.WriteString("- a summary of the learning situation (reflect attendance and lesson memos)\n")
	b.WriteString("- strengths and challenges\n")
	b.WriteString("- suggestions for upcoming lessons\n")
	b.WriteString("Output only the feedback text itself.")
	return b.String()
}
