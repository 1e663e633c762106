// Package gemini implements the summarization adapter on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"newsingest/internal/config"
	"newsingest/internal/ports"
)

const summaryPrompt = `You are an expert news analyst. Your task is to provide a clear, unbiased, and concise summary of the following news article.

Format the summary as a list of 3 to 6 key bullet points. Each point should be a complete sentence.
Focus on the key facts, events, and outcomes. Do not add any personal opinions or speculation.

Here is the article content:
---
%s
`

const defaultTemperature = float32(0.3)

// Summarizer produces bullet-point summaries of cleaned article text.
type Summarizer struct {
	client *genai.Client
	model  string
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer constructs the Gemini-backed summarizer. Call once at
// process start; the underlying client is reusable across requests.
func NewSummarizer(ctx context.Context, cfg config.GeminiConfig) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Summarizer{client: client, model: cfg.Model}, nil
}

// Summarize generates a bulleted summary. Errors are returned to the caller,
// which records an empty summary and keeps going; a summarization failure is
// never fatal to the pipeline.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: fmt.Sprintf(summaryPrompt, text)}},
		Role:  "user",
	}}

	temperature := defaultTemperature
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return summary, nil
}
