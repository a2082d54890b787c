// Package summary produces the content summary shared by every generation job
// of one request.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"question-bank-be/pkg/llm"
)

var ErrEmptySummary = errors.New("summary backend returned no content")

// Summarizer condenses the source content selected by a metadata filter.
type Summarizer interface {
	Summarize(ctx context.Context, tenantID, filterKey, filterValue string) (string, error)
}

// QueryFunc renders the summary request for a filter.
type QueryFunc func(filterKey, filterValue string) string

// LLMSummarizer asks a generation backend directly for the summary.
type LLMSummarizer struct {
	provider llm.LLMProvider
	query    QueryFunc
	options  []llm.Option
}

func NewLLMSummarizer(provider llm.LLMProvider, query QueryFunc, options ...llm.Option) *LLMSummarizer {
	return &LLMSummarizer{provider: provider, query: query, options: options}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, tenantID, filterKey, filterValue string) (string, error) {
	text, err := s.provider.Generate(ctx, s.query(filterKey, filterValue), s.options...)
	if err != nil {
		return "", fmt.Errorf("summarize %s=%s: %w", filterKey, filterValue, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("summarize %s=%s: %w", filterKey, filterValue, ErrEmptySummary)
	}
	return text, nil
}
