package summary

import (
	"context"
	"strings"

	"question-bank-be/pkg/metrics"
)

// Store is a key/value cache for summaries.
type Store interface {
	Get(key string) (string, bool)
	Save(key, summary string)
}

// CachedSummarizer serves repeated requests for the same tenant and filter
// from a Store.
type CachedSummarizer struct {
	next  Summarizer
	store Store
}

func NewCachedSummarizer(next Summarizer, store Store) *CachedSummarizer {
	return &CachedSummarizer{next: next, store: store}
}

func CacheKey(tenantID, filterKey, filterValue string) string {
	return strings.Join([]string{tenantID, filterKey, filterValue}, "|")
}

func (s *CachedSummarizer) Summarize(ctx context.Context, tenantID, filterKey, filterValue string) (string, error) {
	key := CacheKey(tenantID, filterKey, filterValue)
	if text, ok := s.store.Get(key); ok {
		metrics.SummaryCacheTotal.WithLabelValues("hit").Inc()
		return text, nil
	}
	metrics.SummaryCacheTotal.WithLabelValues("miss").Inc()

	text, err := s.next.Summarize(ctx, tenantID, filterKey, filterValue)
	if err != nil {
		return "", err
	}
	s.store.Save(key, text)
	return text, nil
}
