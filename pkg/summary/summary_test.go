package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-bank-be/pkg/llm"
	"question-bank-be/pkg/metrics"
)

func query(k, v string) string { return "summarize " + k + "=" + v }

type stubProvider struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *stubProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestLLMSummarizer(t *testing.T) {
	p := &stubProvider{reply: "  Stacks and queues.  "}
	s := NewLLMSummarizer(p, query)

	got, err := s.Summarize(context.Background(), "t1", "toc", "ch01")
	require.NoError(t, err)
	assert.Equal(t, "Stacks and queues.", got)
	assert.Equal(t, []string{"summarize toc=ch01"}, p.prompts)
}

func TestLLMSummarizerErrors(t *testing.T) {
	backendErr := errors.New("backend down")
	_, err := NewLLMSummarizer(&stubProvider{err: backendErr}, query).Summarize(context.Background(), "t", "k", "v")
	assert.ErrorIs(t, err, backendErr)

	_, err = NewLLMSummarizer(&stubProvider{reply: "   "}, query).Summarize(context.Background(), "t", "k", "v")
	assert.ErrorIs(t, err, ErrEmptySummary)
}

func TestRetrievalClient(t *testing.T) {
	var got retrievalRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(retrievalResponse{Response: "chapter summary"})
	}))
	defer srv.Close()

	c := NewRetrievalClient(srv.URL+"/", query)
	text, err := c.Summarize(context.Background(), "1305101920", "toc_level_1_title", "ch01")
	require.NoError(t, err)
	assert.Equal(t, "chapter summary", text)
	assert.Equal(t, "1305101920", got.TenantID)
	assert.Equal(t, map[string]string{"toc_level_1_title": "ch01"}, got.Filters)
	assert.Equal(t, "summarize toc_level_1_title=ch01", got.Query)
}

func TestRetrievalClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRetrievalClient(srv.URL, query).Summarize(context.Background(), "t", "k", "v")
	assert.ErrorContains(t, err, "status 502")
}

type mapStore map[string]string

func (m mapStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapStore) Save(key, summary string) { m[key] = summary }

func TestCachedSummarizerCallsBackendOnce(t *testing.T) {
	p := &stubProvider{reply: "summary"}
	s := NewCachedSummarizer(NewLLMSummarizer(p, query), mapStore{})
	hits := testutil.ToFloat64(metrics.SummaryCacheTotal.WithLabelValues("hit"))

	for i := 0; i < 3; i++ {
		got, err := s.Summarize(context.Background(), "t", "k", "v")
		require.NoError(t, err)
		assert.Equal(t, "summary", got)
	}
	assert.Len(t, p.prompts, 1)
	assert.Equal(t, hits+2, testutil.ToFloat64(metrics.SummaryCacheTotal.WithLabelValues("hit")))

	_, err := s.Summarize(context.Background(), "t", "k", "other")
	require.NoError(t, err)
	assert.Len(t, p.prompts, 2)
}

func TestCachedSummarizerDoesNotCacheErrors(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}
	store := mapStore{}
	s := NewCachedSummarizer(NewLLMSummarizer(p, query), store)

	_, err := s.Summarize(context.Background(), "t", "k", "v")
	assert.Error(t, err)
	assert.Empty(t, store)
}
