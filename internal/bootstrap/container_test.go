package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-bank-be/internal/config"
	"question-bank-be/internal/pkg/logger"
	"question-bank-be/internal/repository/memory"
	"question-bank-be/pkg/artifact"
	"question-bank-be/pkg/llm"
	"question-bank-be/pkg/prompt"
	"question-bank-be/pkg/summary"
)

type nopProvider struct{}

func (nopProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", nil
}

func (nopProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "summary", nil
}

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Artifact.Sink = "filesystem"
	cfg.Artifact.Dir = t.TempDir()
	cfg.Generation.AllocationStrategy = "nested"
	cfg.Generation.MaxWorkers = 2
	cfg.Ai.MaxTokens = 10000
	return cfg
}

func TestNewArtifactSink(t *testing.T) {
	cfg := testConfig(t)

	sink, err := NewArtifactSink(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &artifact.FilesystemSink{}, sink)

	cfg.Artifact.Sink = "none"
	sink, err = NewArtifactSink(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, artifact.NopSink{}, sink)

	cfg.Artifact.Sink = "redis"
	_, err = NewArtifactSink(cfg, nil)
	assert.Error(t, err)

	cfg.Artifact.Sink = "s3"
	_, err = NewArtifactSink(cfg, nil)
	assert.Error(t, err)
}

func TestNewSummarizer(t *testing.T) {
	cfg := testConfig(t)
	prompts := prompt.NewBuilder(nil)
	store := memory.NewSummaryRepository(0, 0)

	assert.IsType(t, &summary.LLMSummarizer{}, NewSummarizer(cfg, nopProvider{}, prompts, store))

	cfg.Summary.CacheTTL = 1
	assert.IsType(t, &summary.CachedSummarizer{}, NewSummarizer(cfg, nopProvider{}, prompts, store))

	cfg.Summary.CacheTTL = 0
	cfg.Summary.Backend = "retrieval"
	assert.IsType(t, &summary.RetrievalClient{}, NewSummarizer(cfg, nopProvider{}, prompts, store))
}

func TestNewOrchestrator(t *testing.T) {
	cfg := testConfig(t)
	_, err := NewOrchestrator(cfg, nopProvider{}, nil, logger.NewNopLogger())
	require.NoError(t, err)

	cfg.Generation.AllocationStrategy = "random"
	_, err = NewOrchestrator(cfg, nopProvider{}, nil, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestGenerateOptions(t *testing.T) {
	cfg := testConfig(t)
	opts := llm.Apply(GenerateOptions(cfg)...)
	require.NotNil(t, opts.Temperature)
	assert.Equal(t, 0.0, *opts.Temperature)
	assert.Equal(t, 10000, opts.MaxTokens)
}
