package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-bank-be/internal/pkg/logger"
	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/llm"
	"question-bank-be/pkg/llm/ollama"
	"question-bank-be/pkg/orchestrator"
	"question-bank-be/pkg/prompt"
	"question-bank-be/pkg/taxonomy"
)

// Runs a small question set against a local Ollama server.
// OLLAMA_BASE_URL enables the test, OLLAMA_TEST_MODEL overrides the model.
func TestOllamaQuestionGeneration(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_TEST_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	provider := ollama.NewOllamaProvider(baseURL, model)
	orch := orchestrator.New(provider, prompt.NewBuilder(nil), logger.NewNopLogger(), orchestrator.Config{
		MaxWorkers:      2,
		Strategy:        allocation.StrategyNested,
		GenerateOptions: []llm.Option{llm.WithTemperature(0)},
	})

	outcome, err := orch.AllocateAndGenerate(ctx, orchestrator.Plan{
		Total: 4,
		Types: taxonomy.NewDistribution(
			taxonomy.Share{Label: taxonomy.ItemTypeMCQ, Proportion: 0.5},
			taxonomy.Share{Label: taxonomy.ItemTypeTF, Proportion: 0.5},
		),
		Difficulty:  taxonomy.NewDistribution(taxonomy.Share{Label: "basic", Proportion: 1}),
		Blooms:      taxonomy.NewDistribution(taxonomy.Share{Label: "remember", Proportion: 1}),
		Summary:     "A stack is a last-in first-out collection. Push adds an element on top and pop removes the top element.",
		FilterValue: "integration",
	})
	require.NoError(t, err)
	assert.Equal(t, orchestrator.RunCompleted, outcome.State())

	for itemType, result := range outcome.ByType() {
		t.Logf("%s: requested %d, parsed %d", itemType, result.Parse.Requested, len(result.Records()))
		assert.NotEmpty(t, result.Records(), itemType)
		for i, rec := range result.Records() {
			if i >= result.Parse.Requested {
				break // surplus records carry no metadata
			}
			assert.NotEmpty(t, rec.Difficulty)
			assert.NotEmpty(t, rec.BloomsLevel)
		}
	}
}
