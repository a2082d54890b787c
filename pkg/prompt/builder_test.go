package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/parser"
	"question-bank-be/pkg/taxonomy"
)

func levels() allocation.LevelAllocation {
	return allocation.LevelAllocation{Cells: []allocation.LevelCell{
		{Level: taxonomy.Level{Difficulty: "basic", BloomsLevel: "remember"}, Count: 2},
		{Level: taxonomy.Level{Difficulty: "advanced", BloomsLevel: "analyze"}, Count: 3},
	}}
}

func TestBuildMultipleChoicePrompt(t *testing.T) {
	format, err := parser.Lookup(taxonomy.ItemTypeMCQ)
	require.NoError(t, err)

	out, err := NewBuilder(nil).Build(Request{Format: format, Summary: "Chapter 1 covers stacks.", Levels: levels()})
	require.NoError(t, err)

	assert.Contains(t, out, "sophisticated multiple-choice questions")
	assert.Contains(t, out, "Chapter 1 covers stacks.")
	assert.Contains(t, out, "Create exactly 5 multiple-choice questions")
	assert.Contains(t, out, "For 2 questions at BASIC difficulty and REMEMBER Bloom's level:")
	assert.Contains(t, out, "- Difficulty: recall of facts and basic understanding of concepts")
	assert.Contains(t, out, "Stem should require students to examine, compare, or evaluate information.")
	assert.Contains(t, out, `Start IMMEDIATELY with your first question using "QUESTION:"`)
	assert.Contains(t, out, "DISTRACTOR3: [Third incorrect option]")

	// cells appear in allocation order
	assert.Less(t, strings.Index(out, "- basic_remember: 2"), strings.Index(out, "- advanced_analyze: 3"))
}

func TestBuildUsesTypeSpecificWording(t *testing.T) {
	tf, err := parser.Lookup(taxonomy.ItemTypeTF)
	require.NoError(t, err)
	out, err := NewBuilder(nil).Build(Request{Format: tf, Levels: levels()})
	require.NoError(t, err)
	assert.Contains(t, out, `using "STATEMENT:"`)
	assert.Contains(t, out, "before the first statement")
	assert.NotContains(t, out, "DISTRACTOR1")

	fib, err := parser.Lookup(taxonomy.ItemTypeFIB)
	require.NoError(t, err)
	out, err = NewBuilder(nil).Build(Request{Format: fib, Levels: levels()})
	require.NoError(t, err)
	assert.Contains(t, out, `"________" (8 underscores)`)
	assert.Contains(t, out, "Remove key terms, definitions, or factual information.")
}

func TestBuildUnknownType(t *testing.T) {
	_, err := NewBuilder(nil).Build(Request{Format: parser.Format{ItemType: "essay"}})
	assert.ErrorIs(t, err, parser.ErrUnknownItemType)
}

func TestCatalogFallbacks(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, "appropriate college-level understanding", c.DifficultyDescription("expert"))
	assert.Equal(t, "appropriate cognitive level thinking", c.BloomsGuideline("create", "mcq"))
	assert.Equal(t, "appropriate cognitive level thinking", c.BloomsGuideline("remember", "essay"))
	assert.NotEmpty(t, c.SystemPrompt)
}

func TestSummaryQuery(t *testing.T) {
	q := NewBuilder(nil).SummaryQuery("toc_level_1_title", "ch01")
	assert.Equal(t, "Provide a comprehensive summary of content where toc_level_1_title=ch01. Include key concepts, topics, and important details.", q)
}

func TestLoadCatalogRejectsEmpty(t *testing.T) {
	_, err := LoadCatalog([]byte("difficulty: {}\n"))
	assert.Error(t, err)
	_, err = LoadCatalog([]byte("items: [not, a, map"))
	assert.Error(t, err)
}
