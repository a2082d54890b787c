// Package prompt builds the generation prompt for one item type.
package prompt

import (
	"fmt"
	"strings"

	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/parser"
)

// Request is everything one generation job puts into its prompt.
type Request struct {
	Format  parser.Format
	Summary string
	Levels  allocation.LevelAllocation
}

// Builder renders prompts from a Catalog.
type Builder struct {
	catalog *Catalog
}

func NewBuilder(catalog *Catalog) *Builder {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Builder{catalog: catalog}
}

func (b *Builder) Catalog() *Catalog {
	return b.catalog
}

// SystemPrompt is sent alongside every generation request.
func (b *Builder) SystemPrompt() string {
	return b.catalog.SystemPrompt
}

// SummaryQuery asks the backend for the shared content summary.
func (b *Builder) SummaryQuery(filterKey, filterValue string) string {
	return b.catalog.Summary(filterKey, filterValue)
}

// Build renders the prompt for req. The exact count requested is the total of
// req.Levels.
func (b *Builder) Build(req Request) (string, error) {
	guide, ok := b.catalog.Items[req.Format.ItemType]
	if !ok {
		return "", fmt.Errorf("%w: no prompt guide for %q", parser.ErrUnknownItemType, req.Format.ItemType)
	}

	var prompt strings.Builder

	// 1. Role and source material
	fmt.Fprintf(&prompt, "You are a professor writing sophisticated %s for an upper-level university course. ", guide.Noun)
	prompt.WriteString("The questions will be based on this chapter summary:\n\n")
	prompt.WriteString(req.Summary)
	prompt.WriteString("\n\n")

	// 2. Count and per-cell guidelines
	fmt.Fprintf(&prompt, "Create exactly %d %s following these specific guidelines:\n", req.Levels.Total(), guide.Noun)
	b.writeCellGuidelines(&prompt, req)

	// 3. Formatting rules
	b.writeFormatting(&prompt, req.Format, guide)

	// 4. Expected layout and breakdown
	b.writeLayout(&prompt, guide)
	b.writeBreakdown(&prompt, req.Levels)

	prompt.WriteString("\nMake sure to vary the cognitive demands according to the Bloom's taxonomy levels specified.\n")
	return prompt.String(), nil
}

func (b *Builder) writeCellGuidelines(prompt *strings.Builder, req Request) {
	for _, cell := range req.Levels.Cells {
		fmt.Fprintf(prompt, "\nFor %d questions at %s difficulty and %s Bloom's level:\n",
			cell.Count,
			strings.ToUpper(cell.Level.Difficulty),
			strings.ToUpper(cell.Level.BloomsLevel),
		)
		fmt.Fprintf(prompt, "- Difficulty: %s\n", b.catalog.DifficultyDescription(cell.Level.Difficulty))
		fmt.Fprintf(prompt, "- Bloom's Level Guidelines: %s\n", b.catalog.BloomsGuideline(cell.Level.BloomsLevel, req.Format.ItemType))
	}
}

func (b *Builder) writeFormatting(prompt *strings.Builder, format parser.Format, guide ItemGuide) {
	prompt.WriteString("\nIMPORTANT FORMATTING INSTRUCTIONS:\n")
	fmt.Fprintf(prompt, "- Start IMMEDIATELY with your first question using %q\n", format.RecordMarker)
	prompt.WriteString("- DO NOT write ANY introductory text like \"Based on the chapter...\" or \"I'll create...\"\n")
	fmt.Fprintf(prompt, "- DO NOT include ANY preamble or explanation before the first %s\n", guide.Unit)
	for _, rule := range guide.Rules {
		fmt.Fprintf(prompt, "- %s\n", rule)
	}

	prompt.WriteString("\nEach question should:\n")
	for i, e := range guide.Expectations {
		fmt.Fprintf(prompt, "%d. %s\n", i+1, e)
	}
}

func (b *Builder) writeLayout(prompt *strings.Builder, guide ItemGuide) {
	prompt.WriteString("\nFormat each question exactly as follows:\n")
	for _, line := range guide.Layout {
		prompt.WriteString(line)
		prompt.WriteString("\n")
	}
}

func (b *Builder) writeBreakdown(prompt *strings.Builder, levels allocation.LevelAllocation) {
	prompt.WriteString("\nDistribution of questions (in this order):\n")
	for _, cell := range levels.Cells {
		fmt.Fprintf(prompt, "- %s: %d (difficulty %s, Bloom's level %s)\n",
			cell.Level.Key(), cell.Count, cell.Level.Difficulty, cell.Level.BloomsLevel)
	}
}
