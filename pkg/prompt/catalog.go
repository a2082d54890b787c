package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed guidelines.yaml
var defaultGuidelines []byte

// ItemGuide holds the per-type wording of a generation prompt.
type ItemGuide struct {
	Noun         string   `yaml:"noun"` // e.g. "multiple-choice questions"
	Unit         string   `yaml:"unit"` // what one record is called
	Rules        []string `yaml:"rules"`
	Expectations []string `yaml:"expectations"`
	Layout       []string `yaml:"layout"`
}

// Catalog is the wording used to build prompts.
type Catalog struct {
	SystemPrompt      string                       `yaml:"system_prompt"`
	SummaryQuery      string                       `yaml:"summary_query"`
	Difficulty        map[string]string            `yaml:"difficulty"`
	DefaultDifficulty string                       `yaml:"default_difficulty"`
	Blooms            map[string]map[string]string `yaml:"blooms"`
	DefaultBlooms     string                       `yaml:"default_blooms"`
	Items             map[string]ItemGuide         `yaml:"items"`
}

// LoadCatalog parses a YAML guideline catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse guideline catalog: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("guideline catalog has no item types")
	}
	return &c, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultGuidelines)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) DifficultyDescription(level string) string {
	if d, ok := c.Difficulty[level]; ok {
		return d
	}
	return c.DefaultDifficulty
}

func (c *Catalog) BloomsGuideline(level, itemType string) string {
	if g, ok := c.Blooms[itemType][level]; ok {
		return g
	}
	return c.DefaultBlooms
}

// Summary renders the content summary query for one filter.
func (c *Catalog) Summary(filterKey, filterValue string) string {
	return strings.NewReplacer("{key}", filterKey, "{value}", filterValue).Replace(c.SummaryQuery)
}
