package allocation

import (
	"fmt"
	"strings"

	"question-bank-be/pkg/taxonomy"
)

// Strategy selects how a total is spread over several dimensions.
type Strategy string

const (
	// StrategyProduct rounds T × p1 × p2 × … per leaf, see Allocate.
	StrategyProduct Strategy = "product"
	// StrategyNested splits one dimension at a time, see AllocateNested.
	StrategyNested Strategy = "nested"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyProduct:
		return StrategyProduct, nil
	case StrategyNested:
		return StrategyNested, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidAllocation, s)
}

func (s Strategy) Allocate(total int, dims ...taxonomy.Distribution) (Allocation, error) {
	if s == StrategyNested {
		return AllocateNested(total, dims...)
	}
	return Allocate(total, dims...)
}

// ItemCell is a (type, difficulty, Bloom's level) combination with its count.
type ItemCell struct {
	ItemType    string `json:"question_type"`
	Difficulty  string `json:"difficulty"`
	BloomsLevel string `json:"blooms_level"`
	Count       int    `json:"count"`
}

func (c ItemCell) Level() taxonomy.Level {
	return taxonomy.Level{Difficulty: c.Difficulty, BloomsLevel: c.BloomsLevel}
}

// ItemAllocation is the global allocation across all three dimensions.
type ItemAllocation struct {
	Cells []ItemCell
}

func (a ItemAllocation) Total() int {
	total := 0
	for _, c := range a.Cells {
		total += c.Count
	}
	return total
}

// AllocateItems allocates total across item types × difficulty × Bloom's level.
func AllocateItems(total int, types, difficulty, blooms taxonomy.Distribution) (ItemAllocation, error) {
	return StrategyProduct.Items(total, types, difficulty, blooms)
}

func (s Strategy) Items(total int, types, difficulty, blooms taxonomy.Distribution) (ItemAllocation, error) {
	a, err := s.Allocate(total, types, difficulty, blooms)
	if err != nil {
		return ItemAllocation{}, err
	}
	cells := make([]ItemCell, len(a.Cells))
	for i, c := range a.Cells {
		cells[i] = ItemCell{
			ItemType:    c.Labels[0],
			Difficulty:  c.Labels[1],
			BloomsLevel: c.Labels[2],
			Count:       c.Count,
		}
	}
	return ItemAllocation{Cells: cells}, nil
}

// TypeGroup is the slice of a global allocation belonging to one item type.
type TypeGroup struct {
	ItemType string
	Cells    []ItemCell
	Total    int
}

// GroupByType splits the allocation per item type, in first-appearance order.
func (a ItemAllocation) GroupByType() []TypeGroup {
	var groups []TypeGroup
	index := make(map[string]int)
	for _, c := range a.Cells {
		i, ok := index[c.ItemType]
		if !ok {
			i = len(groups)
			index[c.ItemType] = i
			groups = append(groups, TypeGroup{ItemType: c.ItemType})
		}
		groups[i].Cells = append(groups[i].Cells, c)
		groups[i].Total += c.Count
	}
	return groups
}

// Distributions re-derives local difficulty and Bloom's distributions for the
// group: each cell adds count/total to both of its labels. Re-allocating the
// group total with these reproduces the group's cells up to rounding.
func (g TypeGroup) Distributions() (difficulty, blooms taxonomy.Distribution) {
	if g.Total == 0 {
		return difficulty, blooms
	}
	for _, c := range g.Cells {
		share := float64(c.Count) / float64(g.Total)
		difficulty.Add(c.Difficulty, share)
		blooms.Add(c.BloomsLevel, share)
	}
	return difficulty, blooms
}

// LevelCell is a (difficulty, Bloom's level) combination inside one item type.
type LevelCell struct {
	Level taxonomy.Level
	Count int
}

// LevelAllocation is the per-type breakdown a single generation job works from.
type LevelAllocation struct {
	Cells []LevelCell
}

func (a LevelAllocation) Total() int {
	total := 0
	for _, c := range a.Cells {
		total += c.Count
	}
	return total
}

// AllocateLevels allocates one item type's total across difficulty × Bloom's level.
func AllocateLevels(total int, difficulty, blooms taxonomy.Distribution) (LevelAllocation, error) {
	return StrategyProduct.Levels(total, difficulty, blooms)
}

func (s Strategy) Levels(total int, difficulty, blooms taxonomy.Distribution) (LevelAllocation, error) {
	a, err := s.Allocate(total, difficulty, blooms)
	if err != nil {
		return LevelAllocation{}, err
	}
	cells := make([]LevelCell, len(a.Cells))
	for i, c := range a.Cells {
		cells[i] = LevelCell{
			Level: taxonomy.Level{Difficulty: c.Labels[0], BloomsLevel: c.Labels[1]},
			Count: c.Count,
		}
	}
	return LevelAllocation{Cells: cells}, nil
}
