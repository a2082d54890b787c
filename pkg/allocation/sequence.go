package allocation

import "question-bank-be/pkg/taxonomy"

// Sequence lists the level expected for each generated item, by position.
// The Nth record parsed from a backend response is tagged with entry N; nothing
// checks that the backend really answered in this order.
type Sequence []taxonomy.Level

// BuildSequence repeats each cell's level Count times, cells in order.
func BuildSequence(a LevelAllocation) Sequence {
	seq := make(Sequence, 0, a.Total())
	for _, c := range a.Cells {
		for i := 0; i < c.Count; i++ {
			seq = append(seq, c.Level)
		}
	}
	return seq
}

// At returns the level at position i, or the zero Level past the end.
func (s Sequence) At(i int) taxonomy.Level {
	if i < 0 || i >= len(s) {
		return taxonomy.Level{}
	}
	return s[i]
}
