// Package taxonomy holds the three classification dimensions of an assessment
// item and the ordered proportion maps used to request them.
package taxonomy

// Item types understood by the parser and prompt builder.
const (
	ItemTypeMCQ = "mcq"
	ItemTypeTF  = "tf"
	ItemTypeFIB = "fib"
)

// Difficulty levels.
const (
	DifficultyBasic        = "basic"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Bloom's taxonomy levels.
const (
	BloomsRemember = "remember"
	BloomsApply    = "apply"
	BloomsAnalyze  = "analyze"
)

// Level is the (difficulty, cognitive level) tag attached to one generated item.
type Level struct {
	Difficulty  string `json:"difficulty"`
	BloomsLevel string `json:"blooms_level"`
}

// Key joins the two labels, e.g. "basic_remember".
func (l Level) Key() string {
	return l.Difficulty + "_" + l.BloomsLevel
}
