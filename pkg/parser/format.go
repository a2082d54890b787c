package parser

import (
	"errors"
	"fmt"

	"question-bank-be/pkg/taxonomy"
)

var ErrUnknownItemType = errors.New("unknown item type")

// Field markers shared by every format.
const (
	AnswerMarker      = "ANSWER:"
	ExplanationMarker = "EXPLANATION:"
)

// Format describes how one item type is laid out in backend text and how its
// records are named and serialized.
type Format struct {
	ItemType     string
	RecordMarker string   // starts a record, e.g. "QUESTION:"
	PromptKey    string   // JSON key of the primary text
	Suffix       string   // artifact name suffix
	MultiAnswer  bool     // answer is a numbered list
	Distractors  []string // auxiliary markers, in order
}

// HasDistractors reports whether records of this format carry wrong options.
func (f Format) HasDistractors() bool {
	return len(f.Distractors) > 0
}

// markers returns every marker the tokenizer should recognise for f.
func (f Format) markers() []string {
	out := []string{f.RecordMarker, AnswerMarker, ExplanationMarker}
	return append(out, f.Distractors...)
}

var formats = map[string]Format{
	taxonomy.ItemTypeMCQ: {
		ItemType:     taxonomy.ItemTypeMCQ,
		RecordMarker: "QUESTION:",
		PromptKey:    "question",
		Suffix:       "mcqs",
		Distractors:  []string{"DISTRACTOR1:", "DISTRACTOR2:", "DISTRACTOR3:"},
	},
	taxonomy.ItemTypeTF: {
		ItemType:     taxonomy.ItemTypeTF,
		RecordMarker: "STATEMENT:",
		PromptKey:    "statement",
		Suffix:       "tf",
	},
	taxonomy.ItemTypeFIB: {
		ItemType:     taxonomy.ItemTypeFIB,
		RecordMarker: "QUESTION:",
		PromptKey:    "question",
		Suffix:       "fib",
		MultiAnswer:  true,
	},
}

// Lookup returns the format registered for itemType.
func Lookup(itemType string) (Format, error) {
	f, ok := formats[itemType]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownItemType, itemType)
	}
	return f, nil
}

// ItemTypes lists the supported item types in a stable order.
func ItemTypes() []string {
	return []string{taxonomy.ItemTypeMCQ, taxonomy.ItemTypeFIB, taxonomy.ItemTypeTF}
}
