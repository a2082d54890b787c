package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is one generated assessment item.
type Record struct {
	ItemType    string
	Prompt      string   // question text, or the statement for true/false
	Answers     []string // one entry for single-answer types
	Explanation string
	Distractors []string // wrong options, multiple choice only
	Difficulty  string
	BloomsLevel string
}

// Answer returns the single answer of a single-answer record.
func (r Record) Answer() string {
	return strings.Join(r.Answers, "\n")
}

type wireRecord struct {
	Question    *string         `json:"question,omitempty"`
	Statement   *string         `json:"statement,omitempty"`
	Answer      json.RawMessage `json:"answer"`
	Explanation string          `json:"explanation"`
	Distractors *[]string       `json:"distractors,omitempty"`
	Difficulty  string          `json:"difficulty"`
	BloomsLevel string          `json:"blooms_level"`
	ItemType    string          `json:"question_type"`
}

// MarshalJSON writes the record in the artifact layout: the prompt under the
// format's key, a string answer (a list for fill-in-the-blank) and a
// distractors list for multiple choice.
func (r Record) MarshalJSON() ([]byte, error) {
	format, known := formats[r.ItemType]

	w := wireRecord{
		Explanation: r.Explanation,
		Difficulty:  r.Difficulty,
		BloomsLevel: r.BloomsLevel,
		ItemType:    r.ItemType,
	}

	prompt := r.Prompt
	if known && format.PromptKey == "statement" {
		w.Statement = &prompt
	} else {
		w.Question = &prompt
	}

	var (
		answer []byte
		err    error
	)
	if known && format.MultiAnswer {
		answers := r.Answers
		if answers == nil {
			answers = []string{}
		}
		answer, err = json.Marshal(answers)
	} else {
		answer, err = json.Marshal(r.Answer())
	}
	if err != nil {
		return nil, err
	}
	w.Answer = answer

	if known && format.HasDistractors() {
		distractors := r.Distractors
		if distractors == nil {
			distractors = []string{}
		}
		w.Distractors = &distractors
	}

	return json.Marshal(w)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = Record{
		ItemType:    w.ItemType,
		Explanation: w.Explanation,
		Difficulty:  w.Difficulty,
		BloomsLevel: w.BloomsLevel,
	}
	switch {
	case w.Statement != nil:
		r.Prompt = *w.Statement
	case w.Question != nil:
		r.Prompt = *w.Question
	}
	if w.Distractors != nil {
		r.Distractors = *w.Distractors
	}

	raw := bytes.TrimSpace(w.Answer)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &r.Answers); err != nil {
			return fmt.Errorf("answer list: %w", err)
		}
	default:
		var answer string
		if err := json.Unmarshal(raw, &answer); err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		if answer != "" {
			r.Answers = []string{answer}
		}
	}
	return nil
}

// Document is the persisted artifact: {"response": [...]}.
type Document struct {
	Response []Record `json:"response"`
}

func NewDocument(records []Record) Document {
	if records == nil {
		records = []Record{}
	}
	return Document{Response: records}
}
