// Package parser turns free-text backend output into structured items.
//
// Parsing never fails: missing markers leave empty fields, text before the
// first record is dropped, and a short response simply yields fewer records.
// Metadata is attached by position from an allocation.Sequence, so the Nth
// record is assumed to answer the Nth requested slot.
package parser

import (
	"regexp"
	"strings"

	"question-bank-be/pkg/allocation"
)

var numberedLine = regexp.MustCompile(`^\d+\.\s+`)

// Result is the outcome of parsing one response.
type Result struct {
	Records   []Record
	Requested int // length of the sequence the records were matched against
	Shortfall int // requested slots with no record
	Surplus   int // records with no slot, left without metadata
}

// Document wraps the records in the persisted artifact shape.
func (r Result) Document() Document {
	return NewDocument(r.Records)
}

// rawRecord collects field text while walking the token stream.
type rawRecord struct {
	fields map[string]*strings.Builder
	seen   bool // any marker or non-blank text after the record marker
}

const promptField = ""

func newRawRecord() *rawRecord {
	return &rawRecord{fields: make(map[string]*strings.Builder)}
}

// open starts collecting a field. It returns nil for a field that already
// has a value so the repeated text is dropped.
func (r *rawRecord) open(field string) *strings.Builder {
	if _, ok := r.fields[field]; ok {
		return nil
	}
	b := &strings.Builder{}
	r.fields[field] = b
	return b
}

func (r *rawRecord) get(field string) (string, bool) {
	b, ok := r.fields[field]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(b.String()), true
}

// Parse extracts records of the given format from text and tags record i
// with seq[i].
func Parse(text string, format Format, seq allocation.Sequence) Result {
	var (
		raws    []*rawRecord
		current *rawRecord
		sink    *strings.Builder
	)
	for _, tok := range tokenize(text, format.markers()) {
		switch {
		case tok.kind == tokenMarker && tok.value == format.RecordMarker:
			current = newRawRecord()
			raws = append(raws, current)
			sink = current.open(promptField)
		case current == nil:
			// preamble
		case tok.kind == tokenMarker:
			current.seen = true
			sink = current.open(tok.value)
		default:
			if strings.TrimSpace(tok.value) != "" {
				current.seen = true
			}
			if sink != nil {
				sink.WriteString(tok.value)
			}
		}
	}

	result := Result{Requested: len(seq)}
	for _, raw := range raws {
		if !raw.seen {
			continue
		}
		rec := build(raw, format)
		if i := len(result.Records); i < len(seq) {
			rec.Difficulty = seq[i].Difficulty
			rec.BloomsLevel = seq[i].BloomsLevel
		} else {
			result.Surplus++
		}
		result.Records = append(result.Records, rec)
	}
	if n := len(result.Records); n < len(seq) {
		result.Shortfall = len(seq) - n
	}
	return result
}

func build(raw *rawRecord, format Format) Record {
	rec := Record{ItemType: format.ItemType}
	rec.Prompt, _ = raw.get(promptField)
	rec.Explanation, _ = raw.get(ExplanationMarker)

	answer, _ := raw.get(AnswerMarker)
	if format.MultiAnswer {
		rec.Answers = splitAnswers(answer)
	} else if answer != "" {
		rec.Answers = []string{answer}
	}

	if format.HasDistractors() {
		rec.Distractors = []string{}
		for _, m := range format.Distractors {
			if d, ok := raw.get(m); ok {
				rec.Distractors = append(rec.Distractors, d)
			}
		}
	}
	return rec
}

// splitAnswers reads one answer per non-blank line, dropping "1. " style
// numbering.
func splitAnswers(text string) []string {
	answers := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if loc := numberedLine.FindStringIndex(line); loc != nil {
			line = line[loc[1]:]
		}
		answers = append(answers, line)
	}
	return answers
}
