package parser

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/taxonomy"
)

func TestRecordJSONLayout(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name: "multiple choice",
			record: Record{
				ItemType: taxonomy.ItemTypeMCQ, Prompt: "Q", Answers: []string{"A"}, Explanation: "E",
				Difficulty: "basic", BloomsLevel: "remember",
			},
			want: `{"question":"Q","answer":"A","explanation":"E","distractors":[],"difficulty":"basic","blooms_level":"remember","question_type":"mcq"}`,
		},
		{
			name:   "true false",
			record: Record{ItemType: taxonomy.ItemTypeTF, Prompt: "S", Answers: []string{"FALSE"}},
			want:   `{"statement":"S","answer":"FALSE","explanation":"","difficulty":"","blooms_level":"","question_type":"tf"}`,
		},
		{
			name:   "fill in the blank",
			record: Record{ItemType: taxonomy.ItemTypeFIB, Prompt: "The ____", Answers: []string{"x", "y"}},
			want:   `{"question":"The ____","answer":["x","y"],"explanation":"","difficulty":"","blooms_level":"","question_type":"fib"}`,
		},
		{
			name:   "fill in the blank without answers",
			record: Record{ItemType: taxonomy.ItemTypeFIB},
			want:   `{"question":"","answer":[],"explanation":"","difficulty":"","blooms_level":"","question_type":"fib"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.record)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestParsedRecordsRoundTrip(t *testing.T) {
	inputs := []struct {
		itemType string
		text     string
	}{
		{taxonomy.ItemTypeMCQ, mcqText},
		{taxonomy.ItemTypeMCQ, "QUESTION: no answer\nDISTRACTOR1: d"},
		{taxonomy.ItemTypeTF, "STATEMENT: Go has generics.\nANSWER: TRUE\nEXPLANATION: Since 1.18.\nSTATEMENT: half"},
		{taxonomy.ItemTypeFIB, "QUESTION: ___ and ___\nANSWER:\n1. a\n2. b\nEXPLANATION: e\nQUESTION: empty"},
	}
	seq := allocation.Sequence{basicRemember, advancedAnalyze}

	for _, in := range inputs {
		t.Run(in.itemType, func(t *testing.T) {
			res := Parse(in.text, mustFormat(t, in.itemType), seq)
			require.NotEmpty(t, res.Records)

			raw, err := json.Marshal(res.Document())
			require.NoError(t, err)

			var back Document
			require.NoError(t, json.Unmarshal(raw, &back))
			if diff := cmp.Diff(res.Records, back.Response); diff != "" {
				t.Errorf("round trip mismatch (-parsed +decoded):\n%s", diff)
			}
		})
	}
}

func TestEmptyDocumentMarshalsEmptyList(t *testing.T) {
	raw, err := json.Marshal(Result{}.Document())
	require.NoError(t, err)
	assert.JSONEq(t, `{"response":[]}`, string(raw))
}
