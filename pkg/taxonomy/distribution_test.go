package taxonomy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionUnmarshalKeepsOrder(t *testing.T) {
	var d Distribution
	err := json.Unmarshal([]byte(`{"tf": 0.3, "mcq": 0.4, "fib": 0.3}`), &d)
	require.NoError(t, err)

	assert.Equal(t, []string{"tf", "mcq", "fib"}, d.Labels())
	p, ok := d.Get("mcq")
	assert.True(t, ok)
	assert.InDelta(t, 0.4, p, 1e-12)
}

func TestDistributionUnmarshalRejectsNonObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array", `[0.5, 0.5]`},
		{"string value", `{"basic": "half"}`},
		{"nested", `{"basic": {"x": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Distribution
			assert.Error(t, json.Unmarshal([]byte(tt.raw), &d))
		})
	}
}

func TestDistributionMarshalRoundTrip(t *testing.T) {
	d := NewDistribution(
		Share{Label: "remember", Proportion: 0.3},
		Share{Label: "apply", Proportion: 0.4},
		Share{Label: "analyze", Proportion: 0.3},
	)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"remember":0.3,"apply":0.4,"analyze":0.3}`, string(raw))

	var back Distribution
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d.Shares(), back.Shares())
}

func TestDistributionFormatTruncates(t *testing.T) {
	d := NewDistribution(
		Share{Label: "basic", Proportion: 0.3},
		Share{Label: "intermediate", Proportion: 0.29},
		Share{Label: "advanced", Proportion: 1.0 / 3.0},
	)
	// 0.29*100 is 28.999..., truncation keeps 28.
	assert.Equal(t, "basic30_intermediate28_advanced33", d.Format())
}

func TestParseDistribution(t *testing.T) {
	d, err := ParseDistribution("mcq=0.4, fib=0.3,tf=0.3")
	require.NoError(t, err)
	assert.Equal(t, []string{"mcq", "fib", "tf"}, d.Labels())
	assert.InDelta(t, 1.0, d.Sum(), 1e-9)

	_, err = ParseDistribution("mcq:0.4")
	assert.Error(t, err)
	_, err = ParseDistribution("mcq=abc")
	assert.Error(t, err)
}

func TestDistributionValidate(t *testing.T) {
	assert.Error(t, Distribution{}.Validate())
	assert.Error(t, NewDistribution(Share{Label: "basic", Proportion: 1.2}).Validate())
	assert.Error(t, NewDistribution(Share{Label: " ", Proportion: 0.2}).Validate())
	assert.NoError(t, NewDistribution(Share{Label: "basic", Proportion: 1}).Validate())
}

func TestDistributionAddAccumulates(t *testing.T) {
	var d Distribution
	d.Add("basic", 0.25)
	d.Add("advanced", 0.5)
	d.Add("basic", 0.25)
	assert.Equal(t, []string{"basic", "advanced"}, d.Labels())
	p, _ := d.Get("basic")
	assert.InDelta(t, 0.5, p, 1e-12)
}
