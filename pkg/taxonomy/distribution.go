package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Share is one label of a Distribution with its proportion.
type Share struct {
	Label      string
	Proportion float64
}

// Distribution maps labels to proportions while keeping insertion order.
// Proportions are expected to sum to 1.0 but this is not enforced; a skewed
// distribution still allocates, just unevenly.
type Distribution struct {
	shares []Share
	index  map[string]int
}

// NewDistribution builds a Distribution from shares in the given order.
// A repeated label overwrites the earlier proportion and keeps its position.
func NewDistribution(shares ...Share) Distribution {
	var d Distribution
	for _, s := range shares {
		d.Set(s.Label, s.Proportion)
	}
	return d
}

// Set adds or replaces a label.
func (d *Distribution) Set(label string, proportion float64) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[label]; ok {
		d.shares[i].Proportion = proportion
		return
	}
	d.index[label] = len(d.shares)
	d.shares = append(d.shares, Share{Label: label, Proportion: proportion})
}

// Add accumulates proportion onto label, appending it if new.
func (d *Distribution) Add(label string, proportion float64) {
	if i, ok := d.index[label]; ok {
		d.shares[i].Proportion += proportion
		return
	}
	d.Set(label, proportion)
}

func (d Distribution) Get(label string) (float64, bool) {
	i, ok := d.index[label]
	if !ok {
		return 0, false
	}
	return d.shares[i].Proportion, true
}

// Shares returns a copy of the shares in insertion order.
func (d Distribution) Shares() []Share {
	out := make([]Share, len(d.shares))
	copy(out, d.shares)
	return out
}

func (d Distribution) Labels() []string {
	out := make([]string, len(d.shares))
	for i, s := range d.shares {
		out[i] = s.Label
	}
	return out
}

func (d Distribution) Len() int { return len(d.shares) }

func (d Distribution) Sum() float64 {
	var total float64
	for _, s := range d.shares {
		total += s.Proportion
	}
	return total
}

// Validate rejects empty distributions and proportions outside [0,1].
func (d Distribution) Validate() error {
	if len(d.shares) == 0 {
		return fmt.Errorf("distribution is empty")
	}
	for _, s := range d.shares {
		if strings.TrimSpace(s.Label) == "" {
			return fmt.Errorf("distribution has an empty label")
		}
		if s.Proportion < 0 || s.Proportion > 1 {
			return fmt.Errorf("proportion for %q must be within [0,1], got %v", s.Label, s.Proportion)
		}
	}
	return nil
}

// Format renders the distribution for artifact names, e.g.
// "basic30_intermediate30_advanced40". Percentages are truncated, not rounded.
func (d Distribution) Format() string {
	parts := make([]string, len(d.shares))
	for i, s := range d.shares {
		parts[i] = s.Label + strconv.Itoa(int(s.Proportion*100))
	}
	return strings.Join(parts, "_")
}

func (d Distribution) String() string {
	parts := make([]string, len(d.shares))
	for i, s := range d.shares {
		parts[i] = fmt.Sprintf("%s=%g", s.Label, s.Proportion)
	}
	return strings.Join(parts, ",")
}

// ParseDistribution reads "a=0.4,b=0.6" keeping the written order.
func ParseDistribution(s string) (Distribution, error) {
	var d Distribution
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, value, ok := strings.Cut(part, "=")
		if !ok {
			return Distribution{}, fmt.Errorf("invalid share %q, want label=proportion", part)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Distribution{}, fmt.Errorf("invalid proportion for %q: %w", label, err)
		}
		d.Set(strings.TrimSpace(label), p)
	}
	return d, nil
}

// MarshalJSON writes an object whose keys follow insertion order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d.shares {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(s.Proportion, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object token by token so key order survives;
// a plain map would lose it and break positional metadata downstream.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = Distribution{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("distribution must be a JSON object")
	}

	var out Distribution
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("distribution key must be a string")
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("proportion for %q must be a number", key)
		}
		p, err := num.Float64()
		if err != nil {
			return fmt.Errorf("proportion for %q: %w", key, err)
		}
		out.Set(key, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}
