// Package artifact stores generated question sets under deterministic names.
package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"question-bank-be/pkg/taxonomy"
)

var ErrInvalidName = errors.New("invalid artifact name")

// Sink persists one named document. Implementations must be safe for
// concurrent use; every generation job writes its own artifact.
type Sink interface {
	Put(ctx context.Context, name string, document any) error
}

// Name builds "{filter}_{difficulty}_{blooms}_{suffix}.json" from the
// distributions a job was given, e.g.
// "ch01_basic30_advanced70_remember100_mcqs.json".
func Name(filterValue string, difficulty, blooms taxonomy.Distribution, suffix string) string {
	return fmt.Sprintf("%s_%s_%s_%s.json", filterValue, difficulty.Format(), blooms.Format(), suffix)
}

func encode(document any) ([]byte, error) {
	data, err := json.MarshalIndent(document, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}
	return data, nil
}

// ValidateName rejects names that are empty or could leave the sink's namespace.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// NopSink discards every document.
type NopSink struct{}

func (NopSink) Put(context.Context, string, any) error { return nil }
