package orchestrator

import (
	"sync"
	"time"

	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/parser"
	"question-bank-be/pkg/taxonomy"
)

// JobState is the lifecycle of one per-type job.
type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// RunState is the lifecycle of a whole request.
type RunState string

const (
	RunAllocating RunState = "allocating"
	RunDispatched RunState = "dispatched"
	RunAwaiting   RunState = "awaiting"
	RunCompleted  RunState = "completed"
	RunFailed     RunState = "failed"
)

// TypeResult is what one job produced.
type TypeResult struct {
	ItemType     string
	State        JobState
	ArtifactName string
	Levels       allocation.LevelAllocation
	Difficulty   taxonomy.Distribution // local, re-derived for this type
	Blooms       taxonomy.Distribution
	Parse        parser.Result
	Duration     time.Duration
}

func (r TypeResult) Records() []parser.Record {
	return r.Parse.Records
}

func (r TypeResult) Document() parser.Document {
	return r.Parse.Document()
}

// Outcome of AllocateAndGenerate. Results is only set when State is
// RunCompleted.
type Outcome struct {
	Allocation allocation.ItemAllocation
	Results    []TypeResult // dispatch order

	mu    sync.Mutex
	state RunState
	jobs  []TypeResult
}

func (o *Outcome) setState(s RunState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Outcome) State() RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// JobStates reports the state of every dispatched job by item type.
func (o *Outcome) JobStates() map[string]JobState {
	o.mu.Lock()
	defer o.mu.Unlock()
	states := make(map[string]JobState, len(o.jobs))
	for i := range o.jobs {
		states[o.jobs[i].ItemType] = o.jobs[i].State
	}
	return states
}

// ByType maps item type to its result.
func (o *Outcome) ByType() map[string]TypeResult {
	out := make(map[string]TypeResult, len(o.Results))
	for _, r := range o.Results {
		out[r.ItemType] = r
	}
	return out
}

func (o *Outcome) ArtifactNames() []string {
	names := make([]string, 0, len(o.Results))
	for _, r := range o.Results {
		names = append(names, r.ArtifactName)
	}
	return names
}

// Documents maps item type to its persisted document.
func (o *Outcome) Documents() map[string]parser.Document {
	out := make(map[string]parser.Document, len(o.Results))
	for _, r := range o.Results {
		out[r.ItemType] = r.Document()
	}
	return out
}
