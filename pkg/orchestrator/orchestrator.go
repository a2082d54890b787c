// Package orchestrator allocates a question request across item types and runs
// one generation job per type on a bounded worker pool.
//
// A run moves through Allocating, Dispatched and Awaiting before it ends as
// Completed or Failed. Every job is waited for, even after one has failed, and
// a failed run returns no partial results.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"question-bank-be/internal/pkg/logger"
	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/artifact"
	"question-bank-be/pkg/llm"
	"question-bank-be/pkg/metrics"
	"question-bank-be/pkg/parser"
	"question-bank-be/pkg/prompt"
	"question-bank-be/pkg/taxonomy"
)

const module = "orchestrator"

// DefaultMaxWorkers bounds concurrent jobs when Config leaves it unset.
const DefaultMaxWorkers = 3

var (
	// ErrOrchestrationFailed wraps the first job failure of a run.
	ErrOrchestrationFailed = errors.New("question generation failed")

	ErrInvalidPlan = errors.New("invalid generation plan")
)

// Generator sends one prompt to a generation backend. llm.LLMProvider
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error)
}

// Plan is one allocate-and-generate request.
type Plan struct {
	Total       int
	Types       taxonomy.Distribution
	Difficulty  taxonomy.Distribution
	Blooms      taxonomy.Distribution
	Summary     string // shared by every job, never modified
	FilterValue string // used for artifact names
}

func (p Plan) Validate() error {
	if p.Total < 0 {
		return fmt.Errorf("%w: total must be >= 0", ErrInvalidPlan)
	}
	dims := []struct {
		name string
		dist taxonomy.Distribution
	}{
		{"question type", p.Types},
		{"difficulty", p.Difficulty},
		{"blooms", p.Blooms},
	}
	for _, d := range dims {
		if err := d.dist.Validate(); err != nil {
			return fmt.Errorf("%w: %s distribution: %v", ErrInvalidPlan, d.name, err)
		}
		if p.Total > 0 && d.dist.Sum() == 0 {
			return fmt.Errorf("%w: %s distribution: %w", ErrInvalidPlan, d.name, allocation.ErrAllocationDegenerate)
		}
	}
	if p.FilterValue != "" {
		if err := artifact.ValidateName(p.FilterValue); err != nil {
			return fmt.Errorf("%w: filter value: %v", ErrInvalidPlan, err)
		}
	}
	for _, itemType := range p.Types.Labels() {
		if _, err := parser.Lookup(itemType); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	}
	return nil
}

type Config struct {
	MaxWorkers int
	Strategy   allocation.Strategy
	// GenerateOptions are passed to every backend call.
	GenerateOptions []llm.Option
}

type Orchestrator struct {
	generator Generator
	prompts   *prompt.Builder
	logger    logger.ILogger
	config    Config
	tracer    trace.Tracer
}

func New(generator Generator, prompts *prompt.Builder, log logger.ILogger, config Config) *Orchestrator {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultMaxWorkers
	}
	if config.Strategy == "" {
		config.Strategy = allocation.StrategyProduct
	}
	if prompts == nil {
		prompts = prompt.NewBuilder(nil)
	}
	return &Orchestrator{
		generator: generator,
		prompts:   prompts,
		logger:    log,
		config:    config,
		tracer:    otel.Tracer("question-bank/orchestrator"),
	}
}

// job is the per-type unit of work handed to the pool.
type job struct {
	format     parser.Format
	group      allocation.TypeGroup
	difficulty taxonomy.Distribution
	blooms     taxonomy.Distribution
}

// AllocateAndGenerate computes the allocation for plan, runs one job per item
// type and returns every type's records. If any job fails the first failure in
// dispatch order is returned wrapped in ErrOrchestrationFailed, together with
// an Outcome that carries the job states but no results.
func (o *Orchestrator) AllocateAndGenerate(ctx context.Context, plan Plan) (*Outcome, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.AllocateAndGenerate",
		trace.WithAttributes(attribute.Int("plan.total", plan.Total)))
	defer span.End()

	outcome := &Outcome{}
	fail := func(err error) (*Outcome, error) {
		outcome.setState(RunFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.GenerationRequestsTotal.WithLabelValues(string(RunFailed)).Inc()
		return outcome, err
	}

	// 1. Allocating
	outcome.setState(RunAllocating)
	if err := plan.Validate(); err != nil {
		return fail(err)
	}
	global, err := o.config.Strategy.Items(plan.Total, plan.Types, plan.Difficulty, plan.Blooms)
	if err != nil {
		return fail(fmt.Errorf("allocate: %w", err))
	}
	outcome.Allocation = global

	groups := global.GroupByType()
	jobs := make([]job, 0, len(groups))
	for _, g := range groups {
		format, err := parser.Lookup(g.ItemType)
		if err != nil {
			return fail(err)
		}
		difficulty, blooms := g.Distributions()
		jobs = append(jobs, job{format: format, group: g, difficulty: difficulty, blooms: blooms})
	}

	o.logger.Info(module, "Allocation computed", map[string]interface{}{
		"total":    plan.Total,
		"jobs":     len(jobs),
		"strategy": string(o.config.Strategy),
	})

	// 2. Dispatched
	outcome.setState(RunDispatched)
	results := make([]TypeResult, len(jobs))
	errs := make([]error, len(jobs))
	for i, j := range jobs {
		results[i] = TypeResult{ItemType: j.format.ItemType, State: JobPending}
	}
	outcome.jobs = results

	var g errgroup.Group
	g.SetLimit(o.config.MaxWorkers)
	for i := range jobs {
		g.Go(func() error {
			// errors are collected per slot so every job runs to completion
			errs[i] = o.run(ctx, plan, jobs[i], &results[i], &outcome.mu)
			return nil
		})
	}

	// 3. Awaiting
	outcome.setState(RunAwaiting)
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			o.logger.Error(module, "Generation job failed", map[string]interface{}{
				"item_type": jobs[i].format.ItemType,
				"error":     err.Error(),
			})
			return fail(fmt.Errorf("%w: %s: %w", ErrOrchestrationFailed, jobs[i].format.ItemType, err))
		}
	}

	// 4. Completed
	outcome.Results = results
	outcome.setState(RunCompleted)
	metrics.GenerationRequestsTotal.WithLabelValues(string(RunCompleted)).Inc()
	return outcome, nil
}

func (o *Orchestrator) run(ctx context.Context, plan Plan, j job, res *TypeResult, mu *sync.Mutex) error {
	itemType := j.format.ItemType
	ctx, span := o.tracer.Start(ctx, "orchestrator.job",
		trace.WithAttributes(
			attribute.String("item_type", itemType),
			attribute.Int("item_count", j.group.Total),
		))
	defer span.End()

	setState := func(s JobState) {
		mu.Lock()
		res.State = s
		mu.Unlock()
	}
	setState(JobRunning)
	start := time.Now()

	err := o.generate(ctx, plan, j, res)

	res.Duration = time.Since(start)
	metrics.GenerationJobDuration.WithLabelValues(itemType).Observe(res.Duration.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.GenerationJobsTotal.WithLabelValues(itemType, string(JobFailed)).Inc()
		setState(JobFailed)
		return err
	}
	metrics.GenerationJobsTotal.WithLabelValues(itemType, string(JobSucceeded)).Inc()
	setState(JobSucceeded)
	return nil
}

func (o *Orchestrator) generate(ctx context.Context, plan Plan, j job, res *TypeResult) error {
	itemType := j.format.ItemType

	levels, err := o.config.Strategy.Levels(j.group.Total, j.difficulty, j.blooms)
	if err != nil {
		return fmt.Errorf("allocate levels: %w", err)
	}
	seq := allocation.BuildSequence(levels)

	text, err := o.prompts.Build(prompt.Request{Format: j.format, Summary: plan.Summary, Levels: levels})
	if err != nil {
		return err
	}

	options := append([]llm.Option{llm.WithSystemPrompt(o.prompts.SystemPrompt())}, o.config.GenerateOptions...)
	reply, err := o.generator.Generate(ctx, text, options...)
	if err != nil {
		return fmt.Errorf("generate %s: %w", itemType, err)
	}

	parsed := parser.Parse(reply, j.format, seq)
	metrics.ItemsGeneratedTotal.WithLabelValues(itemType).Add(float64(len(parsed.Records)))
	if parsed.Shortfall > 0 || parsed.Surplus > 0 {
		metrics.ParseShortfallTotal.WithLabelValues(itemType).Add(float64(parsed.Shortfall))
		metrics.ParseSurplusTotal.WithLabelValues(itemType).Add(float64(parsed.Surplus))
		o.logger.Warn(module, "Backend returned a different number of items than requested", map[string]interface{}{
			"item_type": itemType,
			"requested": parsed.Requested,
			"parsed":    len(parsed.Records),
		})
	}

	res.Levels = levels
	res.Difficulty = j.difficulty
	res.Blooms = j.blooms
	res.Parse = parsed
	res.ArtifactName = artifact.Name(plan.FilterValue, j.difficulty, j.blooms, j.format.Suffix)

	o.logger.Info(module, "Generation job finished", map[string]interface{}{
		"item_type": itemType,
		"requested": j.group.Total,
		"parsed":    len(parsed.Records),
		"artifact":  res.ArtifactName,
	})
	return nil
}
