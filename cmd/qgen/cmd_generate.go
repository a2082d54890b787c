package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"question-bank-be/internal/bootstrap"
	"question-bank-be/internal/config"
	"question-bank-be/internal/dto"
	"question-bank-be/internal/pkg/logger"
	"question-bank-be/pkg/orchestrator"
	"question-bank-be/pkg/prompt"
)

var (
	tenantID    string
	filterKey   string
	filterValue string
	verbose     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Summarize a source and generate every item type",
	Long: `Runs one generation request end to end with the backend, summary and
artifact settings from the environment (.env is honoured). Nothing is audited.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&tenantID, "tenant", dto.DefaultTenantID, "Tenant ID")
	generateCmd.Flags().StringVar(&filterKey, "filter-key", dto.DefaultFilterKey, "Metadata field to filter on")
	generateCmd.Flags().StringVar(&filterValue, "filter-value", dto.DefaultFilterValue, "Value to filter by")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log to stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	d, err := parseDistributionFlags()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg := config.Load()
	cfg.Generation.AllocationStrategy = string(d.strategy)

	var log logger.ILogger = logger.NewNopLogger()
	if verbose {
		log = logger.NewZapLogger(cfg.App.LogFilePath, false)
	}

	// 1. Components
	provider, err := bootstrap.NewLLMProvider(ctx, cfg)
	if err != nil {
		return err
	}
	prompts := prompt.NewBuilder(nil)
	orch, err := bootstrap.NewOrchestrator(cfg, provider, prompts, log)
	if err != nil {
		return err
	}
	summarizer := bootstrap.NewSummarizer(cfg, provider, prompts, nil)

	if cfg.Artifact.Sink == "redis" {
		return fmt.Errorf("qgen writes artifacts to the filesystem; set ARTIFACT_SINK=filesystem or none")
	}
	sink, err := bootstrap.NewArtifactSink(cfg, nil)
	if err != nil {
		return err
	}

	plan := orchestrator.Plan{
		Total:       total,
		Types:       d.types,
		Difficulty:  d.difficulty,
		Blooms:      d.blooms,
		FilterValue: filterValue,
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	// 2. Summary
	info := color.New(color.FgCyan)
	start := time.Now()
	info.Fprintf(cmd.ErrOrStderr(), "Summarizing %s=%s...\n", filterKey, filterValue)
	plan.Summary, err = summarizer.Summarize(ctx, tenantID, filterKey, filterValue)
	if err != nil {
		return err
	}

	// 3. Generation
	info.Fprintf(cmd.ErrOrStderr(), "Generating %d questions...\n", total)
	outcome, err := orch.AllocateAndGenerate(ctx, plan)
	if err != nil {
		for itemType, state := range outcome.JobStates() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", itemType, state)
		}
		return err
	}

	// 4. Artifacts
	ok := color.New(color.FgGreen)
	for _, r := range outcome.Results {
		if err := sink.Put(ctx, r.ArtifactName, r.Document()); err != nil {
			return err
		}
		ok.Fprintf(cmd.OutOrStdout(), "%-4s %3d items  %s\n", r.ItemType, len(r.Records()), r.ArtifactName)
	}
	info.Fprintf(cmd.ErrOrStderr(), "Done in %.2fs\n", time.Since(start).Seconds())
	return nil
}
