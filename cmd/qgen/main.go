// Command qgen allocates, parses and generates question banks from the
// command line without running the HTTP service.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/taxonomy"
)

var (
	total      int
	types      string
	difficulty string
	blooms     string
	strategy   string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "qgen",
	Short: "Question bank generation tools",
	Long: `qgen works with the same allocation, prompt and parser packages as the
question bank service.

  allocate - show how a total is spread over type, difficulty and Bloom's level
  parse    - turn a saved backend reply into the JSON artifact layout
  generate - summarize a source and generate every item type
  watch    - print generation events from NATS`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&total, "total", "n", 10, "Total number of questions")
	rootCmd.PersistentFlags().StringVar(&types, "types", "mcq=0.4,fib=0.3,tf=0.3", "Question type distribution")
	rootCmd.PersistentFlags().StringVar(&difficulty, "difficulty", "basic=0.3,intermediate=0.3,advanced=0.4", "Difficulty distribution")
	rootCmd.PersistentFlags().StringVar(&blooms, "blooms", "remember=0.3,apply=0.4,analyze=0.3", "Bloom's level distribution")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "product", "Allocation strategy: product or nested")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Minute, "Operation timeout")

	rootCmd.AddCommand(allocateCmd, parseCmd, generateCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// distributions parses the three distribution flags.
type distributions struct {
	types, difficulty, blooms taxonomy.Distribution
	strategy                  allocation.Strategy
}

func parseDistributionFlags() (distributions, error) {
	var d distributions
	var err error
	if d.types, err = taxonomy.ParseDistribution(types); err != nil {
		return d, fmt.Errorf("--types: %w", err)
	}
	if d.difficulty, err = taxonomy.ParseDistribution(difficulty); err != nil {
		return d, fmt.Errorf("--difficulty: %w", err)
	}
	if d.blooms, err = taxonomy.ParseDistribution(blooms); err != nil {
		return d, fmt.Errorf("--blooms: %w", err)
	}
	if d.strategy, err = allocation.ParseStrategy(strategy); err != nil {
		return d, fmt.Errorf("--strategy: %w", err)
	}
	return d, nil
}
