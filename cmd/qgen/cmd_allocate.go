package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"question-bank-be/pkg/allocation"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Show the allocation for a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDistributionFlags()
		if err != nil {
			return err
		}
		return printAllocation(cmd.OutOrStdout(), total, d)
	},
}

func printAllocation(w io.Writer, total int, d distributions) error {
	items, err := d.strategy.Items(total, d.types, d.difficulty, d.blooms)
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(w, "Allocation of %d questions (%s)\n", total, d.strategy)
	for _, c := range items.Cells {
		fmt.Fprintf(w, "  %-4s %-13s %-9s %3d\n", c.ItemType, c.Difficulty, c.BloomsLevel, c.Count)
	}

	for _, g := range items.GroupByType() {
		localDifficulty, localBlooms := g.Distributions()
		levels, err := d.strategy.Levels(g.Total, localDifficulty, localBlooms)
		if err != nil {
			return fmt.Errorf("%s: %w", g.ItemType, err)
		}

		fmt.Fprintln(w)
		header.Fprintf(w, "%s: %d questions\n", g.ItemType, g.Total)
		fmt.Fprintf(w, "  difficulty %s\n", localDifficulty.Format())
		fmt.Fprintf(w, "  blooms     %s\n", localBlooms.Format())
		for i, level := range allocation.BuildSequence(levels) {
			fmt.Fprintf(w, "  #%-3d %s\n", i+1, level.Key())
		}
	}
	return nil
}
