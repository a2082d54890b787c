package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/parser"
)

var (
	parseType string
	parseFile string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a saved backend reply into the artifact layout",
	Long: `Reads a backend reply from --file (or stdin) and prints the JSON document.
Metadata is attached by position using the --total, --difficulty and --blooms
allocation, the same way a generation job does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDistributionFlags()
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if parseFile != "" && parseFile != "-" {
			f, err := os.Open(parseFile)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		text, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		return parseReply(cmd.OutOrStdout(), cmd.ErrOrStderr(), string(text), parseType, total, d)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseType, "type", "t", "mcq", "Item type of the reply: mcq, fib or tf")
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "Reply file (default stdin)")
}

func parseReply(out, errOut io.Writer, text, itemType string, requested int, d distributions) error {
	format, err := parser.Lookup(itemType)
	if err != nil {
		return err
	}
	levels, err := d.strategy.Levels(requested, d.difficulty, d.blooms)
	if err != nil {
		return err
	}

	result := parser.Parse(text, format, allocation.BuildSequence(levels))
	if result.Shortfall > 0 {
		color.New(color.FgYellow).Fprintf(errOut, "warning: %d of %d requested items missing\n", result.Shortfall, result.Requested)
	}
	if result.Surplus > 0 {
		color.New(color.FgYellow).Fprintf(errOut, "warning: %d items beyond the %d requested have no metadata\n", result.Surplus, result.Requested)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "    ")
	if err := enc.Encode(result.Document()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
