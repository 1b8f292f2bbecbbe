package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Iron-Ham/roster/internal/article"
	"github.com/Iron-Ham/roster/internal/config"
	"github.com/Iron-Ham/roster/internal/expression"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Show the articles a release expression selects",
	Long: `Parse a release expression and print the articles it selects, in
ascending order without duplicates.

Examples:
  roster parse 1,3,5-7
  roster parse --format json 7-3
  roster parse 0,2            # single values may be zero

An invalid expression exits with an error and selects nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// Output formats for parse
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func init() {
	parseCmd.Flags().String("format", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(parseCmd)
}

// parseResult is the structured output of parse.
type parseResult struct {
	Input    string   `json:"input" yaml:"input"`
	Articles []int    `json:"articles" yaml:"articles"`
	Labels   []string `json:"labels" yaml:"labels"`
	Compact  string   `json:"compact" yaml:"compact"`
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != formatText && format != formatJSON && format != formatYAML {
		return fmt.Errorf("invalid format %q: expected %s, %s or %s", format, formatText, formatJSON, formatYAML)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	parser, err := cfg.Expression.Parser()
	if err != nil {
		return fmt.Errorf("invalid expression separators: %w", err)
	}
	cmd.SilenceUsage = true

	set, err := parser.Parse(args[0])
	if err != nil {
		return err
	}

	return writeParseResult(cmd.OutOrStdout(), format, parser, args[0], set)
}

func writeParseResult(w io.Writer, format string, parser expression.Parser, input string, set article.Set) error {
	result := parseResult{
		Input:    input,
		Articles: set.Ints(),
		Labels:   set.Labels(),
		Compact:  parser.Compact(set),
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	default:
		fmt.Fprintln(w, parser.Format(set))
	}
	return nil
}
