package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Iron-Ham/roster/internal/config"
	"github.com/Iron-Ham/roster/internal/console"
	"github.com/Iron-Ham/roster/internal/roster"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated roster",
	Long: `Generate a prison population with the configured size, names and
articles and print it without starting a session.

Use --seed to reproduce the roster a session started with; the seed of every
session is written to the log.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("json", false, "print the roster as JSON")
	generateCmd.Flags().Bool("table", false, "print the roster as a table")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cmd.SilenceUsage = true

	r, seed, err := generateRoster(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.Prisoners()); err != nil {
			return fmt.Errorf("failed to encode roster: %w", err)
		}
		return nil
	}

	asTable, _ := cmd.Flags().GetBool("table")
	if asTable {
		return writeRosterTable(out, r)
	}

	fmt.Fprintf(out, "Seed: %d\n", seed)
	fmt.Fprintln(out, console.StatusLine(r))
	console.WritePrisoners(out, nil, r)
	return nil
}

// writeRosterTable prints one row per prisoner followed by a per-article
// count.
func writeRosterTable(w io.Writer, r roster.Roster) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Name", "Article")
	for i, p := range r.Prisoners() {
		if err := table.Append(strconv.Itoa(i+1), p.Name, p.Article.String()); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	counts := r.CountByArticle()
	summary := tablewriter.NewWriter(w)
	summary.Header("Article", "Prisoners")
	for _, code := range r.Articles() {
		if err := summary.Append(code.String(), strconv.Itoa(counts[code])); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}
	if err := summary.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
