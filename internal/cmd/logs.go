package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Iron-Ham/roster/internal/config"
	"github.com/Iron-Ham/roster/internal/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View session logs",
	Long: `View and filter the roster session log.

Examples:
  # Show the last 50 entries
  roster logs

  # Show every entry of the runs generated from seed 42
  roster logs --run-seed 42 -n 0

  # Show one run by (a prefix of) its run id
  roster logs --run 3f2a9c

  # Follow the log while a session runs in another terminal
  roster logs -f

  # Only rejected expressions and worse
  roster logs --level warn

  # Entries from the last hour mentioning article 7
  roster logs --since 1h --grep "7"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail    int
	logsFollow  bool
	logsLevel   string
	logsSince   string
	logsGrep    string
	logsRunSeed uint64
	logsRunID   string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
	logsCmd.Flags().Uint64Var(&logsRunSeed, "run-seed", 0, "Only entries from runs with this seed")
	logsCmd.Flags().StringVar(&logsRunID, "run", "", "Only entries from the run whose id starts with this prefix")
}

// logEntry is one parsed JSON log line
type logEntry struct {
	Time  time.Time      `json:"time"`
	Level string         `json:"level"`
	Msg   string         `json:"msg"`
	RunID string         `json:"run_id,omitempty"`
	Seed  uint64         `json:"seed,omitempty"`
	Phase string         `json:"phase,omitempty"`
	Extra map[string]any `json:"-"`
}

// UnmarshalJSON keeps fields other than the known ones in Extra
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type alias logEntry
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "run_id", "seed", "phase"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// logFilter selects which entries are shown
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
	seed     uint64
	runID    string
}

func (f logFilter) matches(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}
	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}
	if f.seed != 0 && entry.Seed != f.seed {
		return false
	}
	if f.runID != "" && !strings.HasPrefix(entry.RunID, f.runID) {
		return false
	}
	if f.grep != nil {
		text := entry.Msg
		for _, v := range entry.Extra {
			text += " " + fmt.Sprintf("%v", v)
		}
		if !f.grep.MatchString(text) {
			return false
		}
	}
	return true
}

// levelPriority orders levels for --level; unknown levels sort lowest
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// logFormatter renders entries, colored when out is a terminal
type logFormatter struct {
	muted lipgloss.Style
	field lipgloss.Style
	level map[string]lipgloss.Style
}

func newLogFormatter(out io.Writer) logFormatter {
	r := lipgloss.NewRenderer(out)
	return logFormatter{
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
		field: r.NewStyle().Foreground(lipgloss.Color("6")),
		level: map[string]lipgloss.Style{
			logging.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("8")),
			logging.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("4")),
			logging.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			logging.LevelError: r.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

func (f logFormatter) format(entry *logEntry) string {
	var sb strings.Builder

	sb.WriteString(f.muted.Render("[" + entry.Time.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	level := strings.ToUpper(entry.Level)
	style, ok := f.level[level]
	if !ok {
		style = f.muted
	}
	sb.WriteString(style.Render("[" + level + "]"))
	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	if entry.RunID != "" {
		sb.WriteString(" " + f.field.Render("run=") + shortRunID(entry.RunID))
	}
	if entry.Seed != 0 {
		sb.WriteString(" " + f.field.Render("seed=") + fmt.Sprint(entry.Seed))
	}
	if entry.Phase != "" {
		sb.WriteString(" " + f.field.Render("phase=") + entry.Phase)
	}
	for _, key := range slices.Sorted(maps.Keys(entry.Extra)) {
		sb.WriteString(" " + f.field.Render(key+"=") + fmt.Sprintf("%v", entry.Extra[key]))
	}

	return sb.String()
}

// shortRunID trims a run id to the prefix accepted by --run
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	filter := logFilter{minLevel: -1, seed: logsRunSeed, runID: logsRunID}
	if logsLevel != "" {
		filter.minLevel = levelPriority(logging.ParseLevel(logsLevel))
	}
	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-duration)
	}
	if logsGrep != "" {
		filter.grep, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}
	cmd.SilenceUsage = true

	out := cmd.OutOrStdout()
	logPath := filepath.Join(cfg.Logging.ResolveDir(), logging.FileName)
	if _, err := os.Stat(logPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No logs found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	if logsFollow {
		return followLogs(cmd.Context(), out, logPath, filter)
	}
	return displayLogs(out, logPath, logsTail, filter)
}

// scanEntries calls fn for every line read from r. Lines that are not JSON
// are passed through with a nil entry.
func scanEntries(r io.Reader, fn func(line string, entry *logEntry)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry logEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			fn(line, nil)
			continue
		}
		fn(line, &entry)
	}
	return scanner.Err()
}

// displayLogs prints the last tail matching entries of the log file
func displayLogs(out io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	formatter := newLogFormatter(out)
	var lines []string
	err = scanEntries(file, func(line string, entry *logEntry) {
		switch {
		case entry == nil:
			lines = append(lines, line)
		case filter.matches(entry):
			lines = append(lines, formatter.format(entry))
		}
	})
	if err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(lines) > tail {
		lines = lines[len(lines)-tail:]
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	if len(lines) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}
	return nil
}

// followLogs prints entries appended to the log file until ctx is done
func followLogs(ctx context.Context, out io.Writer, logPath string, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(logPath); err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	formatter := newLogFormatter(out)
	printNew := func() error {
		return scanEntries(file, func(line string, entry *logEntry) {
			switch {
			case entry == nil:
				fmt.Fprintln(out, line)
			case filter.matches(entry):
				fmt.Fprintln(out, formatter.format(entry))
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) {
				if err := printNew(); err != nil {
					return fmt.Errorf("error reading log file: %w", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching log file: %w", err)
		}
	}
}
