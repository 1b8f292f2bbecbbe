package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/roster/internal/config"
	"github.com/Iron-Ham/roster/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View roster configuration",
	Long: `View roster configuration.

Without arguments, displays the current configuration.
Use subcommands to locate or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/roster/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configThemeCmd = &cobra.Command{
	Use:   "theme [theme-name]",
	Short: "List themes or export one as YAML",
	Long: `Without arguments, lists the built-in color themes.

With a theme name, prints that theme as YAML. Save it, edit the colors and
point tui.theme_file at it to use a custom theme.

Example:
  roster config theme nord > ~/.config/roster/theme.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigTheme,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configThemeCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "roster:")
	fmt.Fprintf(out, "  size: %d\n", cfg.Roster.Size)
	fmt.Fprintf(out, "  first_article: %d\n", cfg.Roster.FirstArticle)
	fmt.Fprintf(out, "  article_count: %d\n", cfg.Roster.ArticleCount)
	fmt.Fprintf(out, "  names_file: %s\n", valueOrBuiltin(cfg.Roster.NamesFile))
	fmt.Fprintf(out, "  surnames_file: %s\n", valueOrBuiltin(cfg.Roster.SurnamesFile))
	fmt.Fprintf(out, "  seed: %d\n", cfg.Roster.Seed)

	fmt.Fprintln(out, "expression:")
	fmt.Fprintf(out, "  separator: %q\n", cfg.Expression.Separator)
	fmt.Fprintf(out, "  range_separator: %q\n", cfg.Expression.RangeSeparator)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.TUI.Enabled)
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	if cfg.TUI.ThemeFile != "" {
		fmt.Fprintf(out, "  theme_file: %s\n", cfg.TUI.ThemeFile)
	}

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.ResolveDir())

	return nil
}

func valueOrBuiltin(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

// defaultConfigContent is written by config init.
const defaultConfigContent = `# Roster Configuration

# Generated population
roster:
  # Number of prisoners generated at startup
  size: 10
  # Articles are drawn from first_article .. first_article+article_count-1
  first_article: 1
  article_count: 15
  # Line-delimited name lists; leave empty for the built-in lists
  names_file: ""
  surnames_file: ""
  # Fixed random seed; 0 picks a new one every run
  seed: 0

# Release expression syntax, e.g. "1,3,5-7"
expression:
  separator: ","
  range_separator: "-"

# Full-screen interface (only used when running in a terminal)
tui:
  enabled: false
  # Options: default, monokai, dracula, nord
  theme: default
  # Optional YAML theme, see 'roster config theme'
  theme_file: ""

# Session log
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Empty means <config dir>/logs
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/roster/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: ROSTER_* (e.g., ROSTER_ROSTER_SIZE, ROSTER_LOGGING_LEVEL)")

	return nil
}

func runConfigTheme(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, "Built-in themes:")
		for _, name := range styles.BuiltinThemes() {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		return nil
	}

	themeName := args[0]
	if !styles.IsValidTheme(themeName) {
		return fmt.Errorf("unknown theme: %s (available: %s)", themeName, strings.Join(styles.BuiltinThemes(), ", "))
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}
