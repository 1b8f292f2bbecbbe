package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Iron-Ham/roster/internal/expression"
	"github.com/spf13/viper"
)

// Config represents the complete roster configuration
type Config struct {
	Roster     RosterConfig     `mapstructure:"roster"`
	Expression ExpressionConfig `mapstructure:"expression"`
	TUI        TUIConfig        `mapstructure:"tui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// RosterConfig controls how the initial population is generated
type RosterConfig struct {
	// Size is the number of prisoners generated at startup (default: 10)
	Size int `mapstructure:"size"`
	// FirstArticle is the lowest article number assigned (default: 1)
	FirstArticle int `mapstructure:"first_article"`
	// ArticleCount is how many consecutive articles may be assigned (default: 15)
	ArticleCount int `mapstructure:"article_count"`
	// NamesFile is a line-delimited list of first names.
	// Empty uses the built-in list.
	NamesFile string `mapstructure:"names_file"`
	// SurnamesFile is a line-delimited list of surnames.
	// Empty uses the built-in list.
	SurnamesFile string `mapstructure:"surnames_file"`
	// Seed fixes the random source; 0 picks a fresh seed every run
	Seed uint64 `mapstructure:"seed"`
}

// ExpressionConfig controls the release expression syntax
type ExpressionConfig struct {
	// Separator splits the expression into tokens (default: ",")
	Separator string `mapstructure:"separator"`
	// RangeSeparator splits a token into range bounds (default: "-")
	RangeSeparator string `mapstructure:"range_separator"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Enabled runs the full-screen interface when stdin is a terminal.
	// When false, or when input is piped, the line-based prompt is used.
	Enabled bool `mapstructure:"enabled"`
	// Theme is the color theme (default: "default")
	Theme string `mapstructure:"theme"`
	// ThemeFile is an optional YAML theme that overrides Theme
	ThemeFile string `mapstructure:"theme_file"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where roster.log is written.
	// If empty, defaults to "logs" under the config directory.
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir"`
}

// Parser builds the expression parser for the configured separators.
// Each separator must be exactly one character.
func (e *ExpressionConfig) Parser() (expression.Parser, error) {
	p := expression.Parser{
		Separator:      singleRune(e.Separator),
		RangeSeparator: singleRune(e.RangeSeparator),
	}
	if err := p.Validate(); err != nil {
		return expression.Parser{}, err
	}
	return p, nil
}

// singleRune returns the only rune in s, or 0 if s is not one character.
func singleRune(s string) rune {
	if utf8.RuneCountInString(s) != 1 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// ResolveDir returns the directory logs are written to.
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}

	path := l.Dir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Roster: RosterConfig{
			Size:         10,
			FirstArticle: 1,
			ArticleCount: 15,
			NamesFile:    "", // Empty means built-in list
			SurnamesFile: "",
			Seed:         0,
		},
		Expression: ExpressionConfig{
			Separator:      string(expression.DefaultSeparator),
			RangeSeparator: string(expression.DefaultRangeSeparator),
		},
		TUI: TUIConfig{
			Enabled:   false, // Line prompt unless asked for
			Theme:     "default",
			ThemeFile: "",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Roster defaults
	viper.SetDefault("roster.size", defaults.Roster.Size)
	viper.SetDefault("roster.first_article", defaults.Roster.FirstArticle)
	viper.SetDefault("roster.article_count", defaults.Roster.ArticleCount)
	viper.SetDefault("roster.names_file", defaults.Roster.NamesFile)
	viper.SetDefault("roster.surnames_file", defaults.Roster.SurnamesFile)
	viper.SetDefault("roster.seed", defaults.Roster.Seed)

	// Expression defaults
	viper.SetDefault("expression.separator", defaults.Expression.Separator)
	viper.SetDefault("expression.range_separator", defaults.Expression.RangeSeparator)

	// TUI defaults
	viper.SetDefault("tui.enabled", defaults.TUI.Enabled)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "roster")
	}
	// Fall back to ~/.config/roster
	home, err := os.UserHomeDir()
	if err != nil {
		return ".roster"
	}
	return filepath.Join(home, ".config", "roster")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
