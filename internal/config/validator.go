package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "roster.size")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// maxRosterSize bounds the generated population.
const maxRosterSize = 100_000

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateRoster()...)
	errors = append(errors, c.validateExpression()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateRoster validates the RosterConfig
func (c *Config) validateRoster() []ValidationError {
	var errors []ValidationError

	if c.Roster.Size < 0 {
		errors = append(errors, ValidationError{
			Field:   "roster.size",
			Value:   c.Roster.Size,
			Message: "must be non-negative",
		})
	}
	if c.Roster.Size > maxRosterSize {
		errors = append(errors, ValidationError{
			Field:   "roster.size",
			Value:   c.Roster.Size,
			Message: fmt.Sprintf("exceeds maximum of %d", maxRosterSize),
		})
	}

	// Range bounds in a release expression must be positive.
	if c.Roster.FirstArticle < 1 {
		errors = append(errors, ValidationError{
			Field:   "roster.first_article",
			Value:   c.Roster.FirstArticle,
			Message: "must be at least 1",
		})
	}
	if c.Roster.ArticleCount < 1 {
		errors = append(errors, ValidationError{
			Field:   "roster.article_count",
			Value:   c.Roster.ArticleCount,
			Message: "must be at least 1",
		})
	}

	paths := []struct {
		field string
		path  string
	}{
		{"roster.names_file", c.Roster.NamesFile},
		{"roster.surnames_file", c.Roster.SurnamesFile},
	}
	for _, p := range paths {
		if strings.ContainsRune(p.path, '\x00') {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.path,
				Message: "path contains invalid null character",
			})
		}
	}

	return errors
}

// validateExpression validates the ExpressionConfig
func (c *Config) validateExpression() []ValidationError {
	var errors []ValidationError

	if singleRune(c.Expression.Separator) == 0 {
		errors = append(errors, ValidationError{
			Field:   "expression.separator",
			Value:   c.Expression.Separator,
			Message: "must be a single character",
		})
	}
	if singleRune(c.Expression.RangeSeparator) == 0 {
		errors = append(errors, ValidationError{
			Field:   "expression.range_separator",
			Value:   c.Expression.RangeSeparator,
			Message: "must be a single character",
		})
	}
	if len(errors) > 0 {
		return errors
	}

	if _, err := c.Expression.Parser(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "expression",
			Value:   c.Expression.Separator + " " + c.Expression.RangeSeparator,
			Message: err.Error(),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme == "" && c.TUI.ThemeFile == "" {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: "cannot be empty",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if strings.ContainsRune(c.Logging.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "path contains invalid null character",
		})
	}

	return errors
}
