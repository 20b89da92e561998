package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "debate.max_rounds")
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

// ValidDebateModes returns the list of valid debate mode values
func ValidDebateModes() []string {
	return []string{"autonomous", "supervised", "participatory"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid TUI theme names
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAPI()...)
	errors = append(errors, c.validateDebate()...)
	errors = append(errors, c.validatePanel()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateAPI validates the APIConfig
func (c *Config) validateAPI() []ValidationError {
	var errors []ValidationError

	if c.API.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must not be empty",
		})
		return errors
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must be an absolute URL with scheme and host",
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "scheme must be http or https",
		})
	}

	return errors
}

// validateDebate validates the DebateConfig
func (c *Config) validateDebate() []ValidationError {
	var errors []ValidationError

	if c.Debate.Mode != "" && !slices.Contains(ValidDebateModes(), c.Debate.Mode) {
		errors = append(errors, ValidationError{
			Field:   "debate.mode",
			Value:   c.Debate.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidDebateModes(), ", ")),
		})
	}

	if c.Debate.MaxRounds < 1 {
		errors = append(errors, ValidationError{
			Field:   "debate.max_rounds",
			Value:   c.Debate.MaxRounds,
			Message: "must be at least 1",
		})
	}

	// Upper bound keeps a runaway config from holding a stream open for hours
	const maxRoundsLimit = 50
	if c.Debate.MaxRounds > maxRoundsLimit {
		errors = append(errors, ValidationError{
			Field:   "debate.max_rounds",
			Value:   c.Debate.MaxRounds,
			Message: fmt.Sprintf("exceeds maximum of %d", maxRoundsLimit),
		})
	}

	return errors
}

// validatePanel validates the PanelConfig
func (c *Config) validatePanel() []ValidationError {
	var errors []ValidationError

	seen := make(map[string]bool)
	for i, p := range c.Panel.Panelists {
		field := fmt.Sprintf("panel.panelists[%d]", i)
		if p.ID == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".id",
				Value:   p.ID,
				Message: "must not be empty",
			})
		} else if seen[p.ID] {
			errors = append(errors, ValidationError{
				Field:   field + ".id",
				Value:   p.ID,
				Message: "duplicate panelist id",
			})
		}
		seen[p.ID] = true

		if p.Name == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   p.Name,
				Message: "must not be empty",
			})
		}
		if p.Provider == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".provider",
				Value:   p.Provider,
				Message: "must not be empty",
			})
		}
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.TUI.MaxTranscriptLines < 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.max_transcript_lines",
			Value:   c.TUI.MaxTranscriptLines,
			Message: "must be non-negative",
		})
	}

	const maxTranscriptLimit = 100000
	if c.TUI.MaxTranscriptLines > maxTranscriptLimit {
		errors = append(errors, ValidationError{
			Field:   "tui.max_transcript_lines",
			Value:   c.TUI.MaxTranscriptLines,
			Message: fmt.Sprintf("exceeds maximum of %d", maxTranscriptLimit),
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

	return errors
}
