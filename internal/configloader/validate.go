package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "render.lang_prefix").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings. When knownRules
// is non-empty, rules.disable entries must name one of them.
func Validate(cfg *config.Config, knownRules ...string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	enum := func(field string, value string, ok bool, allowed string) {
		if value == "" || ok {
			return
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("invalid %s %q; must be one of: %s", field, value, allowed),
		})
	}

	enum("flavor", string(cfg.Flavor), cfg.Flavor.IsValid(), "gfm, commonmark")
	enum("normalize", string(cfg.Normalize), cfg.Normalize.IsValid(), "none, nfc")
	enum("output.format", string(cfg.Output.Format), cfg.Output.Format.IsValid(), "html, tokens, json, tables")
	enum("color", string(cfg.Color), cfg.Color.IsValid(), "auto, always, never")

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.MaxNesting < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_nesting",
			Value:   cfg.MaxNesting,
			Message: "max_nesting must be >= 0 (0 means default)",
		})
	}

	if strings.ContainsAny(cfg.Render.LangPrefix, "\"<> ") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "render.lang_prefix",
			Value:   cfg.Render.LangPrefix,
			Message: "lang_prefix must not contain quotes, angle brackets or spaces",
		})
	}

	if config.BoolValue(cfg.Render.DetectLanguage) && cfg.Output.Format == config.FormatTables {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "render.detect_language",
			Value:   true,
			Message: "detect_language has no effect with output format tables",
		})
	}

	validateDisabledRules(cfg, knownRules, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateDisabledRules checks rules.disable against the registered rules.
func validateDisabledRules(cfg *config.Config, knownRules []string, result *ValidationResult) {
	seen := make(map[string]bool, len(cfg.Rules.Disable))

	for i, name := range cfg.Rules.Disable {
		field := fmt.Sprintf("rules.disable[%d]", i)

		if len(knownRules) > 0 && !slices.Contains(knownRules, name) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown rule %q; must be one of: %s", name, strings.Join(knownRules, ", ")),
			})
			continue
		}

		if seen[name] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("rule %q is listed more than once", name),
			})
		}
		seen[name] = true
	}
}

// validateIgnorePatterns checks that ignore patterns compile with the same
// glob syntax file discovery uses.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string, knownRules ...string) *ValidationResult {
	result := Validate(cfg, knownRules...)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
