package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// envVarPrefix is the prefix for all gomdtable environment variables.
const envVarPrefix = "GOMDTABLE_"

// envVar binds one environment variable to a configuration field.
type envVar struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, value, name string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, value, _ string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, *bool)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, value, name string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
		}
		set(cfg, config.Bool(b))
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, value, name string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, value)
		}
		set(cfg, i)
		return nil
	}
}

func sliceVar(set func(*config.Config, []string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, value, _ string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"FLAVOR", "flavor", "Inline flavor: gfm or commonmark",
		stringVar(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"NORMALIZE", "normalize", "Unicode normalization: none or nfc",
		stringVar(func(c *config.Config, v string) { c.Normalize = config.Normalize(v) })},
	{"MAX_NESTING", "max_nesting", "Maximum block nesting depth",
		intVar(func(c *config.Config, v int) { c.MaxNesting = v })},
	{"DISABLE_RULES", "rules.disable", "Comma-separated block rules to disable",
		sliceVar(func(c *config.Config, v []string) { c.Rules.Disable = v })},
	{"XHTML", "render.xhtml", "Self-close void elements: true or false",
		boolVar(func(c *config.Config, v *bool) { c.Render.XHTML = v })},
	{"BREAKS", "render.breaks", "Render soft breaks as <br>: true or false",
		boolVar(func(c *config.Config, v *bool) { c.Render.Breaks = v })},
	{"LANG_PREFIX", "render.lang_prefix", "Class prefix for fenced code languages",
		stringVar(func(c *config.Config, v string) { c.Render.LangPrefix = v })},
	{"DETECT_LANGUAGE", "render.detect_language", "Detect the language of unlabeled fences: true or false",
		boolVar(func(c *config.Config, v *bool) { c.Render.DetectLanguage = v })},
	{"FORMAT", "output.format", "Output format: html, tokens, json or tables",
		stringVar(func(c *config.Config, v string) { c.Output.Format = config.OutputFormat(v) })},
	{"OUTPUT_DIR", "output.dir", "Directory receiving rendered .html files",
		stringVar(func(c *config.Config, v string) { c.Output.Dir = v })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		sliceVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intVar(func(c *config.Config, v int) { c.Jobs = v })},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDTABLE_ (e.g., GOMDTABLE_FLAVOR).
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if err := v.apply(cfg, value, name); err != nil {
			return err
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return envVarPrefix + v.suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, v := range envVars {
		out = append(out, [2]string{envVarPrefix + v.suffix, v.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
