package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value; otherwise keys are
	// commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Rules lists the block rule names available for rules.disable.
	Rules []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	prefix := "# "
	if opts.Full {
		prefix = ""
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	section := func(comment string, lines ...string) {
		buf.WriteString("# " + comment + "\n")
		for _, line := range lines {
			buf.WriteString(prefix + line + "\n")
		}
		buf.WriteByte('\n')
	}

	section("Inline flavor: gfm (strikethrough, autolinks) or commonmark",
		"flavor: "+string(FlavorGFM))
	section("Unicode normalization of the source: none or nfc",
		"normalize: "+string(NormalizeNone))
	section("Maximum block nesting depth",
		fmt.Sprintf("max_nesting: %d", DefaultMaxNesting))

	disable := "Block rules to disable"
	if len(opts.Rules) > 0 {
		disable += " (" + strings.Join(opts.Rules, ", ") + ")"
	}
	section(disable,
		"rules:",
		"  disable: []")

	section("HTML rendering",
		"render:",
		"  xhtml: false",
		"  breaks: false",
		"  lang_prefix: "+DefaultLangPrefix,
		"  detect_language: false")

	section("Output format: html, tokens, json or tables; dir receives .html files",
		"output:",
		"  format: "+string(FormatHTML),
		"  dir: \"\"")

	section("File patterns to ignore (glob patterns)",
		"ignore:",
		"  - \"vendor/**\"",
		"  - \"node_modules/**\"")

	section("Number of parallel workers (0 = auto)",
		"jobs: 0")

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// templateToJSON renders the defaults as indented JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdtable configuration
# See: https://github.com/yaklabco/gomdtable`
}
