package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"*.md", "vendor/**"}
		original.Rules.Disable = []string{"table"}
		original.Debug = true

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Rules.Disable[0] = "list"
		*clone.Render.XHTML = true

		assert.Equal(t, "*.md", original.Ignore[0])
		assert.Equal(t, "table", original.Rules.Disable[0])
		assert.False(t, *original.Render.XHTML)
		assert.True(t, clone.Debug)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("omits unset and CLI-only fields", func(t *testing.T) {
		cfg := &config.Config{
			Flavor: config.FlavorCommonMark,
			Rules:  config.RulesConfig{Disable: []string{"table"}},
			Color:  config.ColorNever,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Equal(t, "flavor: commonmark\nrules:\n  disable:\n    - table\n", string(data))
	})

	t.Run("header", func(t *testing.T) {
		cfg := &config.Config{Jobs: 2}

		data, err := cfg.ToYAMLWithHeader("# hello")
		require.NoError(t, err)
		assert.Equal(t, "# hello\n\njobs: 2\n", string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
flavor: commonmark
normalize: nfc
max_nesting: 8
rules:
  disable: [table, reference]
render:
  xhtml: true
  breaks: false
  lang_prefix: lang-
output:
  format: tables
  dir: site
ignore:
  - "vendor/**"
jobs: 3
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
		assert.Equal(t, config.NormalizeNFC, cfg.Normalize)
		assert.Equal(t, 8, cfg.MaxNesting)
		assert.Equal(t, []string{"table", "reference"}, cfg.Rules.Disable)
		require.NotNil(t, cfg.Render.XHTML)
		assert.True(t, *cfg.Render.XHTML)
		require.NotNil(t, cfg.Render.Breaks)
		assert.False(t, *cfg.Render.Breaks)
		assert.Nil(t, cfg.Render.DetectLanguage)
		assert.Equal(t, "lang-", cfg.Render.LangPrefix)
		assert.Equal(t, config.FormatTables, cfg.Output.Format)
		assert.Equal(t, "site", cfg.Output.Dir)
		assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
		assert.Equal(t, 3, cfg.Jobs)
	})

	t.Run("empty input", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := config.FromYAML([]byte("severity_default: error\n"))
		require.Error(t, err)
	})
}

func TestValidators(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("markdown").IsValid())
	assert.True(t, config.NormalizeNFC.IsValid())
	assert.False(t, config.Normalize("nfd").IsValid())
	assert.True(t, config.FormatTables.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, config.NormalizeNone, cfg.Normalize)
	assert.Equal(t, config.DefaultMaxNesting, cfg.MaxNesting)
	assert.Equal(t, config.DefaultLangPrefix, cfg.Render.LangPrefix)
	assert.Equal(t, config.FormatHTML, cfg.Output.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.False(t, config.BoolValue(cfg.Render.XHTML))
	assert.False(t, config.BoolValue(nil))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses to an empty config", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Rules: []string{"table", "paragraph"}})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# gomdtable configuration")
		assert.Contains(t, string(data), "(table, paragraph)")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("full template parses to defaults", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, config.DefaultMaxNesting, cfg.MaxNesting)
		assert.Equal(t, config.DefaultLangPrefix, cfg.Render.LangPrefix)
		assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Ignore)
		require.NotNil(t, cfg.Render.XHTML)
		assert.False(t, *cfg.Render.XHTML)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "gfm", decoded["flavor"])
		assert.NotContains(t, decoded, "Color")
	})
}
