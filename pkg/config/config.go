// Package config defines core configuration types for gomdtable.
// These types are pure data structures with no dependency on the loader.
package config

// Flavor specifies the inline Markdown flavor.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Normalize selects Unicode normalization of the source before parsing.
type Normalize string

const (
	NormalizeNone Normalize = "none"
	NormalizeNFC  Normalize = "nfc"
)

// IsValid returns true if the normalization form is known.
func (n Normalize) IsValid() bool {
	return n == NormalizeNone || n == NormalizeNFC
}

// OutputFormat specifies what the render command prints.
type OutputFormat string

const (
	FormatHTML   OutputFormat = "html"
	FormatTokens OutputFormat = "tokens"
	FormatJSON   OutputFormat = "json"
	FormatTables OutputFormat = "tables"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatTokens, FormatJSON, FormatTables:
		return true
	default:
		return false
	}
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	return c == ColorAuto || c == ColorAlways || c == ColorNever
}

// DefaultMaxNesting is the default block nesting limit.
const DefaultMaxNesting = 20

// DefaultLangPrefix is the default class prefix for fenced code languages.
const DefaultLangPrefix = "language-"

// RulesConfig selects block rules.
type RulesConfig struct {
	// Disable lists block rule names to switch off, e.g. "table".
	Disable []string `json:"disable,omitempty" yaml:"disable,omitempty"`
}

// RenderConfig holds HTML renderer settings. Booleans are pointers so an
// explicit false in a higher-precedence source overrides a lower true.
type RenderConfig struct {
	XHTML          *bool  `json:"xhtml,omitempty"           yaml:"xhtml,omitempty"`
	Breaks         *bool  `json:"breaks,omitempty"          yaml:"breaks,omitempty"`
	LangPrefix     string `json:"lang_prefix,omitempty"     yaml:"lang_prefix,omitempty"`
	DetectLanguage *bool  `json:"detect_language,omitempty" yaml:"detect_language,omitempty"`
}

// OutputConfig controls what is produced and where.
type OutputConfig struct {
	Format OutputFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// Dir receives rendered .html files when set.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Config is the root configuration structure for gomdtable.
type Config struct {
	Flavor     Flavor       `json:"flavor,omitempty"      yaml:"flavor,omitempty"`
	Normalize  Normalize    `json:"normalize,omitempty"   yaml:"normalize,omitempty"`
	MaxNesting int          `json:"max_nesting,omitempty" yaml:"max_nesting,omitempty"`
	Rules      RulesConfig  `json:"rules"                 yaml:"rules,omitempty"`
	Render     RenderConfig `json:"render"                yaml:"render,omitempty"`
	Output     OutputConfig `json:"output"                yaml:"output,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `json:"jobs,omitempty" yaml:"jobs,omitempty"`

	// CLI-level options (not persisted to config files).

	// Color controls styled terminal output.
	Color ColorMode `json:"-" yaml:"-"`

	// Debug enables debug logging.
	Debug bool `json:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorGFM,
		Normalize:  NormalizeNone,
		MaxNesting: DefaultMaxNesting,
		Render: RenderConfig{
			XHTML:          Bool(false),
			Breaks:         Bool(false),
			LangPrefix:     DefaultLangPrefix,
			DetectLanguage: Bool(false),
		},
		Output: OutputConfig{Format: FormatHTML},
		Color:  ColorAuto,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences b, treating nil as false.
func BoolValue(b *bool) bool {
	return b != nil && *b
}
