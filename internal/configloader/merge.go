package configloader

import (
	"slices"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if non-nil, so false can win
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Normalize != "" {
		result.Normalize = override.Normalize
	}
	if override.MaxNesting != 0 {
		result.MaxNesting = override.MaxNesting
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	mergeRender(&result.Render, override.Render)

	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}

	if override.Rules.Disable != nil {
		result.Rules.Disable = slices.Clone(override.Rules.Disable)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	// CLI-only fields.
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Debug {
		result.Debug = true
	}

	return result
}

func mergeRender(base *config.RenderConfig, override config.RenderConfig) {
	if override.XHTML != nil {
		base.XHTML = config.Bool(*override.XHTML)
	}
	if override.Breaks != nil {
		base.Breaks = config.Bool(*override.Breaks)
	}
	if override.DetectLanguage != nil {
		base.DetectLanguage = config.Bool(*override.DetectLanguage)
	}
	if override.LangPrefix != "" {
		base.LangPrefix = override.LangPrefix
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
