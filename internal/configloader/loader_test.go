package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomdtable/pkg/config"
)

var testRules = []string{"code", "fence", "blockquote", "hr", "list", "reference", "heading", "lheading", "table", "paragraph"}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		KnownRules:         testRules,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Flavor != config.FlavorGFM {
		t.Errorf("Flavor = %q, want gfm", cfg.Flavor)
	}
	if cfg.MaxNesting != config.DefaultMaxNesting {
		t.Errorf("MaxNesting = %d, want %d", cfg.MaxNesting, config.DefaultMaxNesting)
	}
	if cfg.Output.Format != config.FormatHTML {
		t.Errorf("Output.Format = %q, want html", cfg.Output.Format)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	writeFile(t, filepath.Join(root, ".gomdtable.yml"), `
flavor: commonmark
rules:
  disable: [table]
render:
  xhtml: true
`)

	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Flavor != config.FlavorCommonMark {
		t.Errorf("Flavor = %q, want commonmark", cfg.Flavor)
	}
	if len(cfg.Rules.Disable) != 1 || cfg.Rules.Disable[0] != "table" {
		t.Errorf("Rules.Disable = %v, want [table]", cfg.Rules.Disable)
	}
	if !config.BoolValue(cfg.Render.XHTML) {
		t.Error("Render.XHTML should be true")
	}
	if cfg.Render.LangPrefix != config.DefaultLangPrefix {
		t.Errorf("LangPrefix = %q, want default", cfg.Render.LangPrefix)
	}
	if result.Paths.Project != filepath.Join(root, ".gomdtable.yml") {
		t.Errorf("Paths.Project = %q", result.Paths.Project)
	}
}

func TestLoad_ExplicitAndCLIPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gomdtable.yml"), "normalize: nfc\njobs: 2\nrender:\n  breaks: true\n")

	explicit := filepath.Join(dir, "custom.yaml")
	writeFile(t, explicit, "jobs: 4\noutput:\n  format: tables\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{
		Output: config.OutputConfig{Format: config.FormatTokens},
		Render: config.RenderConfig{Breaks: config.Bool(false)},
		Color:  config.ColorNever,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Normalize != config.NormalizeNFC {
		t.Errorf("Normalize = %q, want nfc from project", cfg.Normalize)
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4 from explicit", cfg.Jobs)
	}
	if cfg.Output.Format != config.FormatTokens {
		t.Errorf("Output.Format = %q, want tokens from CLI", cfg.Output.Format)
	}
	if config.BoolValue(cfg.Render.Breaks) {
		t.Error("CLI false should override project true for render.breaks")
	}
	if cfg.Color != config.ColorNever {
		t.Errorf("Color = %q, want never", cfg.Color)
	}

	want := []string{filepath.Join(dir, ".gomdtable.yml"), explicit}
	if strings.Join(result.LoadedFrom, ",") != strings.Join(want, ",") {
		t.Errorf("LoadedFrom = %v, want %v", result.LoadedFrom, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "invalid flavor", content: "flavor: markdown\n", wantMsg: "invalid flavor"},
		{name: "unknown key", content: "severity_default: error\n", wantMsg: "severity_default"},
		{name: "unknown rule", content: "rules:\n  disable: [tables]\n", wantMsg: `unknown rule "tables"`},
		{name: "negative jobs", content: "jobs: -1\n", wantMsg: "jobs must be >= 0"},
		{name: "bad glob", content: "ignore: [\"[oops\"]\n", wantMsg: "invalid glob pattern"},
		{name: "bad format", content: "output:\n  format: sarif\n", wantMsg: "invalid output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".gomdtable.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			if err == nil {
				t.Fatal("expected error")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("error %v is not a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(opts.WorkingDir, "missing.yml")

	if _, err := Load(context.Background(), opts); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoad_DuplicateDisableWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gomdtable.yml"), "rules:\n  disable: [table, table]\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "more than once") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestLoad_UserConfigAndEnv(t *testing.T) {
	// Not parallel: modifies the environment.
	xdg := t.TempDir()
	writeFile(t, filepath.Join(xdg, "gomdtable", "config.yaml"), "flavor: commonmark\nmax_nesting: 5\n")

	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("GOMDTABLE_MAX_NESTING", "7")
	t.Setenv("GOMDTABLE_DISABLE_RULES", "table, list")
	t.Setenv("GOMDTABLE_DETECT_LANGUAGE", "true")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         t.TempDir(),
		IgnoreSystemConfig: true,
		KnownRules:         testRules,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Flavor != config.FlavorCommonMark {
		t.Errorf("Flavor = %q, want commonmark from user config", cfg.Flavor)
	}
	if cfg.MaxNesting != 7 {
		t.Errorf("MaxNesting = %d, want 7 from env", cfg.MaxNesting)
	}
	if strings.Join(cfg.Rules.Disable, ",") != "table,list" {
		t.Errorf("Rules.Disable = %v", cfg.Rules.Disable)
	}
	if !config.BoolValue(cfg.Render.DetectLanguage) {
		t.Error("DetectLanguage should be true from env")
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	// Not parallel: modifies the environment.
	t.Setenv("GOMDTABLE_JOBS", "many")
	if err := LoadFromEnv(config.NewConfig()); err == nil || !strings.Contains(err.Error(), "GOMDTABLE_JOBS") {
		t.Errorf("error = %v, want invalid integer for GOMDTABLE_JOBS", err)
	}

	t.Setenv("GOMDTABLE_JOBS", "")
	t.Setenv("GOMDTABLE_XHTML", "maybe")
	if err := LoadFromEnv(config.NewConfig()); err == nil || !strings.Contains(err.Error(), "GOMDTABLE_XHTML") {
		t.Errorf("error = %v, want invalid boolean for GOMDTABLE_XHTML", err)
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("render.lang_prefix"); got != "GOMDTABLE_LANG_PREFIX" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(nope) = %q, want empty", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envVars) {
		t.Fatalf("ListEnvVars() returned %d entries, want %d", len(vars), len(envVars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1][0] > vars[i][0] {
			t.Errorf("ListEnvVars() not sorted at %d", i)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"a/**"}

	override := &config.Config{
		MaxNesting: 3,
		Ignore:     []string{"b/**"},
		Render:     config.RenderConfig{XHTML: config.Bool(true), LangPrefix: "lang-"},
	}

	merged := merge(base, override)

	if merged.MaxNesting != 3 || merged.Flavor != config.FlavorGFM {
		t.Errorf("scalars not merged: %+v", merged)
	}
	if merged.Ignore[0] != "b/**" {
		t.Errorf("Ignore = %v, want override", merged.Ignore)
	}
	if !config.BoolValue(merged.Render.XHTML) || merged.Render.LangPrefix != "lang-" {
		t.Errorf("Render = %+v", merged.Render)
	}
	if config.BoolValue(base.Render.XHTML) {
		t.Error("merge must not mutate base")
	}

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
	if got := MergeAll(base, nil, override); got.MaxNesting != 3 {
		t.Errorf("MergeAll MaxNesting = %d, want 3", got.MaxNesting)
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gomdtable.yml")

	if err := WriteConfig(path, []byte("flavor: gfm\n"), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := WriteConfig(path, []byte("flavor: commonmark\n"), false); err == nil {
		t.Error("expected error when file exists without force")
	}
	if err := WriteConfig(path, []byte("flavor: commonmark\n"), true); err != nil {
		t.Fatalf("WriteConfig(force) error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "flavor: commonmark\n" {
		t.Errorf("content = %q", got)
	}
}
