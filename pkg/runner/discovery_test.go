package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/gomdtable/pkg/runner"
)

// writeTree creates each file under dir with content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relPaths returns discovered paths relative to dir, slash-separated.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("filepath.Rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"readme.md":                  "# Test",
		"docs/guide.md":              "guide",
		"docs/api.markdown":          "api",
		"docs/notes.mdx":             "mdx",
		"src/main.go":                "package main",
		"notes.txt":                  "text",
		"vendor/pkg/doc.md":          "vendored",
		"node_modules/lib/readme.md": "module",
		".hidden.md":                 "hidden",
		".git/config.md":             "git",
		"docs/.secret.md":            "secret",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "directory defaults",
			opts: runner.Options{Paths: []string{"."}},
			want: []string{
				"docs/api.markdown",
				"docs/guide.md",
				"node_modules/lib/readme.md",
				"readme.md",
				"vendor/pkg/doc.md",
			},
		},
		{
			name: "empty paths default to working directory",
			opts: runner.Options{},
			want: []string{
				"docs/api.markdown",
				"docs/guide.md",
				"node_modules/lib/readme.md",
				"readme.md",
				"vendor/pkg/doc.md",
			},
		},
		{
			name: "single file",
			opts: runner.Options{Paths: []string{"docs/guide.md"}},
			want: []string{"docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Paths: []string{"."}, Extensions: []string{".mdx", ".TXT"}},
			want: []string{"docs/notes.mdx", "notes.txt"},
		},
		{
			name: "exclude globs prune directories",
			opts: runner.Options{Paths: []string{"."}, ExcludeGlobs: []string{"vendor/**", "node_modules"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{Paths: []string{"."}, ExcludeGlobs: []string{"readme.md"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "vendor/pkg/doc.md"},
		},
		{
			name: "include globs",
			opts: runner.Options{Paths: []string{"."}, IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "single star stays within a segment",
			opts: runner.Options{Paths: []string{"."}, IncludeGlobs: []string{"docs/*.md"}},
			want: []string{"docs/guide.md"},
		},
		{
			name: "alternatives",
			opts: runner.Options{Paths: []string{"."}, IncludeGlobs: []string{"{docs,vendor}/**"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "vendor/pkg/doc.md"},
		},
		{
			name: "overlapping paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.md", "."}, ExcludeGlobs: []string{"vendor", "node_modules"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relPaths(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := runner.Discover(context.Background(), runner.Options{
			Paths:      []string{"nope"},
			WorkingDir: t.TempDir(),
		})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("invalid glob", func(t *testing.T) {
		t.Parallel()

		_, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:   t.TempDir(),
			ExcludeGlobs: []string{"[unterminated"},
		})
		if err == nil || !strings.Contains(err.Error(), "invalid glob") {
			t.Errorf("error = %v, want invalid glob", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTree(t, dir, map[string]string{"a.md": "a"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real/doc.md": "doc"})

	external := t.TempDir()
	writeTree(t, external, map[string]string{"external.md": "external"})

	if err := os.Symlink(filepath.Join(dir, "real", "doc.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir}

	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := relPaths(t, dir, files); !slices.Equal(got, []string{"link.md", "real/doc.md"}) {
		t.Errorf("without FollowSymlinks = %v", got)
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("with FollowSymlinks got %d files: %v", len(files), files)
	}
	if !slices.ContainsFunc(files, func(f string) bool { return strings.HasSuffix(f, "external.md") }) {
		t.Errorf("expected external.md via symlink, got %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !slices.Equal(got, []string{".md", ".markdown"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
