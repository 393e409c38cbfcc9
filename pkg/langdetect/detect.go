// Package langdetect guesses the language of fenced code blocks that carry
// no info string. Detection uses go-enry (shebangs, then its classifier)
// after a list of cheap, highly indicative content patterns.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gomdtable/pkg/table"
)

// Fence language tags returned by Detect.
const (
	LangText = "text"

	langBash       = "bash"
	langDockerfile = "dockerfile"
	langGo         = "go"
	langHTML       = "html"
	langJavaScript = "javascript"
	langJSON       = "json"
	langMarkdown   = "markdown"
	langPython     = "python"
	langRust       = "rust"
	langSQL        = "sql"
	langYAML       = "yaml"
)

// minYAMLKeys is the number of key: value or list lines that make YAML.
const minYAMLKeys = 2

// classifierCandidates limits the go-enry classifier to common fence languages.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// sample is code content with the views the matchers need precomputed.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
	upper   string
	lines   []string
}

func newSample(content []byte) sample {
	return sample{
		raw:     content,
		trimmed: bytes.TrimSpace(content),
		text:    string(content),
		upper:   strings.ToUpper(strings.TrimSpace(string(content))),
		lines:   strings.Split(string(content), "\n"),
	}
}

// matcher maps a content pattern to a language. Matchers run in order; the
// first match wins.
type matcher struct {
	lang  string
	match func(s sample) bool
}

var matchers = []matcher{
	{langMarkdown, isPipeTable},
	{langGo, func(s sample) bool { return bytes.HasPrefix(s.trimmed, []byte("package ")) }},
	{langPython, isPython},
	{langHTML, isHTML},
	{langJSON, func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{langDockerfile, isDockerfile},
	{langSQL, isSQL},
	{langRust, func(s sample) bool {
		return containsAny(s.text, "fn main()", "println!", "let mut ")
	}},
	{langJavaScript, func(s sample) bool {
		return containsAny(s.text, "=>", "const ", "let ", "console.log")
	}},
	{langYAML, isYAML},
}

// Detect returns the fence language for code content, or "text" when no
// strategy is confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := newSample(content)
	for _, m := range matchers {
		if m.match(s) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// FenceLanguage returns the language of a fenced block: the first word of
// its info string, or, when the info string is empty and detect is set, the
// detected language. It returns "" when neither yields a language.
func FenceLanguage(info, content string, detect bool) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		return fields[0]
	}
	if !detect {
		return ""
	}
	if lang := Detect([]byte(content)); lang != LangText {
		return lang
	}
	return ""
}

// isPipeTable reports whether the first two non-blank lines form a table
// header and delimiter row.
func isPipeTable(s sample) bool {
	var rows []string
	for _, line := range s.lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
		if len(rows) == 2 {
			break
		}
	}
	if len(rows) < 2 || !strings.Contains(rows[0], "|") || !strings.Contains(rows[1], "|") {
		return false
	}
	_, ok := table.ParseDelimiter(rows[1])
	return ok
}

func isPython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	// Go uses "import (".
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") {
		if strings.Contains(s.text, "from ") || strings.HasPrefix(strings.TrimSpace(s.text), "import ") {
			return true
		}
	}
	return containsAny(s.text, "__name__", "__main__")
}

func isHTML(s sample) bool {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func isDockerfile(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(strings.Contains(s.text, "\nFROM ") && strings.Contains(s.text, "\nRUN ")) ||
		(strings.Contains(s.text, "WORKDIR ") && strings.Contains(s.text, "COPY "))
}

func isSQL(s sample) bool {
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(s.upper, keyword) {
			return true
		}
	}
	return false
}

// isYAML counts key: value pairs and root list items.
func isYAML(s sample) bool {
	keys := 0
	for _, line := range s.lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Lines with parentheses or braces look like code.
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			keys++
		}
		if strings.HasPrefix(line, "- ") {
			keys++
		}
	}
	return keys >= minYAMLKeys
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
