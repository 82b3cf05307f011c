// Package langdetect guesses the fence language of code block content.
// Shebangs and a few highly indicative patterns win; go-enry's classifier
// decides the rest.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned by Detect when no language is recognized.
const Text = "text"

// Fence tags for the languages recognized by pattern.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langMermaid    = "mermaid"
	langDiff       = "diff"
)

// candidates restricts the classifier to languages common in notes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// fenceTags maps enry names whose lowercase form is not the usual fence tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceTags = map[string]string{
	"Shell": "bash",
	"C++":   "cpp",
	"C#":    "csharp",
}

// patterns run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []func(content, trimmed []byte) string{
	detectMermaid,
	detectDiff,
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// Guess returns the detected fence tag and whether detection was confident.
func Guess(content []byte) (string, bool) {
	if len(bytes.TrimSpace(content)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return FenceTag(lang), true
	}

	trimmed := bytes.TrimSpace(content)
	for _, detect := range patterns {
		if lang := detect(content, trimmed); lang != "" {
			return lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return FenceTag(lang), true
	}
	return "", false
}

// Detect returns the detected fence tag, or Text.
func Detect(content []byte) string {
	return DetectOr(content, Text)
}

// DetectOr returns the detected fence tag, or fallback.
func DetectOr(content []byte, fallback string) string {
	if lang, ok := Guess(content); ok {
		return lang
	}
	return fallback
}

// FenceTag converts a go-enry language name to a fence tag.
func FenceTag(lang string) string {
	if tag, ok := fenceTags[lang]; ok {
		return tag
	}
	return strings.ToLower(lang)
}

func detectMermaid(_, trimmed []byte) string {
	for _, kw := range []string{"graph ", "flowchart ", "sequenceDiagram", "classDiagram", "stateDiagram", "gantt", "erDiagram"} {
		if bytes.HasPrefix(trimmed, []byte(kw)) {
			return langMermaid
		}
	}
	return ""
}

// detectDiff matches unified diffs by their hunk header.
func detectDiff(content, trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("--- ")) || bytes.HasPrefix(trimmed, []byte("diff --git "))) &&
		bytes.Contains(content, []byte("\n@@ ")) {
		return langDiff
	}
	return ""
}

func detectGo(_, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(content, _ []byte) string {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return langPython
	}
	// Go uses "import (".
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return langPython
		}
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(_, trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(tag)) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(_, trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func detectSQL(_, trimmed []byte) string {
	upper := strings.ToUpper(string(trimmed))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, kw) {
			return langSQL
		}
	}
	return ""
}

func detectRust(content, _ []byte) string {
	s := string(content)
	if strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(content, _ []byte) string {
	s := string(content)
	if strings.Contains(s, "=>") || strings.Contains(s, "const ") ||
		strings.Contains(s, "let ") || strings.Contains(s, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML needs at least two `key: value` or `- item` lines.
func detectYAML(content, _ []byte) string {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return langYAML
	}
	return ""
}
