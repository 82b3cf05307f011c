package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcst/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", want: "bash"},
		{name: "shebang sh", content: "#!/bin/sh\necho hello", want: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", want: "python"},
		{name: "shebang wins over patterns", content: "#!/bin/bash\ndef foo():\n    pass", want: "bash"},
		{name: "go", content: "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", want: "go"},
		{name: "python", content: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", want: "python"},
		{name: "javascript", content: "const x = () => { return 42; };\nconsole.log(x());", want: "javascript"},
		{name: "json", content: `{"key": "value", "number": 123}`, want: "json"},
		{name: "yaml", content: "key: value\nother: 123\nlist:\n  - item1\n  - item2", want: "yaml"},
		{name: "rust", content: "fn main() {\n    println!(\"Hello, world!\");\n}", want: "rust"},
		{name: "sql", content: "SELECT * FROM users WHERE id = 1;", want: "sql"},
		{
			name:    "html",
			content: "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			want:    "html",
		},
		{name: "dockerfile", content: "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", want: "dockerfile"},
		{name: "mermaid", content: "graph TD\n  A-->B\n", want: "mermaid"},
		{name: "diff", content: "--- a/x.md\n+++ b/x.md\n@@ -1 +1 @@\n-a\n+b\n", want: "diff"},
		{name: "plain text", content: "just some text without any code patterns", want: "text"},
		{name: "empty", content: "", want: "text"},
		{name: "blank", content: "\n\t\n", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestGuess(t *testing.T) {
	t.Parallel()

	lang, ok := langdetect.Guess([]byte("package main\n"))
	assert.True(t, ok)
	assert.Equal(t, "go", lang)

	lang, ok = langdetect.Guess([]byte("nothing to see here"))
	assert.False(t, ok)
	assert.Empty(t, lang)
}

func TestDetectOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plaintext", langdetect.DetectOr([]byte("hello"), "plaintext"))
	assert.Equal(t, "sql", langdetect.DetectOr([]byte("select 1"), "plaintext"))
}

func TestFenceTag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Shell":      "bash",
		"C++":        "cpp",
		"C#":         "csharp",
		"Go":         "go",
		"TypeScript": "typescript",
	}
	for in, want := range tests {
		assert.Equal(t, want, langdetect.FenceTag(in), in)
	}
}
