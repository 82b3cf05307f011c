package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// TestParse_AgreesWithGoldmark checks block structure against a CommonMark
// parser on documents that stay inside the common subset of both dialects.
func TestParse_AgreesWithGoldmark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"headings and code", "# One\n\ntext\n\n## Two\n\n```go\nx := 1\n```\n\n- a\n- b\n"},
		{"table and quote", "intro\n\n# H\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n> quote\n"},
		{"heading inside code", "```\n# not a heading\n```\n\n### Three\n"},
		{"nested list", "- a\n\t- b\n- c\n\n1. one\n2. two\n"},
		{"rules", "a\n\n---\n\n***\n\n# End\n"},
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := parser.Parse(tt.content)
			require.NoError(t, err)

			want := goldmarkCounts(t, md, tt.content)
			got := map[string]int{
				"heading": len(mdast.FindByKind(doc, mdast.KindHeading)),
				"code":    len(mdast.FindByKind(doc, mdast.KindCodeBlock)),
				"list":    len(mdast.FindByKind(doc, mdast.KindList)),
				"table":   len(mdast.FindByKind(doc, mdast.KindTable)),
				"quote":   len(mdast.FindByKind(doc, mdast.KindQuote)),
				"hr":      len(mdast.FindByKind(doc, mdast.KindHr)),
			}
			assert.Equal(t, want, got)
		})
	}
}

func goldmarkCounts(t *testing.T, md goldmark.Markdown, content string) map[string]int {
	t.Helper()

	source := []byte(content)
	root := md.Parser().Parse(text.NewReader(source))

	counts := map[string]int{"heading": 0, "code": 0, "list": 0, "table": 0, "quote": 0, "hr": 0}
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			counts["heading"]++
		case ast.KindFencedCodeBlock:
			counts["code"]++
		case ast.KindList:
			counts["list"]++
		case east.KindTable:
			counts["table"]++
		case ast.KindBlockquote:
			counts["quote"]++
		case ast.KindThematicBreak:
			counts["hr"]++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)

	return counts
}
