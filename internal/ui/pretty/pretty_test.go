package pretty_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcst/internal/ui/pretty"
	"github.com/yaklabco/mdcst/pkg/config"
	"github.com/yaklabco/mdcst/pkg/fix"
	"github.com/yaklabco/mdcst/pkg/mdast"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf), "buffers are not terminals")
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, pretty.TerminalWidth(&bytes.Buffer{}))
}

func TestRender_NoColorIsVerbatim(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a\tb", styles.Render(styles.DiffAdd, "a\tb"))
}

func TestTokenFormatter(t *testing.T) {
	t.Parallel()

	tokens := []mdast.Token{
		{Kind: mdast.TokHeadingHash, Lexeme: "#", Literal: 1, Line: 1, Column: 1},
		{Kind: mdast.TokSpace, Lexeme: " ", Line: 1, Column: 2},
		{Kind: mdast.TokSymbol, Lexeme: "Hi", Line: 1, Column: 3},
		{Kind: mdast.TokFrontmatterValue, Lexeme: `"x"`, Literal: "x", Line: 2, Column: 4},
		mdast.NewToken(mdast.TokEOF, "", nil),
	}

	got := pretty.NewTokenFormatter(pretty.NewStyles(false), 0).Format(tokens)
	want := strings.Join([]string{
		`0  1:1  HEADING_HASH       "#" = 1 (int)`,
		`1  1:2  SPACE              " "`,
		`2  1:3  SYMBOL             "Hi"`,
		`3  2:4  FRONTMATTER_VALUE  "\"x\"" = "x"`,
		`4  -    EOF                ""`,
	}, "\n") + "\n"
	assert.Equal(t, want, got)

	assert.Empty(t, pretty.NewTokenFormatter(pretty.NewStyles(false), 0).Format(nil))
}

func TestTokenFormatter_Truncates(t *testing.T) {
	t.Parallel()

	tokens := []mdast.Token{mdast.NewToken(mdast.TokRune, strings.Repeat("界", 40), nil)}
	got := pretty.NewTokenFormatter(pretty.NewStyles(false), 40).Format(tokens)

	line := strings.TrimSuffix(got, "\n")
	assert.LessOrEqual(t, runewidth.StringWidth(line), 40)
	assert.True(t, strings.HasSuffix(line, "…"))
}

func sample() mdast.Statement {
	return mdast.New(mdast.KindDocument,
		mdast.New(mdast.KindContent,
			mdast.New(mdast.KindParagraph,
				mdast.New(mdast.KindRichText, mdast.NewToken(mdast.TokSymbol, "hi", "hi")),
				mdast.NewToken(mdast.TokBR, "\n", nil),
			),
		),
		nil,
	)
}

func TestTreeFormatter(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	withTokens := pretty.NewTreeFormatter(styles, pretty.TreeOptions{Tokens: true}).Format(sample())
	assert.Equal(t, strings.Join([]string{
		"Document",
		"└─ Content",
		"   └─ Paragraph",
		"      ├─ RichText",
		`      │  └─ SYMBOL "hi"`,
		`      └─ BR "\n"`,
	}, "\n")+"\n", withTokens)

	statements := pretty.NewTreeFormatter(styles, pretty.TreeOptions{}).Format(sample())
	assert.Equal(t, "Document\n└─ Content\n   └─ Paragraph\n      └─ RichText\n", statements)
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	d := fix.GenerateDiff("a.md", []byte("- a\n- b\n"), []byte("- a"))
	require.True(t, d.HasChanges())

	assert.Equal(t, d.FullString(), pretty.FormatDiff(pretty.NewStyles(false), d))
	assert.Contains(t, pretty.FormatDiff(pretty.NewStyles(true), d), "No newline at end of file")
	assert.Empty(t, pretty.FormatDiff(pretty.NewStyles(false), nil))
}

func TestFormatCheck(t *testing.T) {
	t.Parallel()

	got := pretty.FormatCheck(pretty.NewStyles(false), []pretty.CheckResult{
		{Path: "a.md", Tokens: 12, Statements: 5},
		{Path: "b.md", Err: errors.New("1:4: expected BR")},
	})
	assert.Equal(t,
		"ok   a.md (12 tokens, 5 statements)\nFAIL b.md: 1:4: expected BR\n2 files checked, 1 failed\n",
		got)

	single := pretty.FormatCheck(pretty.NewStyles(false), []pretty.CheckResult{{Path: "a.md"}})
	assert.True(t, strings.HasSuffix(single, "1 file checked, 0 failed\n"))
}
