package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

func kinds(tokens []mdast.Token) []mdast.TokenKind {
	out := make([]mdast.TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func lexemes(tokens []mdast.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Lexeme
	}
	return out
}

//nolint:gochecknoglobals // Shared fixture table.
var roundTripFixtures = []struct {
	name    string
	content string
}{
	{"empty", ""},
	{"plain text", "Hello, world!"},
	{"heading", "# Hello\nWorld\n"},
	{"deep heading", "###### Six"},
	{"too many hashes", "####### Seven"},
	{"bullets", "- one\n- two\n+ three\n* four\n"},
	{"checkbox", "- [ ] todo\n- [x] done\n- [X] also\n"},
	{"numbered", "1. first\n2. second\n10. tenth\n"},
	{"nested", "- a\n\t- b\n\t\t- c\n  - spaced\n"},
	{"quote", "> quoted *text*\n>> nested\n> - item\n"},
	{"rules", "***\n___\n- - -\n"},
	{"frontmatter", "---\ntitle: Hello\ntags:\n  - a\n  - b\n\nempty:\n---\n# Body\n"},
	{"unclosed frontmatter", "---\nfoo: bar\n"},
	{"fence", "```go\ntitle: demo\nfunc main() {}\n```\n"},
	{"long fence", "````\n```\n````\n"},
	{"unclosed fence", "```\ncode\n"},
	{"inline", "**b** *i* ~~s~~ ==h== `c` $m$ $$d$$ %%x%% {{id}}"},
	{"links", "[[Note|alias]] ![[img.png]] [label](https://example.com)"},
	{"tags and metadata", "#tag #other\nkey:: value\n"},
	{"html", "<span class=\"x\">hi</span> a < b"},
	{"escapes", `\*not\* \[x\] trailing\`},
	{"numbers", "3.14 2e5 1e+3 1st 22nd 3rd 4th 1step 50% 100"},
	{"table", "| a | b |\n|---|---|\n| 1 | 2 |\n"},
	{"crlf", "# Head\r\n\r\n- item\r\nlone\rcarriage\r\n"},
	{"unicode", "Grüße 日本語 #tâg [[Ünïcode]]"},
	{"colon", "time: 12:30 a::b c:: d"},
}

func TestScan_Lossless(t *testing.T) {
	t.Parallel()

	for _, tt := range roundTripFixtures {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanner.Scan(tt.content)
			require.NotEmpty(t, tokens)

			assert.Equal(t, tt.content, mdast.JoinTokens(tokens))
			assert.True(t, mdast.ValidateTokens(tokens, tt.content))

			last := tokens[len(tokens)-1]
			assert.Equal(t, mdast.TokEOF, last.Kind)
			assert.Empty(t, last.Lexeme)
		})
	}
}

func TestScan_Ordinal(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("Foo 1st")

	require.Equal(t, []mdast.TokenKind{
		mdast.TokSymbol, mdast.TokSpace, mdast.TokOrdinal, mdast.TokEOF,
	}, kinds(tokens))

	ordinal := tokens[2]
	assert.Equal(t, "1st", ordinal.Lexeme)
	assert.Equal(t, 1, ordinal.Literal)
	assert.Equal(t, mdast.Position{Line: 1, Column: 5}, ordinal.Position())
}

func TestScan_LineStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.TokenKind
		literal any
	}{
		{
			name:    "heading",
			content: "## Two",
			want:    []mdast.TokenKind{mdast.TokHeadingHash, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
			literal: 2,
		},
		{
			name:    "hash without space is a tag",
			content: "#tag",
			want:    []mdast.TokenKind{mdast.TokHash, mdast.TokSymbol, mdast.TokEOF},
		},
		{
			name:    "bullet",
			content: "- item",
			want:    []mdast.TokenKind{mdast.TokBullet, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
		},
		{
			name:    "plus bullet",
			content: "+ item",
			want:    []mdast.TokenKind{mdast.TokBullet, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
		},
		{
			name:    "unchecked",
			content: "- [ ] todo",
			want:    []mdast.TokenKind{mdast.TokCheckbox, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
			literal: false,
		},
		{
			name:    "checked",
			content: "- [x] done",
			want:    []mdast.TokenKind{mdast.TokCheckbox, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
			literal: true,
		},
		{
			name:    "numbered",
			content: "12. twelve",
			want:    []mdast.TokenKind{mdast.TokNumbered, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
			literal: 12,
		},
		{
			name:    "decimal is not a list marker",
			content: "3.14",
			want:    []mdast.TokenKind{mdast.TokNumber, mdast.TokEOF},
			literal: 3.14,
		},
		{
			name:    "dash rule",
			content: "---",
			want:    []mdast.TokenKind{mdast.TokHR, mdast.TokEOF},
		},
		{
			name:    "star rule",
			content: "***",
			want:    []mdast.TokenKind{mdast.TokHR, mdast.TokEOF},
		},
		{
			name:    "underscore rule",
			content: "___",
			want:    []mdast.TokenKind{mdast.TokHR, mdast.TokEOF},
		},
		{
			name:    "quote",
			content: "> hi",
			want:    []mdast.TokenKind{mdast.TokQuote, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
		},
		{
			name:    "quoted bullet",
			content: "> - hi",
			want: []mdast.TokenKind{
				mdast.TokQuote, mdast.TokSpace, mdast.TokBullet, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF,
			},
		},
		{
			name:    "tab indent",
			content: "\t\t- deep",
			want: []mdast.TokenKind{
				mdast.TokTab, mdast.TokBullet, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF,
			},
			literal: 2,
		},
		{
			name:    "bold at line start",
			content: "**b**",
			want: []mdast.TokenKind{
				mdast.TokDoubleStar, mdast.TokSymbol, mdast.TokDoubleStar, mdast.TokEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanner.Scan(tt.content)
			assert.Equal(t, tt.want, kinds(tokens), "lexemes: %q", lexemes(tokens))
			if tt.literal != nil {
				assert.Equal(t, tt.literal, tokens[0].Literal)
			}
		})
	}
}

func TestScan_Inline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.TokenKind
	}{
		{
			name:    "emphasis",
			content: "a *b* **c**",
			want: []mdast.TokenKind{
				mdast.TokSymbol, mdast.TokSpace,
				mdast.TokStar, mdast.TokSymbol, mdast.TokStar, mdast.TokSpace,
				mdast.TokDoubleStar, mdast.TokSymbol, mdast.TokDoubleStar, mdast.TokEOF,
			},
		},
		{
			name:    "strike and highlight",
			content: "a ~~b~~ ==c==",
			want: []mdast.TokenKind{
				mdast.TokSymbol, mdast.TokSpace,
				mdast.TokDoubleTilde, mdast.TokSymbol, mdast.TokDoubleTilde, mdast.TokSpace,
				mdast.TokDoubleEqual, mdast.TokSymbol, mdast.TokDoubleEqual, mdast.TokEOF,
			},
		},
		{
			name:    "internal link",
			content: "[[Note|alias]]",
			want: []mdast.TokenKind{
				mdast.TokDoubleLeftBracket, mdast.TokSymbol, mdast.TokPipe, mdast.TokSymbol,
				mdast.TokDoubleRightBracket, mdast.TokEOF,
			},
		},
		{
			name:    "image link",
			content: "![[pic]]",
			want: []mdast.TokenKind{
				mdast.TokImageLinkStart, mdast.TokSymbol, mdast.TokDoubleRightBracket, mdast.TokEOF,
			},
		},
		{
			name:    "external link",
			content: "[x](https://example.com)",
			want: []mdast.TokenKind{
				mdast.TokLeftBracket, mdast.TokSymbol, mdast.TokRightBracket,
				mdast.TokLeftParen, mdast.TokURL, mdast.TokRightParen, mdast.TokEOF,
			},
		},
		{
			name:    "metadata",
			content: "key:: value",
			want: []mdast.TokenKind{
				mdast.TokSymbol, mdast.TokDoubleColon, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF,
			},
		},
		{
			name:    "single colon stays in word",
			content: "a: b",
			want:    []mdast.TokenKind{mdast.TokRune, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF},
		},
		{
			name:    "tag",
			content: "see #tag",
			want: []mdast.TokenKind{
				mdast.TokSymbol, mdast.TokSpace, mdast.TokHash, mdast.TokSymbol, mdast.TokEOF,
			},
		},
		{
			name:    "code span",
			content: "`x`",
			want:    []mdast.TokenKind{mdast.TokBacktick, mdast.TokSymbol, mdast.TokBacktick, mdast.TokEOF},
		},
		{
			name:    "math",
			content: "$x$ $$y$$",
			want: []mdast.TokenKind{
				mdast.TokDollar, mdast.TokSymbol, mdast.TokDollar, mdast.TokSpace,
				mdast.TokDoubleDollar, mdast.TokSymbol, mdast.TokDoubleDollar, mdast.TokEOF,
			},
		},
		{
			name:    "comment",
			content: "%%note%%",
			want:    []mdast.TokenKind{mdast.TokComment, mdast.TokSymbol, mdast.TokComment, mdast.TokEOF},
		},
		{
			name:    "lone percent",
			content: "50%",
			want:    []mdast.TokenKind{mdast.TokNumber, mdast.TokRune, mdast.TokEOF},
		},
		{
			name:    "bookmark",
			content: "{{id}}",
			want: []mdast.TokenKind{
				mdast.TokDoubleLeftBrace, mdast.TokSymbol, mdast.TokDoubleRightBrace, mdast.TokEOF,
			},
		},
		{
			name:    "html tag",
			content: "<b>x</b>",
			want:    []mdast.TokenKind{mdast.TokHTMLTag, mdast.TokSymbol, mdast.TokHTMLTag, mdast.TokEOF},
		},
		{
			name:    "unterminated angle",
			content: "a < b",
			want: []mdast.TokenKind{
				mdast.TokSymbol, mdast.TokSpace, mdast.TokRune, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF,
			},
		},
		{
			name:    "escape",
			content: `\*x`,
			want:    []mdast.TokenKind{mdast.TokEscape, mdast.TokSymbol, mdast.TokEOF},
		},
		{
			name:    "url",
			content: "ftp://host/file",
			want:    []mdast.TokenKind{mdast.TokURL, mdast.TokEOF},
		},
		{
			name:    "ordinal needs boundary",
			content: "1step",
			want:    []mdast.TokenKind{mdast.TokNumber, mdast.TokSymbol, mdast.TokEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanner.Scan(tt.content)
			assert.Equal(t, tt.want, kinds(tokens), "lexemes: %q", lexemes(tokens))
		})
	}
}

func TestScan_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		kind    mdast.TokenKind
		literal any
	}{
		{"x 42", mdast.TokNumber, 42},
		{"x 2.5", mdast.TokNumber, 2.5},
		{"x 2e3", mdast.TokNumber, 2000.0},
		{"x 22nd", mdast.TokOrdinal, 22},
		{"x 123rd", mdast.TokOrdinal, 123},
		{"x 7th", mdast.TokOrdinal, 7},
		{`x \#`, mdast.TokEscape, "#"},
		{"x ```", mdast.TokBacktick, 3},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			t.Parallel()

			tokens := scanner.Scan(tt.content)
			require.Len(t, tokens, 4)
			assert.Equal(t, tt.kind, tokens[2].Kind)
			assert.Equal(t, tt.literal, tokens[2].Literal)
		})
	}
}

func TestScan_Positions(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("a\r\n  b\nc")

	want := []struct {
		kind mdast.TokenKind
		pos  mdast.Position
	}{
		{mdast.TokSymbol, mdast.Position{Line: 1, Column: 1}},
		{mdast.TokBR, mdast.Position{Line: 1, Column: 2}},
		{mdast.TokSpace, mdast.Position{Line: 2, Column: 1}},
		{mdast.TokSymbol, mdast.Position{Line: 2, Column: 3}},
		{mdast.TokBR, mdast.Position{Line: 2, Column: 4}},
		{mdast.TokSymbol, mdast.Position{Line: 3, Column: 1}},
		{mdast.TokEOF, mdast.Position{Line: 3, Column: 2}},
	}

	require.Len(t, tokens, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, tokens[i].Kind, "token %d", i)
		assert.Equal(t, w.pos, tokens[i].Position(), "token %d", i)
	}
}

func TestScan_Frontmatter(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("---\nfoo: bar\n---\n")

	assert.Equal(t, []mdast.TokenKind{
		mdast.TokFrontmatterStart, mdast.TokBR,
		mdast.TokFrontmatterKey, mdast.TokColon, mdast.TokSpace, mdast.TokFrontmatterValue, mdast.TokBR,
		mdast.TokFrontmatterEnd, mdast.TokBR, mdast.TokEOF,
	}, kinds(tokens))

	assert.Equal(t, mdast.Position{Line: 2, Column: 1}, tokens[2].Position())
	assert.Equal(t, mdast.Position{Line: 3, Column: 1}, tokens[7].Position())
}

func TestScan_FrontmatterOnlyAtStart(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("text\n---\nfoo: bar\n")
	assert.NotContains(t, kinds(tokens), mdast.TokFrontmatterStart)
	assert.Contains(t, kinds(tokens), mdast.TokHR)
}

func TestScan_UnclosedFrontmatter(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("---\nfoo: bar\n")
	assert.Equal(t, mdast.TokFrontmatterStart, tokens[0].Kind)
	assert.NotContains(t, kinds(tokens), mdast.TokFrontmatterEnd)
}

func TestScan_Fence(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("```go\nx := 1\n```")

	require.Equal(t, []mdast.TokenKind{
		mdast.TokCodeFenceStart, mdast.TokCodeLang, mdast.TokBR,
		mdast.TokCodeSource, mdast.TokBR,
		mdast.TokCodeFenceEnd, mdast.TokEOF,
	}, kinds(tokens))

	assert.Equal(t, 3, tokens[0].Literal)
	assert.Equal(t, "go", tokens[1].Literal)
	assert.Equal(t, "x := 1", tokens[3].Lexeme)
	assert.Equal(t, mdast.Position{Line: 3, Column: 1}, tokens[5].Position())
}

func TestScan_FenceNeedsMatchingLength(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("````\n```\n````")

	require.Equal(t, []mdast.TokenKind{
		mdast.TokCodeFenceStart, mdast.TokBR,
		mdast.TokCodeSource, mdast.TokBR,
		mdast.TokCodeFenceEnd, mdast.TokEOF,
	}, kinds(tokens))
	assert.Equal(t, "```", tokens[2].Lexeme)
}

func TestScanFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.TokenKind
		lexemes []string
	}{
		{
			name:    "scalar",
			content: "foo: bar",
			want: []mdast.TokenKind{
				mdast.TokFrontmatterKey, mdast.TokColon, mdast.TokSpace, mdast.TokFrontmatterValue,
			},
			lexemes: []string{"foo", ":", " ", "bar"},
		},
		{
			name:    "list",
			content: "tags:\n- a\n  - b\n",
			want: []mdast.TokenKind{
				mdast.TokFrontmatterKey, mdast.TokColon, mdast.TokBR,
				mdast.TokBullet, mdast.TokSpace, mdast.TokFrontmatterValue, mdast.TokBR,
				mdast.TokSpace, mdast.TokBullet, mdast.TokSpace, mdast.TokFrontmatterValue, mdast.TokBR,
			},
			lexemes: []string{"tags", ":", "\n", "-", " ", "a", "\n", "  ", "-", " ", "b", "\n"},
		},
		{
			name:    "spaced colon",
			content: "foo  :   bar",
			want: []mdast.TokenKind{
				mdast.TokFrontmatterKey, mdast.TokSpace, mdast.TokColon, mdast.TokSpace, mdast.TokFrontmatterValue,
			},
			lexemes: []string{"foo", "  ", ":", "   ", "bar"},
		},
		{
			name:    "url value keeps inner colons",
			content: "url: https://example.com",
			want: []mdast.TokenKind{
				mdast.TokFrontmatterKey, mdast.TokColon, mdast.TokSpace, mdast.TokFrontmatterValue,
			},
			lexemes: []string{"url", ":", " ", "https://example.com"},
		},
		{
			name:    "blank line",
			content: "a: 1\n\nb: 2",
			want: []mdast.TokenKind{
				mdast.TokFrontmatterKey, mdast.TokColon, mdast.TokSpace, mdast.TokFrontmatterValue, mdast.TokBR,
				mdast.TokBR,
				mdast.TokFrontmatterKey, mdast.TokColon, mdast.TokSpace, mdast.TokFrontmatterValue,
			},
			lexemes: []string{"a", ":", " ", "1", "\n", "\n", "b", ":", " ", "2"},
		},
		{
			name:    "no separator",
			content: "just text",
			want:    []mdast.TokenKind{mdast.TokFrontmatterValue},
			lexemes: []string{"just text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanner.ScanFrontmatter(tt.content)
			assert.Equal(t, tt.want, kinds(tokens))
			assert.Equal(t, tt.lexemes, lexemes(tokens))
		})
	}
}

func TestDecodeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want any
	}{
		{"bar", "bar"},
		{"true", true},
		{"false", false},
		{"42", 42},
		{"-7", -7},
		{"1.5", 1.5},
		{`"quoted: value"`, "quoted: value"},
		{`"esc\"aped"`, `esc"aped`},
		{"'single'", "single"},
		{"  padded  ", "padded"},
		{"True", "True"},
		{"inf", "inf"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scanner.DecodeValue(tt.raw))
		})
	}
}

func TestScanCodeBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.TokenKind
	}{
		{
			name:    "metadata then source",
			content: "title: demo\nfmt.Println()\n",
			want: []mdast.TokenKind{
				mdast.TokCodeKey, mdast.TokColon, mdast.TokSpace, mdast.TokCodeValue, mdast.TokBR,
				mdast.TokCodeSource, mdast.TokBR,
			},
		},
		{
			name:    "source only",
			content: "x := 1\ny := 2",
			want: []mdast.TokenKind{
				mdast.TokCodeSource, mdast.TokBR, mdast.TokCodeSource,
			},
		},
		{
			name:    "metadata stops at first source line",
			content: "print(1)\nkey: value\n",
			want: []mdast.TokenKind{
				mdast.TokCodeSource, mdast.TokBR, mdast.TokCodeSource, mdast.TokBR,
			},
		},
		{
			name:    "key without value is source",
			content: "key: \n",
			want:    []mdast.TokenKind{mdast.TokCodeSource, mdast.TokBR},
		},
		{
			name:    "blank lines",
			content: "a\n\nb\n",
			want: []mdast.TokenKind{
				mdast.TokCodeSource, mdast.TokBR, mdast.TokBR, mdast.TokCodeSource, mdast.TokBR,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanner.ScanCodeBlock(tt.content)
			assert.Equal(t, tt.want, kinds(tokens), "lexemes: %q", lexemes(tokens))
			assert.Equal(t, tt.content, mdast.JoinTokens(tokens))
		})
	}
}

func TestScanCodeBlock_MetadataLiterals(t *testing.T) {
	t.Parallel()

	tokens := scanner.ScanCodeBlock("file-name:   main.go  \n")
	require.Len(t, tokens, 5)
	assert.Equal(t, "file-name", tokens[0].Literal)
	assert.Equal(t, "   ", tokens[2].Lexeme)
	assert.Equal(t, "main.go", tokens[3].Literal)
	assert.Equal(t, "main.go  ", tokens[3].Lexeme)
}

func BenchmarkScan(b *testing.B) {
	var content string
	for _, f := range roundTripFixtures {
		if f.name != "unclosed frontmatter" && f.name != "unclosed fence" && f.name != "frontmatter" {
			content += f.content + "\n\n"
		}
	}

	b.ResetTimer()
	for range b.N {
		_ = scanner.Scan(content)
	}
}

func TestScanInline(t *testing.T) {
	t.Parallel()

	tokens := scanner.ScanInline("# not a heading")
	assert.Equal(t, []mdast.TokenKind{
		mdast.TokRune, mdast.TokSpace, mdast.TokSymbol, mdast.TokSpace,
		mdast.TokSymbol, mdast.TokSpace, mdast.TokSymbol, mdast.TokEOF,
	}, kinds(tokens))

	tokens = scanner.ScanInline("- 1. ---")
	assert.NotContains(t, kinds(tokens), mdast.TokBullet)
	assert.NotContains(t, kinds(tokens), mdast.TokNumbered)
	assert.NotContains(t, kinds(tokens), mdast.TokHR)
}
