package pretty

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// Tree guides.
const (
	guideBranch = "├─ "
	guideLast   = "└─ "
	guidePipe   = "│  "
	guideSpace  = "   "
)

// TreeOptions controls CST tree rendering.
type TreeOptions struct {
	// Tokens includes token leaves; otherwise only statements are shown.
	Tokens bool

	// Width truncates token lexemes to fit; <= 0 disables truncation.
	Width int
}

// TreeFormatter renders a CST as an indented tree.
type TreeFormatter struct {
	styles *Styles
	opts   TreeOptions
}

// NewTreeFormatter creates a tree formatter.
func NewTreeFormatter(styles *Styles, opts TreeOptions) *TreeFormatter {
	return &TreeFormatter{styles: styles, opts: opts}
}

// Format renders root and everything below it. Absent optional parts are
// not shown.
func (f *TreeFormatter) Format(root mdast.Statement) string {
	var builder strings.Builder
	builder.WriteString(f.styles.Render(f.styles.Statement, root.Kind().String()))
	builder.WriteByte('\n')
	f.writeChildren(&builder, root, "")
	return builder.String()
}

func (f *TreeFormatter) writeChildren(builder *strings.Builder, s mdast.Statement, prefix string) {
	children := f.visible(s)
	for i, child := range children {
		last := i == len(children)-1
		guide, next := guideBranch, guidePipe
		if last {
			guide, next = guideLast, guideSpace
		}

		builder.WriteString(f.styles.Render(f.styles.Guide, prefix+guide))
		switch v := child.(type) {
		case mdast.Statement:
			builder.WriteString(f.styles.Render(f.styles.Statement, v.Kind().String()))
			builder.WriteByte('\n')
			f.writeChildren(builder, v, prefix+next)
		case mdast.Token:
			f.writeToken(builder, v, runewidth.StringWidth(prefix+guide))
			builder.WriteByte('\n')
		}
	}
}

func (f *TreeFormatter) writeToken(builder *strings.Builder, tok mdast.Token, indent int) {
	kind := tok.Kind.String()
	lexeme := strconv.Quote(tok.Lexeme)
	if f.opts.Width > 0 {
		budget := max(f.opts.Width-indent-len(kind)-1, minLexemeWidth)
		lexeme = runewidth.Truncate(lexeme, budget, ellipsis)
	}

	builder.WriteString(f.styles.Render(f.styles.TokenKind, kind))
	builder.WriteByte(' ')
	builder.WriteString(f.styles.Render(f.styles.Lexeme, lexeme))
	if literal := formatLiteral(tok); literal != "" {
		builder.WriteString(" = ")
		builder.WriteString(f.styles.Render(f.styles.Literal, literal))
	}
}

func (f *TreeFormatter) visible(s mdast.Statement) []mdast.Node {
	var out []mdast.Node
	for _, part := range s.Parts() {
		switch part.(type) {
		case mdast.Statement:
			out = append(out, part)
		case mdast.Token:
			if f.opts.Tokens {
				out = append(out, part)
			}
		}
	}
	return out
}
