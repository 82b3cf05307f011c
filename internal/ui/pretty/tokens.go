package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// Token table layout.
const (
	columnGap      = "  "
	minLexemeWidth = 12
	ellipsis       = "…"
)

// TokenFormatter renders a token stream as an aligned table.
type TokenFormatter struct {
	styles *Styles
	width  int
}

// NewTokenFormatter creates a token formatter for a terminal width columns
// wide. A width <= 0 disables truncation.
func NewTokenFormatter(styles *Styles, width int) *TokenFormatter {
	return &TokenFormatter{styles: styles, width: width}
}

// Format renders one row per token: index, position, kind, quoted lexeme and
// the decoded literal when it differs from the lexeme.
func (f *TokenFormatter) Format(tokens []mdast.Token) string {
	if len(tokens) == 0 {
		return ""
	}

	type row struct {
		index, pos, kind, lexeme, literal string
	}
	rows := make([]row, len(tokens))
	var indexWidth, posWidth, kindWidth int
	for i, tok := range tokens {
		r := row{
			index:   strconv.Itoa(i),
			pos:     "-",
			kind:    tok.Kind.String(),
			lexeme:  strconv.Quote(tok.Lexeme),
			literal: formatLiteral(tok),
		}
		if p := tok.Position(); p.IsValid() {
			r.pos = p.String()
		}
		indexWidth = max(indexWidth, len(r.index))
		posWidth = max(posWidth, len(r.pos))
		kindWidth = max(kindWidth, len(r.kind))
		rows[i] = r
	}

	lexemeWidth := 0
	if f.width > 0 {
		fixed := indexWidth + posWidth + kindWidth + 3*len(columnGap)
		lexemeWidth = max(f.width-fixed, minLexemeWidth)
	}

	s := f.styles
	var builder strings.Builder
	for _, r := range rows {
		lexeme := r.lexeme
		if lexemeWidth > 0 {
			lexeme = runewidth.Truncate(lexeme, lexemeWidth, ellipsis)
		}
		builder.WriteString(s.Render(s.Index, pad(r.index, indexWidth, true)))
		builder.WriteString(columnGap)
		builder.WriteString(s.Render(s.Dim, pad(r.pos, posWidth, false)))
		builder.WriteString(columnGap)
		builder.WriteString(s.Render(s.TokenKind, pad(r.kind, kindWidth, false)))
		builder.WriteString(columnGap)
		builder.WriteString(s.Render(s.Lexeme, lexeme))
		if r.literal != "" {
			builder.WriteString(" = ")
			builder.WriteString(s.Render(s.Literal, r.literal))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// formatLiteral returns the literal of tok with its type, or "" when the
// literal adds nothing over the lexeme.
func formatLiteral(tok mdast.Token) string {
	switch v := tok.Literal.(type) {
	case nil:
		return ""
	case string:
		if v == tok.Lexeme {
			return ""
		}
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v (%T)", v, v)
	}
}

// pad pads text with spaces to width display columns.
func pad(text string, width int, right bool) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	if right {
		return strings.Repeat(" ", gap) + text
	}
	return text + strings.Repeat(" ", gap)
}
