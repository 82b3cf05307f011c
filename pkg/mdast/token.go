package mdast

import (
	"fmt"
	"strings"
)

// TokenKind classifies the type of a token in the document source.
type TokenKind uint16

// Token kinds cover every character in the source. Sub-scanner kinds
// (frontmatter, code block) share the enumeration with the main scanner.
const (
	TokEOF TokenKind = iota
	TokBR
	TokSpace
	TokTab

	// Line-start markers.
	TokHeadingHash // '#'..'######' followed by space; literal = level
	TokBullet      // '-', '+', '*' followed by space
	TokCheckbox    // '- [ ]' / '- [x]'; literal = checked
	TokNumbered    // '1.'; literal = number
	TokHR          // '---', '***', '___'
	TokQuote       // '>'

	// Frontmatter.
	TokFrontmatterStart
	TokFrontmatterEnd
	TokFrontmatterKey
	TokFrontmatterValue
	TokColon

	// Fenced code.
	TokCodeFenceStart
	TokCodeFenceEnd
	TokCodeLang
	TokCodeKey
	TokCodeValue
	TokCodeSource

	// Words.
	TokSymbol  // letters, digits, '-', '_' ending in a letter
	TokRune    // any other run of non-delimiter characters
	TokNumber  // literal = int or float64
	TokOrdinal // '1st', '22nd'; literal = int
	TokURL     // rune with a known scheme prefix
	TokEscape  // '\' + char

	// Inline delimiters.
	TokHash               // '#' opening a tag
	TokLeftBracket        // '['
	TokRightBracket       // ']'
	TokDoubleLeftBracket  // '[['
	TokDoubleRightBracket // ']]'
	TokImageLinkStart     // '![['
	TokLeftParen          // '('
	TokRightParen         // ')'
	TokPipe               // '|'
	TokStar               // '*'
	TokDoubleStar         // '**'
	TokDoubleTilde        // '~~'
	TokDoubleEqual        // '=='
	TokDoubleColon        // '::' followed by space
	TokBacktick           // backtick run; literal = length
	TokDollar             // '$'
	TokDoubleDollar       // '$$'
	TokDoubleLeftBrace    // '{{'
	TokDoubleRightBrace   // '}}'
	TokComment            // '%%'
	TokHTMLTag            // '<tag ...>'
	tokenKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	TokEOF:                "EOF",
	TokBR:                 "BR",
	TokSpace:              "SPACE",
	TokTab:                "TAB",
	TokHeadingHash:        "HEADING_HASH",
	TokBullet:             "BULLET",
	TokCheckbox:           "CHECKBOX",
	TokNumbered:           "NUMBERED",
	TokHR:                 "HR",
	TokQuote:              "QUOTE",
	TokFrontmatterStart:   "FRONTMATTER_START",
	TokFrontmatterEnd:     "FRONTMATTER_END",
	TokFrontmatterKey:     "FRONTMATTER_KEY",
	TokFrontmatterValue:   "FRONTMATTER_VALUE",
	TokColon:              "COLON",
	TokCodeFenceStart:     "CODE_FENCE_START",
	TokCodeFenceEnd:       "CODE_FENCE_END",
	TokCodeLang:           "CODE_LANG",
	TokCodeKey:            "CODE_KEY",
	TokCodeValue:          "CODE_VALUE",
	TokCodeSource:         "CODE_SOURCE",
	TokSymbol:             "SYMBOL",
	TokRune:               "RUNE",
	TokNumber:             "NUMBER",
	TokOrdinal:            "ORDINAL",
	TokURL:                "URL",
	TokEscape:             "ESCAPE",
	TokHash:               "HASH",
	TokLeftBracket:        "LEFT_BRACKET",
	TokRightBracket:       "RIGHT_BRACKET",
	TokDoubleLeftBracket:  "DOUBLE_LEFT_BRACKET",
	TokDoubleRightBracket: "DOUBLE_RIGHT_BRACKET",
	TokImageLinkStart:     "IMAGE_LINK_START",
	TokLeftParen:          "LEFT_PAREN",
	TokRightParen:         "RIGHT_PAREN",
	TokPipe:               "PIPE",
	TokStar:               "STAR",
	TokDoubleStar:         "DOUBLE_STAR",
	TokDoubleTilde:        "DOUBLE_TILDE",
	TokDoubleEqual:        "DOUBLE_EQUAL",
	TokDoubleColon:        "DOUBLE_COLON",
	TokBacktick:           "BACKTICK",
	TokDollar:             "DOLLAR",
	TokDoubleDollar:       "DOUBLE_DOLLAR",
	TokDoubleLeftBrace:    "DOUBLE_LEFT_BRACE",
	TokDoubleRightBrace:   "DOUBLE_RIGHT_BRACE",
	TokComment:            "COMMENT",
	TokHTMLTag:            "HTML_TAG",
}

// String returns the upper-case name of the kind.
func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint16(k))
}

// Token is an immutable lexical unit. Concatenating the lexemes of every token
// produced for a source reproduces that source exactly.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Lexeme is the exact source text of the token.
	Lexeme string

	// Literal is the decoded value (int, float64, bool or string), or nil.
	Literal any

	// Line and Column are the 1-based position of the first character.
	Line   int
	Column int
}

// NewToken creates a synthesized token with no source position.
func NewToken(kind TokenKind, lexeme string, literal any) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal}
}

// String returns the lexeme.
func (t Token) String() string {
	return t.Lexeme
}

// Position returns the 1-based position of the token.
func (t Token) Position() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// Len returns the length of the lexeme in bytes.
func (t Token) Len() int {
	return len(t.Lexeme)
}

// IsEmpty returns true if the lexeme is empty.
func (t Token) IsEmpty() bool {
	return t.Lexeme == ""
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Int returns the literal as an int, truncating floats.
// Returns 0 for non-numeric literals.
func (t Token) Int() int {
	switch v := t.Literal.(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Bool returns the literal as a bool, false for non-boolean literals.
func (t Token) Bool() bool {
	b, _ := t.Literal.(bool)
	return b
}

// Text returns the literal when it is a string and the lexeme otherwise.
func (t Token) Text() string {
	if s, ok := t.Literal.(string); ok {
		return s
	}
	return t.Lexeme
}

// GoString renders the token for debugging and test failure messages.
func (t Token) GoString() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}

func (Token) node() {}

// JoinTokens concatenates the lexemes of tokens.
func JoinTokens(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Lexeme)
	}
	return b.String()
}

// ValidateTokens checks that tokens reproduce source and that positions are
// monotonically increasing.
func ValidateTokens(tokens []Token, source string) bool {
	if JoinTokens(tokens) != source {
		return false
	}

	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1].Position(), tokens[i].Position()
		if !prev.IsValid() || !cur.IsValid() {
			continue
		}
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
			return false
		}
	}

	return true
}
