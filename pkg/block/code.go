package block

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcst/pkg/langdetect"
	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

// CodeBlock part indices.
const (
	codeStart = iota
	codeLang
	codeBR
	codeMetadata
	codeSource
	codeEnd
	codeArity
)

// CodeBlockBlock wraps a fenced code block.
type CodeBlockBlock struct {
	s *mdast.CodeBlock
}

func newCodeBlock(s *mdast.CodeBlock) *CodeBlockBlock {
	checkArity(s, codeArity)
	return &CodeBlockBlock{s: s}
}

// CreateCodeBlock builds a fenced block. Metadata entries become the leading
// `key: value` lines; source may or may not end with a newline.
func CreateCodeBlock(lang, source string, metadata ...Entry) (*CodeBlockBlock, error) {
	if strings.ContainsAny(lang, "\r\n`") {
		return nil, fmt.Errorf("%w: code language %q", ErrInvalidValue, lang)
	}

	var b strings.Builder
	b.WriteString("```" + lang + "\n")
	for _, e := range metadata {
		b.WriteString(e.Key + ": " + fmt.Sprint(e.Value) + "\n")
	}
	b.WriteString(source)
	if source != "" && !strings.HasSuffix(source, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```")

	cb, err := parser.ParseCodeBlock(b.String())
	if err != nil {
		return nil, fmt.Errorf("create code block: %w", err)
	}
	if meta := cb.Part(codeMetadata).(*mdast.CodeMetadata); meta.Len() != len(metadata) {
		return nil, fmt.Errorf("%w: code metadata does not match %d entries", ErrInvalidValue, len(metadata))
	}
	return newCodeBlock(cb), nil
}

func (b *CodeBlockBlock) Statement() mdast.Statement { return b.s }
func (b *CodeBlockBlock) String() string             { return b.s.String() }

// Language returns the info string after the opening fence.
func (b *CodeBlockBlock) Language() string {
	tok, ok := mdast.TokenAt(b.s, codeLang)
	if !ok {
		return ""
	}
	return tok.Text()
}

// SetLanguage replaces the info string. An empty language removes it.
func (b *CodeBlockBlock) SetLanguage(lang string) error {
	if strings.ContainsAny(lang, "\r\n`") {
		return fmt.Errorf("%w: code language %q", ErrInvalidValue, lang)
	}
	if lang == "" {
		b.s.SetPart(codeLang, nil)
		return nil
	}
	b.s.SetPart(codeLang, mdast.NewToken(mdast.TokCodeLang, lang, lang))
	return nil
}

// Fence returns the number of backticks in the fences.
func (b *CodeBlockBlock) Fence() int {
	tok, _ := mdast.TokenAt(b.s, codeStart)
	return tok.Int()
}

// Source returns the code after the metadata lines.
func (b *CodeBlockBlock) Source() string { return textOf(b.s.Part(codeSource)) }

// SetSource replaces the code. A line made only of backticks that would close
// the fence is rejected, as is a first line that reads as a `key: value`
// metadata line.
func (b *CodeBlockBlock) SetSource(source string) error {
	if tokens := scanner.ScanCodeBlock(source); len(tokens) > 0 && tokens[0].Kind == mdast.TokCodeKey {
		line, _, _ := cutLine(source)
		return fmt.Errorf("%w: source line %q reads as metadata", ErrInvalidValue, line)
	}

	var parts []mdast.Node
	for rest := source; rest != ""; {
		line, br, tail := cutLine(rest)
		if isFenceLine(line, b.Fence()) {
			return fmt.Errorf("%w: source line %q closes the fence", ErrInvalidValue, line)
		}
		if line != "" {
			parts = append(parts, newToken(mdast.TokCodeSource, line))
		}
		if br == "" {
			br = "\n"
		}
		parts = append(parts, newToken(mdast.TokBR, br))
		rest = tail
	}

	b.s.SetPart(codeSource, mdast.New(mdast.KindCodeSource, parts...))
	return nil
}

// cutLine splits off the first line and its break.
func cutLine(s string) (line, br, rest string) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", ""
	}
	line, rest = s[:i], s[i+1:]
	br = "\n"
	if strings.HasSuffix(line, "\r") {
		line, br = line[:len(line)-1], "\r\n"
	}
	return line, br, rest
}

func isFenceLine(line string, n int) bool {
	return len(line) >= n && strings.Trim(line, "`") == ""
}

// Metadata returns the metadata lines.
func (b *CodeBlockBlock) Metadata() *CodeMetadataBlock {
	meta, _ := b.s.Part(codeMetadata).(*mdast.CodeMetadata)
	return &CodeMetadataBlock{s: meta}
}

// InferLanguage guesses the language of the source.
func (b *CodeBlockBlock) InferLanguage() string {
	return langdetect.Detect([]byte(b.Source()))
}

// EnsureLanguage sets an inferred language when the block has none. It
// returns the language and whether it was added.
func (b *CodeBlockBlock) EnsureLanguage() (string, bool) {
	if lang := b.Language(); lang != "" {
		return lang, false
	}
	lang := b.InferLanguage()
	if lang == "" {
		return "", false
	}
	b.s.SetPart(codeLang, mdast.NewToken(mdast.TokCodeLang, lang, lang))
	return lang, true
}

// CodeMetadata item part indices.
const (
	codeItemKey   = 0
	codeItemValue = 3
	codeItemArity = 5
)

// CodeMetadataBlock wraps the `key: value` lines of a code block.
type CodeMetadataBlock struct {
	s *mdast.CodeMetadata
}

func (b *CodeMetadataBlock) Statement() mdast.Statement { return b.s }
func (b *CodeMetadataBlock) String() string             { return b.s.String() }

// Len returns the number of lines.
func (b *CodeMetadataBlock) Len() int { return b.s.Len() }

// Keys returns the keys in source order.
func (b *CodeMetadataBlock) Keys() []string {
	keys := make([]string, 0, b.s.Len())
	for _, item := range b.items() {
		keys = append(keys, codeItemKeyOf(item))
	}
	return keys
}

// Get returns the value of key.
func (b *CodeMetadataBlock) Get(key string) (string, bool) {
	if i := b.indexOf(key); i >= 0 {
		return codeItemValueOf(b.items()[i]), true
	}
	return "", false
}

// ToMap returns every key with its value.
func (b *CodeMetadataBlock) ToMap() map[string]string {
	out := make(map[string]string, b.s.Len())
	for _, item := range b.items() {
		out[codeItemKeyOf(item)] = codeItemValueOf(item)
	}
	return out
}

// Set updates key or appends a new line after the existing ones.
func (b *CodeMetadataBlock) Set(key, value string) error {
	item, err := createCodeMetadataItem(key, value)
	if err != nil {
		return err
	}
	if i := b.indexOf(key); i >= 0 {
		b.s.SetPart(i, item)
		return nil
	}
	b.s.InsertParts(b.s.Len(), item)
	return nil
}

// Remove deletes key and reports whether it was present.
func (b *CodeMetadataBlock) Remove(key string) bool {
	i := b.indexOf(key)
	if i < 0 {
		return false
	}
	b.s.RemoveParts(i, i+1)
	return true
}

func (b *CodeMetadataBlock) items() []*mdast.CodeMetadataItem {
	out := make([]*mdast.CodeMetadataItem, 0, b.s.Len())
	for _, part := range b.s.Parts() {
		if item, ok := part.(*mdast.CodeMetadataItem); ok {
			checkArity(item, codeItemArity)
			out = append(out, item)
		}
	}
	return out
}

func (b *CodeMetadataBlock) indexOf(key string) int {
	for i, item := range b.items() {
		if codeItemKeyOf(item) == key {
			return i
		}
	}
	return -1
}

func codeItemKeyOf(item *mdast.CodeMetadataItem) string {
	tok, _ := mdast.TokenAt(item, codeItemKey)
	return tok.Text()
}

func codeItemValueOf(item *mdast.CodeMetadataItem) string {
	tok, ok := mdast.TokenAt(item, codeItemValue)
	if !ok {
		return ""
	}
	return tok.Text()
}

// createCodeMetadataItem scans `key: value` with the code block grammar so
// that the line is only accepted when it reads back as metadata.
func createCodeMetadataItem(key, value string) (*mdast.CodeMetadataItem, error) {
	tokens := scanner.ScanCodeBlock(key + ": " + value + "\n")
	want := []mdast.TokenKind{mdast.TokCodeKey, mdast.TokColon, mdast.TokSpace, mdast.TokCodeValue, mdast.TokBR}
	if len(tokens) != len(want) || tokens[0].Text() != key {
		return nil, fmt.Errorf("%w: code metadata %q: %q", ErrInvalidValue, key, value)
	}

	parts := make([]mdast.Node, len(tokens))
	for i, tok := range tokens {
		if tok.Kind != want[i] {
			return nil, fmt.Errorf("%w: code metadata %q: %q", ErrInvalidValue, key, value)
		}
		parts[i] = tok
	}
	item, _ := mdast.New(mdast.KindCodeMetadataItem, parts...).(*mdast.CodeMetadataItem)
	return item, nil
}
