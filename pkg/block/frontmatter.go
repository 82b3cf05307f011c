package block

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

// Entry is an ordered key/value pair used by the factories. Values are
// strings, bools, ints, floats or []string for lists.
type Entry struct {
	Key   string
	Value any
}

// FrontmatterItem part indices.
const (
	fmIndent = iota
	fmKey
	fmSpaceBefore
	fmColon
	fmSpaceAfter
	fmValue
	fmBR
	fmList
	fmArity
)

// FrontmatterBlock wraps the `---` block at the top of a document.
type FrontmatterBlock struct {
	s *mdast.Frontmatter
}

// CreateFrontmatter builds a frontmatter block from ordered entries. The
// result has no line break after the closing delimiter.
func CreateFrontmatter(entries []Entry) (*FrontmatterBlock, error) {
	var b strings.Builder
	b.WriteString("---\n")
	for _, e := range entries {
		line, err := renderFrontmatterEntry(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		b.WriteString(line)
	}
	b.WriteString("---")

	fm, err := parser.ParseFrontmatter(b.String())
	if err != nil {
		return nil, fmt.Errorf("create frontmatter: %w", err)
	}
	return &FrontmatterBlock{s: fm}, nil
}

// CreateFrontmatterYAML marshals v with yaml.v3 and parses the result as a
// frontmatter block. Values that marshal to multi-line YAML constructs the
// frontmatter grammar cannot hold are rejected.
func CreateFrontmatterYAML(v any) (*FrontmatterBlock, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2) //nolint:mnd // two-space sequences
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	body := buf.String()
	if strings.TrimSpace(body) == "{}" {
		body = ""
	}

	fm, err := parser.ParseFrontmatter("---\n" + body + "---")
	if err != nil {
		return nil, fmt.Errorf("create frontmatter: %w", err)
	}
	return &FrontmatterBlock{s: fm}, nil
}

func (b *FrontmatterBlock) Statement() mdast.Statement { return b.s }
func (b *FrontmatterBlock) String() string             { return b.s.String() }

// Items returns the key lines in source order, indented ones included.
func (b *FrontmatterBlock) Items() []*FrontmatterItemBlock {
	var items []*FrontmatterItemBlock
	for _, part := range b.s.Parts() {
		if item, ok := part.(*mdast.FrontmatterItem); ok {
			items = append(items, newFrontmatterItem(item))
		}
	}
	return items
}

// Keys returns the item keys in source order.
func (b *FrontmatterBlock) Keys() []string {
	items := b.Items()
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key())
	}
	return keys
}

// Item returns the first item with the given key.
func (b *FrontmatterBlock) Item(key string) (*FrontmatterItemBlock, bool) {
	for _, item := range b.Items() {
		if item.Key() == key {
			return item, true
		}
	}
	return nil, false
}

// Get returns the value of key. See FrontmatterItemBlock.Value.
func (b *FrontmatterBlock) Get(key string) (any, bool) {
	item, ok := b.Item(key)
	if !ok {
		return nil, false
	}
	return item.Value(), true
}

// Set updates the value of key, appending a new item when the key is absent.
func (b *FrontmatterBlock) Set(key string, value any) error {
	if item, ok := b.Item(key); ok {
		return item.SetValue(value)
	}

	item, err := CreateFrontmatterItem(key, value)
	if err != nil {
		return err
	}
	return b.Append(item)
}

// Append adds an item before the closing delimiter.
func (b *FrontmatterBlock) Append(item Block) error {
	fi, ok := item.Statement().(*mdast.FrontmatterItem)
	if !ok {
		return fmt.Errorf("%w: frontmatter cannot hold %s", ErrDisallowedChild, item.Statement().Kind())
	}
	b.s.InsertParts(b.endIndex(), fi)
	return nil
}

// Remove deletes every item with the given key and reports whether any was
// found.
func (b *FrontmatterBlock) Remove(key string) bool {
	found := false
	for i := b.s.Len() - 1; i >= 0; i-- {
		item, ok := b.s.Part(i).(*mdast.FrontmatterItem)
		if ok && newFrontmatterItem(item).Key() == key {
			b.removePart(i)
			found = true
		}
	}
	return found
}

func (b *FrontmatterBlock) removePart(i int) {
	b.s.RemoveParts(i, i+1)
}

// endIndex is the index of FRONTMATTER_END, followed by the optional break.
func (b *FrontmatterBlock) endIndex() int {
	return b.s.Len() - 2 //nolint:mnd // [..., END, BR?]
}

// Body returns the source between the delimiter lines.
func (b *FrontmatterBlock) Body() string {
	var sb strings.Builder
	for _, part := range b.s.Parts()[2:b.endIndex()] {
		sb.WriteString(textOf(part))
	}
	return sb.String()
}

// ToMap returns every key with its value.
func (b *FrontmatterBlock) ToMap() map[string]any {
	out := make(map[string]any)
	for _, item := range b.Items() {
		out[item.Key()] = item.Value()
	}
	return out
}

// Decode unmarshals the body with full YAML semantics.
func (b *FrontmatterBlock) Decode(v any) error {
	if err := yaml.Unmarshal([]byte(b.Body()), v); err != nil {
		return fmt.Errorf("decode frontmatter: %w", err)
	}
	return nil
}

// FrontmatterItemBlock wraps one `key: value` or `key:` + list item.
type FrontmatterItemBlock struct {
	s *mdast.FrontmatterItem
}

func newFrontmatterItem(s *mdast.FrontmatterItem) *FrontmatterItemBlock {
	checkArity(s, fmArity)
	return &FrontmatterItemBlock{s: s}
}

// CreateFrontmatterItem builds a single item. A []string value produces a
// list item.
func CreateFrontmatterItem(key string, value any) (*FrontmatterItemBlock, error) {
	line, err := renderFrontmatterEntry(key, value)
	if err != nil {
		return nil, err
	}

	fm, err := parser.ParseFrontmatter("---\n" + line + "---")
	if err != nil {
		return nil, fmt.Errorf("create frontmatter item %q: %w", key, err)
	}
	item, ok := fm.Part(2).(*mdast.FrontmatterItem)
	if !ok || fm.Len() != 5 { //nolint:mnd // [START, BR, item, END, nil]
		return nil, fmt.Errorf("%w: frontmatter key %q", ErrInvalidValue, key)
	}
	return newFrontmatterItem(item), nil
}

func (b *FrontmatterItemBlock) Statement() mdast.Statement { return b.s }
func (b *FrontmatterItemBlock) String() string             { return b.s.String() }

// Key returns the key without surrounding whitespace.
func (b *FrontmatterItemBlock) Key() string {
	tok, _ := mdast.TokenAt(b.s, fmKey)
	return tok.Text()
}

// SetKey renames the item.
func (b *FrontmatterItemBlock) SetKey(key string) error {
	if err := validateFrontmatterKey(key); err != nil {
		return err
	}
	b.s.SetPart(fmKey, mdast.NewToken(mdast.TokFrontmatterKey, key, key))
	return nil
}

// IsList reports whether the value is a nested list.
func (b *FrontmatterItemBlock) IsList() bool {
	_, ok := b.s.Part(fmList).(*mdast.List)
	return ok
}

// List returns the nested list value.
func (b *FrontmatterItemBlock) List() (*ListBlock, bool) {
	l, ok := b.s.Part(fmList).(*mdast.List)
	if !ok {
		return nil, false
	}
	return &ListBlock{s: l, owner: b.s}, true
}

// Value returns the decoded scalar, the list values as []string, or nil when
// the item has no value.
func (b *FrontmatterItemBlock) Value() any {
	if l, ok := b.List(); ok {
		return frontmatterListValues(l)
	}
	tok, ok := mdast.TokenAt(b.s, fmValue)
	if !ok {
		return nil
	}
	return tok.Literal
}

// SetValue replaces the value. A []string converts the item to a list, any
// other value to a scalar; key and leading whitespace are kept.
func (b *FrontmatterItemBlock) SetValue(value any) error {
	fresh, err := CreateFrontmatterItem(b.Key(), value)
	if err != nil {
		return err
	}

	prevBR := b.s.Part(fmBR)
	for i := fmSpaceAfter; i < fmArity; i++ {
		b.s.SetPart(i, fresh.s.Part(i))
	}
	if prevBR != nil && b.s.Part(fmList) == nil {
		b.s.SetPart(fmBR, breakLike(prevBR))
	}
	return nil
}

// ToList converts a scalar item into a one-item list.
func (b *FrontmatterItemBlock) ToList() error {
	if b.IsList() {
		return nil
	}
	text := ""
	if tok, ok := mdast.TokenAt(b.s, fmValue); ok {
		text = literalText(tok)
	}
	return b.SetValue([]string{text})
}

// ToScalar converts a list item into a scalar holding the values joined
// with ", ".
func (b *FrontmatterItemBlock) ToScalar() error {
	l, ok := b.List()
	if !ok {
		return nil
	}
	return b.SetValue(strings.Join(frontmatterListValues(l), ", "))
}

// frontmatterListValues reads each item as a decoded value token, or as its
// trimmed text when the item holds anything else.
func frontmatterListValues(l *ListBlock) []string {
	values := make([]string, 0, l.Len())
	for _, item := range l.Items() {
		content := item.s.Part(mdast.ListItemContent)
		tokens := mdast.Tokens(content)
		if len(tokens) == 1 && tokens[0].Kind == mdast.TokFrontmatterValue {
			values = append(values, literalText(tokens[0]))
			continue
		}
		values = append(values, strings.TrimSpace(textOf(content)))
	}
	return values
}

// literalText renders a decoded literal back to text.
func literalText(tok mdast.Token) string {
	if tok.Literal == nil {
		return strings.TrimSpace(tok.Lexeme)
	}
	return fmt.Sprint(tok.Literal)
}

func validateFrontmatterKey(key string) error {
	switch {
	case key == "",
		strings.TrimSpace(key) != key,
		strings.ContainsAny(key, "\r\n"),
		strings.Contains(key, ": "),
		strings.HasPrefix(key, "-"),
		key == "---":
		return fmt.Errorf("%w: frontmatter key %q", ErrInvalidValue, key)
	}
	return nil
}

// renderFrontmatterEntry renders one item including its line break.
func renderFrontmatterEntry(key string, value any) (string, error) {
	if err := validateFrontmatterKey(key); err != nil {
		return "", err
	}

	switch v := value.(type) {
	case nil:
		return key + ":\n", nil
	case []string:
		var b strings.Builder
		b.WriteString(key + ":\n")
		for _, item := range v {
			b.WriteString("- " + formatScalar(item) + "\n")
		}
		return b.String(), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return renderFrontmatterEntry(key, items)
	default:
		return key + ": " + formatScalar(v) + "\n", nil
	}
}

// formatScalar renders a value so that decoding it yields the same value.
// Strings that would decode as another type are quoted.
func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		decoded, ok := scanner.DecodeValue(x).(string)
		if x == "" || !ok || decoded != x || strings.ContainsAny(x, "\r\n") {
			return strconv.Quote(x)
		}
		return x
	case bool, int, int64:
		return fmt.Sprint(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return formatScalar(fmt.Sprint(x))
	}
}
