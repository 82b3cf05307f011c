package block

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// MetadataItem part indices.
const (
	metaKey = iota
	metaColon
	metaSpace
	metaValue
	metaBR
	metaArity
)

// MetadataBlock wraps a run of `key:: value` and tag lines. Each line owns
// the break that separates it from the next; the last line has none.
type MetadataBlock struct {
	s *mdast.Metadata
}

// CreateMetadata builds one `key:: value` line per entry.
func CreateMetadata(entries ...Entry) (*MetadataBlock, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: metadata needs at least one entry", ErrInvalidValue)
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		line, err := renderMetadataEntry(e.Key, fmt.Sprint(e.Value))
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}

	m, err := parser.ParseMetadata(strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("create metadata: %w", err)
	}
	if m.Len() != len(entries) {
		return nil, fmt.Errorf("%w: metadata does not match %d entries", ErrInvalidValue, len(entries))
	}
	return &MetadataBlock{s: m}, nil
}

func renderMetadataEntry(key, value string) (string, error) {
	if key == "" || strings.ContainsAny(key, "\r\n") || strings.Contains(key, "::") {
		return "", fmt.Errorf("%w: metadata key %q", ErrInvalidValue, key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return "", fmt.Errorf("%w: metadata value %q", ErrInvalidValue, value)
	}
	if value == "" {
		return key + "::", nil
	}
	return key + ":: " + value, nil
}

func (b *MetadataBlock) Statement() mdast.Statement { return b.s }
func (b *MetadataBlock) String() string             { return b.s.String() }

// Len returns the number of lines.
func (b *MetadataBlock) Len() int { return b.s.Len() }

// Items returns the `key:: value` lines.
func (b *MetadataBlock) Items() []*MetadataItemBlock {
	var out []*MetadataItemBlock
	for _, part := range b.s.Parts() {
		if item, ok := part.(*mdast.MetadataItem); ok {
			out = append(out, newMetadataItem(item))
		}
	}
	return out
}

// Tags returns the tag lines.
func (b *MetadataBlock) Tags() []*MetadataTagBlock {
	var out []*MetadataTagBlock
	for _, part := range b.s.Parts() {
		if tag, ok := part.(*mdast.MetadataTag); ok {
			out = append(out, &MetadataTagBlock{s: tag})
		}
	}
	return out
}

// Keys returns the item keys in source order.
func (b *MetadataBlock) Keys() []string {
	items := b.Items()
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key())
	}
	return keys
}

// Item returns the first item with key.
func (b *MetadataBlock) Item(key string) (*MetadataItemBlock, bool) {
	for _, item := range b.Items() {
		if item.Key() == key {
			return item, true
		}
	}
	return nil, false
}

// Get returns the value of the first item with key.
func (b *MetadataBlock) Get(key string) (string, bool) {
	item, ok := b.Item(key)
	if !ok {
		return "", false
	}
	return item.Value(), true
}

// Set updates the first item with key or appends a new line.
func (b *MetadataBlock) Set(key, value string) error {
	if item, ok := b.Item(key); ok {
		return item.SetValue(value)
	}
	item, err := CreateMetadataItem(key, value)
	if err != nil {
		return err
	}
	return b.Append(item)
}

// Remove deletes every item with key and reports whether any was present.
func (b *MetadataBlock) Remove(key string) bool {
	removed := false
	for i := b.s.Len() - 1; i >= 0; i-- {
		item, ok := b.s.Part(i).(*mdast.MetadataItem)
		if ok && newMetadataItem(item).Key() == key {
			b.s.RemoveParts(i, i+1)
			removed = true
		}
	}
	if removed {
		b.rebreak()
	}
	return removed
}

// RemoveAt removes the i-th line.
func (b *MetadataBlock) RemoveAt(i int) error {
	if err := checkIndex(i, b.s.Len()); err != nil {
		return err
	}
	b.s.RemoveParts(i, i+1)
	b.rebreak()
	return nil
}

// Append adds an item or tag line at the end.
func (b *MetadataBlock) Append(line Block) error {
	s := line.Statement()
	switch s.(type) {
	case *mdast.MetadataItem, *mdast.MetadataTag:
	default:
		return fmt.Errorf("%w: metadata cannot hold %s", ErrDisallowedChild, s.Kind())
	}
	b.s.InsertParts(b.s.Len(), s)
	b.rebreak()
	return nil
}

// rebreak gives every line but the last a line break.
func (b *MetadataBlock) rebreak() {
	parts := b.s.Parts()
	br := lineBreak()
	for _, part := range parts {
		if st, ok := part.(mdast.Statement); ok {
			if last := st.Part(st.Len() - 1); isBreak(last) {
				br = breakLike(last)
				break
			}
		}
	}

	for i, part := range parts {
		st, ok := part.(mdast.Statement)
		if !ok {
			continue
		}
		slot := st.Len() - 1
		switch {
		case i == len(parts)-1:
			st.SetPart(slot, nil)
		case !isBreak(st.Part(slot)):
			st.SetPart(slot, br)
		}
	}
}

// MetadataItemBlock wraps one `key:: value` line.
type MetadataItemBlock struct {
	s *mdast.MetadataItem
}

func newMetadataItem(s *mdast.MetadataItem) *MetadataItemBlock {
	checkArity(s, metaArity)
	return &MetadataItemBlock{s: s}
}

// CreateMetadataItem builds a detached `key:: value` line.
func CreateMetadataItem(key, value string) (*MetadataItemBlock, error) {
	line, err := renderMetadataEntry(key, value)
	if err != nil {
		return nil, err
	}
	m, err := parser.ParseMetadata(line)
	if err != nil {
		return nil, fmt.Errorf("create metadata item: %w", err)
	}
	item, ok := m.Part(0).(*mdast.MetadataItem)
	if !ok || m.Len() != 1 {
		return nil, fmt.Errorf("%w: metadata item %q", ErrInvalidValue, line)
	}
	return newMetadataItem(item), nil
}

func (b *MetadataItemBlock) Statement() mdast.Statement { return b.s }
func (b *MetadataItemBlock) String() string             { return b.s.String() }

// Key returns the key without surrounding whitespace.
func (b *MetadataItemBlock) Key() string {
	return strings.TrimSpace(textOf(b.s.Part(metaKey)))
}

// Value returns the text after the double colon.
func (b *MetadataItemBlock) Value() string {
	return textOf(b.s.Part(metaValue))
}

// RichText returns the value as rich text, or false when the value is empty.
func (b *MetadataItemBlock) RichText() (*RichTextBlock, bool) {
	rt, ok := b.s.Part(metaValue).(*mdast.RichText)
	if !ok {
		return nil, false
	}
	return &RichTextBlock{s: rt}, true
}

// SetValue replaces the value. The key and line break are kept.
func (b *MetadataItemBlock) SetValue(value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: metadata value %q", ErrInvalidValue, value)
	}
	if value == "" {
		b.s.SetPart(metaSpace, nil)
		b.s.SetPart(metaValue, nil)
		return nil
	}

	rt, err := parser.ParseRichText(value)
	if err != nil {
		return fmt.Errorf("set metadata value: %w", err)
	}
	if b.s.Part(metaSpace) == nil {
		b.s.SetPart(metaSpace, space())
	}
	b.s.SetPart(metaValue, rt)
	return nil
}

// MetadataTagBlock wraps a line made only of tags.
type MetadataTagBlock struct {
	s *mdast.MetadataTag
}

func (b *MetadataTagBlock) Statement() mdast.Statement { return b.s }
func (b *MetadataTagBlock) String() string             { return b.s.String() }

// Tags returns the tags on the line.
func (b *MetadataTagBlock) Tags() []*TagBlock {
	rt, _ := b.s.Part(0).(*mdast.RichText)
	return (&RichTextBlock{s: rt}).Tags()
}

// Names returns the tag names on the line.
func (b *MetadataTagBlock) Names() []string {
	tags := b.Tags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name())
	}
	return out
}
