package span

import (
	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// MetadataTreeSpan is a flat, document-ordered list of sections and metadata
// items that treats heading levels as a hierarchy. Removing a section removes
// every entry after it up to the next section of the same or a shallower
// level.
type MetadataTreeSpan struct {
	*Span[block.Block]
}

// MetadataTree gathers the sections of doc and the metadata items of the
// lede and of each section body.
func MetadataTree(doc *block.DocumentBlock) *MetadataTreeSpan {
	var entries []block.Block
	appendItems := func(c *block.ContentBlock) {
		for _, st := range mdast.FindByKind(c.Statement(), mdast.KindMetadataItem) {
			entries = append(entries, block.Wrap(st))
		}
	}

	appendItems(doc.Lede())
	for _, section := range doc.Sections() {
		entries = append(entries, section)
		appendItems(section.Content())
	}
	return &MetadataTreeSpan{Span: New(doc.Statement(), entries)}
}

// Sections returns the section entries.
func (t *MetadataTreeSpan) Sections() []*block.SectionBlock {
	var out []*block.SectionBlock
	for _, b := range t.blocks {
		if s, ok := b.(*block.SectionBlock); ok {
			out = append(out, s)
		}
	}
	return out
}

// Items returns the metadata item entries.
func (t *MetadataTreeSpan) Items() []*block.MetadataItemBlock {
	var out []*block.MetadataItemBlock
	for _, b := range t.blocks {
		if m, ok := b.(*block.MetadataItemBlock); ok {
			out = append(out, m)
		}
	}
	return out
}

// Under returns the entries below the section with the given title, up to
// the next section of the same or a shallower level.
func (t *MetadataTreeSpan) Under(title string) []block.Block {
	s, ok := t.Find(Func(func(s *block.SectionBlock) bool { return Key(title).Match(s) }))
	if !ok {
		return nil
	}
	start := t.indexOf(s)
	return t.Blocks()[start+1 : t.subtreeEnd(start)]
}

// Remove detaches every entry whose key equals key, with the subtree of the
// matched sections, and returns how many entries left the span.
func (t *MetadataTreeSpan) Remove(key string) (int, error) {
	return t.RemoveWhere(Key(key))
}

// RemoveWhere is Remove with an arbitrary predicate.
func (t *MetadataTreeSpan) RemoveWhere(p Predicate) (int, error) {
	removed := 0
	for i := 0; i < len(t.blocks); {
		b := t.blocks[i]
		if !p.Match(b) {
			i++
			continue
		}

		end := i + 1
		if _, ok := b.(*block.SectionBlock); ok {
			end = t.subtreeEnd(i)
		}
		for _, entry := range t.blocks[i:end] {
			if _, ok := entry.(*block.SectionBlock); !ok && entry != b {
				continue
			}
			if err := block.Remove(t.root, entry); err != nil {
				return removed, err
			}
		}
		removed += end - i
		t.blocks = append(t.blocks[:i], t.blocks[end:]...)
	}
	return removed, nil
}

// subtreeEnd returns the index after the last entry owned by the section at
// index i.
func (t *MetadataTreeSpan) subtreeEnd(i int) int {
	level := t.blocks[i].(*block.SectionBlock).Level()
	for j := i + 1; j < len(t.blocks); j++ {
		if s, ok := t.blocks[j].(*block.SectionBlock); ok && s.Level() <= level {
			return j
		}
	}
	return len(t.blocks)
}
