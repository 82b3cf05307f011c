package block

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// ContentBlock wraps a run of blocks and the line breaks between them.
//
// Blocks do not own the break after their last line; the content does.
// A section body additionally starts with the heading's line break, which
// the content keeps when blocks are added or removed.
type ContentBlock struct {
	s       *mdast.Content
	leading bool
}

// CreateContent parses source into a content block. Headings are not
// allowed.
func CreateContent(source string) (*ContentBlock, error) {
	c, err := parser.ParseContent(source)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return &ContentBlock{s: c}, nil
}

func (c *ContentBlock) Statement() mdast.Statement { return c.s }
func (c *ContentBlock) String() string             { return c.s.String() }

// Blocks returns the block statements, skipping line breaks.
func (c *ContentBlock) Blocks() []Block {
	idx := c.blockParts()
	out := make([]Block, 0, len(idx))
	for _, i := range idx {
		st, _ := c.s.Part(i).(mdast.Statement)
		out = append(out, Wrap(st))
	}
	return out
}

// Len returns the number of blocks.
func (c *ContentBlock) Len() int { return len(c.blockParts()) }

// Append adds a block after the last one, separated by a blank line. The
// line breaks after the last block are kept after the new one.
func (c *ContentBlock) Append(b Block) error {
	s, err := contentChild(b)
	if err != nil {
		return err
	}

	idx := c.blockParts()
	if len(idx) == 0 {
		var parts []mdast.Node
		if c.leading {
			parts = append(parts, lineBreak(), lineBreak())
		}
		c.s.SetParts(append(parts, s, lineBreak()))
		return nil
	}

	last := idx[len(idx)-1] + 1
	parts := make([]mdast.Node, 0, c.s.Len()+3) //nolint:mnd // two breaks and the block
	parts = append(parts, c.s.Parts()[:last]...)
	parts = append(parts, lineBreak(), lineBreak(), s)
	parts = append(parts, c.s.Parts()[last:]...)
	c.s.SetParts(parts)
	return nil
}

// Insert adds a block before the i-th block, separated by a blank line.
func (c *ContentBlock) Insert(i int, b Block) error {
	idx := c.blockParts()
	if i == len(idx) {
		return c.Append(b)
	}
	if err := checkIndex(i, len(idx)); err != nil {
		return err
	}
	s, err := contentChild(b)
	if err != nil {
		return err
	}

	c.s.InsertParts(idx[i], s, lineBreak(), lineBreak())
	return nil
}

// RemoveAt removes the i-th block with the separator that tied it to its
// neighbour.
func (c *ContentBlock) RemoveAt(i int) error {
	idx := c.blockParts()
	if err := checkIndex(i, len(idx)); err != nil {
		return err
	}

	switch {
	case i+1 < len(idx):
		c.s.RemoveParts(idx[i], idx[i+1])
	case i > 0:
		c.s.RemoveParts(idx[i-1]+1, idx[i]+1)
	case c.leading:
		c.s.SetParts([]mdast.Node{lineBreak()})
	default:
		c.s.SetParts(nil)
	}
	return nil
}

// blockParts returns the part indices of block statements.
func (c *ContentBlock) blockParts() []int {
	var idx []int
	for i, part := range c.s.Parts() {
		if _, ok := part.(mdast.Statement); ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// ensureTrailingBreaks makes the content end with at least n line breaks.
func (c *ContentBlock) ensureTrailingBreaks(n int) {
	have := 0
	parts := c.s.Parts()
	for i := len(parts) - 1; i >= 0 && isWhitespaceToken(parts[i]); i-- {
		if isBreak(parts[i]) {
			have++
		}
	}
	for ; have < n; have++ {
		c.s.InsertParts(c.s.Len(), lineBreak())
	}
}

// blockIndex converts a part index of a content into a block index.
func blockIndex(c *mdast.Content, part int) int {
	n := 0
	for i := 0; i < part; i++ {
		if _, ok := c.Part(i).(mdast.Statement); ok {
			n++
		}
	}
	return n
}

func contentChild(b Block) (mdast.Statement, error) {
	s := b.Statement()
	if !s.Kind().IsBlock() {
		return nil, fmt.Errorf("%w: content cannot hold %s", ErrDisallowedChild, s.Kind())
	}
	return s, nil
}

// ParagraphBlock wraps one or more lines of text.
type ParagraphBlock struct {
	s *mdast.Paragraph
}

// CreateParagraph parses text as a single paragraph.
func CreateParagraph(text string) (*ParagraphBlock, error) {
	p, err := parser.ParseParagraph(text)
	if err != nil {
		return nil, fmt.Errorf("create paragraph: %w", err)
	}
	return &ParagraphBlock{s: p}, nil
}

func (b *ParagraphBlock) Statement() mdast.Statement { return b.s }
func (b *ParagraphBlock) String() string             { return b.s.String() }

// Lines returns the text of each line.
func (b *ParagraphBlock) Lines() []string {
	var lines []string
	for _, part := range b.s.Parts() {
		if rt, ok := part.(*mdast.RichText); ok {
			lines = append(lines, rt.String())
		}
	}
	return lines
}

// SetText replaces the paragraph text.
func (b *ParagraphBlock) SetText(text string) error {
	p, err := parser.ParseParagraph(text)
	if err != nil {
		return fmt.Errorf("set paragraph text: %w", err)
	}
	b.s.SetParts(p.Parts())
	return nil
}

// QuoteBlock wraps a run of `>` lines.
type QuoteBlock struct {
	s *mdast.Quote
}

// CreateQuote builds a blockquote with one `> ` line per line of text.
func CreateQuote(text string) (*QuoteBlock, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("> "+line, " ")
	}
	q, err := parser.ParseQuote(strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return &QuoteBlock{s: q}, nil
}

func (b *QuoteBlock) Statement() mdast.Statement { return b.s }
func (b *QuoteBlock) String() string             { return b.s.String() }

// Lines returns the text of each line without its markers.
func (b *QuoteBlock) Lines() []string {
	var lines []string
	for _, part := range b.s.Parts() {
		if ql, ok := part.(*mdast.QuoteLine); ok {
			lines = append(lines, textOf(ql.Part(1)))
		}
	}
	return lines
}

// Text returns the lines joined with newlines.
func (b *QuoteBlock) Text() string { return strings.Join(b.Lines(), "\n") }

// HrBlock wraps a thematic break.
type HrBlock struct {
	s *mdast.Hr
}

// CreateHr builds a `---` thematic break.
func CreateHr() *HrBlock {
	hr, ok := mdast.New(mdast.KindHr, newToken(mdast.TokHR, "---")).(*mdast.Hr)
	if !ok {
		panic("block: hr kind mismatch")
	}
	return &HrBlock{s: hr}
}

func (b *HrBlock) Statement() mdast.Statement { return b.s }
func (b *HrBlock) String() string             { return b.s.String() }
