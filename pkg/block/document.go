package block

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

const (
	docFrontmatter = 0
	docLede        = 1
	docSections    = 2
)

// DocumentBlock wraps the root statement.
type DocumentBlock struct {
	s *mdast.Document
}

func newDocument(s *mdast.Document) *DocumentBlock {
	if s.Len() < docSections {
		panic(fmt.Sprintf("block: Document has %d parts, want at least %d", s.Len(), docSections))
	}
	return &DocumentBlock{s: s}
}

// NewDocument returns an empty document.
func NewDocument() *DocumentBlock {
	doc, ok := mdast.New(mdast.KindDocument, nil, mdast.New(mdast.KindContent)).(*mdast.Document)
	if !ok {
		panic("block: document kind mismatch")
	}
	return &DocumentBlock{s: doc}
}

// ParseDocument parses source into a document block.
func ParseDocument(source string) (*DocumentBlock, error) {
	doc, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return newDocument(doc), nil
}

func (b *DocumentBlock) Statement() mdast.Statement { return b.s }
func (b *DocumentBlock) String() string             { return b.s.String() }

// Frontmatter returns the frontmatter block, if present.
func (b *DocumentBlock) Frontmatter() (*FrontmatterBlock, bool) {
	fm, ok := b.s.Part(docFrontmatter).(*mdast.Frontmatter)
	if !ok {
		return nil, false
	}
	return &FrontmatterBlock{s: fm}, true
}

// EnsureFrontmatter returns the frontmatter block, creating an empty one when
// the document has none.
func (b *DocumentBlock) EnsureFrontmatter() *FrontmatterBlock {
	if fm, ok := b.Frontmatter(); ok {
		return fm
	}
	fm, err := CreateFrontmatter(nil)
	if err != nil {
		panic(fmt.Sprintf("block: empty frontmatter: %v", err))
	}
	b.SetFrontmatter(fm)
	return fm
}

// SetFrontmatter installs fm, giving it the line break that separates it from
// the rest of the document.
func (b *DocumentBlock) SetFrontmatter(fm *FrontmatterBlock) {
	last := fm.s.Len() - 1
	if fm.s.Part(last) == nil {
		fm.s.SetPart(last, lineBreak())
	}
	b.s.SetPart(docFrontmatter, fm.s)
}

// RemoveFrontmatter drops the frontmatter block and reports whether there
// was one.
func (b *DocumentBlock) RemoveFrontmatter() bool {
	had := b.s.Part(docFrontmatter) != nil
	b.s.SetPart(docFrontmatter, nil)
	return had
}

// Lede returns the content before the first heading.
func (b *DocumentBlock) Lede() *ContentBlock {
	c, _ := b.s.Part(docLede).(*mdast.Content)
	return &ContentBlock{s: c}
}

// Sections returns the heading sections in document order.
func (b *DocumentBlock) Sections() []*SectionBlock {
	parts := b.s.Parts()[docSections:]
	out := make([]*SectionBlock, 0, len(parts))
	for _, part := range parts {
		if s, ok := part.(*mdast.Section); ok {
			out = append(out, newSection(s))
		}
	}
	return out
}

// AppendSection adds a section at the end of the document.
func (b *DocumentBlock) AppendSection(section Block) error {
	return b.InsertSection(b.s.Len()-docSections, section)
}

// InsertSection inserts a section before the i-th section.
func (b *DocumentBlock) InsertSection(i int, section Block) error {
	s, ok := section.Statement().(*mdast.Section)
	if !ok {
		return fmt.Errorf("%w: document cannot hold %s", ErrDisallowedChild, section.Statement().Kind())
	}
	if err := checkIndex(i, b.s.Len()-docSections+1); err != nil {
		return err
	}

	b.s.InsertParts(docSections+i, s)
	b.separateSections()
	return nil
}

// RemoveSection removes the i-th section with its body.
func (b *DocumentBlock) RemoveSection(i int) error {
	if err := checkIndex(i, b.s.Len()-docSections); err != nil {
		return err
	}
	b.s.RemoveParts(docSections+i, docSections+i+1)
	return nil
}

func (b *DocumentBlock) removePart(index int) error {
	return b.RemoveSection(index - docSections)
}

// separateSections makes every content that is followed by a heading end
// with a line break, and with a blank line when it holds blocks.
func (b *DocumentBlock) separateSections() {
	for i := docLede; i < b.s.Len()-1; i++ {
		var c *ContentBlock
		switch part := b.s.Part(i).(type) {
		case *mdast.Content:
			c = &ContentBlock{s: part}
			if c.Len() == 0 && !b.hasLeadingText() {
				continue
			}
		case *mdast.Section:
			c = newSection(part).Content()
		default:
			continue
		}

		want := 1
		if c.Len() > 0 {
			want = 2
		}
		c.ensureTrailingBreaks(want)
	}
}

// hasLeadingText reports whether anything precedes the lede on its line.
func (b *DocumentBlock) hasLeadingText() bool {
	fm, ok := b.s.Part(docFrontmatter).(*mdast.Frontmatter)
	return ok && fm.Part(fm.Len()-1) == nil
}

// SectionBlock wraps a heading and the content up to the next heading.
type SectionBlock struct {
	s *mdast.Section
}

func newSection(s *mdast.Section) *SectionBlock {
	checkArity(s, 2) //nolint:mnd // [Heading, Content]
	return &SectionBlock{s: s}
}

// CreateSection builds a section with an empty body.
func CreateSection(level int, title string) (*SectionBlock, error) {
	h, err := CreateHeading(level, title)
	if err != nil {
		return nil, err
	}
	body := mdast.New(mdast.KindContent, lineBreak())
	s, ok := mdast.New(mdast.KindSection, h.s, body).(*mdast.Section)
	if !ok {
		panic("block: section kind mismatch")
	}
	return &SectionBlock{s: s}, nil
}

func (b *SectionBlock) Statement() mdast.Statement { return b.s }
func (b *SectionBlock) String() string             { return b.s.String() }

// Heading returns the section heading.
func (b *SectionBlock) Heading() *HeadingBlock {
	h, _ := b.s.Part(0).(*mdast.Heading)
	return newHeading(h)
}

// Content returns the section body. It starts with the heading's line break.
func (b *SectionBlock) Content() *ContentBlock {
	c, _ := b.s.Part(1).(*mdast.Content)
	return &ContentBlock{s: c, leading: true}
}

// Level returns the heading level.
func (b *SectionBlock) Level() int { return b.Heading().Level() }

// Title returns the heading text.
func (b *SectionBlock) Title() string { return b.Heading().Text() }

// HeadingBlock wraps an ATX heading line.
type HeadingBlock struct {
	s *mdast.Heading
}

const (
	headingHash  = 0
	headingSpace = 1
	headingText  = 2
	headingArity = 3

	maxHeadingLevel = 6
)

func newHeading(s *mdast.Heading) *HeadingBlock {
	checkArity(s, headingArity)
	return &HeadingBlock{s: s}
}

// CreateHeading builds a heading line of the given level.
func CreateHeading(level int, text string) (*HeadingBlock, error) {
	if level < 1 || level > maxHeadingLevel {
		return nil, fmt.Errorf("%w: heading level %d", ErrInvalidValue, level)
	}
	h, err := parser.ParseHeading(strings.Repeat("#", level) + " " + text)
	if err != nil {
		return nil, fmt.Errorf("create heading: %w", err)
	}
	return newHeading(h), nil
}

func (b *HeadingBlock) Statement() mdast.Statement { return b.s }
func (b *HeadingBlock) String() string             { return b.s.String() }

// Level returns the number of hashes.
func (b *HeadingBlock) Level() int { return b.s.Level() }

// SetLevel replaces the hash run.
func (b *HeadingBlock) SetLevel(level int) error {
	if level < 1 || level > maxHeadingLevel {
		return fmt.Errorf("%w: heading level %d", ErrInvalidValue, level)
	}
	b.s.SetPart(headingHash, mdast.NewToken(mdast.TokHeadingHash, strings.Repeat("#", level), level))
	return nil
}

// Text returns the heading text.
func (b *HeadingBlock) Text() string { return textOf(b.s.Part(headingText)) }

// RichText returns the heading text statement.
func (b *HeadingBlock) RichText() *RichTextBlock {
	rt, _ := b.s.Part(headingText).(*mdast.RichText)
	return &RichTextBlock{s: rt}
}

// SetText replaces the heading text.
func (b *HeadingBlock) SetText(text string) error {
	rt, err := parser.ParseRichText(text)
	if err != nil {
		return fmt.Errorf("set heading text: %w", err)
	}
	b.s.SetPart(headingText, rt)
	if text != "" && b.s.Part(headingSpace) == nil {
		b.s.SetPart(headingSpace, space())
	}
	return nil
}
