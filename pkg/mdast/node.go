package mdast

import (
	"fmt"
	"strings"
)

// Node is either a Token or a Statement. A nil Node in a parts list marks an
// absent optional part.
type Node interface {
	String() string
	node()
}

// Statement is a CST node. Every variant stores the ordered parts that
// reconstruct its source span, so String() of a statement always equals the
// concatenation of String() of its parts.
//
// The set of variants is closed: only the types in this package implement
// Statement.
type Statement interface {
	Node

	// Kind returns the variant discriminant.
	Kind() Kind

	// Parts returns the ordered parts. The slice is owned by the statement.
	Parts() []Node

	// Part returns the part at index i, or nil if i is out of range.
	Part(i int) Node

	// Len returns the number of parts.
	Len() int

	// SetPart replaces the part at index i.
	SetPart(i int, n Node)

	// SetParts replaces all parts.
	SetParts(nodes []Node)

	// InsertParts inserts nodes before index i.
	InsertParts(i int, nodes ...Node)

	// RemoveParts removes parts in [i, j).
	RemoveParts(i, j int)

	statement()
}

// Kind classifies a Statement variant.
type Kind uint16

// Statement kinds.
const (
	KindDocument Kind = iota
	KindFrontmatter
	KindFrontmatterItem
	KindContent
	KindSection
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindCodeBlock
	KindCodeMetadata
	KindCodeMetadataItem
	KindCodeSource
	KindRichText
	KindPlainText
	KindEmphasis
	KindInlineCode
	KindMath
	KindLink
	KindTag
	KindBookmark
	KindComment
	KindHTML
	KindTable
	KindTableRow
	KindTableCell
	KindQuote
	KindQuoteLine
	KindHr
	KindMetadata
	KindMetadataItem
	KindMetadataTag
	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindDocument:         "Document",
	KindFrontmatter:      "Frontmatter",
	KindFrontmatterItem:  "FrontmatterItem",
	KindContent:          "Content",
	KindSection:          "Section",
	KindHeading:          "Heading",
	KindParagraph:        "Paragraph",
	KindList:             "List",
	KindListItem:         "ListItem",
	KindCodeBlock:        "CodeBlock",
	KindCodeMetadata:     "CodeMetadata",
	KindCodeMetadataItem: "CodeMetadataItem",
	KindCodeSource:       "CodeSource",
	KindRichText:         "RichText",
	KindPlainText:        "PlainText",
	KindEmphasis:         "Emphasis",
	KindInlineCode:       "InlineCode",
	KindMath:             "Math",
	KindLink:             "Link",
	KindTag:              "Tag",
	KindBookmark:         "Bookmark",
	KindComment:          "Comment",
	KindHTML:             "HTML",
	KindTable:            "Table",
	KindTableRow:         "TableRow",
	KindTableCell:        "TableCell",
	KindQuote:            "Quote",
	KindQuoteLine:        "QuoteLine",
	KindHr:               "Hr",
	KindMetadata:         "Metadata",
	KindMetadataItem:     "MetadataItem",
	KindMetadataTag:      "MetadataTag",
}

// String returns the variant name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// IsBlock returns true for line-level statements that may appear in Content.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindList, KindCodeBlock, KindTable, KindQuote,
		KindHr, KindMetadata:
		return true
	default:
		return false
	}
}

// IsInline returns true for statements that may appear in RichText.
func (k Kind) IsInline() bool {
	switch k {
	case KindPlainText, KindEmphasis, KindInlineCode, KindMath, KindLink,
		KindTag, KindBookmark, KindComment, KindHTML:
		return true
	default:
		return false
	}
}

// parts is the shared storage of every Statement variant.
type parts struct {
	list []Node
}

func (p *parts) Parts() []Node { return p.list }

func (p *parts) Len() int { return len(p.list) }

func (p *parts) Part(i int) Node {
	if i < 0 || i >= len(p.list) {
		return nil
	}
	return p.list[i]
}

func (p *parts) SetPart(i int, n Node) {
	if i < 0 || i >= len(p.list) {
		panic(fmt.Sprintf("mdast: part index %d out of range [0,%d)", i, len(p.list)))
	}
	p.list[i] = n
}

func (p *parts) SetParts(nodes []Node) {
	p.list = nodes
}

func (p *parts) InsertParts(i int, nodes ...Node) {
	if i < 0 || i > len(p.list) {
		panic(fmt.Sprintf("mdast: insert index %d out of range [0,%d]", i, len(p.list)))
	}
	p.list = append(p.list[:i], append(append([]Node(nil), nodes...), p.list[i:]...)...)
}

func (p *parts) RemoveParts(i, j int) {
	if i < 0 || j > len(p.list) || i > j {
		panic(fmt.Sprintf("mdast: remove range [%d,%d) out of range [0,%d)", i, j, len(p.list)))
	}
	p.list = append(p.list[:i], p.list[j:]...)
}

func (p *parts) String() string {
	var b strings.Builder
	for _, n := range p.list {
		writeNode(&b, n)
	}
	return b.String()
}

func (*parts) node()      {}
func (*parts) statement() {}

func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil:
	case Token:
		b.WriteString(v.Lexeme)
	case Statement:
		for _, child := range v.Parts() {
			writeNode(b, child)
		}
	}
}

// Tokens flattens n into its tokens in source order.
func Tokens(n Node) []Token {
	var out []Token
	var collect func(Node)
	collect = func(n Node) {
		switch v := n.(type) {
		case nil:
		case Token:
			out = append(out, v)
		case Statement:
			for _, child := range v.Parts() {
				collect(child)
			}
		}
	}
	collect(n)
	return out
}

// TokenAt returns the part at index i as a token.
func TokenAt(s Statement, i int) (Token, bool) {
	t, ok := s.Part(i).(Token)
	return t, ok
}

// StatementAt returns the part at index i as a statement.
func StatementAt(s Statement, i int) (Statement, bool) {
	st, ok := s.Part(i).(Statement)
	return st, ok
}

// Document is the root: optional Frontmatter, the lede Content, then Sections.
type Document struct{ parts }

// Frontmatter is the `---` delimited metadata block at the top of a document.
type Frontmatter struct{ parts }

// FrontmatterItem is a `key: value` line or a `key:` line followed by a list.
type FrontmatterItem struct{ parts }

// Content is a sequence of block statements and bare line breaks.
type Content struct{ parts }

// Section is a Heading followed by its Content.
type Section struct{ parts }

// Heading is an ATX heading line.
type Heading struct{ parts }

// Paragraph is one or more consecutive lines of rich text.
type Paragraph struct{ parts }

// List is a run of list items at the same indentation.
type List struct{ parts }

// ListItem is a plain, checkbox or numbered list line with an optional sublist.
type ListItem struct{ parts }

// CodeBlock is a fenced code block.
type CodeBlock struct{ parts }

// CodeMetadata holds the `key: value` lines at the top of a code block.
type CodeMetadata struct{ parts }

// CodeMetadataItem is a single code block metadata line.
type CodeMetadataItem struct{ parts }

// CodeSource is the opaque body of a code block.
type CodeSource struct{ parts }

// RichText is a sequence of inline statements.
type RichText struct{ parts }

// PlainText is a run of tokens with no inline structure.
type PlainText struct{ parts }

// Emphasis is bold, italic, strikethrough or highlighted text.
type Emphasis struct{ parts }

// InlineCode is a backtick-delimited code span.
type InlineCode struct{ parts }

// Math is `$...$` or `$$...$$`.
type Math struct{ parts }

// Link is an internal `[[target|alias]]`, image `![[target]]` or external
// `[label](url)` link.
type Link struct{ parts }

// Tag is `#name`.
type Tag struct{ parts }

// Bookmark is `{{name}}`.
type Bookmark struct{ parts }

// Comment is `%%text%%`.
type Comment struct{ parts }

// HTML is an inline HTML tag.
type HTML struct{ parts }

// Table is a run of pipe-delimited rows.
type Table struct{ parts }

// TableRow is a single table line.
type TableRow struct{ parts }

// TableCell is one cell of a table row including its closing pipe.
type TableCell struct{ parts }

// Quote is a run of blockquote lines.
type Quote struct{ parts }

// QuoteLine is a single blockquote line.
type QuoteLine struct{ parts }

// Hr is a thematic break line.
type Hr struct{ parts }

// Metadata is a run of `key:: value` and tag-only lines.
type Metadata struct{ parts }

// MetadataItem is a `key:: value` line.
type MetadataItem struct{ parts }

// MetadataTag is a line made only of tags.
type MetadataTag struct{ parts }

func (*Document) Kind() Kind         { return KindDocument }
func (*Frontmatter) Kind() Kind      { return KindFrontmatter }
func (*FrontmatterItem) Kind() Kind  { return KindFrontmatterItem }
func (*Content) Kind() Kind          { return KindContent }
func (*Section) Kind() Kind          { return KindSection }
func (*Heading) Kind() Kind          { return KindHeading }
func (*Paragraph) Kind() Kind        { return KindParagraph }
func (*List) Kind() Kind             { return KindList }
func (*ListItem) Kind() Kind         { return KindListItem }
func (*CodeBlock) Kind() Kind        { return KindCodeBlock }
func (*CodeMetadata) Kind() Kind     { return KindCodeMetadata }
func (*CodeMetadataItem) Kind() Kind { return KindCodeMetadataItem }
func (*CodeSource) Kind() Kind       { return KindCodeSource }
func (*RichText) Kind() Kind         { return KindRichText }
func (*PlainText) Kind() Kind        { return KindPlainText }
func (*Emphasis) Kind() Kind         { return KindEmphasis }
func (*InlineCode) Kind() Kind       { return KindInlineCode }
func (*Math) Kind() Kind             { return KindMath }
func (*Link) Kind() Kind             { return KindLink }
func (*Tag) Kind() Kind              { return KindTag }
func (*Bookmark) Kind() Kind         { return KindBookmark }
func (*Comment) Kind() Kind          { return KindComment }
func (*HTML) Kind() Kind             { return KindHTML }
func (*Table) Kind() Kind            { return KindTable }
func (*TableRow) Kind() Kind         { return KindTableRow }
func (*TableCell) Kind() Kind        { return KindTableCell }
func (*Quote) Kind() Kind            { return KindQuote }
func (*QuoteLine) Kind() Kind        { return KindQuoteLine }
func (*Hr) Kind() Kind               { return KindHr }
func (*Metadata) Kind() Kind         { return KindMetadata }
func (*MetadataItem) Kind() Kind     { return KindMetadataItem }
func (*MetadataTag) Kind() Kind      { return KindMetadataTag }

// New creates an empty statement of the given kind holding nodes.
func New(kind Kind, nodes ...Node) Statement {
	p := parts{list: nodes}
	switch kind {
	case KindDocument:
		return &Document{p}
	case KindFrontmatter:
		return &Frontmatter{p}
	case KindFrontmatterItem:
		return &FrontmatterItem{p}
	case KindContent:
		return &Content{p}
	case KindSection:
		return &Section{p}
	case KindHeading:
		return &Heading{p}
	case KindParagraph:
		return &Paragraph{p}
	case KindList:
		return &List{p}
	case KindListItem:
		return &ListItem{p}
	case KindCodeBlock:
		return &CodeBlock{p}
	case KindCodeMetadata:
		return &CodeMetadata{p}
	case KindCodeMetadataItem:
		return &CodeMetadataItem{p}
	case KindCodeSource:
		return &CodeSource{p}
	case KindRichText:
		return &RichText{p}
	case KindPlainText:
		return &PlainText{p}
	case KindEmphasis:
		return &Emphasis{p}
	case KindInlineCode:
		return &InlineCode{p}
	case KindMath:
		return &Math{p}
	case KindLink:
		return &Link{p}
	case KindTag:
		return &Tag{p}
	case KindBookmark:
		return &Bookmark{p}
	case KindComment:
		return &Comment{p}
	case KindHTML:
		return &HTML{p}
	case KindTable:
		return &Table{p}
	case KindTableRow:
		return &TableRow{p}
	case KindTableCell:
		return &TableCell{p}
	case KindQuote:
		return &Quote{p}
	case KindQuoteLine:
		return &QuoteLine{p}
	case KindHr:
		return &Hr{p}
	case KindMetadata:
		return &Metadata{p}
	case KindMetadataItem:
		return &MetadataItem{p}
	case KindMetadataTag:
		return &MetadataTag{p}
	default:
		panic(fmt.Sprintf("mdast: unknown statement kind %d", kind))
	}
}
