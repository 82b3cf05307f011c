package mdast

import "fmt"

// Visitor has one method per Statement variant. Presentation code (debug
// printers, exporters) implements it; the core owns no implementations other
// than BaseVisitor.
type Visitor interface {
	VisitDocument(s *Document) error
	VisitFrontmatter(s *Frontmatter) error
	VisitFrontmatterItem(s *FrontmatterItem) error
	VisitContent(s *Content) error
	VisitSection(s *Section) error
	VisitHeading(s *Heading) error
	VisitParagraph(s *Paragraph) error
	VisitList(s *List) error
	VisitListItem(s *ListItem) error
	VisitCodeBlock(s *CodeBlock) error
	VisitCodeMetadata(s *CodeMetadata) error
	VisitCodeMetadataItem(s *CodeMetadataItem) error
	VisitCodeSource(s *CodeSource) error
	VisitRichText(s *RichText) error
	VisitPlainText(s *PlainText) error
	VisitEmphasis(s *Emphasis) error
	VisitInlineCode(s *InlineCode) error
	VisitMath(s *Math) error
	VisitLink(s *Link) error
	VisitTag(s *Tag) error
	VisitBookmark(s *Bookmark) error
	VisitComment(s *Comment) error
	VisitHTML(s *HTML) error
	VisitTable(s *Table) error
	VisitTableRow(s *TableRow) error
	VisitTableCell(s *TableCell) error
	VisitQuote(s *Quote) error
	VisitQuoteLine(s *QuoteLine) error
	VisitHr(s *Hr) error
	VisitMetadata(s *Metadata) error
	VisitMetadataItem(s *MetadataItem) error
	VisitMetadataTag(s *MetadataTag) error
}

// Accept dispatches s to the matching Visitor method. The switch is exhaustive
// over the closed set of variants.
func Accept(s Statement, v Visitor) error {
	switch s := s.(type) {
	case *Document:
		return v.VisitDocument(s)
	case *Frontmatter:
		return v.VisitFrontmatter(s)
	case *FrontmatterItem:
		return v.VisitFrontmatterItem(s)
	case *Content:
		return v.VisitContent(s)
	case *Section:
		return v.VisitSection(s)
	case *Heading:
		return v.VisitHeading(s)
	case *Paragraph:
		return v.VisitParagraph(s)
	case *List:
		return v.VisitList(s)
	case *ListItem:
		return v.VisitListItem(s)
	case *CodeBlock:
		return v.VisitCodeBlock(s)
	case *CodeMetadata:
		return v.VisitCodeMetadata(s)
	case *CodeMetadataItem:
		return v.VisitCodeMetadataItem(s)
	case *CodeSource:
		return v.VisitCodeSource(s)
	case *RichText:
		return v.VisitRichText(s)
	case *PlainText:
		return v.VisitPlainText(s)
	case *Emphasis:
		return v.VisitEmphasis(s)
	case *InlineCode:
		return v.VisitInlineCode(s)
	case *Math:
		return v.VisitMath(s)
	case *Link:
		return v.VisitLink(s)
	case *Tag:
		return v.VisitTag(s)
	case *Bookmark:
		return v.VisitBookmark(s)
	case *Comment:
		return v.VisitComment(s)
	case *HTML:
		return v.VisitHTML(s)
	case *Table:
		return v.VisitTable(s)
	case *TableRow:
		return v.VisitTableRow(s)
	case *TableCell:
		return v.VisitTableCell(s)
	case *Quote:
		return v.VisitQuote(s)
	case *QuoteLine:
		return v.VisitQuoteLine(s)
	case *Hr:
		return v.VisitHr(s)
	case *Metadata:
		return v.VisitMetadata(s)
	case *MetadataItem:
		return v.VisitMetadataItem(s)
	case *MetadataTag:
		return v.VisitMetadataTag(s)
	default:
		return fmt.Errorf("mdast: no visitor method for %T", s)
	}
}

// BaseVisitor visits every child statement of the node it is given. Embed it
// and override the methods of interest; the embedding type must set Self so
// that children are dispatched back to the overriding methods.
type BaseVisitor struct {
	Self Visitor
}

func (b BaseVisitor) children(s Statement) error {
	self := b.Self
	if self == nil {
		self = b
	}
	for _, part := range s.Parts() {
		child, ok := part.(Statement)
		if !ok {
			continue
		}
		if err := Accept(child, self); err != nil {
			return err
		}
	}
	return nil
}

func (b BaseVisitor) VisitDocument(s *Document) error                 { return b.children(s) }
func (b BaseVisitor) VisitFrontmatter(s *Frontmatter) error           { return b.children(s) }
func (b BaseVisitor) VisitFrontmatterItem(s *FrontmatterItem) error   { return b.children(s) }
func (b BaseVisitor) VisitContent(s *Content) error                   { return b.children(s) }
func (b BaseVisitor) VisitSection(s *Section) error                   { return b.children(s) }
func (b BaseVisitor) VisitHeading(s *Heading) error                   { return b.children(s) }
func (b BaseVisitor) VisitParagraph(s *Paragraph) error               { return b.children(s) }
func (b BaseVisitor) VisitList(s *List) error                         { return b.children(s) }
func (b BaseVisitor) VisitListItem(s *ListItem) error                 { return b.children(s) }
func (b BaseVisitor) VisitCodeBlock(s *CodeBlock) error               { return b.children(s) }
func (b BaseVisitor) VisitCodeMetadata(s *CodeMetadata) error         { return b.children(s) }
func (b BaseVisitor) VisitCodeMetadataItem(s *CodeMetadataItem) error { return b.children(s) }
func (b BaseVisitor) VisitCodeSource(s *CodeSource) error             { return b.children(s) }
func (b BaseVisitor) VisitRichText(s *RichText) error                 { return b.children(s) }
func (b BaseVisitor) VisitPlainText(s *PlainText) error               { return b.children(s) }
func (b BaseVisitor) VisitEmphasis(s *Emphasis) error                 { return b.children(s) }
func (b BaseVisitor) VisitInlineCode(s *InlineCode) error             { return b.children(s) }
func (b BaseVisitor) VisitMath(s *Math) error                         { return b.children(s) }
func (b BaseVisitor) VisitLink(s *Link) error                         { return b.children(s) }
func (b BaseVisitor) VisitTag(s *Tag) error                           { return b.children(s) }
func (b BaseVisitor) VisitBookmark(s *Bookmark) error                 { return b.children(s) }
func (b BaseVisitor) VisitComment(s *Comment) error                   { return b.children(s) }
func (b BaseVisitor) VisitHTML(s *HTML) error                         { return b.children(s) }
func (b BaseVisitor) VisitTable(s *Table) error                       { return b.children(s) }
func (b BaseVisitor) VisitTableRow(s *TableRow) error                 { return b.children(s) }
func (b BaseVisitor) VisitTableCell(s *TableCell) error               { return b.children(s) }
func (b BaseVisitor) VisitQuote(s *Quote) error                       { return b.children(s) }
func (b BaseVisitor) VisitQuoteLine(s *QuoteLine) error               { return b.children(s) }
func (b BaseVisitor) VisitHr(s *Hr) error                             { return b.children(s) }
func (b BaseVisitor) VisitMetadata(s *Metadata) error                 { return b.children(s) }
func (b BaseVisitor) VisitMetadataItem(s *MetadataItem) error         { return b.children(s) }
func (b BaseVisitor) VisitMetadataTag(s *MetadataTag) error           { return b.children(s) }
