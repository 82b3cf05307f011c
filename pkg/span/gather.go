package span

import (
	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// gather wraps every statement of kind under root, in document order.
func gather[B block.Block](root mdast.Statement, kind mdast.Kind) *Span[B] {
	var blocks []B
	for _, st := range mdast.FindByKind(root, kind) {
		if b, ok := block.Wrap(st).(B); ok {
			blocks = append(blocks, b)
		}
	}
	return &Span[B]{root: root, blocks: blocks}
}

// FrontmatterItems returns the frontmatter key lines of doc.
func FrontmatterItems(doc *block.DocumentBlock) *Span[*block.FrontmatterItemBlock] {
	fm, ok := doc.Frontmatter()
	if !ok {
		return New[*block.FrontmatterItemBlock](doc.Statement(), nil)
	}
	return New(doc.Statement(), fm.Items())
}

// Headings returns the sections of doc. Removing one removes its heading
// and body.
func Headings(doc *block.DocumentBlock) *Span[*block.SectionBlock] {
	return New(doc.Statement(), doc.Sections())
}

// ListItems returns every list item under root, nested ones included.
func ListItems(root mdast.Statement) *Span[*block.ListItemBlock] {
	return gather[*block.ListItemBlock](root, mdast.KindListItem)
}

// Links returns every link under root.
func Links(root mdast.Statement) *Span[*block.LinkBlock] {
	return gather[*block.LinkBlock](root, mdast.KindLink)
}

// Tags returns every inline tag under root.
func Tags(root mdast.Statement) *Span[*block.TagBlock] {
	return gather[*block.TagBlock](root, mdast.KindTag)
}

// MetadataItems returns every `key:: value` line under root.
func MetadataItems(root mdast.Statement) *Span[*block.MetadataItemBlock] {
	return gather[*block.MetadataItemBlock](root, mdast.KindMetadataItem)
}

// CodeBlocks returns every fenced code block under root.
func CodeBlocks(root mdast.Statement) *Span[*block.CodeBlockBlock] {
	return gather[*block.CodeBlockBlock](root, mdast.KindCodeBlock)
}

// Tables returns every table under root.
func Tables(root mdast.Statement) *Span[*block.TableBlock] {
	return gather[*block.TableBlock](root, mdast.KindTable)
}
