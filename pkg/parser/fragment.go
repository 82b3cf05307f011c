package parser

import (
	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

// Fragment parsers build a single statement from source that must be consumed
// completely. They back the block factories that synthesize new nodes from
// plain strings.

// ParseFrontmatter parses a `---` delimited frontmatter block.
func ParseFrontmatter(source string) (*mdast.Frontmatter, error) {
	return parseFragment(scanner.Scan(source), (*Parser).frontmatter)
}

// ParseContent parses a run of blocks without headings.
func ParseContent(source string) (*mdast.Content, error) {
	return parseFragment(scanner.Scan(source), (*Parser).content)
}

// ParseHeading parses a single heading line.
func ParseHeading(source string) (*mdast.Heading, error) {
	return parseFragment(scanner.Scan(source), (*Parser).heading)
}

// ParseParagraph parses one paragraph.
func ParseParagraph(source string) (*mdast.Paragraph, error) {
	return parseFragment(scanner.Scan(source), (*Parser).paragraph)
}

// ParseList parses one list, including nested sublists.
func ParseList(source string) (*mdast.List, error) {
	return parseFragment(scanner.Scan(source), (*Parser).list)
}

// ParseCodeBlock parses a fenced code block.
func ParseCodeBlock(source string) (*mdast.CodeBlock, error) {
	return parseFragment(scanner.Scan(source), (*Parser).codeBlock)
}

// ParseTable parses a pipe table.
func ParseTable(source string) (*mdast.Table, error) {
	return parseFragment(scanner.Scan(source), (*Parser).table)
}

// ParseQuote parses a blockquote.
func ParseQuote(source string) (*mdast.Quote, error) {
	return parseFragment(scanner.Scan(source), (*Parser).quote)
}

// ParseMetadata parses a run of `key:: value` and tag lines.
func ParseMetadata(source string) (*mdast.Metadata, error) {
	p := New(scanner.Scan(source))
	if !p.isMetadataLine(p.pos) {
		return nil, p.errorf([]mdast.TokenKind{mdast.TokDoubleColon, mdast.TokHash}, "not a metadata line")
	}
	return parseFragmentWith(p, (*Parser).metadata)
}

// ParseRichText parses a single line of inline content. Line-start markers
// are not recognized, so "# x" is text rather than a heading.
func ParseRichText(source string) (*mdast.RichText, error) {
	return parseFragment(scanner.ScanInline(source), func(p *Parser) (*mdast.RichText, error) {
		return p.richText()
	})
}

func parseFragment[T mdast.Statement](tokens []mdast.Token, production func(*Parser) (T, error)) (T, error) {
	return parseFragmentWith(New(tokens), production)
}

func parseFragmentWith[T mdast.Statement](p *Parser, production func(*Parser) (T, error)) (T, error) {
	var zero T

	s, err := production(p)
	if err != nil {
		return zero, err
	}
	if err := p.expectEnd(); err != nil {
		return zero, err
	}
	return s, nil
}
