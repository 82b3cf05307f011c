package parser

import (
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// block dispatches on the first token of a line.
func (p *Parser) block() (mdast.Statement, error) {
	switch {
	case p.check(mdast.TokHR):
		return build[*mdast.Hr](mdast.KindHr, p.advance()), nil
	case p.check(mdast.TokCodeFenceStart):
		cb, err := p.codeBlock()
		if err != nil {
			return nil, err
		}
		return cb, nil
	case p.isListLine(p.pos):
		list, err := p.list()
		if err != nil {
			return nil, err
		}
		return list, nil
	case p.check(mdast.TokQuote):
		quote, err := p.quote()
		if err != nil {
			return nil, err
		}
		return quote, nil
	case p.check(mdast.TokPipe):
		table, err := p.table()
		if err != nil {
			return nil, err
		}
		return table, nil
	case p.isMetadataLine(p.pos):
		meta, err := p.metadata()
		if err != nil {
			return nil, err
		}
		return meta, nil
	default:
		para, err := p.paragraph()
		if err != nil {
			return nil, err
		}
		return para, nil
	}
}

// startsBlock reports whether the line at i opens something other than a
// paragraph continuation.
func (p *Parser) startsBlock(i int) bool {
	switch p.kindAt(i) {
	case mdast.TokBR, mdast.TokEOF, mdast.TokHeadingHash, mdast.TokHR,
		mdast.TokCodeFenceStart, mdast.TokQuote, mdast.TokPipe:
		return true
	}
	return p.isListLine(i) || p.isBlankLine(i) || p.isMetadataLine(i)
}

// paragraph parses [RichText, BR, RichText, ...].
func (p *Parser) paragraph() (*mdast.Paragraph, error) {
	first, err := p.richText()
	if err != nil {
		return nil, err
	}

	parts := []mdast.Node{first}
	for p.check(mdast.TokBR) && !p.startsBlock(p.pos+1) {
		parts = append(parts, p.advance())
		line, err := p.richText()
		if err != nil {
			return nil, err
		}
		parts = append(parts, line)
	}

	return build[*mdast.Paragraph](mdast.KindParagraph, parts...), nil
}

// isListLine reports whether the line at i is an optionally indented list
// marker.
func (p *Parser) isListLine(i int) bool {
	if isWhitespace(p.kindAt(i)) {
		i++
	}
	switch p.kindAt(i) {
	case mdast.TokBullet, mdast.TokCheckbox, mdast.TokNumbered:
		return true
	default:
		return false
	}
}

// indentAt returns the indentation level of the line at i.
func (p *Parser) indentAt(i int) int {
	if i < 0 || i >= len(p.tokens) {
		return 0
	}
	return IndentLevel(p.tokens[i])
}

// IndentLevel converts a leading whitespace token to a nesting level: one per
// tab, one per two spaces.
func IndentLevel(tok mdast.Token) int {
	switch tok.Kind {
	case mdast.TokTab:
		return tok.Int()
	case mdast.TokSpace:
		return tok.Len() / 2 //nolint:mnd // two spaces per level
	default:
		return 0
	}
}

// list parses a run of list lines starting at the current indentation.
func (p *Parser) list() (*mdast.List, error) {
	return p.listAt(p.indentAt(p.pos))
}

// listAt parses items until the lines stop being list lines or dedent below
// level. Every line but the last owns its trailing line break.
func (p *Parser) listAt(level int) (*mdast.List, error) {
	var items []mdast.Node
	for {
		item, err := p.listItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if !p.lastWasBreak() || !p.isListLine(p.pos) || p.indentAt(p.pos) < level {
			break
		}
	}
	return build[*mdast.List](mdast.KindList, items...), nil
}

// listItem parses [tab?, marker, space?, RichText, BR?, List?].
func (p *Parser) listItem() (*mdast.ListItem, error) {
	var tab mdast.Node
	level := 0
	if p.check(mdast.TokTab, mdast.TokSpace) {
		tok := p.advance()
		tab, level = tok, IndentLevel(tok)
	}

	marker, err := p.chomp(mdast.TokBullet, mdast.TokCheckbox, mdast.TokNumbered)
	if err != nil {
		return nil, err
	}
	space := p.maybeChomp(mdast.TokSpace)
	text, err := p.richText()
	if err != nil {
		return nil, err
	}

	var br, sublist mdast.Node
	if p.check(mdast.TokBR) && p.isListLine(p.pos+1) {
		br = p.advance()
		if p.indentAt(p.pos) > level {
			sub, err := p.listAt(p.indentAt(p.pos))
			if err != nil {
				return nil, err
			}
			sublist = sub
		}
	}

	return build[*mdast.ListItem](mdast.KindListItem, tab, marker, space, text, br, sublist), nil
}

// codeBlock parses [FENCE_START, LANG?, BR, CodeMetadata, CodeSource, FENCE_END].
func (p *Parser) codeBlock() (*mdast.CodeBlock, error) {
	start, err := p.chomp(mdast.TokCodeFenceStart)
	if err != nil {
		return nil, err
	}
	lang := p.maybeChomp(mdast.TokCodeLang)
	br, err := p.chomp(mdast.TokBR)
	if err != nil {
		return nil, err
	}

	var items []mdast.Node
	for p.check(mdast.TokCodeKey) {
		item, err := p.codeMetadataItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	meta := build[*mdast.CodeMetadata](mdast.KindCodeMetadata, items...)

	source := build[*mdast.CodeSource](mdast.KindCodeSource,
		p.chompWhile(mdast.TokCodeSource, mdast.TokBR)...)

	if !p.check(mdast.TokCodeFenceEnd) {
		return nil, p.errorf([]mdast.TokenKind{mdast.TokCodeFenceEnd}, "unclosed code fence")
	}
	end := p.advance()

	return build[*mdast.CodeBlock](mdast.KindCodeBlock, start, lang, br, meta, source, end), nil
}

// codeMetadataItem parses [CODE_KEY, COLON, space?, CODE_VALUE?, BR].
func (p *Parser) codeMetadataItem() (*mdast.CodeMetadataItem, error) {
	key := p.advance()
	colon, err := p.chomp(mdast.TokColon)
	if err != nil {
		return nil, err
	}
	space := p.maybeChomp(mdast.TokSpace)
	value := p.maybeChomp(mdast.TokCodeValue)
	br, err := p.chomp(mdast.TokBR)
	if err != nil {
		return nil, err
	}
	return build[*mdast.CodeMetadataItem](mdast.KindCodeMetadataItem, key, colon, space, value, br), nil
}

// table parses [TableRow, BR, TableRow, ...].
func (p *Parser) table() (*mdast.Table, error) {
	row, err := p.tableRow()
	if err != nil {
		return nil, err
	}

	parts := []mdast.Node{row}
	for p.check(mdast.TokBR) && p.checkAt(1, mdast.TokPipe) {
		parts = append(parts, p.advance())
		row, err := p.tableRow()
		if err != nil {
			return nil, err
		}
		parts = append(parts, row)
	}

	return build[*mdast.Table](mdast.KindTable, parts...), nil
}

// tableRow parses [PIPE, TableCell..., trailing?]. The trailing slot holds
// whitespace after the last pipe, or nil.
func (p *Parser) tableRow() (*mdast.TableRow, error) {
	pipe, err := p.chomp(mdast.TokPipe)
	if err != nil {
		return nil, err
	}

	parts := []mdast.Node{pipe}
	var trailing mdast.Node
	for !p.check(mdast.TokBR, mdast.TokEOF) {
		if p.check(mdast.TokSpace, mdast.TokTab) && p.checkAt(1, mdast.TokBR, mdast.TokEOF) {
			trailing = p.advance()
			break
		}
		cell, err := p.tableCell()
		if err != nil {
			return nil, err
		}
		parts = append(parts, cell)
	}

	parts = append(parts, trailing)
	return build[*mdast.TableRow](mdast.KindTableRow, parts...), nil
}

// tableCell parses [space?, RichText, space?, PIPE?].
func (p *Parser) tableCell() (*mdast.TableCell, error) {
	lead := p.maybeChomp(mdast.TokSpace)
	text, err := p.richText(mdast.TokPipe)
	if err != nil {
		return nil, err
	}
	trail := splitTrailingSpace(text)
	pipe := p.maybeChomp(mdast.TokPipe)
	return build[*mdast.TableCell](mdast.KindTableCell, lead, text, trail, pipe), nil
}

// splitTrailingSpace detaches a final SPACE token from text and returns it.
func splitTrailingSpace(text *mdast.RichText) mdast.Node {
	last, ok := text.Part(text.Len() - 1).(*mdast.PlainText)
	if !ok || last.Len() == 0 {
		return nil
	}
	tok, ok := mdast.TokenAt(last, last.Len()-1)
	if !ok || tok.Kind != mdast.TokSpace {
		return nil
	}

	last.RemoveParts(last.Len()-1, last.Len())
	if last.Len() == 0 {
		text.RemoveParts(text.Len()-1, text.Len())
	}
	return tok
}

// quote parses [QuoteLine, BR, QuoteLine, ...].
func (p *Parser) quote() (*mdast.Quote, error) {
	line, err := p.quoteLine()
	if err != nil {
		return nil, err
	}

	parts := []mdast.Node{line}
	for p.check(mdast.TokBR) && p.checkAt(1, mdast.TokQuote) {
		parts = append(parts, p.advance())
		line, err := p.quoteLine()
		if err != nil {
			return nil, err
		}
		parts = append(parts, line)
	}

	return build[*mdast.Quote](mdast.KindQuote, parts...), nil
}

// quoteLine parses [PlainText(markers), RichText].
func (p *Parser) quoteLine() (*mdast.QuoteLine, error) {
	if !p.check(mdast.TokQuote) {
		return nil, p.errorf([]mdast.TokenKind{mdast.TokQuote}, "")
	}

	var markers []mdast.Node
	for p.check(mdast.TokQuote) {
		markers = append(markers, p.advance())
		if p.check(mdast.TokSpace) {
			markers = append(markers, p.advance())
		}
	}
	prefix := build[*mdast.PlainText](mdast.KindPlainText, markers...)

	text, err := p.richText()
	if err != nil {
		return nil, err
	}
	return build[*mdast.QuoteLine](mdast.KindQuoteLine, prefix, text), nil
}

// isMetadataLine reports whether the line at i is a `key:: value` line or a
// line made only of tags.
func (p *Parser) isMetadataLine(i int) bool {
	return p.isMetadataItemLine(i) || p.isTagLine(i)
}

func (p *Parser) isMetadataItemLine(i int) bool {
	if !isKeyWord(p.kindAt(i)) {
		return false
	}
	for ; ; i++ {
		switch k := p.kindAt(i); {
		case k == mdast.TokDoubleColon:
			return true
		case isKeyWord(k) || k == mdast.TokSpace:
		default:
			return false
		}
	}
}

func isKeyWord(k mdast.TokenKind) bool {
	switch k {
	case mdast.TokSymbol, mdast.TokRune, mdast.TokNumber, mdast.TokOrdinal:
		return true
	default:
		return false
	}
}

func (p *Parser) isTagLine(i int) bool {
	tags := 0
	for {
		if p.kindAt(i) != mdast.TokHash || !isTagName(p.kindAt(i+1)) {
			return false
		}
		tags++
		i += 2
		if isWhitespace(p.kindAt(i)) {
			i++
		}
		if k := p.kindAt(i); k == mdast.TokBR || k == mdast.TokEOF {
			return tags > 0
		}
	}
}

func isTagName(k mdast.TokenKind) bool {
	return isKeyWord(k) || k == mdast.TokURL
}

// metadata parses a run of MetadataItem and MetadataTag lines.
func (p *Parser) metadata() (*mdast.Metadata, error) {
	var items []mdast.Node
	for {
		var (
			item mdast.Statement
			err  error
		)
		if p.isMetadataItemLine(p.pos) {
			item, err = p.metadataItem()
		} else {
			item, err = p.metadataTag()
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if !p.lastWasBreak() {
			break
		}
	}
	return build[*mdast.Metadata](mdast.KindMetadata, items...), nil
}

// metadataLineBreak consumes the line break when another metadata line
// follows.
func (p *Parser) metadataLineBreak() mdast.Node {
	if p.check(mdast.TokBR) && p.isMetadataLine(p.pos+1) {
		return p.advance()
	}
	return nil
}

// metadataItem parses [PlainText(key), DOUBLE_COLON, space?, RichText?, BR?].
func (p *Parser) metadataItem() (*mdast.MetadataItem, error) {
	key := build[*mdast.PlainText](mdast.KindPlainText, p.chompWhileNot(mdast.TokDoubleColon)...)
	colon, err := p.chomp(mdast.TokDoubleColon)
	if err != nil {
		return nil, err
	}
	space := p.maybeChomp(mdast.TokSpace)

	var value mdast.Node
	if !p.check(mdast.TokBR, mdast.TokEOF) {
		text, err := p.richText()
		if err != nil {
			return nil, err
		}
		value = text
	}

	return build[*mdast.MetadataItem](mdast.KindMetadataItem,
		key, colon, space, value, p.metadataLineBreak()), nil
}

// metadataTag parses [RichText(tags), BR?].
func (p *Parser) metadataTag() (*mdast.MetadataTag, error) {
	text, err := p.richText()
	if err != nil {
		return nil, err
	}
	return build[*mdast.MetadataTag](mdast.KindMetadataTag, text, p.metadataLineBreak()), nil
}
