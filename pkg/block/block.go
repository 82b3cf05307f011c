// Package block wraps CST statements in typed handles that read and edit
// them by part index.
//
// A Block never mutates a token. Setters synthesize new tokens or parse a
// source fragment and replace whole parts, so sibling whitespace and line
// breaks survive every edit. Containers re-derive their formatting
// bookkeeping (numbering, line breaks, indentation, trailing pipes) after
// each structural change.
package block

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdcst/pkg/mdast"
)

// Sentinel errors returned by container mutations.
var (
	// ErrDisallowedChild indicates a statement that the container cannot hold.
	ErrDisallowedChild = errors.New("disallowed child")

	// ErrIndexOutOfRange indicates an index outside the container.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrWrongVariant indicates an operation that does not apply to the
	// statement's current shape.
	ErrWrongVariant = errors.New("wrong variant")

	// ErrInvalidValue indicates a value that cannot be represented.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotAttached indicates a block that is not part of the given tree.
	ErrNotAttached = errors.New("block not attached")
)

// Block is a typed handle over exactly one statement.
type Block interface {
	// Statement returns the wrapped statement.
	Statement() mdast.Statement

	// String serializes the wrapped statement.
	String() string
}

// RawBlock wraps statements that have no dedicated block type, such as
// emphasis or inline code.
type RawBlock struct {
	s mdast.Statement
}

func (b *RawBlock) Statement() mdast.Statement { return b.s }
func (b *RawBlock) String() string             { return b.s.String() }

// Kind returns the kind of the wrapped statement.
func (b *RawBlock) Kind() mdast.Kind { return b.s.Kind() }

// Wrap returns the block type matching the statement kind. It panics when the
// statement does not have the fixed arity of its kind.
func Wrap(s mdast.Statement) Block {
	switch v := s.(type) {
	case *mdast.Document:
		return newDocument(v)
	case *mdast.Frontmatter:
		return &FrontmatterBlock{s: v}
	case *mdast.FrontmatterItem:
		return newFrontmatterItem(v)
	case *mdast.Section:
		return newSection(v)
	case *mdast.Heading:
		return newHeading(v)
	case *mdast.Content:
		return &ContentBlock{s: v}
	case *mdast.Paragraph:
		return &ParagraphBlock{s: v}
	case *mdast.List:
		return &ListBlock{s: v}
	case *mdast.ListItem:
		return newListItem(v)
	case *mdast.CodeBlock:
		return newCodeBlock(v)
	case *mdast.CodeMetadata:
		return &CodeMetadataBlock{s: v}
	case *mdast.RichText:
		return &RichTextBlock{s: v}
	case *mdast.Link:
		return &LinkBlock{s: v}
	case *mdast.Tag:
		return &TagBlock{s: v}
	case *mdast.Bookmark:
		return &BookmarkBlock{s: v}
	case *mdast.Table:
		return &TableBlock{s: v}
	case *mdast.TableRow:
		return &TableRowBlock{s: v}
	case *mdast.Quote:
		return &QuoteBlock{s: v}
	case *mdast.Hr:
		return &HrBlock{s: v}
	case *mdast.Metadata:
		return &MetadataBlock{s: v}
	case *mdast.MetadataItem:
		return newMetadataItem(v)
	case *mdast.MetadataTag:
		return &MetadataTagBlock{s: v}
	default:
		return &RawBlock{s: s}
	}
}

// Remove detaches b from the tree under root, running the owning container's
// bookkeeping as if the removal had been made through it. Removing a heading
// removes its section; removing the only line of a metadata block removes
// the block.
func Remove(root mdast.Statement, b Block) error {
	child := b.Statement()
	parent, index, ok := mdast.ParentOf(root, child)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotAttached, child.Kind())
	}

	switch p := parent.(type) {
	case *mdast.Document:
		if index == 0 {
			p.SetPart(0, nil)
			return nil
		}
		return newDocument(p).removePart(index)
	case *mdast.Frontmatter:
		(&FrontmatterBlock{s: p}).removePart(index)
		return nil
	case *mdast.Section:
		if index != 0 {
			return fmt.Errorf("%w: section body cannot be removed", ErrDisallowedChild)
		}
		return Remove(root, newSection(p))
	case *mdast.Content:
		return (&ContentBlock{s: p}).RemoveAt(blockIndex(p, index))
	case *mdast.List:
		l := &ListBlock{s: p}
		if owner, _, ok := mdast.ParentOf(root, p); ok {
			l.owner = owner
		}
		return l.Remove(itemNumber(p, index))
	case *mdast.ListItem:
		return newListItem(p).RemoveSublist()
	case *mdast.CodeMetadata:
		p.RemoveParts(index, index+1)
		return nil
	case *mdast.Table:
		return (&TableBlock{s: p}).RemoveRowAt(index / 2) //nolint:mnd // rows alternate with breaks
	case *mdast.TableRow:
		return (&TableRowBlock{s: p}).RemoveCell(index - 1)
	case *mdast.Metadata:
		if p.Len() == 1 {
			return Remove(root, &MetadataBlock{s: p})
		}
		return (&MetadataBlock{s: p}).RemoveAt(index)
	case *mdast.RichText:
		p.RemoveParts(index, index+1)
		return nil
	default:
		return fmt.Errorf("%w: cannot remove %s from %s", ErrDisallowedChild, child.Kind(), parent.Kind())
	}
}

// checkArity panics when s does not hold exactly n parts.
func checkArity(s mdast.Statement, n int) {
	if s.Len() != n {
		panic(fmt.Sprintf("block: %s has %d parts, want %d", s.Kind(), s.Len(), n))
	}
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

// Token synthesis helpers.

func newToken(kind mdast.TokenKind, lexeme string) mdast.Token {
	return mdast.NewToken(kind, lexeme, nil)
}

func lineBreak() mdast.Token { return newToken(mdast.TokBR, "\n") }

func space() mdast.Token { return newToken(mdast.TokSpace, " ") }

// breakLike returns a line break that matches the style of an existing one.
func breakLike(n mdast.Node) mdast.Token {
	if tok, ok := n.(mdast.Token); ok && tok.Kind == mdast.TokBR {
		return newToken(mdast.TokBR, tok.Lexeme)
	}
	return lineBreak()
}

func isBreak(n mdast.Node) bool {
	tok, ok := n.(mdast.Token)
	return ok && tok.Kind == mdast.TokBR
}

func isWhitespaceToken(n mdast.Node) bool {
	tok, ok := n.(mdast.Token)
	return ok && tok.Is(mdast.TokBR, mdast.TokSpace, mdast.TokTab)
}

// textOf serializes a part, treating an absent part as empty.
func textOf(n mdast.Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
