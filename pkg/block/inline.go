package block

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// RichTextBlock wraps a line of inline content.
type RichTextBlock struct {
	s *mdast.RichText
}

// CreateRichText parses a single line of inline content.
func CreateRichText(text string) (*RichTextBlock, error) {
	rt, err := parser.ParseRichText(text)
	if err != nil {
		return nil, fmt.Errorf("create rich text: %w", err)
	}
	return &RichTextBlock{s: rt}, nil
}

func (b *RichTextBlock) Statement() mdast.Statement { return b.s }
func (b *RichTextBlock) String() string             { return b.s.String() }

// Inlines returns the direct inline statements.
func (b *RichTextBlock) Inlines() []Block {
	out := make([]Block, 0, b.s.Len())
	for _, part := range b.s.Parts() {
		if st, ok := part.(mdast.Statement); ok {
			out = append(out, Wrap(st))
		}
	}
	return out
}

// Links returns every link in the text, including links nested in emphasis.
func (b *RichTextBlock) Links() []*LinkBlock {
	var out []*LinkBlock
	for _, st := range mdast.FindByKind(b.s, mdast.KindLink) {
		out = append(out, &LinkBlock{s: st.(*mdast.Link)})
	}
	return out
}

// Tags returns every tag in the text.
func (b *RichTextBlock) Tags() []*TagBlock {
	var out []*TagBlock
	for _, st := range mdast.FindByKind(b.s, mdast.KindTag) {
		out = append(out, &TagBlock{s: st.(*mdast.Tag)})
	}
	return out
}

// Append adds an inline statement at the end.
func (b *RichTextBlock) Append(inline Block) error {
	s := inline.Statement()
	if !s.Kind().IsInline() {
		return fmt.Errorf("%w: rich text cannot hold %s", ErrDisallowedChild, s.Kind())
	}
	b.s.InsertParts(b.s.Len(), s)
	return nil
}

// AppendText parses text and appends its inline statements.
func (b *RichTextBlock) AppendText(text string) error {
	rt, err := parser.ParseRichText(text)
	if err != nil {
		return fmt.Errorf("append rich text: %w", err)
	}
	b.s.InsertParts(b.s.Len(), rt.Parts()...)
	return nil
}

// SetText replaces the whole line.
func (b *RichTextBlock) SetText(text string) error {
	rt, err := parser.ParseRichText(text)
	if err != nil {
		return fmt.Errorf("set rich text: %w", err)
	}
	b.s.SetParts(rt.Parts())
	return nil
}

// LinkBlock wraps an internal, image or external link.
type LinkBlock struct {
	s *mdast.Link
}

// CreateInternalLink builds `[[target]]` or `[[target|alias]]`.
func CreateInternalLink(target, alias string) (*LinkBlock, error) {
	return createLink(wikiLinkSource("[[", target, alias))
}

// CreateImageLink builds `![[target]]` or `![[target|alias]]`.
func CreateImageLink(target, alias string) (*LinkBlock, error) {
	return createLink(wikiLinkSource("![[", target, alias))
}

// CreateExternalLink builds `[label](url)`.
func CreateExternalLink(label, url string) (*LinkBlock, error) {
	if strings.ContainsAny(url, " )") {
		return nil, fmt.Errorf("%w: link url %q", ErrInvalidValue, url)
	}
	return createLink("[" + label + "](" + url + ")")
}

func wikiLinkSource(open, target, alias string) string {
	if alias == "" {
		return open + target + "]]"
	}
	return open + target + "|" + alias + "]]"
}

func createLink(source string) (*LinkBlock, error) {
	rt, err := parser.ParseRichText(source)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	link, ok := rt.Part(0).(*mdast.Link)
	if !ok || rt.Len() != 1 {
		return nil, fmt.Errorf("%w: %q is not a single link", ErrInvalidValue, source)
	}
	return &LinkBlock{s: link}, nil
}

func (b *LinkBlock) Statement() mdast.Statement { return b.s }
func (b *LinkBlock) String() string             { return b.s.String() }

// LinkKind returns the link shape.
func (b *LinkBlock) LinkKind() mdast.LinkKind { return b.s.LinkKind() }

// Target returns the note target of a wiki link or the url of an external
// link.
func (b *LinkBlock) Target() string {
	if b.LinkKind() == mdast.LinkExternal {
		return textOf(b.s.Part(4)) //nolint:mnd // [[, label, ], (, url, )]
	}
	return textOf(b.s.Part(1))
}

// Alias returns the alias of a wiki link or the label of an external link.
func (b *LinkBlock) Alias() string {
	if b.LinkKind() == mdast.LinkExternal {
		return textOf(b.s.Part(1))
	}
	return textOf(b.s.Part(3)) //nolint:mnd // [open, target, |, alias, ]]]
}

// SetTarget replaces the target, keeping the shape and alias.
func (b *LinkBlock) SetTarget(target string) error {
	return b.rebuild(target, b.Alias())
}

// SetAlias replaces the alias or label. An empty alias removes it from a
// wiki link.
func (b *LinkBlock) SetAlias(alias string) error {
	return b.rebuild(b.Target(), alias)
}

func (b *LinkBlock) rebuild(target, alias string) error {
	var (
		fresh *LinkBlock
		err   error
	)
	switch b.LinkKind() {
	case mdast.LinkExternal:
		fresh, err = CreateExternalLink(alias, target)
	case mdast.LinkImage:
		fresh, err = CreateImageLink(target, alias)
	default:
		fresh, err = CreateInternalLink(target, alias)
	}
	if err != nil {
		return err
	}
	b.s.SetParts(fresh.s.Parts())
	return nil
}

// TagBlock wraps `#name`.
type TagBlock struct {
	s *mdast.Tag
}

// CreateTag builds a tag. The name is given without the hash.
func CreateTag(name string) (*TagBlock, error) {
	rt, err := parser.ParseRichText("#" + name)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	tag, ok := rt.Part(0).(*mdast.Tag)
	if !ok || rt.Len() != 1 {
		return nil, fmt.Errorf("%w: tag name %q", ErrInvalidValue, name)
	}
	return &TagBlock{s: tag}, nil
}

func (b *TagBlock) Statement() mdast.Statement { return b.s }
func (b *TagBlock) String() string             { return b.s.String() }

// Name returns the tag name without the hash.
func (b *TagBlock) Name() string { return textOf(b.s.Part(1)) }

// SetName renames the tag.
func (b *TagBlock) SetName(name string) error {
	fresh, err := CreateTag(name)
	if err != nil {
		return err
	}
	b.s.SetParts(fresh.s.Parts())
	return nil
}

// BookmarkBlock wraps `{{name}}`.
type BookmarkBlock struct {
	s *mdast.Bookmark
}

// CreateBookmark builds a bookmark. An empty name is replaced by a random
// UUID.
func CreateBookmark(name string) (*BookmarkBlock, error) {
	if name == "" {
		name = uuid.NewString()
	}
	rt, err := parser.ParseRichText("{{" + name + "}}")
	if err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}
	bm, ok := rt.Part(0).(*mdast.Bookmark)
	if !ok || rt.Len() != 1 {
		return nil, fmt.Errorf("%w: bookmark name %q", ErrInvalidValue, name)
	}
	return &BookmarkBlock{s: bm}, nil
}

func (b *BookmarkBlock) Statement() mdast.Statement { return b.s }
func (b *BookmarkBlock) String() string             { return b.s.String() }

// Name returns the bookmark name.
func (b *BookmarkBlock) Name() string { return textOf(b.s.Part(1)) }
