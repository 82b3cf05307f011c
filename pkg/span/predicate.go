package span

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yaklabco/mdcst/pkg/block"
)

// Predicate selects blocks in a span.
type Predicate struct {
	desc  string
	match func(block.Block) bool
}

// Match reports whether b is selected.
func (p Predicate) Match(b block.Block) bool { return p.match(b) }

// String describes the predicate for error messages.
func (p Predicate) String() string { return p.desc }

// Key matches blocks whose key equals key after NFC normalization.
func Key(key string) Predicate {
	want := norm.NFC.String(key)
	return Predicate{
		desc: fmt.Sprintf("key %q", key),
		match: func(b block.Block) bool {
			got, ok := KeyOf(b)
			return ok && norm.NFC.String(got) == want
		},
	}
}

// KeyMatch matches blocks whose NFC-normalized key matches re.
func KeyMatch(re *regexp.Regexp) Predicate {
	return Predicate{
		desc: fmt.Sprintf("key matching /%s/", re),
		match: func(b block.Block) bool {
			got, ok := KeyOf(b)
			return ok && re.MatchString(norm.NFC.String(got))
		},
	}
}

// Func matches blocks of type B for which fn returns true.
func Func[B block.Block](fn func(B) bool) Predicate {
	var zero B
	return Predicate{
		desc: fmt.Sprintf("func(%T)", zero),
		match: func(b block.Block) bool {
			typed, ok := b.(B)
			return ok && fn(typed)
		},
	}
}

// KeyOf returns the key a block is matched by: the key of frontmatter and
// metadata items, the title of headings and sections, the target of links,
// the name of tags, the language of code blocks and the text of list items.
func KeyOf(b block.Block) (string, bool) {
	switch v := b.(type) {
	case *block.FrontmatterItemBlock:
		return v.Key(), true
	case *block.MetadataItemBlock:
		return v.Key(), true
	case *block.SectionBlock:
		return strings.TrimSpace(v.Title()), true
	case *block.HeadingBlock:
		return strings.TrimSpace(v.Text()), true
	case *block.LinkBlock:
		return v.Target(), true
	case *block.TagBlock:
		return v.Name(), true
	case *block.CodeBlockBlock:
		return v.Language(), true
	case *block.ListItemBlock:
		return strings.TrimSpace(v.Text()), true
	default:
		return "", false
	}
}
