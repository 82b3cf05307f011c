package mdast

// LinkKind distinguishes the three Link shapes.
type LinkKind uint8

const (
	LinkInternal LinkKind = iota
	LinkExternal
	LinkImage
)

// String returns the link kind name.
func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	case LinkImage:
		return "image"
	default:
		return "unknown"
	}
}

// LinkKind derives the link shape from the opening token.
func (l *Link) LinkKind() LinkKind {
	open, _ := TokenAt(l, 0)
	switch open.Kind {
	case TokImageLinkStart:
		return LinkImage
	case TokLeftBracket:
		return LinkExternal
	default:
		return LinkInternal
	}
}

// EmphasisStyle distinguishes the Emphasis delimiters.
type EmphasisStyle uint8

const (
	EmphasisItalic EmphasisStyle = iota
	EmphasisBold
	EmphasisStrikethrough
	EmphasisHighlight
)

// String returns the style name.
func (s EmphasisStyle) String() string {
	switch s {
	case EmphasisItalic:
		return "italic"
	case EmphasisBold:
		return "bold"
	case EmphasisStrikethrough:
		return "strikethrough"
	case EmphasisHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// Delimiter returns the token kind and lexeme that open and close the style.
func (s EmphasisStyle) Delimiter() (TokenKind, string) {
	switch s {
	case EmphasisBold:
		return TokDoubleStar, "**"
	case EmphasisStrikethrough:
		return TokDoubleTilde, "~~"
	case EmphasisHighlight:
		return TokDoubleEqual, "=="
	default:
		return TokStar, "*"
	}
}

// Style derives the emphasis style from the opening delimiter.
func (e *Emphasis) Style() EmphasisStyle {
	open, _ := TokenAt(e, 0)
	switch open.Kind {
	case TokDoubleStar:
		return EmphasisBold
	case TokDoubleTilde:
		return EmphasisStrikethrough
	case TokDoubleEqual:
		return EmphasisHighlight
	default:
		return EmphasisItalic
	}
}

// Display reports whether the math span uses `$$` delimiters.
func (m *Math) Display() bool {
	open, _ := TokenAt(m, 0)
	return open.Kind == TokDoubleDollar
}

// ListMarker distinguishes list item variants.
type ListMarker uint8

const (
	MarkerBullet ListMarker = iota
	MarkerCheckbox
	MarkerNumbered
)

// String returns the marker name.
func (m ListMarker) String() string {
	switch m {
	case MarkerBullet:
		return "bullet"
	case MarkerCheckbox:
		return "checkbox"
	case MarkerNumbered:
		return "numbered"
	default:
		return "unknown"
	}
}

// ListItem part indices.
const (
	ListItemTab = iota
	ListItemMarker
	ListItemSpace
	ListItemContent
	ListItemBR
	ListItemSublist
	ListItemArity
)

// Marker derives the item variant from its marker token.
func (li *ListItem) Marker() ListMarker {
	marker, _ := TokenAt(li, ListItemMarker)
	switch marker.Kind {
	case TokCheckbox:
		return MarkerCheckbox
	case TokNumbered:
		return MarkerNumbered
	default:
		return MarkerBullet
	}
}

// Sublist returns the nested list of the item, if any.
func (li *ListItem) Sublist() (*List, bool) {
	l, ok := li.Part(ListItemSublist).(*List)
	return l, ok
}

// IsList reports whether the item holds a nested list value.
func (fi *FrontmatterItem) IsList() bool {
	_, ok := fi.Part(fi.Len() - 1).(*List)
	return ok
}

// Level returns the heading level from the hash run.
func (h *Heading) Level() int {
	hash, _ := TokenAt(h, 0)
	return hash.Int()
}
