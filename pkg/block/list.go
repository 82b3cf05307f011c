package block

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// ListBlock wraps a list. Every structural edit renumbers numbered items,
// re-derives the line breaks between lines and re-indents nested sublists.
// Frontmatter lists may also hold the blank lines between their items.
type ListBlock struct {
	s *mdast.List

	// owner is the list item or frontmatter item holding the list, if known.
	owner mdast.Statement
}

// CreateList builds a bullet list with one item per text.
func CreateList(items ...string) (*ListBlock, error) {
	return createList(items, func(int) string { return "-" })
}

// CreateNumberedList builds a list numbered from 1.
func CreateNumberedList(items ...string) (*ListBlock, error) {
	return createList(items, func(i int) string { return strconv.Itoa(i+1) + "." })
}

// CreateChecklist builds a list of unchecked checkbox items.
func CreateChecklist(items ...string) (*ListBlock, error) {
	return createList(items, func(int) string { return "- [ ]" })
}

func createList(items []string, marker func(i int) string) (*ListBlock, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: list needs at least one item", ErrInvalidValue)
	}
	lines := make([]string, len(items))
	for i, text := range items {
		lines[i] = itemLine(marker(i), text)
	}
	l, err := parser.ParseList(strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	if len(itemIndices(l)) != len(items) {
		return nil, fmt.Errorf("%w: list item text spans lines", ErrInvalidValue)
	}
	return &ListBlock{s: l}, nil
}

func itemLine(marker, text string) string {
	return marker + " " + text
}

func (l *ListBlock) Statement() mdast.Statement { return l.s }
func (l *ListBlock) String() string             { return l.s.String() }

// Len returns the number of top-level items.
func (l *ListBlock) Len() int { return len(itemIndices(l.s)) }

// Items returns the top-level items.
func (l *ListBlock) Items() []*ListItemBlock {
	var out []*ListItemBlock
	for _, part := range l.s.Parts() {
		if li, ok := part.(*mdast.ListItem); ok {
			out = append(out, newListItem(li))
		}
	}
	return out
}

// Item returns the i-th top-level item.
func (l *ListBlock) Item(i int) (*ListItemBlock, error) {
	idx := itemIndices(l.s)
	if err := checkIndex(i, len(idx)); err != nil {
		return nil, err
	}
	li, _ := l.s.Part(idx[i]).(*mdast.ListItem)
	return newListItem(li), nil
}

// itemIndices returns the part index of every top-level item.
func itemIndices(l *mdast.List) []int {
	var idx []int
	for i, part := range l.Parts() {
		if _, ok := part.(*mdast.ListItem); ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// itemNumber converts the part index of an item into its item index.
func itemNumber(l *mdast.List, part int) int {
	n := 0
	for _, i := range itemIndices(l) {
		if i >= part {
			break
		}
		n++
	}
	return n
}

// firstItem returns the first top-level item, or nil.
func firstItem(l *mdast.List) *mdast.ListItem {
	for _, part := range l.Parts() {
		if li, ok := part.(*mdast.ListItem); ok {
			return li
		}
	}
	return nil
}

// Texts returns the text of each top-level item.
func (l *ListBlock) Texts() []string {
	items := l.Items()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Text()
	}
	return out
}

// Level returns the indentation level of the first item.
func (l *ListBlock) Level() int {
	li := firstItem(l.s)
	if li == nil {
		return 0
	}
	return newListItem(li).Level()
}

// IsNumbered reports whether the first item is numbered.
func (l *ListBlock) IsNumbered() bool {
	li := firstItem(l.s)
	return li != nil && li.Marker() == mdast.MarkerNumbered
}

// Append adds an item at the end.
func (l *ListBlock) Append(item Block) error {
	return l.Insert(l.Len(), item)
}

// Insert adds an item before index i.
func (l *ListBlock) Insert(i int, item Block) error {
	li, ok := item.Statement().(*mdast.ListItem)
	if !ok {
		return fmt.Errorf("%w: list cannot hold %s", ErrDisallowedChild, item.Statement().Kind())
	}
	checkArity(li, mdast.ListItemArity)
	idx := itemIndices(l.s)
	if err := checkIndex(i, len(idx)+1); err != nil {
		return err
	}

	at := l.s.Len()
	if i < len(idx) {
		at = idx[i]
	}
	l.mutate(func() { l.s.InsertParts(at, li) })
	return nil
}

// Remove deletes the i-th item together with its sublist and the blank
// lines that separated it from its neighbour. Removing the last item
// detaches the list from the item that owns it; a list with no owner is
// left empty in place.
func (l *ListBlock) Remove(i int) error {
	idx := itemIndices(l.s)
	if err := checkIndex(i, len(idx)); err != nil {
		return err
	}

	from, to := idx[i], idx[i]+1
	switch {
	case len(idx) == 1:
		from, to = 0, l.s.Len()
	case i > 0:
		from = idx[i-1] + 1
	default:
		to = idx[1]
	}

	final := finalBreak(l.s)
	l.mutate(func() { l.s.RemoveParts(from, to) })
	if len(idx) == 1 {
		l.detach(final)
	}
	return nil
}

// detach clears the owner's slot for an emptied list. A list item takes back
// final as its own break.
func (l *ListBlock) detach(final mdast.Node) {
	switch owner := l.owner.(type) {
	case *mdast.ListItem:
		if sub, ok := owner.Sublist(); ok && sub == l.s {
			owner.SetPart(mdast.ListItemBR, final)
			owner.SetPart(mdast.ListItemSublist, nil)
		}
	case *mdast.FrontmatterItem:
		if owner.Part(fmList) == mdast.Node(l.s) {
			owner.SetPart(fmList, nil)
		}
	}
}

// mutate runs edit and re-derives the bookkeeping from the state captured
// before it: the first number, the indentation and the break after the
// final line.
func (l *ListBlock) mutate(edit func()) {
	final := finalBreak(l.s)
	start := firstNumber(l.s)
	var indent mdast.Node
	if li := firstItem(l.s); li != nil {
		indent = li.Part(mdast.ListItemTab)
	}

	edit()

	level := 0
	if tok, ok := indent.(mdast.Token); ok {
		level = parser.IndentLevel(tok)
	}
	for _, item := range l.Items() {
		if item.Level() != level {
			item.s.SetPart(mdast.ListItemTab, indent)
		}
		item.cascade()
	}

	renumber(l.s, start)
	rebreak(l.s, final)
}

// listLines returns every item of l and its sublists in line order.
func listLines(l *mdast.List) []*mdast.ListItem {
	var out []*mdast.ListItem
	for _, part := range l.Parts() {
		li, ok := part.(*mdast.ListItem)
		if !ok {
			continue
		}
		out = append(out, li)
		if sub, ok := li.Sublist(); ok {
			out = append(out, listLines(sub)...)
		}
	}
	return out
}

// finalBreak returns the break owned by the last line of l, or nil.
func finalBreak(l *mdast.List) mdast.Node {
	all := listLines(l)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1].Part(mdast.ListItemBR)
}

// rebreak gives every line but the last a line break and restores the
// last line's break to final.
func rebreak(l *mdast.List, final mdast.Node) {
	all := listLines(l)
	for i, li := range all {
		if i == len(all)-1 {
			li.SetPart(mdast.ListItemBR, final)
			break
		}
		if li.Part(mdast.ListItemBR) == nil {
			li.SetPart(mdast.ListItemBR, breakLike(final))
		}
	}
}

// firstNumber returns the number of the first numbered item, or 1.
func firstNumber(l *mdast.List) int {
	for _, part := range l.Parts() {
		li, ok := part.(*mdast.ListItem)
		if !ok || li.Marker() != mdast.MarkerNumbered {
			continue
		}
		tok, _ := mdast.TokenAt(li, mdast.ListItemMarker)
		return tok.Int()
	}
	return 1
}

// renumber numbers the numbered items of l consecutively from start and
// recurses into sublists, each numbered from its own first item.
func renumber(l *mdast.List, start int) {
	n := start
	for _, part := range l.Parts() {
		li, ok := part.(*mdast.ListItem)
		if !ok {
			continue
		}
		if li.Marker() == mdast.MarkerNumbered {
			li.SetPart(mdast.ListItemMarker, numberedMarker(n))
			n++
		}
		if sub, ok := li.Sublist(); ok {
			renumber(sub, firstNumber(sub))
		}
	}
}

func numberedMarker(n int) mdast.Token {
	return mdast.NewToken(mdast.TokNumbered, strconv.Itoa(n)+".", n)
}

func checkboxMarker(checked bool) mdast.Token {
	if checked {
		return mdast.NewToken(mdast.TokCheckbox, "- [x]", true)
	}
	return mdast.NewToken(mdast.TokCheckbox, "- [ ]", false)
}

func indentToken(level int) mdast.Node {
	if level <= 0 {
		return nil
	}
	return mdast.NewToken(mdast.TokTab, strings.Repeat("\t", level), level)
}

// ListItemBlock wraps a bullet, checkbox or numbered item.
type ListItemBlock struct {
	s *mdast.ListItem
}

func newListItem(s *mdast.ListItem) *ListItemBlock {
	checkArity(s, mdast.ListItemArity)
	return &ListItemBlock{s: s}
}

// CreateListItem builds a bullet item.
func CreateListItem(text string) (*ListItemBlock, error) {
	return createListItem("-", text)
}

// CreateCheckbox builds a checkbox item.
func CreateCheckbox(text string, checked bool) (*ListItemBlock, error) {
	return createListItem(checkboxMarker(checked).Lexeme, text)
}

// CreateNumberedItem builds a numbered item. Lists renumber their items, so n
// only matters for a detached item.
func CreateNumberedItem(n int, text string) (*ListItemBlock, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: list number %d", ErrInvalidValue, n)
	}
	return createListItem(strconv.Itoa(n)+".", text)
}

func createListItem(marker, text string) (*ListItemBlock, error) {
	l, err := parser.ParseList(itemLine(marker, text))
	if err != nil {
		return nil, fmt.Errorf("create list item: %w", err)
	}
	if l.Len() != 1 {
		return nil, fmt.Errorf("%w: list item text %q", ErrInvalidValue, text)
	}
	li, _ := l.Part(0).(*mdast.ListItem)
	return newListItem(li), nil
}

func (b *ListItemBlock) Statement() mdast.Statement { return b.s }
func (b *ListItemBlock) String() string             { return b.s.String() }

// Marker returns the item variant.
func (b *ListItemBlock) Marker() mdast.ListMarker { return b.s.Marker() }

// Text returns the item text.
func (b *ListItemBlock) Text() string { return textOf(b.s.Part(mdast.ListItemContent)) }

// SetText replaces the item text.
func (b *ListItemBlock) SetText(text string) error {
	rt, err := parser.ParseRichText(text)
	if err != nil {
		return fmt.Errorf("set list item text: %w", err)
	}
	b.s.SetPart(mdast.ListItemContent, rt)
	b.ensureSpace(text)
	return nil
}

func (b *ListItemBlock) ensureSpace(text string) {
	if text != "" && b.s.Part(mdast.ListItemSpace) == nil {
		b.s.SetPart(mdast.ListItemSpace, space())
	}
}

// Number returns the number of a numbered item, or 0.
func (b *ListItemBlock) Number() int {
	if b.Marker() != mdast.MarkerNumbered {
		return 0
	}
	tok, _ := mdast.TokenAt(b.s, mdast.ListItemMarker)
	return tok.Int()
}

// Checked reports whether a checkbox item is checked.
func (b *ListItemBlock) Checked() bool {
	tok, _ := mdast.TokenAt(b.s, mdast.ListItemMarker)
	return tok.Kind == mdast.TokCheckbox && tok.Bool()
}

// SetChecked checks or unchecks a checkbox item.
func (b *ListItemBlock) SetChecked(checked bool) error {
	if b.Marker() != mdast.MarkerCheckbox {
		return fmt.Errorf("%w: %s item has no checkbox", ErrWrongVariant, b.Marker())
	}
	b.s.SetPart(mdast.ListItemMarker, checkboxMarker(checked))
	return nil
}

// ToCheckbox turns the item into a checkbox item.
func (b *ListItemBlock) ToCheckbox(checked bool) {
	b.s.SetPart(mdast.ListItemMarker, checkboxMarker(checked))
	b.ensureSpace(b.Text())
}

// ToPlain turns the item into a bullet item.
func (b *ListItemBlock) ToPlain() {
	if b.Marker() == mdast.MarkerBullet {
		return
	}
	b.s.SetPart(mdast.ListItemMarker, newToken(mdast.TokBullet, "-"))
}

// Level returns the indentation level.
func (b *ListItemBlock) Level() int {
	tok, ok := mdast.TokenAt(b.s, mdast.ListItemTab)
	if !ok {
		return 0
	}
	return parser.IndentLevel(tok)
}

// SetLevel re-indents the item with tabs and cascades to its sublists.
func (b *ListItemBlock) SetLevel(level int) error {
	if level < 0 {
		return fmt.Errorf("%w: indent level %d", ErrInvalidValue, level)
	}
	b.s.SetPart(mdast.ListItemTab, indentToken(level))
	b.cascade()
	return nil
}

// cascade indents every nested line one tab deeper than its parent.
func (b *ListItemBlock) cascade() {
	sub, ok := b.s.Sublist()
	if !ok {
		return
	}
	want := b.Level() + 1
	for _, part := range sub.Parts() {
		li, ok := part.(*mdast.ListItem)
		if !ok {
			continue
		}
		child := newListItem(li)
		if child.Level() != want {
			li.SetPart(mdast.ListItemTab, indentToken(want))
		}
		child.cascade()
	}
}

// Sublist returns the nested list.
func (b *ListItemBlock) Sublist() (*ListBlock, bool) {
	sub, ok := b.s.Sublist()
	if !ok {
		return nil, false
	}
	return &ListBlock{s: sub, owner: b.s}, true
}

// SetSublist nests l under the item. The item's own break moves to the end
// of the sublist and the sublist is indented one level deeper.
func (b *ListItemBlock) SetSublist(l *ListBlock) error {
	if l.Len() == 0 {
		return fmt.Errorf("%w: empty sublist", ErrInvalidValue)
	}

	final := b.s.Part(mdast.ListItemBR)
	if sub, ok := b.s.Sublist(); ok {
		final = finalBreak(sub)
	}

	b.s.SetPart(mdast.ListItemBR, breakLike(final))
	b.s.SetPart(mdast.ListItemSublist, l.s)
	b.cascade()
	rebreak(l.s, final)
	l.owner = b.s
	return nil
}

// RemoveSublist drops the nested list and gives its final break back to the
// item.
func (b *ListItemBlock) RemoveSublist() error {
	sub, ok := b.s.Sublist()
	if !ok {
		return fmt.Errorf("%w: item has no sublist", ErrWrongVariant)
	}
	b.s.SetPart(mdast.ListItemBR, finalBreak(sub))
	b.s.SetPart(mdast.ListItemSublist, nil)
	return nil
}
