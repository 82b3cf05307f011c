package block

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// TableCell part indices.
const (
	cellLead = iota
	cellText
	cellTrail
	cellPipe
	cellArity
)

const minDividerWidth = 3

// TableBlock wraps a pipe table. Rows alternate with the line breaks between
// them; the second row is the divider when all its cells are dashes.
type TableBlock struct {
	s *mdast.Table
}

// CreateTable builds a table from rows of cell text. The first row is the
// header; a divider row is inserted after it unless rows[1] already is one.
func CreateTable(rows [][]string) (*TableBlock, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: table needs a header row", ErrInvalidValue)
	}
	if len(rows) < 2 || !isDividerCells(rows[1]) {
		divider := make([]string, len(rows[0]))
		for i := range divider {
			divider[i] = "---"
		}
		rows = append([][]string{rows[0], divider}, rows[1:]...)
	}

	lines := make([]string, len(rows))
	for i, cells := range rows {
		line, err := renderRow(cells)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}

	t, err := parser.ParseTable(strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &TableBlock{s: t}, nil
}

func renderRow(cells []string) (string, error) {
	var b strings.Builder
	b.WriteString("|")
	for _, cell := range cells {
		if err := validateCell(cell); err != nil {
			return "", err
		}
		b.WriteString(" " + cell + " |")
	}
	return b.String(), nil
}

func validateCell(text string) error {
	if strings.ContainsAny(text, "|\r\n") {
		return fmt.Errorf("%w: table cell %q", ErrInvalidValue, text)
	}
	return nil
}

func (b *TableBlock) Statement() mdast.Statement { return b.s }
func (b *TableBlock) String() string             { return b.s.String() }

// Len returns the number of rows, divider included.
func (b *TableBlock) Len() int { return (b.s.Len() + 1) / 2 } //nolint:mnd // rows alternate with breaks

// Rows returns every row, divider included.
func (b *TableBlock) Rows() []*TableRowBlock {
	out := make([]*TableRowBlock, 0, b.Len())
	for _, part := range b.s.Parts() {
		if row, ok := part.(*mdast.TableRow); ok {
			out = append(out, &TableRowBlock{s: row})
		}
	}
	return out
}

// Row returns the i-th row.
func (b *TableBlock) Row(i int) (*TableRowBlock, error) {
	if err := checkIndex(i, b.Len()); err != nil {
		return nil, err
	}
	row, _ := b.s.Part(2 * i).(*mdast.TableRow)
	return &TableRowBlock{s: row}, nil
}

// HasDivider reports whether the second row is a divider.
func (b *TableBlock) HasDivider() bool {
	rows := b.Rows()
	return len(rows) > 1 && rows[1].IsDivider()
}

// DataRows returns the rows after the header and divider.
func (b *TableBlock) DataRows() []*TableRowBlock {
	rows := b.Rows()
	skip := 1
	if b.HasDivider() {
		skip = 2
	}
	if len(rows) <= skip {
		return nil
	}
	return rows[skip:]
}

// ToMap maps each header cell to the column values of the data rows. Short
// rows contribute empty strings.
func (b *TableBlock) ToMap() map[string][]string {
	rows := b.Rows()
	if len(rows) == 0 {
		return map[string][]string{}
	}

	header := rows[0].Cells()
	out := make(map[string][]string, len(header))
	data := b.DataRows()
	for col, key := range header {
		values := make([]string, 0, len(data))
		for _, row := range data {
			cells := row.Cells()
			value := ""
			if col < len(cells) {
				value = cells[col]
			}
			values = append(values, value)
		}
		out[key] = values
	}
	return out
}

// AppendRow adds a data row.
func (b *TableBlock) AppendRow(cells ...string) error {
	row, err := CreateTableRow(cells...)
	if err != nil {
		return err
	}
	return b.InsertRow(b.Len(), row)
}

// InsertRow inserts a row before index i.
func (b *TableBlock) InsertRow(i int, row Block) error {
	r, ok := row.Statement().(*mdast.TableRow)
	if !ok {
		return fmt.Errorf("%w: table cannot hold %s", ErrDisallowedChild, row.Statement().Kind())
	}
	n := b.Len()
	if err := checkIndex(i, n+1); err != nil {
		return err
	}

	br := lineBreak()
	if b.s.Len() > 1 {
		br = breakLike(b.s.Part(1))
	}
	switch {
	case n == 0:
		b.s.SetParts([]mdast.Node{r})
	case i == n:
		b.s.InsertParts(b.s.Len(), br, r)
	default:
		b.s.InsertParts(2*i, r, br)
	}
	return nil
}

// RemoveRowAt removes the i-th row, divider included in the count.
func (b *TableBlock) RemoveRowAt(i int) error {
	n := b.Len()
	if err := checkIndex(i, n); err != nil {
		return err
	}
	switch {
	case n == 1:
		b.s.SetParts(nil)
	case i < n-1:
		b.s.RemoveParts(2*i, 2*i+2)
	default:
		b.s.RemoveParts(2*i-1, 2*i+1)
	}
	return nil
}

// Format pads every column to the display width of its widest cell and
// redraws the divider to match.
func (b *TableBlock) Format() {
	rows := b.Rows()
	var widths []int
	for _, row := range rows {
		for col, cell := range row.Cells() {
			for len(widths) <= col {
				widths = append(widths, 0)
			}
			w := runewidth.StringWidth(cell)
			if row.IsDivider() {
				w = minDividerWidth
			}
			widths[col] = max(widths[col], w)
		}
	}

	for _, row := range rows {
		row.pad(widths)
	}
}

// TableRowBlock wraps one table line: [PIPE, TableCell..., trailing].
type TableRowBlock struct {
	s *mdast.TableRow
}

// CreateTableRow builds a row with a trailing pipe.
func CreateTableRow(cells ...string) (*TableRowBlock, error) {
	line, err := renderRow(cells)
	if err != nil {
		return nil, err
	}
	t, err := parser.ParseTable(line)
	if err != nil {
		return nil, fmt.Errorf("create table row: %w", err)
	}
	row, _ := t.Part(0).(*mdast.TableRow)
	return &TableRowBlock{s: row}, nil
}

func (b *TableRowBlock) Statement() mdast.Statement { return b.s }
func (b *TableRowBlock) String() string             { return b.s.String() }

// Len returns the number of cells.
func (b *TableRowBlock) Len() int { return b.s.Len() - 2 } //nolint:mnd // leading pipe and trailing slot

// Cells returns the text of each cell without its padding.
func (b *TableRowBlock) Cells() []string {
	out := make([]string, 0, b.Len())
	for _, cell := range b.cells() {
		out = append(out, strings.TrimSpace(textOf(cell.Part(cellText))))
	}
	return out
}

// Cell returns the text of the i-th cell.
func (b *TableRowBlock) Cell(i int) (string, error) {
	if err := checkIndex(i, b.Len()); err != nil {
		return "", err
	}
	return b.Cells()[i], nil
}

// IsDivider reports whether every cell is a run of dashes with optional
// alignment colons.
func (b *TableRowBlock) IsDivider() bool {
	return b.Len() > 0 && isDividerCells(b.Cells())
}

// HasTrailingPipe reports whether the last cell is closed by a pipe.
func (b *TableRowBlock) HasTrailingPipe() bool {
	cells := b.cells()
	return len(cells) > 0 && cells[len(cells)-1].Part(cellPipe) != nil
}

// SetCell replaces the text of the i-th cell, keeping its padding.
func (b *TableRowBlock) SetCell(i int, text string) error {
	if err := checkIndex(i, b.Len()); err != nil {
		return err
	}
	rt, err := cellRichText(text)
	if err != nil {
		return err
	}
	b.cells()[i].SetPart(cellText, rt)
	return nil
}

// InsertCell inserts a cell before index i.
func (b *TableRowBlock) InsertCell(i int, text string) error {
	if err := checkIndex(i, b.Len()+1); err != nil {
		return err
	}
	rt, err := cellRichText(text)
	if err != nil {
		return err
	}

	trailing := b.HasTrailingPipe() || b.Len() == 0
	cell := mdast.New(mdast.KindTableCell, space(), rt, space(), newToken(mdast.TokPipe, "|"))
	b.s.InsertParts(1+i, cell)
	b.repipe(trailing)
	return nil
}

// AppendCell adds a cell at the end of the row.
func (b *TableRowBlock) AppendCell(text string) error {
	return b.InsertCell(b.Len(), text)
}

// RemoveCell removes the i-th cell.
func (b *TableRowBlock) RemoveCell(i int) error {
	if err := checkIndex(i, b.Len()); err != nil {
		return err
	}
	trailing := b.HasTrailingPipe()
	b.s.RemoveParts(1+i, 2+i)
	b.repipe(trailing)
	return nil
}

// repipe closes every cell but the last with a pipe and gives the last one a
// pipe only when the row had a trailing pipe. A cell that gains a pipe is
// padded by a space before it.
func (b *TableRowBlock) repipe(trailing bool) {
	cells := b.cells()
	for i, cell := range cells {
		last := i == len(cells)-1
		switch {
		case !last || trailing:
			if cell.Part(cellPipe) == nil {
				cell.SetPart(cellPipe, newToken(mdast.TokPipe, "|"))
				if cell.Part(cellTrail) == nil {
					cell.SetPart(cellTrail, space())
				}
			}
		default:
			cell.SetPart(cellPipe, nil)
			cell.SetPart(cellTrail, nil)
		}
	}
}

func (b *TableRowBlock) cells() []*mdast.TableCell {
	out := make([]*mdast.TableCell, 0, b.Len())
	for _, part := range b.s.Parts() {
		if cell, ok := part.(*mdast.TableCell); ok {
			checkArity(cell, cellArity)
			out = append(out, cell)
		}
	}
	return out
}

// pad rewrites cell padding so that column i is widths[i] wide.
func (b *TableRowBlock) pad(widths []int) {
	divider := b.IsDivider()
	for i, cell := range b.cells() {
		text := strings.TrimSpace(textOf(cell.Part(cellText)))
		if divider {
			rt, err := parser.ParseRichText(strings.Repeat("-", widths[i]))
			if err == nil {
				cell.SetPart(cellText, rt)
			}
			text = strings.Repeat("-", widths[i])
		}

		cell.SetPart(cellLead, space())
		gap := widths[i] - runewidth.StringWidth(text)
		if cell.Part(cellPipe) == nil && gap == 0 {
			cell.SetPart(cellTrail, nil)
			continue
		}
		cell.SetPart(cellTrail, newToken(mdast.TokSpace, strings.Repeat(" ", gap+1)))
	}
}

func cellRichText(text string) (*mdast.RichText, error) {
	if err := validateCell(text); err != nil {
		return nil, err
	}
	rt, err := parser.ParseRichText(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("table cell: %w", err)
	}
	return rt, nil
}

func isDividerCells(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		c := strings.TrimSpace(cell)
		c = strings.TrimPrefix(c, ":")
		c = strings.TrimSuffix(c, ":")
		if c == "" || strings.Trim(c, "-") != "" {
			return false
		}
	}
	return true
}
