// Package fix renders the difference between a source file and its edited
// form as a unified diff, for previewing edits before they are written.
//
// Lines compare with their line terminator, so a dropped final newline or a
// rewritten CRLF shows up in the diff instead of being hidden.
package fix

import (
	"bytes"
	"fmt"
	"strings"
)

// Diff is a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the
	// original, or the line before it when OriginalCount is 0.
	OriginalStart int
	OriginalCount int

	// ModifiedStart is OriginalStart for the modified content.
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Line is a single line of a hunk.
type Line struct {
	Kind LineKind

	// Content is the line without its prefix and without the final "\n".
	Content string

	// NoEOL is set on the last line of content that does not end in "\n".
	NoEOL bool
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// Prefix returns the unified diff prefix of the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// noEOLMarker follows a line that lacks a trailing newline.
const noEOLMarker = `\ No newline at end of file`

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if the two are byte-identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	ops := diffOps(splitLines(original), splitLines(modified))
	diff := &Diff{Path: path, Hunks: groupIntoHunks(ops)}
	for _, op := range ops {
		switch op.Kind {
		case LineAdd:
			diff.Additions++
		case LineRemove:
			diff.Deletions++
		}
	}
	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)
	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
			if line.NoEOL {
				builder.WriteString(noEOLMarker)
				builder.WriteByte('\n')
			}
		}
	}
	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// splitLines splits content after every "\n". The last line carries NoEOL
// when content does not end in a newline.
func splitLines(content []byte) []Line {
	var lines []Line
	for len(content) > 0 {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, Line{Content: string(content), NoEOL: true})
			break
		}
		lines = append(lines, Line{Content: string(content[:i])})
		content = content[i+1:]
	}
	return lines
}

// diffOps aligns orig and mod on their longest common subsequence and
// returns the edit script, removals before additions within a change.
func diffOps(orig, mod []Line) []Line {
	rows, cols := len(orig), len(mod)
	dp := make([][]int, rows+1)
	for i := range dp {
		dp[i] = make([]int, cols+1)
	}
	for row := rows - 1; row >= 0; row-- {
		for col := cols - 1; col >= 0; col-- {
			if orig[row] == mod[col] {
				dp[row][col] = dp[row+1][col+1] + 1
			} else {
				dp[row][col] = max(dp[row+1][col], dp[row][col+1])
			}
		}
	}

	ops := make([]Line, 0, rows+cols)
	row, col := 0, 0
	for row < rows || col < cols {
		switch {
		case row < rows && col < cols && orig[row] == mod[col]:
			ops = append(ops, Line{Kind: LineContext, Content: orig[row].Content, NoEOL: orig[row].NoEOL})
			row++
			col++
		case col >= cols || (row < rows && dp[row+1][col] >= dp[row][col+1]):
			ops = append(ops, Line{Kind: LineRemove, Content: orig[row].Content, NoEOL: orig[row].NoEOL})
			row++
		default:
			ops = append(ops, Line{Kind: LineAdd, Content: mod[col].Content, NoEOL: mod[col].NoEOL})
			col++
		}
	}
	return ops
}

// groupIntoHunks cuts the edit script into hunks. Changes separated by no
// more than twice the context share a hunk.
func groupIntoHunks(ops []Line) []Hunk {
	type changeRange struct{ start, end int }

	var ranges []changeRange
	for i := 0; i < len(ops); {
		if ops[i].Kind == LineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].Kind != LineContext {
			i++
		}
		if n := len(ranges); n > 0 && start-ranges[n-1].end <= contextLines*2 {
			ranges[n-1].end = i
			continue
		}
		ranges = append(ranges, changeRange{start, i})
	}

	hunks := make([]Hunk, 0, len(ranges))
	for _, r := range ranges {
		hunks = append(hunks, buildHunk(ops, r.start, r.end))
	}
	return hunks
}

// buildHunk builds the hunk for the changes in ops[changeStart:changeEnd].
func buildHunk(ops []Line, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != LineAdd {
			hunk.OriginalStart++
		}
		if op.Kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	hunk.Lines = append(hunk.Lines, ops[start:end]...)
	for _, op := range hunk.Lines {
		if op.Kind != LineAdd {
			hunk.OriginalCount++
		}
		if op.Kind != LineRemove {
			hunk.ModifiedCount++
		}
	}

	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}
	return hunk
}
