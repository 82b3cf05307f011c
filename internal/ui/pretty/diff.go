package pretty

import (
	"strings"

	"github.com/yaklabco/mdcst/pkg/fix"
)

// noEOLMarker follows a diff line that lacks a trailing newline.
const noEOLMarker = `\ No newline at end of file`

// FormatDiff renders an edit preview. Without color the output equals
// d.FullString().
func FormatDiff(styles *Styles, d *fix.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	path := strings.TrimPrefix(d.Path, "/")
	for _, header := range []string{d.GitHeader(), "--- a/" + path, "+++ b/" + path} {
		builder.WriteString(styles.Render(styles.DiffHeader, header))
		builder.WriteByte('\n')
	}

	for _, hunk := range d.Hunks {
		builder.WriteString(styles.Render(styles.DiffHunk, hunk.Header()))
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			style := styles.DiffContext
			switch line.Kind {
			case fix.LineAdd:
				style = styles.DiffAdd
			case fix.LineRemove:
				style = styles.DiffRemove
			}
			builder.WriteString(styles.Render(style, line.Kind.Prefix()+line.Content))
			builder.WriteByte('\n')
			if line.NoEOL {
				builder.WriteString(styles.Render(styles.Dim, noEOLMarker))
				builder.WriteByte('\n')
			}
		}
	}
	return builder.String()
}
