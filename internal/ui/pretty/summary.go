package pretty

import (
	"fmt"
	"strings"
)

// CheckResult is the outcome of parsing one file.
type CheckResult struct {
	Path       string
	Tokens     int
	Statements int

	// Err is the parse or round-trip failure, or nil.
	Err error
}

// FormatCheck renders one line per file followed by a totals line.
func FormatCheck(styles *Styles, results []CheckResult) string {
	var builder strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			builder.WriteString(styles.Render(styles.Failure, "FAIL"))
			builder.WriteString(" ")
			builder.WriteString(styles.Render(styles.FilePath, r.Path))
			builder.WriteString(": ")
			builder.WriteString(r.Err.Error())
			builder.WriteByte('\n')
			continue
		}
		builder.WriteString(styles.Render(styles.Success, "ok  "))
		builder.WriteString(" ")
		builder.WriteString(styles.Render(styles.FilePath, r.Path))
		builder.WriteString(" ")
		builder.WriteString(styles.Render(styles.Dim,
			fmt.Sprintf("(%d tokens, %d statements)", r.Tokens, r.Statements)))
		builder.WriteByte('\n')
	}

	totals := fmt.Sprintf("%d %s checked, %d failed", len(results), plural(len(results), "file"), failed)
	if failed > 0 {
		builder.WriteString(styles.Render(styles.Failure, totals))
	} else {
		builder.WriteString(styles.Render(styles.Success, totals))
	}
	builder.WriteByte('\n')
	return builder.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
