package mdast

import "fmt"

// Position represents a 1-based line and column in a document.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Start returns the position of the first token of n, or an invalid position
// when n has no positioned tokens (synthesized nodes).
func Start(n Node) Position {
	for _, t := range Tokens(n) {
		if t.Position().IsValid() {
			return t.Position()
		}
	}
	return Position{}
}
