// Package span provides query and bulk-edit facades over flat collections of
// blocks gathered from a CST.
//
// A Span keeps a list of blocks and the root they were gathered from.
// Removing through the span detaches the block from its parent statement and
// from the list in one step, so the two never disagree.
package span

import (
	"fmt"
	"slices"

	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// QueryError reports a query that did not match exactly one block.
type QueryError struct {
	Query string
	Count int
}

func (e *QueryError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("no block matches %s", e.Query)
	}
	return fmt.Sprintf("%d blocks match %s, want exactly one", e.Count, e.Query)
}

// Span is a flat collection of blocks under a root statement.
type Span[B block.Block] struct {
	root   mdast.Statement
	blocks []B
}

// New returns a span over blocks. Every block must live under root for
// RemoveBlock to succeed.
func New[B block.Block](root mdast.Statement, blocks []B) *Span[B] {
	return &Span[B]{root: root, blocks: slices.Clone(blocks)}
}

// Root returns the statement the blocks were gathered from.
func (s *Span[B]) Root() mdast.Statement { return s.root }

// Len returns the number of blocks.
func (s *Span[B]) Len() int { return len(s.blocks) }

// Blocks returns a copy of the blocks in span order.
func (s *Span[B]) Blocks() []B { return slices.Clone(s.blocks) }

// Find returns the first block matching p.
func (s *Span[B]) Find(p Predicate) (B, bool) {
	for _, b := range s.blocks {
		if p.Match(b) {
			return b, true
		}
	}
	var zero B
	return zero, false
}

// FindAll returns every block matching p.
func (s *Span[B]) FindAll(p Predicate) []B {
	var out []B
	for _, b := range s.blocks {
		if p.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Has reports whether any block matches p.
func (s *Span[B]) Has(p Predicate) bool {
	_, ok := s.Find(p)
	return ok
}

// Single returns the only block matching p.
func (s *Span[B]) Single(p Predicate) (B, error) {
	matches := s.FindAll(p)
	if len(matches) != 1 {
		var zero B
		return zero, &QueryError{Query: p.String(), Count: len(matches)}
	}
	return matches[0], nil
}

// Remove detaches every block matching p and returns how many were removed.
// Matches already detached with an earlier match, such as a nested list
// item, are dropped from the list and counted.
func (s *Span[B]) Remove(p Predicate) (int, error) {
	removed := 0
	for _, b := range s.FindAll(p) {
		if !mdast.Contains(s.root, b.Statement()) {
			s.RemoveBlockFromSpan(b)
			removed++
			continue
		}
		if err := s.RemoveBlock(b); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// RemoveSingle detaches the only block matching p.
func (s *Span[B]) RemoveSingle(p Predicate) error {
	b, err := s.Single(p)
	if err != nil {
		return err
	}
	return s.RemoveBlock(b)
}

// RemoveBlockFromSpan drops b from the list without touching the tree.
func (s *Span[B]) RemoveBlockFromSpan(b B) bool {
	i := s.indexOf(b)
	if i < 0 {
		return false
	}
	s.blocks = slices.Delete(s.blocks, i, i+1)
	return true
}

// RemoveBlock detaches b from the tree and from the list.
func (s *Span[B]) RemoveBlock(b B) error {
	if s.indexOf(b) < 0 {
		return fmt.Errorf("%w: %s is not in the span", block.ErrNotAttached, b.Statement().Kind())
	}
	if err := block.Remove(s.root, b); err != nil {
		return fmt.Errorf("remove %s: %w", b.Statement().Kind(), err)
	}
	s.RemoveBlockFromSpan(b)
	return nil
}

func (s *Span[B]) indexOf(b B) int {
	target := b.Statement()
	return slices.IndexFunc(s.blocks, func(other B) bool {
		return other.Statement() == target
	})
}
