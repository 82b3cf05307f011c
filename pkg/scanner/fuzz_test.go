package scanner_test

import (
	"testing"

	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/scanner"
)

// FuzzScanLossless fuzzes the scanner with random input.
func FuzzScanLossless(f *testing.F) {
	for _, fixture := range roundTripFixtures {
		f.Add(fixture.content)
	}
	f.Add("---\n---")
	f.Add("```\n```")
	f.Add("\\")
	f.Add("- [")
	f.Add("<")

	f.Fuzz(func(t *testing.T, source string) {
		// Scan should never panic.
		tokens := scanner.Scan(source)

		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != mdast.TokEOF {
			t.Fatal("expected a trailing EOF token")
		}

		if !mdast.ValidateTokens(tokens, source) {
			t.Errorf("tokens do not reproduce input of length %d", len(source))
		}

		for i, tok := range tokens[:len(tokens)-1] {
			if tok.IsEmpty() {
				t.Errorf("token %d (%s) is empty", i, tok.Kind)
			}
		}
	})
}

func FuzzScanFrontmatter(f *testing.F) {
	f.Add("foo: bar")
	f.Add("tags:\n- a\n- b\n")
	f.Add(" : \n-\n")

	f.Fuzz(func(t *testing.T, source string) {
		if got := mdast.JoinTokens(scanner.ScanFrontmatter(source)); got != source {
			t.Errorf("frontmatter tokens = %q, want %q", got, source)
		}
		if got := mdast.JoinTokens(scanner.ScanCodeBlock(source)); got != source {
			t.Errorf("code block tokens = %q, want %q", got, source)
		}
	})
}
