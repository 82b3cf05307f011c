//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"f":  Test.Fuzz,
	"l":  Lint.Default,
	"c":  Check,
	"bc": Bench.Check,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// Build compiles bin/mdcst with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir("bin/mdcst", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/mdcst is up to date")
		return nil
	}
	fmt.Println("Building mdcst...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/mdcst", "./cmd/mdcst")
}

// Check runs lint and the test suite, then round-trips the repository's
// own Markdown through the built binary.
func Check() {
	st.SerialDeps(Lint.Default, Test.Default, Bench.Check)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs all tests through gotestsum with the race detector.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"./...",
		"-coverprofile=coverage.out",
	)
}

// Fuzz runs the lossless scanning fuzzers for MDCST_FUZZTIME each
// (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("MDCST_FUZZTIME"), "30s")
	for _, name := range []string{"FuzzScanLossless", "FuzzScanFrontmatter"} {
		fmt.Printf("Fuzzing %s for %s...\n", name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+name+"$", "-fuzztime="+fuzzTime, "./pkg/scanner"); err != nil {
			return err
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Scan runs the scanner benchmarks.
func (Bench) Scan() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/scanner")
}

// Check times "mdcst check" over a directory of notes.
// The directory comes from MDCST_BENCH_DIR and defaults to the repository.
func (Bench) Check() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("MDCST_BENCH_DIR"), ".")
	fmt.Printf("Checking notes under %s...\n", dir)
	start := time.Now()
	if err := sh.RunV("bin/mdcst", "check", dir); err != nil {
		return err
	}
	fmt.Printf("✓ Checked in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags sets main.version, main.commit and main.date.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
