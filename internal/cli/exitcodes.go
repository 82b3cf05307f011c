package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/mdcst/internal/configloader"
	"github.com/yaklabco/mdcst/pkg/fsutil"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// Exit codes for mdcst.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but its check or lookup failed.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitParseError indicates a document that does not parse.
	ExitParseError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrCheckFailed is returned by check when any file fails. The per-file
	// reasons have already been printed.
	ErrCheckFailed = errors.New("check failed")

	// ErrKeyNotFound is returned when a lookup or removal matches nothing.
	ErrKeyNotFound = errors.New("key not found")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid arguments and flags.
	ErrUsage = errors.New("invalid usage")
)

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrUsage, fmt.Errorf(format, args...))
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		parseErr  *parser.ParseError
		configErr *configloader.ValidationError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &configErr):
		return ExitConfigError
	case errors.As(err, &parseErr):
		return ExitParseError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitFailure
	}
}
