package errors

import (
	"errors"
	"io/fs"
)

// Exported constants.
const (
	KindOther Kind = iota
	KindNotFound
	KindPermissionDenied
	KindParse
)

// Kind classifies why a piece of vault content could not be read.
type Kind int

// Category maps the kind onto the matching ErrorCategory.
func (k Kind) Category() ErrorCategory {
	switch k {
	case KindNotFound:
		return CategoryPath
	case KindPermissionDenied:
		return CategoryPermission
	case KindParse:
		return CategoryParse
	case KindOther:
		return CategoryUnknown
	default:
		return CategoryUnknown
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindPermissionDenied:
		return "permission-denied"
	case KindParse:
		return "parse-error"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Error is a classified failure to stat, read or parse a path in the vault.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Classify wraps err in an *Error whose kind is derived from the error chain.
// fs.ErrNotExist and fs.ErrPermission are recognised directly (pkg/sftp maps its
// status codes onto them); anything else falls back to message patterns.
// Returns nil for a nil error.
func Classify(path string, err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{Kind: kindFromChain(err), Path: path, Err: err}
}

// KindOf returns the kind of a classified error, or classifies it on the fly.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}

	return kindFromChain(err)
}

// NewParseError wraps a content parsing failure for path.
func NewParseError(path string, err error) error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}

func kindFromChain(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	}

	switch NewPatternMatcher().Match(err.Error()) {
	case CategoryPath:
		return KindNotFound
	case CategoryPermission:
		return KindPermissionDenied
	case CategoryParse:
		return KindParse
	default:
		return KindOther
	}
}
