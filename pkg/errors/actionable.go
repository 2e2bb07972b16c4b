// Package errors classifies what goes wrong while mapping a vault.
//
// Per-file failures during a scan are recoverable: Classify wraps them in an
// *Error whose Kind (NotFound, PermissionDenied, ParseError or Other) decides
// the placeholder the listing shows for that file:
//
//	meta, err := inspector.Inspect(path)
//	if errors.KindOf(err) == errors.KindNotFound {
//	    // file vanished mid-scan
//	}
//
// Failures that stop the run (an unreachable sftp vault, a listing that cannot
// be written) go through an Enricher, which attaches a category, the affected
// location and suggestions for the user:
//
//	actionable := errors.NewEnricher().Enrich(err, "")
//	fmt.Println(actionable.Error())
//	fmt.Println(errors.FormatSuggestions(actionable))
package errors

import (
	"errors"
	"strings"
)

// Exported constants.
const (
	CategoryConnection ErrorCategory = "connection"
	CategoryDiskSpace  ErrorCategory = "disk_space"
	CategoryParse      ErrorCategory = "parse"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryUnknown    ErrorCategory = "unknown"
	CategoryWrite      ErrorCategory = "write"
)

// ActionableError is a fatal error annotated for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions renders the suggestions of the first ActionableError in
// err's chain as a bulleted list, or "" when there is none.
func FormatSuggestions(err error) string {
	var actionable ActionableError
	if !errors.As(err, &actionable) {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

// AffectedPath returns the vault file, listing or sftp:// address involved.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}
