package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher turns a fatal vault-map error into an ActionableError.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// vaultPathPattern pulls the affected location out of an error message. The
// first capture group is the location; prefix is prepended to it.
type vaultPathPattern struct {
	re     *regexp.Regexp
	prefix string
}

// unexported variables.
var (
	// Tried in order; the first match wins.
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances
	vaultPathPatterns = []vaultPathPattern{
		// "vault path does not exist: /home/joe/Vault"
		{re: regexp.MustCompile(`vault path (?:does not exist|is not a directory): (.+)$`)},
		// "failed to connect to joe@nas:22: ..."
		{re: regexp.MustCompile(`failed to connect to (\S+@\S+:\d+):`), prefix: "sftp://"},
		// "failed to open remote file /vault/INDEX.md: ..."
		{re: regexp.MustCompile(`failed to \w+ remote file (/[^\s:]+):`)},
		// listings and artifacts: "failed to create /vault/README.md: ..."
		{re: regexp.MustCompile(`failed to \w+ ([./][^\s:]+):`)},
		// bare *fs.PathError: "open /vault/notes.md: permission denied"
		{re: regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`)},
		// local vaults on Windows drives
		{re: regexp.MustCompile(`\b\w+\s+([A-Za-z]:[\\/][^\s:]+):`)},
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich attaches a category and suggestions to err. An ActionableError is
// returned unchanged. The affected path comes from the caller, then a typed
// *Error, then the message itself. When the message matches no known pattern
// the category falls back to the Kind of the wrapped error.
func (e *enricher) Enrich(err error, affectedPath string) error {
	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	var typed *Error
	if errors.As(err, &typed) && affectedPath == "" {
		affectedPath = typed.Path
	}

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	category := e.matcher.Match(errMsg)
	if category == CategoryUnknown {
		category = KindOf(err).Category()
	}

	return NewActionableError(
		errMsg,
		category,
		e.generator.Generate(category, affectedPath),
		affectedPath,
	)
}

// extractPath finds the vault file, listing or remote location named in
// errorMsg. Returns empty string if none is found.
func extractPath(errorMsg string) string {
	for _, pattern := range vaultPathPatterns {
		matches := pattern.re.FindStringSubmatch(errorMsg)
		if len(matches) < 2 {
			continue
		}

		if location := strings.TrimSpace(matches[1]); location != "" {
			return pattern.prefix + location
		}
	}

	return ""
}
