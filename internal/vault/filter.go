package vault

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter decides which vault-relative paths are left out of the scan.
type PathFilter interface {
	// Excludes returns true if the entry at relativePath should not be listed.
	Excludes(relativePath string) bool
}

// GlobFilter implements PathFilter with doublestar patterns.
// Matching is case-insensitive and uses forward slashes.
type GlobFilter struct {
	normalizedPatterns []string
}

// NewGlobFilter creates a GlobFilter. Every pattern is validated up front.
// No patterns means nothing is excluded.
func NewGlobFilter(patterns ...string) (*GlobFilter, error) {
	normalized := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		lower := strings.ToLower(pattern)
		if !doublestar.ValidatePattern(lower) {
			return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
		}

		normalized = append(normalized, lower)
	}

	return &GlobFilter{normalizedPatterns: normalized}, nil
}

// Excludes returns true if any pattern matches relativePath.
func (f *GlobFilter) Excludes(relativePath string) bool {
	if len(f.normalizedPatterns) == 0 {
		return false
	}

	normalizedPath := strings.ToLower(relativePath)

	for _, pattern := range f.normalizedPatterns {
		// Patterns were validated, so Match cannot fail
		if matched, _ := doublestar.Match(pattern, normalizedPath); matched {
			return true
		}
	}

	return false
}
