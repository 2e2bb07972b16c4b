package errors

import (
	"fmt"
	"strings"
)

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{byCategory: vaultSuggestions}
}

// unexported constants.
const (
	sftpScheme = "sftp://"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // Read-only lookup table
	vaultSuggestions = map[ErrorCategory]func(location string) []string{
		CategoryConnection: connectionSuggestions,
		CategoryDiskSpace:  diskSpaceSuggestions,
		CategoryParse:      parseSuggestions,
		CategoryPath:       pathSuggestions,
		CategoryPermission: permissionSuggestions,
		CategoryUnknown:    unknownSuggestions,
		CategoryWrite:      writeSuggestions,
	}
)

type suggestionGenerator struct {
	byCategory map[ErrorCategory]func(location string) []string
}

// Generate returns suggestions for category. location is the vault file,
// listing or sftp:// address involved, or empty when unknown. Unrecognised
// categories get the generic suggestions.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	suggest, ok := g.byCategory[category]
	if !ok {
		suggest = unknownSuggestions
	}

	return suggest(affectedPath)
}

func connectionSuggestions(location string) []string {
	host := "the SFTP host"
	if remote, ok := strings.CutPrefix(location, sftpScheme); ok && remote != "" {
		host = remote
	}

	return []string{
		"Check that " + host + " is reachable and the port is correct",
		"Make sure your key is loaded in ssh-agent or present in ~/.ssh",
		"Confirm the host key is listed in ~/.ssh/known_hosts",
	}
}

func diskSpaceSuggestions(location string) []string {
	suggestions := []string{
		"Free up space on the device holding the vault",
		"Check available space with 'df -h'",
	}

	if location != "" {
		suggestions = append(suggestions, "Verify disk usage for the filesystem containing "+location)
	}

	return suggestions
}

func parseSuggestions(location string) []string {
	suggestions := []string{
		"The file content could not be parsed; check that it is well formed",
	}

	if location != "" {
		suggestions = append(suggestions, "Open "+location+" in its native editor to look for syntax errors")
	}

	return suggestions
}

func pathSuggestions(location string) []string {
	if location == "" {
		return []string{
			"Verify the vault path exists and is spelled correctly",
			"Ensure all parent directories exist",
		}
	}

	return []string{
		"Verify the vault path exists and is spelled correctly",
		"Check if the path exists: " + location,
		"Ensure all parent directories exist for " + location,
	}
}

func permissionSuggestions(location string) []string {
	check := "Check permissions with 'ls -la' on the affected path"
	if location != "" {
		check = fmt.Sprintf("Check permissions with 'ls -la %s'", location)
	}

	return []string{
		"Ensure you can read every file in the vault and write to every directory",
		check,
		"Exclude unreadable folders with --exclude",
	}
}

func unknownSuggestions(location string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify file and directory permissions",
	}

	if location != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+location)
	}

	return suggestions
}

func writeSuggestions(location string) []string {
	suggestions := []string{
		"Check that the vault is not mounted read-only",
		"Try the run again; this may be a transient I/O error",
	}

	if location != "" {
		suggestions = append(suggestions, "Verify that "+location+" is writable")
	}

	return suggestions
}
