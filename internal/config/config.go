// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/vault-map/pkg/filesystem"
)

// Exported variables.
var (
	ErrConflictingVerbosity = errors.New("--verbose and --quiet cannot be combined")
	ErrMissingVault         = errors.New("vault path is required (argument, --vault or VAULT_PATH)")
)

// Verbosity selects how much the run logs.
type Verbosity int

// Exported constants.
const (
	VerbosityNormal Verbosity = iota
	VerbosityQuiet
	VerbosityVerbose
)

// String returns the string representation of Verbosity
func (v Verbosity) String() string {
	switch v {
	case VerbosityNormal:
		return "normal"
	case VerbosityQuiet:
		return "quiet"
	case VerbosityVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// Config holds the application configuration. It is read once at start and
// not modified after PostProcessConfig returns.
type Config struct {
	Vault     string   `arg:"positional" placeholder:"VAULT" help:"Vault directory or sftp://user@host[:port]/path"`
	VaultPath string   `arg:"-r,--vault,env:VAULT_PATH" placeholder:"VAULT" help:"Vault location, when not given as an argument"`
	Exclude   []string `arg:"-x,--exclude,separate" placeholder:"GLOB" help:"Leave out vault-relative paths matching this pattern (repeatable, e.g. '.obsidian' or '**/*.tmp')"`
	Preview   bool     `arg:"-p,--preview" help:"Render the generated INDEX.md in the terminal"`
	LogFile   string   `arg:"--log-file" placeholder:"PATH" help:"Also write the log to this file"`
	Verbose   bool     `arg:"-v,--verbose" help:"Log every scanned file"`
	Quiet     bool     `arg:"-q,--quiet" help:"Only log warnings and errors"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Map a notes vault: writes a README.md listing into every directory, " +
		"plus INDEX.md and vault_structure.json at the root"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "vault-map 1.0.0"
}

// Location returns the vault location to scan.
func (cfg *Config) Location() string {
	if cfg.Vault != "" {
		return cfg.Vault
	}

	return cfg.VaultPath
}

// Verbosity returns the requested log verbosity.
func (cfg *Config) Verbosity() Verbosity {
	switch {
	case cfg.Verbose:
		return VerbosityVerbose
	case cfg.Quiet:
		return VerbosityQuiet
	default:
		return VerbosityNormal
	}
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// ParseArgs parses args (without the program name) into a validated Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: "vault-map"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	if err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.Verbose && cfg.Quiet {
		return nil, ErrConflictingVerbosity
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(strings.ToLower(pattern)) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	if err := cfg.ValidateVault(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateVault checks the vault location. Local vaults must be existing
// directories and are made absolute; SFTP URLs are only checked for form here.
func (cfg *Config) ValidateVault() error {
	location := cfg.Location()
	if location == "" {
		return ErrMissingVault
	}

	parsed, err := filesystem.ParsePath(location)
	if err != nil {
		return fmt.Errorf("invalid vault URL: %w", err)
	}

	if parsed.IsRemote {
		return nil
	}

	info, err := os.Stat(location)
	if os.IsNotExist(err) {
		return fmt.Errorf("vault path does not exist: %s", location)
	}
	if err != nil {
		return fmt.Errorf("cannot access vault path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path is not a directory: %s", location)
	}

	absolute, err := filepath.Abs(location)
	if err != nil {
		return fmt.Errorf("failed to resolve vault path: %w", err)
	}

	cfg.Vault = absolute

	return nil
}
