//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "vault-map"

// Default target to run when none is specified
var Default = Build

// Build builds the binary
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-o", binary, "./cmd/vault-map")
}

// Test runs the unit tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.Run("go", "test", "-race", "-coverprofile=coverage.out", "./...")
}

// Integration runs the end-to-end tests against temporary vaults on disk
func Integration() error {
	fmt.Println("Running integration tests...")
	return run(context.Background(), "go", "test", "-tags=integration", "-count=1", "./tests/integration/...")
}

// Lint lints the codebase
func Lint() error {
	fmt.Println("Linting...")
	return run(context.Background(), "golangci-lint", "run", "./...")
}

// Map builds the binary and maps the vault named by VAULT_PATH, then previews INDEX.md
func Map() error {
	mg.Deps(Build)

	vault := os.Getenv("VAULT_PATH")
	if vault == "" {
		return fmt.Errorf("VAULT_PATH is not set")
	}

	return run(context.Background(), "./"+binary, "--preview", vault)
}

// Check runs tests, integration tests and lint
func Check() error {
	mg.SerialDeps(Test, Integration, Lint)
	return nil
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	_ = os.Remove(binary)
	_ = os.Remove("coverage.out")
	return nil
}

// Install installs the binary
func Install() error {
	fmt.Println("Installing...")
	return sh.Run("go", "install", "./cmd/vault-map")
}

func run(c context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(c, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
