// Package main is the entry point for the vault-map application.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/joe/vault-map/internal/config"
	"github.com/joe/vault-map/internal/logging"
	"github.com/joe/vault-map/internal/mapper"
	"github.com/joe/vault-map/internal/ui"
	"github.com/joe/vault-map/internal/vault"
	"github.com/joe/vault-map/pkg/filesystem"
)

func main() {
	// VAULT_PATH may come from a .env file next to the vault
	_ = godotenv.Load()

	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderFailure(err))
		os.Exit(1)
	}

	logger, closeLog, err := logging.ForConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderFailure(err))
		os.Exit(1)
	}

	code := run(cfg, logger, os.Stdout, ui.Width(os.Stdout))

	_ = closeLog()

	os.Exit(code)
}

// run maps the configured vault and returns the process exit code.
func run(cfg *config.Config, logger *log.Logger, out io.Writer, width int) int {
	started := time.Now()

	fsys, root, closer, err := filesystem.CreateFileSystem(cfg.Location())
	if err != nil {
		fmt.Fprintln(out, ui.RenderFailure(err))

		return 1
	}
	defer closer()

	m := mapper.New(fsys, root, logger)

	if len(cfg.Exclude) > 0 {
		filter, err := vault.NewGlobFilter(cfg.Exclude...)
		if err != nil {
			fmt.Fprintln(out, ui.RenderFailure(err))

			return 1
		}

		m.Filter = filter
	}

	m.SetEventEmitter(ui.NewProgress(out))

	report, err := m.Run()
	if err != nil {
		logger.Error("Run failed", "err", err)
		fmt.Fprintln(out, ui.RenderFailure(err))

		return 1
	}

	fmt.Fprintln(out, ui.RenderSummary(report, time.Since(started)))

	if cfg.Preview {
		rendered, err := ui.Preview(fsys, report.IndexPath, width)
		if err != nil {
			logger.Warn("Could not preview index", "err", err)
		} else {
			fmt.Fprint(out, rendered)
		}
	}

	return 0
}
