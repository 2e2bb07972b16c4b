package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/joe/vault-map/internal/mapper"
	vaulterrors "github.com/joe/vault-map/pkg/errors"
)

// RenderSummary formats a completed run as a boxed summary.
func RenderSummary(report *mapper.Report, elapsed time.Duration) string {
	var b strings.Builder

	b.WriteString(RenderTitle("Vault mapped"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", RenderLabel("Vault:"), report.Root)
	fmt.Fprintf(&b, "%s %d\n", RenderLabel("Directories:"), report.Directories)
	fmt.Fprintf(&b, "%s %d\n", RenderLabel("Files:"), report.Files)
	fmt.Fprintf(&b, "%s %d\n", RenderLabel("Artifacts:"), len(report.Artifacts))
	fmt.Fprintf(&b, "%s %s\n", RenderLabel("Generated:"), report.Generated)
	fmt.Fprintf(&b, "%s %s", RenderLabel("Time elapsed:"), FormatDuration(elapsed))

	if len(report.Degraded) > 0 {
		b.WriteString("\n\n")
		b.WriteString(RenderWarning(fmt.Sprintf("%d file(s) listed with placeholders:", len(report.Degraded))))

		for i, path := range report.Degraded {
			if i == MaxDegradedShown {
				fmt.Fprintf(&b, "\n  %s", RenderDim(fmt.Sprintf("... and %d more", len(report.Degraded)-i)))

				break
			}

			fmt.Fprintf(&b, "\n  %s", path)
		}
	}

	return RenderBox(b.String())
}

// RenderFailure formats a fatal error together with its suggestions.
func RenderFailure(err error) string {
	enriched := vaulterrors.NewEnricher().Enrich(err, "")

	var b strings.Builder

	b.WriteString(RenderError("Error: " + err.Error()))

	if suggestions := vaulterrors.FormatSuggestions(enriched); suggestions != "" {
		b.WriteString("\n")
		b.WriteString(suggestions)
	}

	return b.String()
}

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}

	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}
