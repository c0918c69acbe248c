package smoke

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/matchday/pkg/logger"
)

// SetupLogging initialises the process logger for a smoke run.
func SetupLogging(format string, verbose bool) (logger.Logger, error) {
	if err := logger.Init(logger.WithFormat(format), logger.WithWriter(os.Stdout)); err != nil {
		return nil, err
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return logger.Named("smoke"), nil
}

// PrintReport writes a human readable summary of r to w.
func PrintReport(w io.Writer, r *Report, runErr error) {
	var b strings.Builder
	b.WriteString("League smoke run\n================\n")
	for _, s := range r.Steps {
		b.WriteString("  ok   " + s + "\n")
	}
	if runErr != nil {
		b.WriteString("  FAIL " + runErr.Error() + "\n")
	}
	b.WriteString("teams: ")
	b.WriteString(strconv.Itoa(r.Teams))
	b.WriteString("  duration: " + r.Duration.String() + "\n")
	_, _ = io.WriteString(w, b.String())
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`League Smoke Tool
=================

Walks a running league service through standings, selection, score edits
and team detail edits, verifying the table after every change. The service
is left as it was found.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -timeout duration
        HTTP request timeout (default 10s)
  -max-score int
        Inclusive score bound the service enforces (default 7)
  -log-format string
        text or json (default "text")
  -verbose
        Log every request
  -help
        Show this help message
`)
}
