// Package tools adapts the external PDF programs (qpdf, mutool) and the
// MuPDF bindings to the checks the validator runs.
package tools

import (
	"context"
	"time"

	"pdf-validator/internal/domain"
	"pdf-validator/internal/metrics"
	"pdf-validator/internal/runner"
)

// Runner executes one bounded command.
type Runner interface {
	Run(ctx context.Context, cmd runner.Command, allowance time.Duration) *runner.Result
}

// report logs and counts the abnormal outcomes of a check. A process that
// failed to start yields no output, which callers read as a document
// failure; it is logged here so the two cases can still be told apart.
func report(logger domain.Logger, tool, path string, result *runner.Result) {
	metrics.RecordCheck(tool, result)
	if logger == nil {
		return
	}
	switch {
	case !result.Started():
		logger.Warn("External check could not run; treating as empty output", "tool", tool, "path", path, "error", result.Err)
	case result.TimedOut:
		logger.Warn("External check ran out of time", "tool", tool, "path", path, "duration", result.Duration)
	case result.Cancelled:
		logger.Warn("External check cancelled by caller", "tool", tool, "path", path, "duration", result.Duration)
	}
}

func lastLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
