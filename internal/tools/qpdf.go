package tools

import (
	"context"
	"strings"
	"time"

	"pdf-validator/internal/domain"
	"pdf-validator/internal/runner"
)

// QPDF runs structural checks and page counts through the qpdf binary.
type QPDF struct {
	binary string
	runner Runner
	logger domain.Logger
}

// NewQPDF creates a qpdf adapter. An empty binary defaults to "qpdf" on PATH.
func NewQPDF(binary string, r Runner, logger domain.Logger) *QPDF {
	if binary == "" {
		binary = "qpdf"
	}
	return &QPDF{binary: binary, runner: r, logger: logger}
}

// Check runs `qpdf --check` and returns stdout and stderr lines in order.
func (q *QPDF) Check(ctx context.Context, path string, allowance time.Duration) []string {
	result := q.runner.Run(ctx, runner.Command{
		Path:          q.binary,
		Args:          []string{"--check", path},
		CombineOutput: true,
	}, allowance)
	report(q.logger, "qpdf-check", path, result)
	return result.Lines()
}

// Probe runs `qpdf --show-npages` and returns the last line it printed.
func (q *QPDF) Probe(ctx context.Context, path string, allowance time.Duration) string {
	result := q.runner.Run(ctx, runner.Command{
		Path: q.binary,
		Args: []string{"--show-npages", path},
	}, allowance)
	report(q.logger, "qpdf-npages", path, result)
	return strings.TrimSpace(lastLine(result.Lines()))
}
