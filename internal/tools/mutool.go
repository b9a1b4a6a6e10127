package tools

import (
	"context"
	"strconv"
	"time"

	"pdf-validator/internal/domain"
	"pdf-validator/internal/runner"
)

// DefaultResolution keeps the render cheap; only the presence of the
// output files matters.
const DefaultResolution = 10

// MuTool renders documents with `mutool convert`.
type MuTool struct {
	binary     string
	resolution int
	useSudo    bool
	runner     Runner
	logger     domain.Logger
}

// MuToolOptions configures the renderer.
type MuToolOptions struct {
	Binary     string
	Resolution int
	// UseSudo runs mutool through `sudo -n` for hosts where it needs
	// elevated rights to read the input.
	UseSudo bool
}

// NewMuTool creates a renderer.
func NewMuTool(opts MuToolOptions, r Runner, logger domain.Logger) *MuTool {
	binary := opts.Binary
	if binary == "" {
		binary = "mutool"
	}
	resolution := opts.Resolution
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &MuTool{
		binary:     binary,
		resolution: resolution,
		useSudo:    opts.UseSudo,
		runner:     r,
		logger:     logger,
	}
}

// Command builds the invocation for one render.
func (m *MuTool) Command(path, template string) runner.Command {
	args := []string{
		"convert",
		"-O", "resolution=" + strconv.Itoa(m.resolution),
		"-o", template,
		path,
	}
	if m.useSudo {
		return runner.Command{
			Path:          "sudo",
			Args:          append([]string{"-n", m.binary}, args...),
			CombineOutput: true,
		}
	}
	return runner.Command{Path: m.binary, Args: args, CombineOutput: true}
}

// Render writes one image per page to template. Its output is not parsed.
func (m *MuTool) Render(ctx context.Context, path, template string, allowance time.Duration) {
	result := m.runner.Run(ctx, m.Command(path, template), allowance)
	report(m.logger, "mutool-convert", path, result)
	if result.Started() && result.ExitCode != 0 && m.logger != nil {
		m.logger.Debug("mutool exited with non-zero status", "path", path, "exit_code", result.ExitCode)
	}
}
