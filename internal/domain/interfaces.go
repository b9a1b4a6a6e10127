package domain

import (
	"context"
	"io"
	"time"
)

// ValidationService validates documents from every entry point: local
// paths (the validate CLI), HTTP uploads and Supabase Storage objects.
type ValidationService interface {
	// ValidatePath validates a file already on local disk. It never fails;
	// a missing file is a file_not_found report.
	ValidatePath(path string, maxPages int) *ValidationReport
	ValidateUpload(ctx context.Context, file io.Reader, filename string, maxPages int) (*ValidationReport, error)
	ValidateStored(ctx context.Context, bucket, objectPath string, maxPages int) (*ValidationReport, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetValidationTimeout() time.Duration
	GetMaxPages() int
	GetArtifactDir() string
	GetArtifactExt() string
	GetQPDFPath() string
	GetMuToolPath() string
	GetRenderResolution() int
	GetRenderUseSudo() bool
	GetKillGrace() time.Duration
	GetProcessNiceness() int
	GetPageProber() string
	GetMaxUploadSize() int64
	GetStatsInterval() time.Duration
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetCORSAllowedOrigins() []string
}

// IntegrityChecker runs the structural check of a document and returns its
// diagnostic lines.
type IntegrityChecker interface {
	Check(ctx context.Context, path string, allowance time.Duration) []string
}

// PageProber returns the raw page-count output for a document; anything
// that is not a positive integer means the count is unknown.
type PageProber interface {
	Probe(ctx context.Context, path string, allowance time.Duration) string
}

// Renderer renders every page of a document to template, where %d is
// replaced by the 1-based page number.
type Renderer interface {
	Render(ctx context.Context, path, template string, allowance time.Duration)
}
