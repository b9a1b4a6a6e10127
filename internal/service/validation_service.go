package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"pdf-validator/internal/budget"
	"pdf-validator/internal/domain"
	"pdf-validator/internal/metrics"
	"pdf-validator/internal/validator"

	"github.com/google/uuid"
)

const statsInterval = "stats"

// ValidationOptions configures a validation service
type ValidationOptions struct {
	Timeout       time.Duration
	MaxPages      int
	SpoolDir      string
	MaxUploadSize int64
	StatsInterval time.Duration
}

type validationStats struct {
	total   atomic.Int64
	valid   atomic.Int64
	invalid atomic.Int64
}

type validationService struct {
	toolchain validator.Toolchain
	opts      ValidationOptions
	source    domain.DocumentSource
	logger    domain.Logger
	intervals *budget.Intervals
	stats     validationStats
}

// NewValidationService creates a validation service. source may be nil, in
// which case stored documents cannot be validated.
func NewValidationService(
	toolchain validator.Toolchain,
	opts ValidationOptions,
	source domain.DocumentSource,
	logger domain.Logger,
) domain.ValidationService {
	if opts.SpoolDir == "" {
		opts.SpoolDir = os.TempDir()
	}
	if toolchain.Logger == nil {
		toolchain.Logger = logger
	}

	clock := toolchain.Clock
	if clock == nil {
		clock = budget.SystemClock()
	}
	intervals := budget.NewIntervals(clock)
	if opts.StatsInterval > 0 {
		intervals.Register(statsInterval, opts.StatsInterval)
	}

	return &validationService{
		toolchain: toolchain,
		opts:      opts,
		source:    source,
		logger:    logger,
		intervals: intervals,
	}
}

// ValidatePath validates a document already on local disk
func (s *validationService) ValidatePath(path string, maxPages int) *domain.ValidationReport {
	return s.validate(context.Background(), path, filepath.Base(path), maxPages)
}

// ValidateUpload spools an uploaded document to disk and validates it
func (s *validationService) ValidateUpload(ctx context.Context, file io.Reader, filename string, maxPages int) (*domain.ValidationReport, error) {
	spool, err := s.spool(file)
	if err != nil {
		return nil, err
	}
	defer s.removeSpool(spool)

	return s.validate(ctx, spool, filename, maxPages), nil
}

// ValidateStored downloads a document from storage and validates it
func (s *validationService) ValidateStored(ctx context.Context, bucket, objectPath string, maxPages int) (*domain.ValidationReport, error) {
	if s.source == nil {
		return nil, domain.ErrStorageUnavailable
	}
	if bucket == "" {
		return nil, &domain.ValidationError{Field: "bucket", Message: "bucket is required"}
	}
	if objectPath == "" {
		return nil, &domain.ValidationError{Field: "path", Message: "path is required"}
	}

	data, err := s.source.Fetch(ctx, bucket, objectPath)
	if err != nil {
		return nil, err
	}

	return s.ValidateUpload(ctx, bytes.NewReader(data), filepath.Base(objectPath), maxPages)
}

func (s *validationService) validate(ctx context.Context, path, filename string, maxPages int) *domain.ValidationReport {
	if maxPages <= 0 {
		maxPages = s.opts.MaxPages
	}

	v := validator.NewContext(ctx, path, s.opts.Timeout, s.toolchain)
	defer v.Close()
	v.SetMaxPages(maxPages)

	verdict := v.Verdict()
	elapsed := v.Elapsed()
	pages, _ := v.ProbedPages()

	report := &domain.ValidationReport{
		ID:             uuid.NewString(),
		Filename:       filename,
		Valid:          verdict.Valid,
		PageCount:      pages,
		Elapsed:        elapsed,
		ElapsedSeconds: budget.FormatSeconds(elapsed),
	}
	if !verdict.Valid {
		report.Reason = verdict.Reason.Code()
		report.Message = verdict.Reason.String()
	}

	metrics.RecordVerdict(verdict, elapsed)
	s.record(verdict)
	return report
}

func (s *validationService) record(verdict domain.Verdict) {
	s.stats.total.Add(1)
	if verdict.Valid {
		s.stats.valid.Add(1)
	} else {
		s.stats.invalid.Add(1)
	}

	if s.intervals.Check(statsInterval) {
		s.logger.Info("Validation stats",
			"total", s.stats.total.Load(),
			"valid", s.stats.valid.Load(),
			"invalid", s.stats.invalid.Load(),
		)
	}
}

func (s *validationService) spool(file io.Reader) (string, error) {
	f, err := os.CreateTemp(s.opts.SpoolDir, "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create spool file: %w", err)
	}

	reader := file
	if s.opts.MaxUploadSize > 0 {
		reader = io.LimitReader(file, s.opts.MaxUploadSize+1)
	}

	written, err := io.Copy(f, reader)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.removeSpool(f.Name())
		return "", fmt.Errorf("failed to spool upload: %w", err)
	}

	switch {
	case written == 0:
		s.removeSpool(f.Name())
		return "", domain.ErrEmptyUpload
	case s.opts.MaxUploadSize > 0 && written > s.opts.MaxUploadSize:
		s.removeSpool(f.Name())
		return "", domain.ErrUploadTooLarge
	}
	return f.Name(), nil
}

func (s *validationService) removeSpool(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove spool file", "path", path, "error", err)
	}
}

