// Package validator decides whether a PDF is usable by running a fixed
// sequence of external checks under one shared time budget.
//
// The pipeline runs at most once per Validator, on the first query:
//
//  1. structural check (qpdf --check), classified against known signatures
//  2. page count probe; zero or garbage means the page count is invalid
//  3. optional upper bound on the page count
//  4. low resolution render of every page to temporary images
//  5. every expected image must exist
//
// The first failing step decides the verdict. Rendered images are removed
// when the pipeline returns, whatever the outcome, and Close removes
// anything still tracked.
package validator

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"pdf-validator/internal/artifact"
	"pdf-validator/internal/budget"
	"pdf-validator/internal/classifier"
	"pdf-validator/internal/domain"
)

// DefaultTimeout is the total budget used when none is given.
const DefaultTimeout = 60 * time.Second

// Toolchain bundles the collaborators of a Validator. Integrity, Pages and
// Renderer are required; the rest have defaults.
type Toolchain struct {
	Integrity  domain.IntegrityChecker
	Pages      domain.PageProber
	Renderer   domain.Renderer
	Artifacts  *artifact.Tracker
	IDs        artifact.IDGenerator
	Signatures []classifier.Signature
	Clock      budget.Clock
	Logger     domain.Logger
}

func (tc Toolchain) withDefaults() Toolchain {
	if tc.Logger == nil {
		tc.Logger = nopLogger{}
	}
	if tc.Artifacts == nil {
		tc.Artifacts = artifact.NewTracker(os.TempDir(), ".png", tc.Logger)
	}
	if tc.IDs == nil {
		tc.IDs = artifact.RandomIDGenerator{}
	}
	if tc.Signatures == nil {
		tc.Signatures = classifier.DefaultSignatures
	}
	if tc.Clock == nil {
		tc.Clock = budget.SystemClock()
	}
	return tc
}

// Validator validates one document. Its verdict is computed once and then
// reused for the lifetime of the value.
type Validator struct {
	path    string
	tc      Toolchain
	budget  *budget.Tracker
	ctx     context.Context
	missing bool

	mu       sync.Mutex
	maxPages int

	evaluated bool
	verdict   domain.Verdict

	integrityDone   bool
	integrityReason domain.Reason

	pagesProbed bool
	numPages    int

	artifacts artifact.Set
}

// New prepares a validator for path with a total budget of timeout. The
// budget starts counting immediately. A path that does not exist, or is a
// directory, is judged invalid on the spot and no tool is ever invoked.
func New(path string, timeout time.Duration, tc Toolchain) *Validator {
	return NewContext(context.Background(), path, timeout, tc)
}

// NewContext is like New, but cancelling ctx terminates whichever check is
// running. The pipeline still completes with the outputs it got.
func NewContext(ctx context.Context, path string, timeout time.Duration, tc Toolchain) *Validator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tc = tc.withDefaults()

	v := &Validator{
		path:   path,
		tc:     tc,
		budget: budget.NewTracker(timeout, tc.Clock),
		ctx:    ctx,
	}

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		v.missing = true
		v.evaluated = true
		v.verdict = domain.InvalidVerdict(domain.ReasonFileNotFound)
		v.integrityDone = true
		v.integrityReason = domain.ReasonFileNotFound
		v.pagesProbed = true
	}
	return v
}

// Path returns the validated file.
func (v *Validator) Path() string {
	return v.path
}

// IsValid runs the pipeline if needed and reports whether the document passed.
func (v *Validator) IsValid() bool {
	return v.Verdict().Valid
}

// Reason returns why the document is invalid, or ReasonNone.
func (v *Validator) Reason() domain.Reason {
	return v.Verdict().Reason
}

// Verdict runs the pipeline on first call and returns the memoized result.
func (v *Validator) Verdict() domain.Verdict {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.evaluated {
		v.verdict = v.evaluate()
		v.evaluated = true
	}
	return v.verdict
}

// CheckIntegrity runs only the structural check. The result is memoized and
// reused by the full pipeline.
func (v *Validator) CheckIntegrity() (domain.Reason, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.integrity()
}

// NumPages probes the page count without running the rest of the pipeline.
// Zero means unknown or invalid.
func (v *Validator) NumPages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageCount()
}

// ProbedPages returns the page count found by the pipeline, and whether
// the probe ran at all. Unlike NumPages it never invokes a tool.
func (v *Validator) ProbedPages() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.numPages, v.pagesProbed
}

// SetMaxPages bounds the page count. Non-positive values are ignored, and
// so is any call made after the verdict is known.
func (v *Validator) SetMaxPages(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.evaluated || n <= 0 {
		return
	}
	v.maxPages = n
}

// MaxPages returns the configured bound, 0 when unbounded.
func (v *Validator) MaxPages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxPages
}

// RemainingTime returns what is left of the budget.
func (v *Validator) RemainingTime() time.Duration {
	return v.budget.Remaining()
}

// Elapsed returns the time spent since the validator was created.
func (v *Validator) Elapsed() time.Duration {
	return v.budget.Elapsed()
}

// Artifacts returns every artifact path computed so far.
func (v *Validator) Artifacts() []string {
	return v.artifacts.Paths()
}

// Close removes any artifact still on disk. It never fails and may be
// called more than once.
func (v *Validator) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.releaseArtifacts()
	return nil
}

func (v *Validator) evaluate() domain.Verdict {
	defer v.releaseArtifacts()

	if reason, failed := v.integrity(); failed {
		return v.reject(reason)
	}

	pages := v.pageCount()
	if pages == 0 {
		return v.reject(domain.ReasonInvalidPageCount)
	}

	if v.maxPages > 0 && pages > v.maxPages {
		return v.reject(domain.ReasonMaxPagesExceeded)
	}

	base := v.tc.IDs.NewID()
	paths := v.tc.Artifacts.ExpectedPaths(base, pages)
	v.artifacts.Add(paths...)

	v.tc.Renderer.Render(v.ctx, v.path, v.tc.Artifacts.Template(base), v.budget.Remaining())
	v.step("render")

	if !v.tc.Artifacts.VerifyAll(paths) {
		return v.reject(domain.ReasonCorruptFile)
	}

	v.tc.Logger.Info("Document validated",
		"path", v.path,
		"valid", true,
		"pages", pages,
		"elapsed", v.budget.FormatElapsed(),
	)
	return domain.ValidVerdict()
}

func (v *Validator) integrity() (domain.Reason, bool) {
	if !v.integrityDone {
		lines := v.tc.Integrity.Check(v.ctx, v.path, v.budget.Remaining())
		v.step("integrity")
		v.integrityReason, _ = classifier.Classify(lines, v.tc.Signatures)
		v.integrityDone = true
	}
	return v.integrityReason, v.integrityReason != domain.ReasonNone
}

func (v *Validator) pageCount() int {
	if !v.pagesProbed {
		raw := v.tc.Pages.Probe(v.ctx, v.path, v.budget.Remaining())
		v.step("page-count")
		v.numPages = ParsePageCount(raw)
		v.pagesProbed = true
	}
	return v.numPages
}

func (v *Validator) reject(reason domain.Reason) domain.Verdict {
	v.tc.Logger.Info("Document rejected",
		"path", v.path,
		"reason", reason.Code(),
		"elapsed", v.budget.FormatElapsed(),
	)
	return domain.InvalidVerdict(reason)
}

func (v *Validator) step(name string) {
	v.tc.Logger.Debug("Validation step finished",
		"path", v.path,
		"step", name,
		"took", budget.FormatSeconds(v.budget.Lap()),
		"remaining", v.budget.Remaining(),
	)
}

func (v *Validator) releaseArtifacts() {
	if removed := v.artifacts.Release(v.tc.Artifacts); removed > 0 {
		v.tc.Logger.Debug("Removed render artifacts", "path", v.path, "count", removed)
	}
}

// ParsePageCount turns prober output into a page count; anything other
// than a positive integer yields 0.
func ParsePageCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}
