package tools

import (
	"context"
	"strconv"
	"time"

	"pdf-validator/internal/domain"
	"pdf-validator/internal/metrics"

	"github.com/gen2brain/go-fitz"
)

// FitzProber counts pages in-process through the MuPDF bindings.
type FitzProber struct {
	logger domain.Logger
}

// NewFitzProber creates an in-process page prober.
func NewFitzProber(logger domain.Logger) *FitzProber {
	return &FitzProber{logger: logger}
}

type probeResult struct {
	pages int
	err   error
}

// Probe opens the document and returns its page count as text, or an empty
// string when the document cannot be opened within the allowance. A probe
// that outlives its allowance keeps running in the background until MuPDF
// returns.
func (f *FitzProber) Probe(ctx context.Context, path string, allowance time.Duration) string {
	resultCh := make(chan probeResult, 1)
	go func() {
		doc, err := fitz.New(path)
		if err != nil {
			resultCh <- probeResult{err: err}
			return
		}
		defer doc.Close()
		resultCh <- probeResult{pages: doc.NumPage()}
	}()

	timer := time.NewTimer(allowance)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			if f.logger != nil {
				f.logger.Warn("MuPDF could not open document", "path", path, "error", res.err)
			}
			return ""
		}
		return strconv.Itoa(res.pages)
	case <-timer.C:
		metrics.RecordTimeout("fitz-npages")
		if f.logger != nil {
			f.logger.Warn("MuPDF page count timed out", "path", path, "allowance", allowance)
		}
		return ""
	case <-ctx.Done():
		metrics.RecordCancellation("fitz-npages")
		if f.logger != nil {
			f.logger.Warn("MuPDF page count cancelled", "path", path, "error", ctx.Err())
		}
		return ""
	}
}
