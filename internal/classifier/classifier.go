// Package classifier maps diagnostic output of external tools to
// validation failure reasons.
package classifier

import (
	"strings"

	"pdf-validator/internal/domain"
)

// Signature is a case-insensitive substring that identifies a failure.
type Signature struct {
	Pattern string
	Reason  domain.Reason
}

// DefaultSignatures matches the wording of qpdf --check diagnostics.
// The order matters: earlier entries win within a line.
var DefaultSignatures = []Signature{
	{Pattern: "not a PDF file", Reason: domain.ReasonCorruptOrInvalid},
	{Pattern: "invalid password", Reason: domain.ReasonPasswordProtected},
}

// Classify scans lines in order and, within a line, signatures in table
// order. It returns the reason of the first match.
func Classify(lines []string, table []Signature) (domain.Reason, bool) {
	if len(table) == 0 {
		return domain.ReasonNone, false
	}

	patterns := make([]string, len(table))
	for i, sig := range table {
		patterns[i] = strings.ToLower(sig.Pattern)
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		for i, pattern := range patterns {
			if pattern != "" && strings.Contains(lower, pattern) {
				return table[i].Reason, true
			}
		}
	}
	return domain.ReasonNone, false
}
