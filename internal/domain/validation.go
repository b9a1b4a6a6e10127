package domain

import "time"

// Reason identifies why a document failed validation.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonFileNotFound
	ReasonCorruptOrInvalid
	ReasonPasswordProtected
	ReasonInvalidPageCount
	ReasonMaxPagesExceeded
	ReasonCorruptFile
)

var reasonCodes = map[Reason]string{
	ReasonNone:              "",
	ReasonFileNotFound:      "file_not_found",
	ReasonCorruptOrInvalid:  "corrupt_or_invalid",
	ReasonPasswordProtected: "password_protected",
	ReasonInvalidPageCount:  "invalid_page_count",
	ReasonMaxPagesExceeded:  "max_pages_exceeded",
	ReasonCorruptFile:       "corrupt_file",
}

var reasonMessages = map[Reason]string{
	ReasonNone:              "",
	ReasonFileNotFound:      "file does not exist",
	ReasonCorruptOrInvalid:  "corrupt or invalid file",
	ReasonPasswordProtected: "password protected",
	ReasonInvalidPageCount:  "corrupt file (invalid number of pages)",
	ReasonMaxPagesExceeded:  "max pages exceeded",
	ReasonCorruptFile:       "corrupt file",
}

// Code returns the stable machine-readable code, empty for ReasonNone.
func (r Reason) Code() string {
	return reasonCodes[r]
}

// String returns the human-readable message for the reason.
func (r Reason) String() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "unknown"
}

// Verdict is the terminal result of one validation run.
type Verdict struct {
	Valid  bool
	Reason Reason
}

// ValidVerdict is the verdict of a document that passed every check.
func ValidVerdict() Verdict {
	return Verdict{Valid: true}
}

// InvalidVerdict builds a failing verdict for the given reason.
func InvalidVerdict(reason Reason) Verdict {
	return Verdict{Valid: false, Reason: reason}
}

// ValidationReport is the outcome returned to API callers
type ValidationReport struct {
	ID             string        `json:"id"`
	Filename       string        `json:"filename,omitempty"`
	Valid          bool          `json:"valid"`
	Reason         string        `json:"reason,omitempty"`
	Message        string        `json:"message,omitempty"`
	PageCount      int           `json:"page_count"`
	Elapsed        time.Duration `json:"-"`
	ElapsedSeconds string        `json:"elapsed_seconds"`
}
