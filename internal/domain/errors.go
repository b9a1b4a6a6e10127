package domain

import "errors"

// Domain errors
var (
	ErrFileNotFound           = errors.New("file not found")
	ErrEmptyUpload            = errors.New("empty upload")
	ErrUploadTooLarge         = errors.New("upload too large")
	ErrStorageUnavailable     = errors.New("document storage not configured")
	ErrDocumentNotFound       = errors.New("stored document not found")
	ErrStorageRequestFailed   = errors.New("document storage request failed")
	ErrInvalidToken           = errors.New("invalid token")
	ErrUserNotFound           = errors.New("user not found")
	ErrSupabaseNotInitialized = errors.New("supabase client not initialized")
)

// ValidationError represents a request validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
