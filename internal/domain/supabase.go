package domain

import "context"

// SupabaseUser is the authenticated caller resolved from a bearer token.
type SupabaseUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt    string                 `json:"created_at,omitempty"`
	UpdatedAt    string                 `json:"updated_at,omitempty"`
}

// SupabaseClient is the subset of Supabase used by the validator service:
// bearer-token validation and object download from Storage.
type SupabaseClient interface {
	Initialize() error
	Enabled() bool
	ValidateToken(token string) (*SupabaseUser, error)
	DownloadObject(ctx context.Context, bucket, objectPath string) ([]byte, error)
}

// AuthService resolves bearer tokens for the protected routes.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}

// DocumentSource fetches a stored document by bucket and object path.
type DocumentSource interface {
	Fetch(ctx context.Context, bucket, objectPath string) ([]byte, error)
}
