package repository

import (
	"context"
	"fmt"
	"strings"

	"pdf-validator/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient implements the domain.SupabaseClient interface
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) domain.SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// Enabled reports whether Initialize succeeded
func (s *SupabaseClient) Enabled() bool {
	return s.client != nil
}

// ValidateToken validates a Supabase JWT token and returns user info
func (s *SupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if s.client == nil {
		return nil, domain.ErrSupabaseNotInitialized
	}

	// Passing "Authorization" via client headers does not reach GoTrue, so scope the auth client.
	user, err := s.client.Auth.WithToken(token).GetUser()
	if err != nil {
		s.logger.Error("Failed to validate token with Supabase", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	return &domain.SupabaseUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// DownloadObject fetches an object from Supabase Storage
func (s *SupabaseClient) DownloadObject(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	if s.client == nil {
		return nil, domain.ErrSupabaseNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.client.Storage.DownloadFile(bucket, objectPath)
	if err != nil {
		s.logger.Error("Failed to download object", err, "bucket", bucket, "path", objectPath)
		return nil, classifyDownloadError(bucket, objectPath, err)
	}
	return data, nil
}

// classifyDownloadError maps a Storage failure to ErrDocumentNotFound or
// ErrStorageRequestFailed. Storage reports missing objects and buckets only
// through the error text ("Object not found", statusCode 404).
func classifyDownloadError(bucket, objectPath string, err error) error {
	sentinel := domain.ErrStorageRequestFailed
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not found") || strings.Contains(msg, "not_found") || strings.Contains(msg, "404") {
		sentinel = domain.ErrDocumentNotFound
	}
	return fmt.Errorf("%w: %s/%s: %v", sentinel, bucket, objectPath, err)
}
