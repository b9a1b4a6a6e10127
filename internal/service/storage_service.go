package service

import (
	"context"
	"fmt"

	"pdf-validator/internal/domain"
)

// SupabaseStorage fetches documents from Supabase Storage buckets
type SupabaseStorage struct {
	client domain.SupabaseClient
	logger domain.Logger
}

// NewStorageService returns a document source backed by Supabase Storage
func NewStorageService(client domain.SupabaseClient, logger domain.Logger) *SupabaseStorage {
	return &SupabaseStorage{
		client: client,
		logger: logger,
	}
}

// Fetch downloads bucket/objectPath
func (s *SupabaseStorage) Fetch(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	if s.client == nil || !s.client.Enabled() {
		return nil, domain.ErrStorageUnavailable
	}

	data, err := s.client.DownloadObject(ctx, bucket, objectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptyUpload
	}

	s.logger.Debug("Fetched stored document", "bucket", bucket, "path", objectPath, "size", len(data))
	return data, nil
}
