package service

import (
	"context"
	"errors"
	"testing"

	"pdf-validator/internal/domain"
)

func TestStorageService_Fetch(t *testing.T) {
	client := NewMockSupabaseClient()
	client.objects["documents/a.pdf"] = []byte("%PDF-1.7")
	svc := NewStorageService(client, NewMockLogger())

	data, err := svc.Fetch(context.Background(), "documents", "a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Fatalf("unexpected content %q", data)
	}

	if _, err := svc.Fetch(context.Background(), "documents", "missing.pdf"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound for missing object, got %v", err)
	}
}

func TestStorageService_EmptyObject(t *testing.T) {
	client := NewMockSupabaseClient()
	client.objects["documents/empty.pdf"] = []byte{}
	svc := NewStorageService(client, NewMockLogger())

	_, err := svc.Fetch(context.Background(), "documents", "empty.pdf")
	if !errors.Is(err, domain.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
}

func TestStorageService_Disabled(t *testing.T) {
	client := NewMockSupabaseClient()
	client.enabled = false
	svc := NewStorageService(client, NewMockLogger())

	_, err := svc.Fetch(context.Background(), "documents", "a.pdf")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
