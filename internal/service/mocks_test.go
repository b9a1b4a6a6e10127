package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pdf-validator/internal/domain"
)

// MockLogger for testing
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

// MockSupabaseClient for testing
type MockSupabaseClient struct {
	enabled       bool
	objects       map[string][]byte
	validateCalls int
}

func NewMockSupabaseClient() *MockSupabaseClient {
	return &MockSupabaseClient{
		enabled: true,
		objects: make(map[string][]byte),
	}
}

func (m *MockSupabaseClient) Initialize() error {
	return nil
}

func (m *MockSupabaseClient) Enabled() bool {
	return m.enabled
}

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.validateCalls++
	// Simple mock: if token is "valid-token", return a user
	if token == "valid-token" {
		return &domain.SupabaseUser{
			ID:    "user-123",
			Email: "test@example.com",
		}, nil
	}

	// If token is "invalid-token", return an error
	if token == "invalid-token" {
		return nil, errors.New("invalid token")
	}

	// For any other token, return error
	return nil, errors.New("token validation failed")
}

func (m *MockSupabaseClient) DownloadObject(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	data, ok := m.objects[bucket+"/"+objectPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrDocumentNotFound, bucket, objectPath)
	}
	return data, nil
}
