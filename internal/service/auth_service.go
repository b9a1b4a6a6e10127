package service

import (
	"fmt"
	"sync"
	"time"

	"pdf-validator/internal/domain"

	"github.com/cespare/xxhash/v2"
)

const tokenCacheTTL = 30 * time.Second

type tokenCacheEntry struct {
	user      *domain.SupabaseUser
	expiresAt time.Time
}

type authService struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
	now            func() time.Time

	tokenCacheMu sync.RWMutex
	tokenCache   map[uint64]tokenCacheEntry
}

func NewAuthService(
	supabaseClient domain.SupabaseClient,
	logger domain.Logger,
) *authService {
	return &authService{
		supabaseClient: supabaseClient,
		logger:         logger,
		now:            time.Now,
		tokenCache:     make(map[uint64]tokenCacheEntry),
	}
}

// ValidateToken validates a bearer token with Supabase. Successful lookups
// are cached briefly so repeated API calls do not hit GoTrue every time.
func (s *authService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	key := xxhash.Sum64String(token)
	now := s.now()

	s.tokenCacheMu.RLock()
	entry, ok := s.tokenCache[key]
	s.tokenCacheMu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.user, nil
	}

	user, err := s.supabaseClient.ValidateToken(token)
	if err != nil {
		s.logger.Error("Failed to validate token with Supabase", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	s.tokenCacheMu.Lock()
	for k, e := range s.tokenCache {
		if !now.Before(e.expiresAt) {
			delete(s.tokenCache, k)
		}
	}
	s.tokenCache[key] = tokenCacheEntry{user: user, expiresAt: now.Add(tokenCacheTTL)}
	s.tokenCacheMu.Unlock()

	return user, nil
}
