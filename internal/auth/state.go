package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"planets-api/internal/shared/redis"
)

const stateTTL = 10 * time.Minute

// StateStore holds one-time OAuth state tokens between the auth redirect and
// the provider callback. Consume removes the token, so a replayed callback
// fails validation.
type StateStore interface {
	Generate(ctx context.Context, provider, userAgent string) (string, error)
	Validate(ctx context.Context, state, provider, userAgent string) error
}

type stateEntry struct {
	CreatedAt time.Time `json:"created_at"`
	Provider  string    `json:"provider"`
	UserAgent string    `json:"user_agent"`
}

func newStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func checkStateEntry(entry stateEntry, provider, userAgent string, logger *slog.Logger) error {
	if time.Since(entry.CreatedAt) > stateTTL {
		logger.Warn("Expired state token", "created_at", entry.CreatedAt)
		return fmt.Errorf("state token has expired")
	}

	if entry.Provider != provider {
		logger.Warn("State token provider mismatch",
			"expected_provider", entry.Provider,
			"received_provider", provider)
		return fmt.Errorf("state token provider mismatch")
	}

	if entry.UserAgent != userAgent {
		// Logged as a signal only; user agents legitimately vary behind some
		// proxies, so this does not fail validation.
		logger.Warn("State token user agent mismatch")
	}

	return nil
}

// NewStateStore returns a Redis-backed store when a client is available and
// an in-memory store otherwise.
func NewStateStore(client *redis.Client) StateStore {
	if client != nil {
		return NewRedisStateStore(client)
	}
	return NewMemoryStateStore()
}

// MemoryStateStore keeps state tokens in process memory with a background
// sweep for expired entries. Suitable for single-instance deployments.
type MemoryStateStore struct {
	states map[string]stateEntry
	mutex  sync.Mutex
}

func NewMemoryStateStore() *MemoryStateStore {
	store := &MemoryStateStore{
		states: make(map[string]stateEntry),
	}
	go store.startCleanup()
	return store
}

func (s *MemoryStateStore) Generate(ctx context.Context, provider, userAgent string) (string, error) {
	logger := slog.With("component", "state_store", "operation", "generate", "provider", provider)

	state, err := newStateToken()
	if err != nil {
		logger.Error("Failed to generate state token", "error", err)
		return "", err
	}

	s.mutex.Lock()
	s.states[state] = stateEntry{
		CreatedAt: time.Now(),
		Provider:  provider,
		UserAgent: userAgent,
	}
	s.mutex.Unlock()

	logger.Debug("OAuth state token generated and stored")
	return state, nil
}

func (s *MemoryStateStore) Validate(ctx context.Context, state, provider, userAgent string) error {
	logger := slog.With("component", "state_store", "operation", "validate", "provider", provider)

	if state == "" {
		logger.Warn("Empty state token provided")
		return fmt.Errorf("state token is required")
	}

	s.mutex.Lock()
	entry, exists := s.states[state]
	if exists {
		// One-time use.
		delete(s.states, state)
	}
	s.mutex.Unlock()

	if !exists {
		logger.Warn("Invalid or expired state token")
		return fmt.Errorf("invalid or expired state token")
	}

	return checkStateEntry(entry, provider, userAgent, logger)
}

func (s *MemoryStateStore) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for state, entry := range s.states {
			if now.Sub(entry.CreatedAt) > stateTTL {
				delete(s.states, state)
			}
		}
		s.mutex.Unlock()
	}
}

// RedisStateStore keeps state tokens in Redis with a TTL, so validation works
// across server instances. Tokens are consumed with GETDEL.
type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func stateKey(state string) string {
	return "oauth_state:" + state
}

func (s *RedisStateStore) Generate(ctx context.Context, provider, userAgent string) (string, error) {
	logger := slog.With("component", "state_store", "operation", "generate", "provider", provider)

	state, err := newStateToken()
	if err != nil {
		logger.Error("Failed to generate state token", "error", err)
		return "", err
	}

	payload, err := json.Marshal(stateEntry{
		CreatedAt: time.Now(),
		Provider:  provider,
		UserAgent: userAgent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal state entry: %w", err)
	}

	if err := s.client.Set(ctx, stateKey(state), payload, stateTTL).Err(); err != nil {
		logger.Error("Failed to store state token", "error", err)
		return "", fmt.Errorf("failed to store state token: %w", err)
	}

	logger.Debug("OAuth state token generated and stored")
	return state, nil
}

func (s *RedisStateStore) Validate(ctx context.Context, state, provider, userAgent string) error {
	logger := slog.With("component", "state_store", "operation", "validate", "provider", provider)

	if state == "" {
		logger.Warn("Empty state token provided")
		return fmt.Errorf("state token is required")
	}

	payload, err := s.client.GetDel(ctx, stateKey(state)).Result()
	if err != nil {
		if err == goredis.Nil {
			logger.Warn("Invalid or expired state token")
			return fmt.Errorf("invalid or expired state token")
		}
		logger.Error("Failed to fetch state token", "error", err)
		return fmt.Errorf("failed to fetch state token: %w", err)
	}

	var entry stateEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return fmt.Errorf("failed to unmarshal state entry: %w", err)
	}

	return checkStateEntry(entry, provider, userAgent, logger)
}
