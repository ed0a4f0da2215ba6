package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	redisclient "github.com/angelmondragon/storefront-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no active session")

type sessionBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(token string) string
}

// Store resolves opaque session cookie tokens to customer identifiers.
// Sessions are created by the identity service; this service mostly reads them.
type Store struct {
	backend sessionBackend
	keyer   sessionKeyer
	ttl     time.Duration
}

// Checker exposes the read-only surface needed by the session middleware.
type Checker interface {
	Customer(ctx context.Context, token string) (int64, bool, error)
}

// NewStore constructs a session store backed by Redis.
func NewStore(client *redisclient.Client, cfg config.SessionConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.TTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &Store{
		backend: client,
		keyer:   client,
		ttl:     ttl,
	}, nil
}

// Customer resolves the token to a customer id. The boolean reports whether an
// active session exists; errors are reserved for backend failures.
func (s *Store) Customer(ctx context.Context, token string) (int64, bool, error) {
	if strings.TrimSpace(token) == "" {
		return 0, false, nil
	}
	raw, err := s.backend.Get(ctx, s.keyer.SessionKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	customerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value %q: %w", raw, err)
	}
	return customerID, true, nil
}

// Create stores a fresh session for the customer and returns its token.
func (s *Store) Create(ctx context.Context, customerID int64) (string, error) {
	if customerID <= 0 {
		return "", fmt.Errorf("customer id is required")
	}
	token := NewToken()
	if err := s.backend.Set(ctx, s.keyer.SessionKey(token), strconv.FormatInt(customerID, 10), s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Destroy removes the session tied to the token.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoSession
	}
	return s.backend.Del(ctx, s.keyer.SessionKey(token))
}

// NewToken produces an opaque session identifier.
func NewToken() string {
	return uuid.NewString()
}
