package session

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

type fakeBackend struct {
	values map[string]string

	getErr error
	setErr error
	delErr error

	lastTTL time.Duration
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{values: map[string]string{}}
}

func (f *fakeBackend) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value.(string)
	f.lastTTL = ttl
	return nil
}

func (f *fakeBackend) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeBackend) Del(ctx context.Context, keys ...string) error {
	if f.delErr != nil {
		return f.delErr
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeBackend) SessionKey(token string) string {
	return "sf:session:" + token
}

func newTestStore(backend *fakeBackend) *Store {
	return &Store{backend: backend, keyer: backend, ttl: time.Hour}
}

func TestStoreCustomerResolvesToken(t *testing.T) {
	backend := newFakeBackend()
	backend.values["sf:session:tok-1"] = "42"
	store := newTestStore(backend)

	id, ok, err := store.Customer(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestStoreCustomerMissReportsNoSession(t *testing.T) {
	store := newTestStore(newFakeBackend())

	id, ok, err := store.Customer(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestStoreCustomerEmptyToken(t *testing.T) {
	store := newTestStore(newFakeBackend())

	_, ok, err := store.Customer(context.Background(), "  ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreCustomerBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = errors.New("connection refused")
	store := newTestStore(backend)

	_, _, err := store.Customer(context.Background(), "tok-1")
	assert.Error(t, err)
}

func TestStoreCustomerCorruptValue(t *testing.T) {
	backend := newFakeBackend()
	backend.values["sf:session:tok-1"] = "not-a-number"
	store := newTestStore(backend)

	_, _, err := store.Customer(context.Background(), "tok-1")
	assert.Error(t, err)
}

func TestStoreCreateAndDestroyRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, time.Hour, backend.lastTTL)

	id, ok, err := store.Customer(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	require.NoError(t, store.Destroy(ctx, token))

	_, ok, err = store.Customer(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreCreateRejectsInvalidCustomer(t *testing.T) {
	store := newTestStore(newFakeBackend())

	_, err := store.Create(context.Background(), 0)
	assert.Error(t, err)
}

func TestStoreDestroyEmptyToken(t *testing.T) {
	store := newTestStore(newFakeBackend())

	err := store.Destroy(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewStoreRequiresClient(t *testing.T) {
	_, err := NewStore(nil, config.SessionConfig{TTLMinutes: 60})
	assert.Error(t, err)
}
