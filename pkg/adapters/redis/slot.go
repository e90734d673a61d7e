package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the key the slot is stored under unless WithKey is used.
const DefaultKey = "waypoint:pending"

// Slot implements ports.PendingSlot using a single Redis key.
// The parked intent is stored as its JSON envelope and drained with GETDEL,
// so concurrent readers on different replicas never receive the same intent.
type Slot struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Slot)

// WithTTL expires a parked intent that was never drained.
func WithTTL(ttl time.Duration) Option {
	return func(s *Slot) {
		s.ttl = ttl
	}
}

// WithKey sets the key the slot is stored under.
func WithKey(key string) Option {
	return func(s *Slot) {
		s.key = key
	}
}

// New creates a new Redis slot with options.
func New(address, password string, db int, opts ...Option) *Slot {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis slot from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Slot {
	slot := &Slot{
		client: client,
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(slot)
	}

	return slot
}

// Put stores the intent, replacing any unread one.
func (s *Slot) Put(ctx context.Context, intent domain.Intent) error {
	if intent == nil {
		return s.Clear(ctx)
	}
	data, err := domain.EncodeIntent(intent)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Drain atomically reads and deletes the parked intent.
func (s *Slot) Drain(ctx context.Context) (domain.Intent, error) {
	val, err := s.client.GetDel(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to drain from redis: %w", err)
	}
	return domain.DecodeIntent(val)
}

// Clear deletes the parked intent, if any.
func (s *Slot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear redis slot: %w", err)
	}
	return nil
}

// Ping checks connectivity to the backend.
func (s *Slot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Slot) Close() error {
	return s.client.Close()
}
