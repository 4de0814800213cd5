package bookingflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Record is what the store keeps per draft: the flow state plus the
// binding to a service and, optionally, a logged-in user.
type Record struct {
	DraftID   string `json:"draft_id"`
	ServiceID int64  `json:"service_id"`
	UserID    string `json:"user_id,omitempty"`
	State     State  `json:"state"`
}

// ErrDraftNotFound is returned when a draft id is unknown or expired.
var ErrDraftNotFound = fmt.Errorf("draft not found")

// DraftStore persists flow state between requests.
type DraftStore interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, draftID string) (Record, error)
	Delete(ctx context.Context, draftID string) error
}

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore keeps drafts in redis as JSON values with a sliding
// TTL: every save renews the expiry.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) DraftStore {
	return &redisDraftStore{client: client, ttl: ttl}
}

func (s *redisDraftStore) key(draftID string) string {
	return "booking:draft:" + draftID
}

func (s *redisDraftStore) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(rec.DraftID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *redisDraftStore) Get(ctx context.Context, draftID string) (Record, error) {
	data, err := s.client.Get(ctx, s.key(draftID)).Bytes()
	if err == redis.Nil {
		return Record{}, ErrDraftNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load draft: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return rec, nil
}

func (s *redisDraftStore) Delete(ctx context.Context, draftID string) error {
	if err := s.client.Del(ctx, s.key(draftID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
