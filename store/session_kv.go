package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
)

const (
	cartKeyPrefix  = "session:cart:"
	adminKeyPrefix = "session:admin:"
)

// SessionKV persists per-session state in Redis. It is the server-side
// equivalent of the browser's local storage slot: cart contents and the
// authenticated-admin identity snapshot survive reloads, scoped to one
// session token, with an expiry.
type SessionKV struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionKV wraps a Redis client with the session key conventions.
func NewSessionKV(rdb *redis.Client, ttl time.Duration) *SessionKV {
	return &SessionKV{rdb: rdb, ttl: ttl}
}

// SaveCart writes the cart state for a session token.
func (kv *SessionKV) SaveCart(ctx context.Context, token string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}
	if err := kv.rdb.Set(ctx, cartKeyPrefix+token, payload, kv.ttl).Err(); err != nil {
		return fmt.Errorf("save cart state: %w", err)
	}
	return nil
}

// LoadCart reads the cart state for a session token. The second return is
// false when no state has been saved for that token.
func (kv *SessionKV) LoadCart(ctx context.Context, token string) (State, bool, error) {
	payload, err := kv.rdb.Get(ctx, cartKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("load cart state: %w", err)
	}

	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		// A corrupt slot is treated as absent, matching how the storefront
		// discards an unparseable local storage entry.
		return State{}, false, nil
	}
	return state, true, nil
}

// SaveAdminSnapshot stores the authenticated-admin identity for a session.
func (kv *SessionKV) SaveAdminSnapshot(ctx context.Context, token string, snap models.AdminSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal admin snapshot: %w", err)
	}
	if err := kv.rdb.Set(ctx, adminKeyPrefix+token, payload, kv.ttl).Err(); err != nil {
		return fmt.Errorf("save admin snapshot: %w", err)
	}
	return nil
}

// LoadAdminSnapshot retrieves the admin identity for a session, if any.
func (kv *SessionKV) LoadAdminSnapshot(ctx context.Context, token string) (models.AdminSnapshot, bool, error) {
	payload, err := kv.rdb.Get(ctx, adminKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.AdminSnapshot{}, false, nil
	}
	if err != nil {
		return models.AdminSnapshot{}, false, fmt.Errorf("load admin snapshot: %w", err)
	}

	var snap models.AdminSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return models.AdminSnapshot{}, false, nil
	}
	return snap, true, nil
}

// DeleteAdminSnapshot removes the admin identity on logout.
func (kv *SessionKV) DeleteAdminSnapshot(ctx context.Context, token string) error {
	if err := kv.rdb.Del(ctx, adminKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete admin snapshot: %w", err)
	}
	return nil
}
