package store

import (
	"context"
	"log/slog"
	"sync"
)

// cartStore is the slice of SessionKV the manager needs, kept narrow so
// tests can stand in for Redis.
type cartStore interface {
	LoadCart(ctx context.Context, token string) (State, bool, error)
	SaveCart(ctx context.Context, token string, state State) error
}

// session pairs a cart with whether its durable slot has been consulted.
// Until a restore attempt succeeds, Persist must not write: overwriting the
// slot with a fresh empty cart after a transient Redis failure would destroy
// the customer's saved cart.
type session struct {
	cart     *Cart
	restored bool
}

// Manager tracks one Cart per storefront session token. Carts live in
// memory; when a SessionKV is attached, a cart unseen since the last restart
// is restored from the durable slot on first access and persisted after
// each mutation via Persist.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	kv       cartStore
}

// NewManager creates a session manager. kv may be nil, in which case carts
// are memory-only.
func NewManager(kv *SessionKV) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
	}
	if kv != nil {
		m.kv = kv
	}
	return m
}

// Cart returns the cart for a session token, creating or restoring it as
// needed. The same token always yields the same cart. A failed restore is
// retried on the next access; the load runs outside the manager lock so one
// slow restore does not stall other sessions.
func (m *Manager) Cart(ctx context.Context, token string) *Cart {
	m.mu.Lock()
	s, ok := m.sessions[token]
	if !ok {
		s = &session{cart: NewCart(), restored: m.kv == nil}
		m.sessions[token] = s
	}
	restored := s.restored
	m.mu.Unlock()

	if restored {
		return s.cart
	}

	state, found, err := m.kv.LoadCart(ctx, token)
	if err != nil {
		slog.Warn("failed to restore session cart", "error", err)
		return s.cart
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !s.restored {
		// Local mutations made while the slot was unreachable win over the
		// stale saved state.
		if found && s.cart.Empty() {
			s.cart.Restore(state)
		}
		s.restored = true
	}
	return s.cart
}

// Persist writes the session's cart to the durable slot. No-op without a
// backing store, and while the slot has not been restored yet, so a cart
// that could not be loaded is never clobbered by an empty snapshot.
func (m *Manager) Persist(ctx context.Context, token string) error {
	m.mu.Lock()
	s, ok := m.sessions[token]
	var restored bool
	if ok {
		restored = s.restored
	}
	m.mu.Unlock()

	if !ok || m.kv == nil || !restored {
		return nil
	}
	return m.kv.SaveCart(ctx, token, s.cart.Snapshot())
}
