package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestSessionKVCartRoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()

	// Setup
	token := "test-session-roundtrip"
	client.Del(ctx, cartKeyPrefix+token)
	kv := NewSessionKV(client, time.Minute)

	saved := State{
		Items:    []models.CartItem{{Product: models.Product{ID: "1", Name: "Organic Cashews"}, Quantity: 2, SelectedVariation: models.VariationSelection{"Type": "Raw"}}},
		Wishlist: []models.Product{{ID: "7", Name: "Tiger Nut Flour"}},
	}

	// Test
	require.NoError(t, kv.SaveCart(ctx, token, saved))
	loaded, found, err := kv.LoadCart(ctx, token)

	// Verify
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, loaded)

	client.Del(ctx, cartKeyPrefix+token)
}

func TestSessionKVLoadCartMissingToken(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()

	// Setup
	token := "test-session-missing"
	client.Del(ctx, cartKeyPrefix+token)
	kv := NewSessionKV(client, time.Minute)

	// Test
	state, found, err := kv.LoadCart(ctx, token)

	// Verify
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, state.Items)
	assert.Empty(t, state.Wishlist)
}

func TestSessionKVLoadCartCorruptSlot(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()

	// Setup: an unparseable payload in the cart slot.
	token := "test-session-corrupt"
	require.NoError(t, client.Set(ctx, cartKeyPrefix+token, "{not json", time.Minute).Err())
	kv := NewSessionKV(client, time.Minute)

	// Test
	state, found, err := kv.LoadCart(ctx, token)

	// Verify: a corrupt slot reads as absent, not as an error.
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, state.Items)

	client.Del(ctx, cartKeyPrefix+token)
}

func TestSessionKVAdminSnapshotLifecycle(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()

	// Setup
	token := "test-admin-lifecycle"
	client.Del(ctx, adminKeyPrefix+token)
	kv := NewSessionKV(client, time.Minute)

	snap := models.AdminSnapshot{ID: "a1", Username: "grove-admin", Role: "admin"}

	// Test: save, load, delete, load again.
	require.NoError(t, kv.SaveAdminSnapshot(ctx, token, snap))

	loaded, found, err := kv.LoadAdminSnapshot(ctx, token)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snap, loaded)

	require.NoError(t, kv.DeleteAdminSnapshot(ctx, token))

	// Verify: the snapshot is gone after logout.
	_, found, err = kv.LoadAdminSnapshot(ctx, token)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionKVAdminSnapshotCorruptSlot(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()

	// Setup
	token := "test-admin-corrupt"
	require.NoError(t, client.Set(ctx, adminKeyPrefix+token, "%%%", time.Minute).Err())
	kv := NewSessionKV(client, time.Minute)

	// Test
	_, found, err := kv.LoadAdminSnapshot(ctx, token)

	// Verify
	require.NoError(t, err)
	assert.False(t, found)

	client.Del(ctx, adminKeyPrefix+token)
}
