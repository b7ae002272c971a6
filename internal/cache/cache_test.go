package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Miss on unknown key
	_, ok, err := store.Get(ctx, "cart:1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Round trip
	err = store.Set(ctx, "cart:1", `[{"id":1}]`, time.Minute)
	require.NoError(t, err)

	payload, ok, err := store.Get(ctx, "cart:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, payload)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "address:7", "old", time.Minute)
	store.Set(ctx, "address:7", "new", time.Minute)

	payload, ok, _ := store.Get(ctx, "address:7")
	assert.True(t, ok)
	assert.Equal(t, "new", payload)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "product:ring", "data", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.Get(ctx, "product:ring")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetSetJSON(t *testing.T) {
	type snapshot struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	store := NewMemoryStore()
	ctx := context.Background()

	err := SetJSON(ctx, store, ProductKey("gold-ring"), snapshot{ID: 1, Name: "Gold Ring"}, time.Minute)
	require.NoError(t, err)

	got, ok := GetJSON[snapshot](ctx, store, ProductKey("gold-ring"))
	require.True(t, ok)
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "Gold Ring", got.Name)
}

func TestGetJSON_DecodeFailureIsMiss(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "cart:9", "{not json", time.Minute)

	_, ok := GetJSON[[]int](ctx, store, "cart:9")
	assert.False(t, ok)
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "cart:42", CartKey(42))
	assert.Equal(t, "address:42", AddressKey(42))
	assert.Equal(t, "product:gold-ring", ProductKey("gold-ring"))
}
