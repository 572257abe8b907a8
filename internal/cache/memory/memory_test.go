package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icpkit/canisterenv/internal/cache"
	"github.com/icpkit/canisterenv/internal/cache/memory"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	mapping := map[string]string{"frontend": "rrkah-fqaaa-aaaaa-aaaaq-cai"}
	require.NoError(t, store.Set(ctx, "local", mapping, 0))

	got, err := store.Get(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, mapping, got)

	// The cached snapshot must be isolated from caller mutation.
	got["frontend"] = "mutated"
	again, err := store.Get(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, "rrkah-fqaaa-aaaaa-aaaaq-cai", again["frontend"])
}

func TestMemoryStore_Miss(t *testing.T) {
	store := memory.New()

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "local", map[string]string{"a": "b"}, time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, err := store.Get(ctx, "local")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
