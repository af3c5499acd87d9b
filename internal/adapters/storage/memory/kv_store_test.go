package memory

import (
	"context"
	"testing"

	"medassist/internal/ports/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, kv.ErrNotFound)

	in := []byte(`[{"id":"1"}]`)
	require.NoError(t, s.Put(ctx, "k", in))

	in[0] = 'x'
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got), "stored value must not alias the caller's slice")

	require.NoError(t, s.Put(ctx, "k", []byte(`[]`)))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	assert.ErrorIs(t, s.Put(ctx, " ", nil), kv.ErrEmptyKey)
}
