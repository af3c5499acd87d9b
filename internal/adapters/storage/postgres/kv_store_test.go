package postgres

import (
	"context"
	"os"
	"testing"

	"medassist/internal/ports/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere una base real: MEDASSIST_TEST_POSTGRES_DSN=postgres://...
func TestKVStore_Postgres(t *testing.T) {
	dsn := os.Getenv("MEDASSIST_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MEDASSIST_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(ctx, db))

	s := NewKVStore(db)
	key := "medassist:test:" + t.Name()
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, err = s.Get(ctx, key)
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Put(ctx, key, []byte(`{"a":1}`)))
	require.NoError(t, s.Put(ctx, key, []byte(`{"a":2}`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
