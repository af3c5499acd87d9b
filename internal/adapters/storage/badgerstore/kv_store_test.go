package badgerstore

import (
	"context"
	"testing"

	"medassist/internal/ports/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_InMemory(t *testing.T) {
	ctx := context.Background()
	db, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewKVStore(db)

	_, err = s.Get(ctx, "medassist:profile")
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Put(ctx, "medassist:profile", []byte(`{"name":"Ana"}`)))
	got, err := s.Get(ctx, "medassist:profile")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana"}`, string(got))

	require.NoError(t, s.Delete(ctx, "medassist:profile"))
	require.NoError(t, s.Delete(ctx, "medassist:profile"))
	_, err = s.Get(ctx, "medassist:profile")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKVStore_PersistsOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, NewKVStore(db).Put(ctx, "k", []byte("v")))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := NewKVStore(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
