package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound lo devuelven todos los adapters cuando la key no existe.
	ErrNotFound = errors.New("kv: key not found")
	ErrEmptyKey = errors.New("kv: empty key")
)

// Store es el almacenamiento clave/valor donde se persisten las colecciones completas.
// Put reemplaza el valor entero (last writer wins). Delete de una key inexistente
// no es error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
