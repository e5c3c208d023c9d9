package dao

import (
	"context"
)

// Service is a keyed entity store.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	// List returns every record in insertion order
	List(ctx context.Context) ([]*T, error)
}
