package repository

import (
	"context"

	"go-retrofit/storage"
)

// collection is one whole JSON document in the blob store. Every mutation
// in this package is load, change in memory, save. Nothing serialises
// concurrent writers: two admins saving at once means the last save wins.
type collection[T any] struct {
	store storage.Store
	key   string
	empty func() T
}

func (c collection[T]) load(ctx context.Context) (T, error) {
	v := c.empty()
	if _, err := storage.GetJSON(ctx, c.store, c.key, &v); err != nil {
		return c.empty(), storageFailure("load "+c.key, err)
	}
	return v, nil
}

func (c collection[T]) save(ctx context.Context, v T) error {
	if err := storage.SetJSON(ctx, c.store, c.key, v); err != nil {
		return storageFailure("save "+c.key, err)
	}
	return nil
}
