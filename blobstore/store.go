package blobstore

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when a named blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Store reads and writes named snapshot blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes a blob atomically under the given name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads the whole blob. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// GetAll fetches several blobs concurrently. It fails fast on the first
// error; partial results are discarded.
func GetAll(ctx context.Context, store Store, names []string) (map[string][]byte, error) {
	var mu sync.Mutex
	out := make(map[string][]byte, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			data, err := store.Get(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
