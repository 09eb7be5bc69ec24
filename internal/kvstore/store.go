// Package kvstore persists small string values under string keys.
// Writes are last-writer-wins; there are no transactions across keys.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
