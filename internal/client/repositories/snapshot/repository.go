// Package snapshot persists the serialized identity of the signed-in user
// in a local key/value slot so a restarted process can restore the session
// without a network round trip.
package snapshot

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
