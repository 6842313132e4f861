package ports

import "context"

// IdempotencyStore remembers the outcome of requests carrying an idempotency key.
type IdempotencyStore interface {
	// Reserve claims key. When the key is already taken, reserved is false and
	// stored holds the completed value, or is empty while the first request is
	// still running.
	Reserve(ctx context.Context, key string) (reserved bool, stored string, err error)

	// Complete records value as the outcome of key.
	Complete(ctx context.Context, key, value string) error

	// Release frees key so that the request can be retried.
	Release(ctx context.Context, key string) error
}
