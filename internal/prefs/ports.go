// Package prefs defines the key-value port the persisted preferences go
// through.
package prefs

import "context"

// Store holds opaque string values by key. Get reports ok=false for a
// missing key, which is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
