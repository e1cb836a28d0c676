// Package cache stores short text values such as announcements and featured
// speaker messages.
package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store. A zero ttl keeps the value until it is
// overwritten or deleted.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
