// Package limiter defines per-client request rate limiting.
package limiter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Limiter decides whether a client may make another request.
type Limiter interface {
	// Allow reports whether a request keyed by key may proceed and, if not, when to retry.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// HashIP returns a stable hash for an IP string to avoid keeping raw addresses.
func HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])
}
