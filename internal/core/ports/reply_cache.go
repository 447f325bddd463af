package ports

import (
	"context"
	"errors"
)

// ErrReplyNotCached is returned by ReplyCache.Get on a miss.
var ErrReplyNotCached = errors.New("reply not cached")

// ReplyCache remembers the reply sent for a webhook delivery so a retried
// delivery is answered without applying its cart change twice.
type ReplyCache interface {
	// Get returns the cached reply for key or ErrReplyNotCached.
	Get(ctx context.Context, key string) (string, error)

	// Set stores reply under key.
	Set(ctx context.Context, key, reply string) error
}
