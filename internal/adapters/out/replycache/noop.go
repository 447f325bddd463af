package replycache

import (
	"context"

	"foodbot/internal/core/ports"
)

var _ ports.ReplyCache = Noop{}

// Noop never caches anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error) {
	return "", ports.ErrReplyNotCached
}

func (Noop) Set(context.Context, string, string) error {
	return nil
}
