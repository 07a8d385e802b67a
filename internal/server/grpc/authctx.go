package grpcserver

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type ctxKey string

const sessionIDKey ctxKey = "pg.sessionID"

// WithSessionID stores the caller's session ID in context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromCtx fetches the session ID from context.
func SessionIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(sessionIDKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
