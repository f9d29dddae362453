package utils

import (
	"context"

	"cinema-api/internal/data/entity"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "request_id"
)

// Identity is the outcome of token verification for a request: either
// anonymous or an authenticated user snapshot. It is set once by the
// Authenticate middleware and read by role middleware and handlers.
type Identity struct {
	User *entity.User
}

// Anonymous is the identity of a request carrying no token.
var Anonymous = Identity{}

func (i Identity) Authenticated() bool {
	return i.User != nil
}

func (i Identity) Role() entity.UserRole {
	if i.User == nil {
		return ""
	}
	return i.User.Role
}

func SetIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

func GetIdentity(ctx context.Context) Identity {
	ident, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Anonymous
	}
	return ident
}

func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
