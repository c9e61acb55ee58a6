package http

import (
	"context"
	"strings"

	"aubri-backend/internal/domain"
)

type contextKey string

const (
	actorKey contextKey = "actor"
	tokenKey contextKey = "token"
)

// ActorFromContext returns the signed-in user resolved by the auth
// middleware, or nil for anonymous requests.
func ActorFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(actorKey).(*domain.User)
	return u
}

func tokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

func withSession(ctx context.Context, token string, actor *domain.User) context.Context {
	ctx = context.WithValue(ctx, tokenKey, token)
	if actor != nil {
		ctx = context.WithValue(ctx, actorKey, actor)
	}
	return ctx
}

// bearerToken strips an optional "Bearer " prefix from the Authorization
// header.
func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
