// Package auth resolves the acting user for a request and carries it
// through the context so audit records can attribute every change.
package auth

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/ycetindil/attrio/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor returns a new context carrying the resolved request actor.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if actor == nil {
		return ctx
	}
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the actor stored by WithActor, if any.
func ActorFromContext(ctx context.Context) (*domain.Actor, bool) {
	if ctx == nil {
		return nil, false
	}
	actor, ok := ctx.Value(actorKey).(*domain.Actor)
	if !ok || actor == nil {
		return nil, false
	}
	return actor, true
}

// FromRequest collects identity hints from trusted upstream headers and the
// connection itself. Returns nil when nothing at all is known.
func FromRequest(r *http.Request) *domain.Actor {
	actor := domain.Actor{
		UserID:    strings.TrimSpace(r.Header.Get("X-User-Id")),
		Email:     strings.TrimSpace(r.Header.Get("X-User-Email")),
		Name:      strings.TrimSpace(r.Header.Get("X-User-Name")),
		Role:      strings.TrimSpace(r.Header.Get("X-User-Role")),
		UserAgent: r.UserAgent(),
		IP:        clientIP(r),
	}
	if actor.IsZero() {
		return nil
	}
	return &actor
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
