package api

import (
	"net/http"

	"github.com/ycetindil/attrio/internal/auth"
	"github.com/ycetindil/attrio/internal/domain"
)

// actorFromRequest prefers the actor resolved by the identity middleware and
// falls back to reading the request directly when the handler is mounted bare.
func actorFromRequest(r *http.Request) *domain.Actor {
	if actor, ok := auth.ActorFromContext(r.Context()); ok {
		return actor
	}
	return auth.FromRequest(r)
}
