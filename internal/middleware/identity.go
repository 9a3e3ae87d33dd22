package middleware

import (
	"net/http"

	"github.com/ycetindil/attrio/internal/auth"
)

// Identity resolves the acting user from the request once and stores it in
// the context for handlers and audit records downstream.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := auth.FromRequest(r); actor != nil {
			r = r.WithContext(auth.WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}
