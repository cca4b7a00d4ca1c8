package middleware

import (
	"context"
	"net/http"
)

// ActorHeader names the operator performing the request. Every mutation is
// recorded against it in the audit trail.
const ActorHeader = "X-Actor"

// DefaultActor is recorded when the header is absent.
const DefaultActor = "system"

type actorContextKey struct{}

// Actor extracts the acting operator from the request headers and stores it
// in the request context.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(ActorHeader)
		if actor == "" {
			actor = DefaultActor
		}

		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the acting operator stored by Actor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorContextKey{}).(string); ok {
		return actor
	}
	return DefaultActor
}
