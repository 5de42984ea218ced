package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/models"
)

// Headers carrying the acting user. The identity provider in front of the
// service sets them; they are trusted as-is.
const (
	HeaderUserId   = "X-User-Id"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user stored by Actor.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(models.Actor)
	return actor, ok
}

// Actor reads the acting user from the request headers into the context.
// Mutating requests without a user id are rejected with 400.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := models.Actor{
			Id:   strings.TrimSpace(r.Header.Get(HeaderUserId)),
			Name: strings.TrimSpace(r.Header.Get(HeaderUserName)),
			Role: strings.TrimSpace(r.Header.Get(HeaderUserRole)),
		}
		if actor.Id == "" {
			if isMutating(r.Method) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ledger.Result{Error: "missing " + HeaderUserId + " header"})
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
