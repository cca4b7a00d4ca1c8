package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestActorFromHeader(t *testing.T) {
	var got string
	handler := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	req.Header.Set(ActorHeader, "gerda")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "gerda" {
		t.Fatalf("expected actor gerda, got %q", got)
	}
}

func TestActorDefaultsWhenHeaderAbsent(t *testing.T) {
	var got string
	handler := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != DefaultActor {
		t.Fatalf("expected default actor, got %q", got)
	}
}

func TestActorFromContextWithoutMiddleware(t *testing.T) {
	if got := ActorFromContext(context.Background()); got != DefaultActor {
		t.Fatalf("expected default actor, got %q", got)
	}
}
