package requestctx

import (
	"context"
	"testing"

	"salarydash/internal/domain/auth"
)

func TestRequestID(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
	ctx := WithRequestID(context.Background(), "req-1")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
}

func TestSession(t *testing.T) {
	if _, ok := GetSession(context.Background()); ok {
		t.Fatal("did not expect a session")
	}
	if _, ok := GetSession(WithSession(context.Background(), auth.Session{})); ok {
		t.Fatal("empty session must not count")
	}
	session, ok := GetSession(WithSession(context.Background(), auth.Session{Username: "admin", Role: auth.RoleAdmin}))
	if !ok || !session.IsAdmin() {
		t.Fatalf("unexpected session: %+v", session)
	}
}
