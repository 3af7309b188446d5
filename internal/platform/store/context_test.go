package store

import (
	"context"
	"testing"
)

// TestActorID_SetAndGet sets a actor id and retrieves it
func TestActorID_SetAndGet(t *testing.T) {
	t.Parallel()

	base := context.Background()
	ctx := WithActor(base, "op-42")

	id, ok := ActorID(ctx)
	if !ok {
		t.Fatalf("ActorID not found")
	}
	if id != "op-42" {
		t.Fatalf("ActorID mismatch got=%q want=%q", id, "op-42")
	}
}

// TestActorID_EmptyString reports false when empty string is stored
func TestActorID_EmptyString(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), "")

	id, ok := ActorID(ctx)
	if ok {
		t.Fatalf("ActorID ok should be false for empty value")
	}
	if id != "" {
		t.Fatalf("ActorID should be empty got=%q", id)
	}
}

// TestActorID_NotPresent returns false on base context
func TestActorID_NotPresent(t *testing.T) {
	t.Parallel()

	id, ok := ActorID(context.Background())
	if ok || id != "" {
		t.Fatalf("ActorID should be absent on base context")
	}
}

// TestActorID_NoLeak ensures adding value returns a new ctx and base has no value
func TestActorID_NoLeak(t *testing.T) {
	t.Parallel()

	base := context.Background()
	_ = WithActor(base, "op-42")

	id, ok := ActorID(base)
	if ok || id != "" {
		t.Fatalf("base context should not have actor value")
	}
}

// TestRequestID_SetAndGet sets a request id and retrieves it
func TestRequestID_SetAndGet(t *testing.T) {
	t.Parallel()

	base := context.Background()
	ctx := WithRequestID(base, "req-123")

	id, ok := RequestID(ctx)
	if !ok {
		t.Fatalf("RequestID not found")
	}
	if id != "req-123" {
		t.Fatalf("RequestID mismatch got=%q want=%q", id, "req-123")
	}
}

// TestRequestID_EmptyString reports false when empty string is stored
func TestRequestID_EmptyString(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "")

	id, ok := RequestID(ctx)
	if ok {
		t.Fatalf("RequestID ok should be false for empty value")
	}
	if id != "" {
		t.Fatalf("RequestID should be empty got=%q", id)
	}
}

// TestRequestID_NotPresent returns false on base context
func TestRequestID_NotPresent(t *testing.T) {
	t.Parallel()

	id, ok := RequestID(context.Background())
	if ok || id != "" {
		t.Fatalf("RequestID should be absent on base context")
	}
}

// TestKeys_Isolation ensures actor and request keys do not collide
func TestKeys_Isolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = WithActor(ctx, "op-42")
	ctx = WithRequestID(ctx, "req-123")

	ten, tok := ActorID(ctx)
	req, rok := RequestID(ctx)

	if !tok || ten != "op-42" {
		t.Fatalf("ActorID mismatch tok=%v ten=%q", tok, ten)
	}
	if !rok || req != "req-123" {
		t.Fatalf("RequestID mismatch rok=%v req=%q", rok, req)
	}
}
