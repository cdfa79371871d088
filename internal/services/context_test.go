package services

import (
	"context"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	id, ok := RunIDFromContext(ctx)
	if !ok || id != "run-1" {
		t.Fatalf("got %q, %v", id, ok)
	}
	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatal("expected absent run id")
	}
}

func TestPhaseRoundTrip(t *testing.T) {
	ctx := WithPhase(context.Background(), "files")
	phase, ok := PhaseFromContext(ctx)
	if !ok || phase != "files" {
		t.Fatalf("got %q, %v", phase, ok)
	}
	if WithPhase(context.Background(), "") != context.Background() {
		t.Fatal("empty phase should not annotate context")
	}
}
