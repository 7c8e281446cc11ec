package memory

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss without error, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "k", `{"state":{}}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != `{"state":{}}` {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := s.Set(ctx, "k", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "k"); v != "second" {
		t.Fatalf("expected overwrite, got %q", v)
	}
}

func TestMemoryStoreRejectsEmptyKey(t *testing.T) {
	if err := New().Set(context.Background(), "  ", "v"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	v, ok, err := New().Get(context.Background(), "absent")
	if err != nil || ok || v != "" {
		t.Fatalf("expected a clean miss, got v=%q ok=%v err=%v", v, ok, err)
	}
}
