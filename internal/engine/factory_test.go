package engine

import (
	"context"
	"testing"
	"time"
)

type fakeLanguage struct{ tag string }

func (l fakeLanguage) Tag() string { return l.tag }

func TestInitializeReturnsInstanceForLanguage(t *testing.T) {
	f := &Factory{InitDelay: time.Millisecond}
	eng, err := f.Initialize(context.Background(), fakeLanguage{tag: "en-US"}, false)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	inst, ok := eng.(*Instance)
	if !ok {
		t.Fatalf("expected *Instance, got %T", eng)
	}
	if inst.Language() != "en-US" {
		t.Fatalf("Language() = %q, want en-US", inst.Language())
	}
}

func TestActivateRuleSetSetsSlot(t *testing.T) {
	f := &Factory{}
	eng, err := f.Initialize(context.Background(), fakeLanguage{tag: "en-US"}, false)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := f.ActivateRuleSet(3, eng); err != nil {
		t.Fatalf("ActivateRuleSet: %v", err)
	}
	if got := eng.(*Instance).ActiveSlot(); got != 3 {
		t.Fatalf("ActiveSlot() = %d, want 3", got)
	}
}

func TestActivateRuleSetRejectsForeignEngine(t *testing.T) {
	f := &Factory{}
	if err := f.ActivateRuleSet(1, "not an engine"); err == nil {
		t.Fatalf("expected an error for a non-*Instance engine")
	}
}

func TestInitializeRespectsContextCancellation(t *testing.T) {
	f := &Factory{InitDelay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Initialize(ctx, fakeLanguage{tag: "en-US"}, false)
	if err == nil {
		t.Fatalf("expected context cancellation error")
	}
}
