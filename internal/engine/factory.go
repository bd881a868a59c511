// Package engine provides a reference checkqueue.EngineFactory. It
// does not perform real linguistic analysis; it models the cost and
// lifecycle of one (initialize, activate a rule set, warm up) so the
// rest of the host can be wired and exercised end to end.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abelbrown/lingocheck/internal/checkqueue"
)

// Instance is the Engine handle this factory hands to the worker.
// Ownership is exclusive to the caller, matching checkqueue's
// single-worker contract, but the struct is defensively safe for
// concurrent reads of its fields.
type Instance struct {
	mu          sync.Mutex
	language    string
	activeSlot  int
	initialized time.Time
}

func (e *Instance) Language() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.language
}

func (e *Instance) ActiveSlot() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeSlot
}

// Factory builds Instances. InitDelay/WarmupDelay simulate the cost
// of loading a linguistic model; both default to a few milliseconds
// if left zero.
type Factory struct {
	InitDelay   time.Duration
	WarmupDelay time.Duration
}

// Initialize builds a fresh Instance for language. reuse is advisory
// (set when the caller already holds a live engine, whatever its
// language) and only affects how long initialization simulates taking.
func (f *Factory) Initialize(ctx context.Context, language checkqueue.Language, reuse bool) (checkqueue.Engine, error) {
	delay := f.InitDelay
	if delay == 0 {
		delay = 2 * time.Millisecond
	}
	if reuse {
		delay /= 2
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	return &Instance{language: language.Tag(), initialized: time.Now()}, nil
}

// ActivateRuleSet switches engine's active rule-set slot.
func (f *Factory) ActivateRuleSet(index int, rawEngine checkqueue.Engine) error {
	inst, ok := rawEngine.(*Instance)
	if !ok {
		return fmt.Errorf("engine: ActivateRuleSet given unexpected engine type %T", rawEngine)
	}
	inst.mu.Lock()
	inst.activeSlot = index
	inst.mu.Unlock()
	return nil
}

// Warmup simulates pre-loading the dictionaries for locale.
func (f *Factory) Warmup(rawEngine checkqueue.Engine, locale checkqueue.Locale) error {
	if _, ok := rawEngine.(*Instance); !ok {
		return fmt.Errorf("engine: Warmup given unexpected engine type %T", rawEngine)
	}
	delay := f.WarmupDelay
	if delay == 0 {
		delay = time.Millisecond
	}
	time.Sleep(delay)
	return nil
}
