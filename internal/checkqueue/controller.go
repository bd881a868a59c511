package checkqueue

import (
	"fmt"
	"time"
)

// MaxInterruptTicks is the default bound on waitForInterrupt: at most
// this many 1ms ticks are spent waiting for the worker to observe
// interrupt before giving up (§5, §7 InterruptTimeout). A Controller
// may override it via WithMaxInterruptTicks.
const MaxInterruptTicks = 2000

// Controller is the public facade over the check queue: submit, stop,
// reset, dispose and the status predicates. It owns the queueState and
// the single long-lived Worker started at construction (§4.4 "Thread
// startup").
type Controller struct {
	q                 *queueState
	worker            *Worker
	log               Reporter
	events            *eventBus
	maxInterruptTicks int
}

// Option configures a Controller at construction. See
// WithMaxInterruptTicks.
type Option func(*Controller)

// WithMaxInterruptTicks overrides MaxInterruptTicks for this
// Controller, letting a host trade a shorter cancellation bound for
// faster Reset/Dispose timeouts (Stop does not wait), or a longer one for collaborators
// known to poll their interrupted func infrequently. n <= 0 is ignored
// and the default stands.
func WithMaxInterruptTicks(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxInterruptTicks = n
		}
	}
}

// New builds a Controller and starts its worker. docs, langs and
// engines are the host's collaborators (§6); log may be nil, in which
// case a no-op Reporter is used.
func New(docs DocumentDirectory, langs LanguageRegistry, engines EngineFactory, log Reporter, opts ...Option) *Controller {
	if log == nil {
		log = noopReporter{}
	}
	q := newQueueState()
	eb := newEventBus()
	c := &Controller{
		q:                 q,
		log:               log,
		events:            eb,
		maxInterruptTicks: MaxInterruptTicks,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.worker = &Worker{
		q:       q,
		docs:    docs,
		langs:   langs,
		engines: engines,
		log:     log,
		events:  eb,
	}
	go c.worker.run()
	return c
}

// Submit schedules a check of [nStart, nEnd) in rule-cache slot
// nCache, for docID. Invalid submissions (§3 invariant 6) are
// rejected silently. Duplicate identities are coalesced (§4.3):
// without overrideRunning a pending or in-flight equivalent request
// suppresses the new one; with overrideRunning a pending equivalent
// that lacks overrideRunning is replaced and moved to the head of the
// LIFO buffer, while one that already carries it suppresses the new one.
func (c *Controller) Submit(nStart, nEnd, nCache, nCheck int, docID string, overrideRunning bool) {
	candidate := NewWork(nStart, nEnd, nCache, nCheck, docID, overrideRunning)
	if !candidate.valid() {
		return
	}

	q := c.q
	q.mu.Lock()
	defer q.mu.Unlock()

	// Fast path: the in-flight/most-recently-dispatched entry already
	// covers this request. Identity here is the triple named in §4.3,
	// deliberately narrower than full WORK equality (no nCheck).
	if !overrideRunning && nStart == q.lastStart && nCache == q.lastCache && docID == q.lastDocID {
		return
	}

	for i, e := range q.buf {
		if !e.equalIdentity(candidate) {
			continue
		}
		if overrideRunning && !e.overrideRunning {
			q.buf = append(q.buf[:i], q.buf[i+1:]...)
			break
		}
		// Equal entry already queued and the newcomer doesn't improve
		// on it: coalesce by doing nothing.
		return
	}

	q.interrupt.Store(false)
	q.buf = append(q.buf, candidate)
	q.cond.Signal()
	c.events.publish(Event{Kind: EventSubmitted, DocID: docID, NStart: nStart})
}

// Stop drains pending work, interrupts any in-flight check and
// terminates the worker. Safe to call multiple times; a second call
// while the worker has already exited is a no-op because running is
// false by then.
//
// The buffer clear and the STOP append are two separate critical
// sections rather than one, matching the source's own two-step stop
// (DESIGN.md "Open Question 2"). A Submit racing between them can land
// its WORK entry after the sentinel, and since the buffer is
// LIFO-consumed that late WORK is dispatched before STOP is seen. This
// is preserved rather than fixed.
func (c *Controller) Stop() {
	q := c.q
	if !q.running.Load() {
		return
	}
	q.clear()
	q.interrupt.Store(true)
	q.pushBack(makeStop())
	c.events.publish(Event{Kind: EventStopped})
}

// Reset drops the cached engine so the next dispatched WORK entry
// re-initializes it (lazily — Reset itself never touches the engine).
// Pending work is cleared first.
func (c *Controller) Reset() {
	q := c.q
	q.mu.Lock()
	q.buf = q.buf[:0]
	needsWait := !q.waiting.Load() && q.lastStart >= 0
	q.mu.Unlock()

	if needsWait {
		c.waitForInterrupt()
	}

	q.mu.Lock()
	q.lastLanguage = nil
	q.cond.Signal()
	q.mu.Unlock()
	c.events.publish(Event{Kind: EventReset})
}

// Dispose removes every pending and in-flight trace of docID. It does
// not touch the engine.
func (c *Controller) Dispose(docID string) {
	q := c.q
	q.mu.Lock()
	kept := q.buf[:0]
	for _, e := range q.buf {
		if e.kind == KindWork && e.docID == docID {
			continue
		}
		kept = append(kept, e)
	}
	q.buf = kept
	needsWait := !q.waiting.Load() && q.lastDocID == docID
	q.mu.Unlock()

	if needsWait {
		c.waitForInterrupt()
	}

	q.mu.Lock()
	if q.lastDocID == docID {
		q.lastDocID = ""
	}
	q.mu.Unlock()
	c.events.publish(Event{Kind: EventDisposed, DocID: docID})
}

// IsRunning reports whether the worker has not yet processed a Stop.
func (c *Controller) IsRunning() bool { return c.q.running.Load() }

// IsWaiting reports whether the worker is currently blocked on its
// wakeup condition with an empty buffer and no follow-up available.
func (c *Controller) IsWaiting() bool { return c.q.waiting.Load() }

// IsInterrupted reports whether an interrupt has been requested and
// not yet acknowledged by the worker.
func (c *Controller) IsInterrupted() bool { return c.q.interrupt.Load() }

// Events returns a channel of best-effort lifecycle notifications, for
// observability tools such as internal/monitor. Sends never block a
// producer or the worker: a slow subscriber drops events (§"status
// snapshot & event feed" in SPEC_FULL.md).
func (c *Controller) Events() <-chan Event { return c.events.subscribe() }

// Snapshot returns a point-in-time read of the queue's bookkeeping.
func (c *Controller) Snapshot() Snapshot {
	q := c.q
	q.mu.Lock()
	defer q.mu.Unlock()
	s := Snapshot{
		PendingCount: len(q.buf),
		Running:      q.running.Load(),
		Waiting:      q.waiting.Load(),
		Interrupted:  q.interrupt.Load(),
		LastDocID:    q.lastDocID,
		LastStart:    q.lastStart,
		LastCache:    q.lastCache,
	}
	if q.lastLanguage != nil {
		s.LastLanguage = q.lastLanguage.Tag()
	}
	return s
}

// waitForInterrupt requests an interrupt and spin-waits, at 1ms
// intervals bounded by maxInterruptTicks, for the worker to clear it
// (§5). On timeout it logs and returns regardless — the collaborator
// may still be running (§7 InterruptTimeout).
func (c *Controller) waitForInterrupt() {
	q := c.q
	q.interrupt.Store(true)

	for i := 0; i < c.maxInterruptTicks; i++ {
		if !q.interrupt.Load() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	if q.interrupt.Load() {
		c.log.ReportError(fmt.Errorf("checkqueue: waitForInterrupt exceeded %d ticks", c.maxInterruptTicks))
	}
}

type noopReporter struct{}

func (noopReporter) Log(string, ...any)   {}
func (noopReporter) ReportError(error)    {}
