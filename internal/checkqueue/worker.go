package checkqueue

import (
	"context"
	"fmt"
)

// Worker is the single dedicated consumer of the queue (§4.4). It is
// started by New and runs until it pops a STOP entry or its run loop
// panics (the fatal case, §7).
type Worker struct {
	q       *queueState
	docs    DocumentDirectory
	langs   LanguageRegistry
	engines EngineFactory
	log     Reporter
	events  *eventBus

	// engine is owned exclusively by the worker; no producer ever
	// reaches it (§5, DESIGN NOTES "Global state").
	engine Engine
}

// run is the worker's control loop (§4.4).
func (w *Worker) run() {
	defer func() {
		if r := recover(); r != nil {
			w.log.ReportError(fmt.Errorf("checkqueue: fatal worker error: %v", r))
		}
		w.q.running.Store(false)
	}()

	for {
		w.q.waiting.Store(false)
		w.q.interrupt.Store(false)

		w.q.mu.Lock()
		if len(w.q.buf) == 0 {
			if w.q.lastDocID != "" {
				if e, ok := w.nextFollowUpLocked(w.q.lastStart, w.q.lastCache, w.q.lastDocID); ok {
					w.q.buf = append(w.q.buf, e)
					w.q.mu.Unlock()
					continue
				}
			}
			w.q.lastStart = -1
			w.q.waiting.Store(true)
			for len(w.q.buf) == 0 {
				w.q.cond.Wait()
			}
			w.q.waiting.Store(false)
			w.q.mu.Unlock()
			continue
		}

		n := len(w.q.buf) - 1
		entry := w.q.buf[n]
		w.q.buf[n] = Entry{}
		w.q.buf = w.q.buf[:n]
		w.q.mu.Unlock()

		switch entry.kind {
		case KindStop:
			w.q.running.Store(false)
			return
		case KindWork:
			w.dispatch(entry)
		default:
			// RESET/DISPOSE sentinels are never enqueued in this
			// implementation (Controller.Reset/Dispose act directly on
			// bookkeeping); reaching here would mean a future caller
			// started pushing them without updating the worker.
			w.log.ReportError(fmt.Errorf("checkqueue: unexpected %s entry reached worker buffer", entry.kind))
		}
	}
}

// dispatch resolves the entry's language, reconfigures the engine if
// needed, updates the dedup/follow-up bookkeeping, and runs the check
// (§4.4 step 5).
func (w *Worker) dispatch(entry Entry) {
	doc := w.findDocument(entry.docID)
	if doc == nil || doc.IsDisposed() {
		return
	}

	locale, ok := doc.ParagraphLocaleAt(entry.nStart)
	if !ok || !w.langs.HasLocale(locale) {
		w.log.ReportError(fmt.Errorf("checkqueue: unknown locale for doc %s paragraph %d", entry.docID, entry.nStart))
		return
	}
	entryLanguage := w.langs.LanguageFor(locale)

	w.q.mu.Lock()
	needsInit := w.q.lastLanguage == nil || w.q.lastLanguage.Tag() != entryLanguage.Tag()
	needsCacheSwitch := !needsInit && w.q.lastCache != entry.nCache
	w.q.mu.Unlock()

	switch {
	case needsInit:
		eng, err := w.engines.Initialize(context.Background(), entryLanguage, w.engine != nil)
		if err != nil {
			w.log.ReportError(fmt.Errorf("checkqueue: engine initialize: %w", err))
			return
		}
		w.engine = eng
		if err := w.engines.ActivateRuleSet(1, w.engine); err != nil {
			w.log.ReportError(fmt.Errorf("checkqueue: activate default rule set: %w", err))
		}
		w.q.mu.Lock()
		w.q.lastLanguage = entryLanguage
		w.q.mu.Unlock()

	case needsCacheSwitch:
		if err := w.engines.ActivateRuleSet(entry.nCache, w.engine); err != nil {
			w.log.ReportError(fmt.Errorf("checkqueue: activate rule set %d: %w", entry.nCache, err))
		}
	}

	w.q.mu.Lock()
	w.q.lastDocID = entry.docID
	w.q.lastStart = entry.nStart
	w.q.lastCache = entry.nCache
	w.q.mu.Unlock()

	w.events.publish(Event{Kind: EventDispatchStarted, DocID: entry.docID, NStart: entry.nStart})

	err := w.runCheckSafely(doc, entry)
	if err != nil {
		w.log.ReportError(fmt.Errorf("checkqueue: check failed: %w", err))
	}
	w.events.publish(Event{Kind: EventDispatchFinished, DocID: entry.docID, NStart: entry.nStart, Err: err})
}

// runCheckSafely isolates the worker loop from a panicking collaborator
// (§7 CheckFailure is logged; the loop does not exit on transient
// errors — only a panic at the worker's own outermost frame is fatal).
func (w *Worker) runCheckSafely(doc Document, entry Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in check: %v", r)
		}
	}()
	return doc.RunCheck(context.Background(), entry.nStart, entry.nEnd, entry.nCache, entry.nCheck, entry.overrideRunning, w.engine, w.q.interrupt.Load)
}

func (w *Worker) findDocument(docID string) Document {
	for _, d := range w.docs.Documents() {
		if d.ID() == docID {
			return d
		}
	}
	return nil
}

// nextFollowUpLocked implements the round-robin probe of §4.4. Called
// with q.mu held, per the spec's explicit wording ("under the buffer
// lock, ... call nextFollowUp"); it assumes Document.NextQueueEntry is
// a leaf call that never re-enters the Controller.
func (w *Worker) nextFollowUpLocked(nStart, nCache int, docID string) (Entry, bool) {
	docs := w.docs.Documents()

	idx := -1
	for i, d := range docs {
		if d.ID() == docID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Entry{}, false
	}

	if d := docs[idx]; !d.IsDisposed() {
		if e, ok := d.NextQueueEntry(nStart, nCache); ok {
			return e, true
		}
	}
	for i := idx + 1; i < len(docs); i++ {
		if docs[i].IsDisposed() {
			continue
		}
		if e, ok := docs[i].NextQueueEntry(-1, nCache); ok {
			return e, true
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if docs[i].IsDisposed() {
			continue
		}
		if e, ok := docs[i].NextQueueEntry(-1, nCache); ok {
			return e, true
		}
	}
	return Entry{}, false
}
