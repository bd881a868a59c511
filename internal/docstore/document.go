package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/abelbrown/lingocheck/internal/checkqueue"
)

// Document adapts a single document's rows in Store to
// checkqueue.Document.
type Document struct {
	id    string
	store *Store
}

// NewDocument wraps docID's rows in store as a checkqueue.Document.
// The caller is responsible for having created the document first via
// Store.CreateDocument.
func NewDocument(store *Store, docID string) *Document {
	return &Document{id: docID, store: store}
}

func (d *Document) ID() string { return d.id }

func (d *Document) IsDisposed() bool { return d.store.IsDisposed(d.id) }

// NextQueueEntry looks for the lowest-indexed dirty paragraph and, if
// found, clears its dirty bit and returns a follow-up Entry for it.
// nStart is not consulted, so the paragraph most recently dispatched
// is returned again if it is still dirty.
func (d *Document) NextQueueEntry(nStart, nCache int) (checkqueue.Entry, bool) {
	idx, ok, err := d.store.NextDirtyParagraph(d.id)
	if err != nil || !ok {
		return checkqueue.Entry{}, false
	}
	return checkqueue.NewWork(idx, idx+1, nCache, 0, d.id, false), true
}

// ParagraphLocaleAt returns the locale recorded for the paragraph at
// nStart.
func (d *Document) ParagraphLocaleAt(nStart int) (checkqueue.Locale, bool) {
	locale, ok := d.store.ParagraphLocale(d.id, nStart)
	if !ok {
		return "", false
	}
	return checkqueue.Locale(locale), true
}

// RunCheck audits the dispatch via Store.BeginCheck/FinishCheck and
// then walks the requested paragraph range, yielding to interrupted
// between paragraphs so a Stop/Dispose can cut the work short.
func (d *Document) RunCheck(ctx context.Context, nStart, nEnd, nCache, nCheck int, overrideRunning bool, engine checkqueue.Engine, interrupted func() bool) error {
	token, err := d.store.BeginCheck(d.id, nStart, nEnd, nCache)
	if err != nil {
		return err
	}

	runErr := d.runRange(ctx, nStart, nEnd, engine, interrupted)
	if finishErr := d.store.FinishCheck(token, runErr); finishErr != nil && runErr == nil {
		runErr = finishErr
	}
	return runErr
}

func (d *Document) runRange(ctx context.Context, nStart, nEnd int, engine checkqueue.Engine, interrupted func() bool) error {
	for idx := nStart; idx < nEnd; idx++ {
		if interrupted() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if engine == nil {
			return fmt.Errorf("docstore: no engine available for doc %s", d.id)
		}

		// A real integration would hand the paragraph text to engine
		// here; the reference store only tracks dirty bits.
		time.Sleep(time.Millisecond)
	}
	return nil
}
