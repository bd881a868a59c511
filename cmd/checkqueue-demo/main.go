// Command checkqueue-demo wires a checkqueue.Controller to the
// docstore/lang/engine reference collaborators, seeds a couple of
// documents, and drives a short scripted sequence of edits so the
// queue's coalescing, override and follow-up behavior can be observed
// from the logs.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abelbrown/lingocheck/internal/checkqueue"
	"github.com/abelbrown/lingocheck/internal/config"
	"github.com/abelbrown/lingocheck/internal/docstore"
	"github.com/abelbrown/lingocheck/internal/engine"
	"github.com/abelbrown/lingocheck/internal/lang"
	"github.com/abelbrown/lingocheck/internal/obslog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := obslog.NewFile(cfg.Logging.Dir)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logger.Close()

	store, err := docstore.Open(cfg.Store.Path)
	if err != nil {
		logger.ReportError(fmt.Errorf("open store: %w", err))
		os.Exit(1)
	}
	defer store.Close()

	seedDocuments(store)

	registry := lang.NewRegistry("en-US", "fr-FR")
	factory := &engine.Factory{InitDelay: 5 * time.Millisecond}
	directory := docstore.NewDirectory(store)

	controller := checkqueue.New(directory, registry, factory, logger,
		checkqueue.WithMaxInterruptTicks(cfg.Queue.InterruptWaitTicks))
	defer controller.Stop()

	go reportEvents(logger, controller.Events())

	runScript(controller, store)

	time.Sleep(200 * time.Millisecond)
	snap := controller.Snapshot()
	logger.Log("demo finished", "pending", snap.PendingCount, "lastDocID", snap.LastDocID)
}

func seedDocuments(store *docstore.Store) {
	_ = store.CreateDocument("memo.docx", []docstore.Paragraph{
		{Index: 0, Locale: "en-US", Text: "This is teh first paragraph."},
		{Index: 1, Locale: "en-US", Text: "A second paragraph follows."},
		{Index: 2, Locale: "en-US", Text: "And a third, for good measure."},
	})
	_ = store.CreateDocument("lettre.docx", []docstore.Paragraph{
		{Index: 0, Locale: "fr-FR", Text: "Ceci est un paragraphe."},
	})
}

func runScript(c *checkqueue.Controller, store *docstore.Store) {
	// S1: a simple edit.
	c.Submit(0, 29, 0, 0, "memo.docx", false)
	time.Sleep(20 * time.Millisecond)

	// S2: rapid retyping of the same paragraph coalesces.
	for i := 0; i < 5; i++ {
		c.Submit(0, 29, 0, 0, "memo.docx", false)
	}

	// S3: the same request with overrideRunning is not coalesced away:
	// it replaces a pending equivalent, or is queued again even while
	// an equivalent is in flight.
	c.Submit(0, 29, 0, 0, "memo.docx", true)

	// S6: mark a sibling paragraph dirty so the worker picks it up as a
	// follow-up once memo.docx's queue drains.
	_ = store.MarkDirty("memo.docx", 2)

	// A document in a different locale forces an engine re-init.
	c.Submit(0, 23, 0, 0, "lettre.docx", false)
}

func reportEvents(logger *obslog.Logger, events <-chan checkqueue.Event) {
	for e := range events {
		logger.Log("event", "kind", int(e.Kind), "doc", e.DocID, "nStart", e.NStart)
	}
}
