// Command checkqueue-monitor runs the Bubble Tea dashboard over a
// checkqueue.Controller wired to the same reference collaborators as
// checkqueue-demo, so the two can be run side by side against a
// shared database path.
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
	"github.com/abelbrown/lingocheck/internal/monitor"
	"github.com/abelbrown/lingocheck/internal/obslog"
	tea "github.com/charmbracelet/bubbletea"
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

	registry := lang.NewRegistry("en-US", "fr-FR")
	factory := &engine.Factory{}
	directory := docstore.NewDirectory(store)

	controller := checkqueue.New(directory, registry, factory, logger,
		checkqueue.WithMaxInterruptTicks(cfg.Queue.InterruptWaitTicks))
	defer controller.Stop()

	refresh := time.Duration(cfg.Monitor.RefreshMs) * time.Millisecond
	m := monitor.New(controller, refresh, cfg.Monitor.EventHistory)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.ReportError(fmt.Errorf("monitor exited: %w", err))
		os.Exit(1)
	}
}
