// Package monitor implements a Bubble Tea dashboard over a running
// checkqueue.Controller: a live snapshot plus a scrolling feed of its
// best-effort lifecycle events.
package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/lingocheck/internal/checkqueue"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

type eventMsg checkqueue.Event

// Model is the root Bubble Tea model for cmd/checkqueue-monitor.
type Model struct {
	controller *checkqueue.Controller
	events     <-chan checkqueue.Event

	refresh   time.Duration
	maxEvents int

	snapshot checkqueue.Snapshot
	history  []checkqueue.Event

	spinner  spinner.Model
	quitting bool
	width    int
	height   int
}

// New builds a Model that watches controller. refresh is the snapshot
// polling interval; maxEvents bounds how many events are retained for
// display.
func New(controller *checkqueue.Controller, refresh time.Duration, maxEvents int) Model {
	if refresh <= 0 {
		refresh = 250 * time.Millisecond
	}
	if maxEvents <= 0 {
		maxEvents = 100
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		controller: controller,
		events:     controller.Events(),
		refresh:    refresh,
		maxEvents:  maxEvents,
		spinner:    sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.refresh), listenEvents(m.events), m.spinner.Tick)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func listenEvents(ch <-chan checkqueue.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.snapshot = m.controller.Snapshot()
		return m, tickCmd(m.refresh)

	case eventMsg:
		m.history = append(m.history, checkqueue.Event(msg))
		if len(m.history) > m.maxEvents {
			m.history = m.history[len(m.history)-m.maxEvents:]
		}
		return m, listenEvents(m.events)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("checkqueue monitor") + "\n\n")

	status := goodStyle.Render("running")
	if !m.snapshot.Running {
		status = badStyle.Render("stopped")
	}
	b.WriteString(labelStyle.Render("status:      ") + status + " " + m.spinner.View() + "\n")
	b.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("pending:     "), valueStyle.Render(fmt.Sprint(m.snapshot.PendingCount))))
	b.WriteString(fmt.Sprintf("%s%v\n", labelStyle.Render("waiting:     "), m.snapshot.Waiting))
	b.WriteString(fmt.Sprintf("%s%v\n", labelStyle.Render("interrupted: "), m.snapshot.Interrupted))
	b.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("last doc:    "), valueStyle.Render(m.snapshot.LastDocID)))
	b.WriteString(fmt.Sprintf("%s%d\n", labelStyle.Render("last start:  "), m.snapshot.LastStart))
	b.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("language:    "), valueStyle.Render(m.snapshot.LastLanguage)))

	b.WriteString("\n" + headerStyle.Render("recent events") + "\n")
	if len(m.history) == 0 {
		b.WriteString(eventRowStyle.Render("(none yet)") + "\n")
	}
	start := 0
	if len(m.history) > 15 {
		start = len(m.history) - 15
	}
	for _, e := range m.history[start:] {
		line := fmt.Sprintf("%-20s doc=%-10s nStart=%d", eventKindName(e.Kind), e.DocID, e.NStart)
		if e.Err != nil {
			line += " err=" + e.Err.Error()
		}
		b.WriteString(eventRowStyle.Render(line) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("q: quit"))
	return panelStyle.Render(b.String())
}

func eventKindName(k checkqueue.EventKind) string {
	switch k {
	case checkqueue.EventSubmitted:
		return "submitted"
	case checkqueue.EventDispatchStarted:
		return "dispatch-started"
	case checkqueue.EventDispatchFinished:
		return "dispatch-finished"
	case checkqueue.EventStopped:
		return "stopped"
	case checkqueue.EventReset:
		return "reset"
	case checkqueue.EventDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
