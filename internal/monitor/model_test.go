package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/lingocheck/internal/checkqueue"
	"github.com/abelbrown/lingocheck/internal/engine"
	"github.com/abelbrown/lingocheck/internal/lang"
	tea "github.com/charmbracelet/bubbletea"
)

type noopDirectory struct{}

func (noopDirectory) Documents() []checkqueue.Document { return nil }

func newTestController(t *testing.T) *checkqueue.Controller {
	t.Helper()
	return checkqueue.New(noopDirectory{}, lang.NewRegistry("en-US"), &engine.Factory{}, nil)
}

func TestModelInitReturnsACommand(t *testing.T) {
	c := newTestController(t)
	defer c.Stop()

	m := New(c, 10*time.Millisecond, 5)
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("Init() should return a batched command")
	}
}

func TestModelUpdateOnTickRefreshesSnapshot(t *testing.T) {
	c := newTestController(t)
	defer c.Stop()

	m := New(c, 10*time.Millisecond, 5)
	updated, _ := m.Update(tickMsg(time.Now()))
	mm := updated.(Model)

	if mm.snapshot.Running != true {
		t.Fatalf("expected snapshot.Running=true for a freshly started controller")
	}
}

func TestModelUpdateAppendsEventsBounded(t *testing.T) {
	c := newTestController(t)
	defer c.Stop()

	m := New(c, 10*time.Millisecond, 2)
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(eventMsg(checkqueue.Event{Kind: checkqueue.EventSubmitted, DocID: "A"}))
		m = updated.(Model)
	}
	if len(m.history) != 2 {
		t.Fatalf("expected history bounded to 2, got %d", len(m.history))
	}
}

func TestModelQuitsOnQ(t *testing.T) {
	c := newTestController(t)
	defer c.Stop()

	m := New(c, 10*time.Millisecond, 5)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	mm := updated.(Model)
	if !mm.quitting {
		t.Fatalf("expected quitting=true after 'q'")
	}
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
}

func TestModelViewRendersStatus(t *testing.T) {
	c := newTestController(t)
	defer c.Stop()

	m := New(c, 10*time.Millisecond, 5)
	updated, _ := m.Update(tickMsg(time.Now()))
	view := updated.(Model).View()

	if !strings.Contains(view, "checkqueue monitor") {
		t.Fatalf("expected header in view, got %q", view)
	}
}
