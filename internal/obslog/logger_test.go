package obslog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Log("dispatch started", "doc", "A", "nStart", 3)

	out := buf.String()
	if !strings.Contains(out, "dispatch started") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "doc=A") {
		t.Fatalf("expected key=value pair in output, got %q", out)
	}
}

func TestReportErrorWritesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.ReportError(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "boom") {
		t.Fatalf("expected error text in output, got %q", out)
	}
}

func TestReportErrorIgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.ReportError(nil)

	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error, got %q", buf.String())
	}
}

func TestWithPrefixScoped(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	sub := l.WithPrefix("worker")

	sub.Log("ready")

	if !strings.Contains(buf.String(), "worker") {
		t.Fatalf("expected prefix in output, got %q", buf.String())
	}
}
