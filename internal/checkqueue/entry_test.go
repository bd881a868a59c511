package checkqueue

import "testing"

func TestEntryValid(t *testing.T) {
	cases := []struct {
		name string
		e    Entry
		want bool
	}{
		{"ok", NewWork(0, 10, 0, 0, "A", false), true},
		{"negative start", NewWork(-1, 10, 0, 0, "A", false), false},
		{"end not after start", NewWork(5, 5, 0, 0, "A", false), false},
		{"end before start", NewWork(5, 4, 0, 0, "A", false), false},
		{"negative cache", NewWork(0, 10, -1, 0, "A", false), false},
		{"empty docID", NewWork(0, 10, 0, 0, "", false), false},
		{"stop is never valid", makeStop(), false},
		{"reset is never valid", makeReset(), false},
		{"dispose is never valid", makeDispose("A"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.e.valid(); got != c.want {
				t.Fatalf("valid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEntryEqualIdentityIgnoresEndAndOverride(t *testing.T) {
	a := NewWork(0, 10, 1, 2, "A", false)
	b := NewWork(0, 999, 1, 2, "A", true)
	if !a.equalIdentity(b) {
		t.Fatalf("expected identity match ignoring nEnd/overrideRunning")
	}
}

func TestEntryEqualIdentityDistinguishesNCheck(t *testing.T) {
	a := NewWork(0, 10, 1, 2, "A", false)
	b := NewWork(0, 10, 1, 3, "A", false)
	if a.equalIdentity(b) {
		t.Fatalf("expected identity mismatch on differing nCheck")
	}
}

func TestEntryEqualIdentityDistinguishesDocID(t *testing.T) {
	a := NewWork(0, 10, 1, 2, "A", false)
	b := NewWork(0, 10, 1, 2, "B", false)
	if a.equalIdentity(b) {
		t.Fatalf("expected identity mismatch on differing docID")
	}
}

func TestControlEntriesNeverEqualIdentity(t *testing.T) {
	w := NewWork(0, 10, 0, 0, "A", false)
	for _, ctrl := range []Entry{makeStop(), makeReset(), makeDispose("A")} {
		if ctrl.equalIdentity(w) || w.equalIdentity(ctrl) || ctrl.equalIdentity(ctrl) {
			t.Fatalf("control entry %s must never equalIdentity anything", ctrl.Kind())
		}
	}
}

func TestEntryFlag(t *testing.T) {
	if f := NewWork(0, 10, 0, 0, "A", false).Flag(); f != NoFlag {
		t.Fatalf("WORK entry Flag() = %d, want NoFlag", f)
	}
	if f := makeReset().Flag(); f != ResetFlag {
		t.Fatalf("RESET entry Flag() = %d, want ResetFlag", f)
	}
	if f := makeStop().Flag(); f != StopFlag {
		t.Fatalf("STOP entry Flag() = %d, want StopFlag", f)
	}
	if f := makeDispose("A").Flag(); f != DisposeFlag {
		t.Fatalf("DISPOSE entry Flag() = %d, want DisposeFlag", f)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindWork:    "work",
		KindStop:    "stop",
		KindReset:   "reset",
		KindDispose: "dispose",
		Kind(99):    "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
