package docstore

import "testing"

func TestOpenCreatesTables(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	for _, table := range []string{"documents", "paragraphs", "checks"} {
		var name string
		err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("%s table not created: %v", table, err)
		}
	}
}

func TestCreateDocumentAndDisposal(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	paras := []Paragraph{
		{DocID: "A", Index: 0, Locale: "en-US", Text: "hello"},
		{DocID: "A", Index: 1, Locale: "en-US", Text: "world"},
	}
	if err := st.CreateDocument("A", paras); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if st.IsDisposed("A") {
		t.Fatalf("freshly created document should not be disposed")
	}
	if !st.IsDisposed("unknown") {
		t.Fatalf("unknown document should report disposed=true defensively")
	}

	if err := st.DisposeDocument("A"); err != nil {
		t.Fatalf("DisposeDocument: %v", err)
	}
	if !st.IsDisposed("A") {
		t.Fatalf("expected A to be disposed after DisposeDocument")
	}
}

func TestDocumentIDsPreservesInsertionOrder(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	for _, id := range []string{"B", "A", "C"} {
		if err := st.CreateDocument(id, nil); err != nil {
			t.Fatalf("CreateDocument(%s): %v", id, err)
		}
	}

	ids, err := st.DocumentIDs()
	if err != nil {
		t.Fatalf("DocumentIDs: %v", err)
	}
	want := []string{"B", "A", "C"}
	if len(ids) != len(want) {
		t.Fatalf("DocumentIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("DocumentIDs[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestMarkDirtyAndNextDirtyParagraph(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	paras := []Paragraph{
		{DocID: "A", Index: 0, Locale: "en-US"},
		{DocID: "A", Index: 1, Locale: "en-US"},
		{DocID: "A", Index: 2, Locale: "en-US"},
	}
	if err := st.CreateDocument("A", paras); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if _, ok, err := st.NextDirtyParagraph("A"); err != nil || ok {
		t.Fatalf("expected no dirty paragraph initially, got ok=%v err=%v", ok, err)
	}

	if err := st.MarkDirty("A", 2); err != nil {
		t.Fatalf("MarkDirty: %v", err)
	}
	if err := st.MarkDirty("A", 0); err != nil {
		t.Fatalf("MarkDirty: %v", err)
	}

	idx, ok, err := st.NextDirtyParagraph("A")
	if err != nil || !ok {
		t.Fatalf("expected a dirty paragraph, got ok=%v err=%v", ok, err)
	}
	if idx != 0 {
		t.Fatalf("expected lowest-indexed dirty paragraph first, got %d", idx)
	}

	idx, ok, err = st.NextDirtyParagraph("A")
	if err != nil || !ok || idx != 2 {
		t.Fatalf("expected second dirty paragraph 2, got idx=%d ok=%v err=%v", idx, ok, err)
	}

	if _, ok, _ := st.NextDirtyParagraph("A"); ok {
		t.Fatalf("expected dirty paragraphs to be exhausted")
	}
}

func TestBeginAndFinishCheck(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if err := st.CreateDocument("A", nil); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	token, err := st.BeginCheck("A", 0, 5, 0)
	if err != nil {
		t.Fatalf("BeginCheck: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty correlation token")
	}

	if err := st.FinishCheck(token, nil); err != nil {
		t.Fatalf("FinishCheck: %v", err)
	}

	records, err := st.RecentChecks("A", 10)
	if err != nil {
		t.Fatalf("RecentChecks: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 check record, got %d", len(records))
	}
	if records[0].Token != token {
		t.Fatalf("RecentChecks token = %q, want %q", records[0].Token, token)
	}
}
