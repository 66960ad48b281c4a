package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entries := []*Entry{
		{DocumentID: "doc-a", Tool: "docs_append", Requests: 4, EndIndex: 120},
		{DocumentID: "doc-b", Tool: "docs_insert", Requests: 1, EndIndex: 7},
		{DocumentID: "doc-a", Tool: "docs_append", Requests: 9, EndIndex: 300},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
		if e.ID == "" {
			t.Fatal("Record() did not assign an id")
		}
	}

	all, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}

	docA, err := store.List(ctx, "doc-a", 0)
	if err != nil {
		t.Fatalf("List(doc-a) error: %v", err)
	}
	if len(docA) != 2 {
		t.Fatalf("got %d entries for doc-a, want 2", len(docA))
	}
	for _, e := range docA {
		if e.DocumentID != "doc-a" {
			t.Errorf("filtered list returned %q", e.DocumentID)
		}
	}
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, &Entry{DocumentID: "d", Tool: "docs_append", Requests: 1}); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}
	got, err := store.List(ctx, "", 2)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
}
