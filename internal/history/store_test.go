package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vctag/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entries := []history.Entry{
		{OpID: "op-1", Operation: "append", Target: "/music/a.ogg", TagCount: 2, Outcome: history.OutcomeOK},
		{OpID: "op-2", Operation: "write", Target: "/music/b.ogg", TagCount: 1, Escapes: true, Outcome: "external tool error: exit status 1"},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record entry: %v", err)
		}
	}

	recent, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].OpID != "op-2" {
		t.Fatalf("expected newest entry first, got %q", recent[0].OpID)
	}
	if recent[0].OK() {
		t.Fatal("expected failed outcome for op-2")
	}
	if !recent[1].OK() {
		t.Fatal("expected ok outcome for op-1")
	}
	if !recent[0].Escapes {
		t.Fatal("expected escapes flag to round trip")
	}
	if recent[0].CreatedAt.IsZero() {
		t.Fatal("expected created timestamp to be stamped")
	}
}

func TestRecentFiltersByTarget(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, target := range []string{"/music/a.ogg", "/music/b.ogg", "/music/a.ogg"} {
		if err := store.Record(ctx, history.Entry{OpID: "op", Operation: "append", Target: target, Outcome: history.OutcomeOK}); err != nil {
			t.Fatalf("record entry: %v", err)
		}
	}

	recent, err := store.Recent(ctx, "/music/a.ogg", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 filtered entries, got %d", len(recent))
	}
	for _, entry := range recent {
		if entry.Target != "/music/a.ogg" {
			t.Fatalf("unexpected target %q", entry.Target)
		}
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := history.Entry{
			OpID:      "op",
			Operation: "append",
			Target:    "/music/a.ogg",
			Outcome:   history.OutcomeOK,
			CreatedAt: time.Now().UTC(),
		}
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record entry: %v", err)
		}
	}

	recent, err := store.Recent(ctx, "", 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := history.Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestNilStoreIsInert(t *testing.T) {
	var store *history.Store
	if err := store.Record(context.Background(), history.Entry{}); err != nil {
		t.Fatalf("nil store record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil store close: %v", err)
	}
}
