package history

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Count(t.Context())
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestRecord_FillsDefaults(t *testing.T) {
	store := newTestStore(t)

	before := time.Now()
	e, err := store.Record(t.Context(), Entry{Op: OpPut, Source: "cli", Sent: "world", Received: "WORLD"})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if e.ID == "" {
		t.Error("ID should be generated")
	}
	if e.At.Before(before) {
		t.Error("At should be set to now")
	}
	if e.Failed() {
		t.Error("entry without error should not be failed")
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, sent := range []string{"one", "two", "three"} {
		_, err := store.Record(t.Context(), Entry{
			Op:   OpPut,
			Sent: sent,
			At:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Recent(t.Context(), 2)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(entries))
	}
	if entries[0].Sent != "three" || entries[1].Sent != "two" {
		t.Errorf("order = %q, %q", entries[0].Sent, entries[1].Sent)
	}
	if !entries[0].At.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("At = %v, timestamp not preserved", entries[0].At)
	}
}

func TestRecent_ZeroLimit(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Record(t.Context(), Entry{Op: OpFetch}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(t.Context(), 0)
	if err != nil || entries != nil {
		t.Errorf("Recent(0) = %v, %v", entries, err)
	}
}

func TestRecord_PreservesVerbatimText(t *testing.T) {
	store := newTestStore(t)
	text := "  HELLO \n\tWORLD  \n"

	if _, err := store.Record(t.Context(), Entry{Op: OpFetch, Received: text, Error: ""}); err != nil {
		t.Fatal(err)
	}

	entries, _ := store.Recent(t.Context(), 1)
	if entries[0].Received != text {
		t.Errorf("Received = %q, want %q", entries[0].Received, text)
	}
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)
	base := time.Now()

	for i := 0; i < 5; i++ {
		_, err := store.Record(t.Context(), Entry{Op: OpPut, At: base.Add(time.Duration(i) * time.Second)})
		if err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Prune(t.Context(), 3); err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}

	count, _ := store.Count(t.Context())
	if count != 3 {
		t.Errorf("Count() = %d after prune, want 3", count)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Record(t.Context(), Entry{Op: OpMode, Sent: "clock", Error: "boom"}); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(t.Context()); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	count, _ := store.Count(t.Context())
	if count != 0 {
		t.Errorf("Count() = %d after clear", count)
	}
}

func TestRecord_Concurrent(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Record(t.Context(), Entry{Op: OpPut, Source: "tui"}); err != nil {
				t.Errorf("Record() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	count, _ := store.Count(t.Context())
	if count != 10 {
		t.Errorf("Count() = %d, want 10", count)
	}
}
