package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/louisbranch/basilisk/internal/cable"
	"github.com/louisbranch/basilisk/internal/crisis"
	"github.com/louisbranch/basilisk/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "basilisk.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	record := storage.SessionRecord{
		ID:        "sess-1",
		Seed:      42,
		Mole:      crisis.AdvisorSterling,
		Status:    "ACTIVE",
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := store.PutSession(ctx, record); err != nil {
		t.Fatalf("put session: %v", err)
	}

	got, err := store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if diff := cmp.Diff(record, got); diff != "" {
		t.Errorf("session round trip (-want +got):\n%s", diff)
	}

	// Lifecycle update keeps identity fields.
	ended := created.Add(time.Hour)
	record.Status = "ENDED"
	record.Outcome = "WAR"
	record.UpdatedAt = ended
	record.EndedAt = &ended
	if err := store.PutSession(ctx, record); err != nil {
		t.Fatalf("update session: %v", err)
	}
	got, err = store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get updated session: %v", err)
	}
	if diff := cmp.Diff(record, got); diff != "" {
		t.Errorf("session update (-want +got):\n%s", diff)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetSession(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListSessionsOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		record := storage.SessionRecord{
			ID:        id,
			Seed:      int64(i),
			Mole:      crisis.AdvisorVance,
			Status:    "ACTIVE",
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.PutSession(ctx, record); err != nil {
			t.Fatalf("put session %s: %v", id, err)
		}
	}

	records, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 3 || records[0].ID != "new" || records[2].ID != "old" {
		t.Errorf("unexpected order: %+v", records)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := storage.SessionRecord{
		ID: "sess-1", Seed: 7, Mole: crisis.AdvisorDirectorK, Status: "ACTIVE",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := store.PutSession(ctx, session); err != nil {
		t.Fatalf("put session: %v", err)
	}

	metrics := crisis.NewMetrics()
	metrics.Corruption = 55
	metrics.Turn = 6
	record := storage.SnapshotRecord{
		SessionID: "sess-1",
		Turn:      6,
		Metrics:   metrics,
		Band:      crisis.BandWatching,
		Hostile:   false,
		Suspicion: map[crisis.AdvisorName]int{
			crisis.AdvisorVance:     10,
			crisis.AdvisorDirectorK: 45,
			crisis.AdvisorSterling:  0,
		},
		MoleNeutralized: true,
		Cables: []cable.Cable{
			{ID: "DOC-00AB", Type: cable.TypeInternalMemo, Clearance: "TOP SECRET", Content: "ADMIN: NOTHING.", Reliability: 0.5},
			{ID: "DOC-00CD", Type: cable.TypeIntelligenceCable, Clearance: "TOP SECRET", Content: "FLASH.", Encrypted: true, DecryptCost: 2, Reliability: 0.8},
		},
		RNGState:  0xDEADBEEFCAFE1234,
		UpdatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	}
	if err := store.PutSnapshot(ctx, record); err != nil {
		t.Fatalf("put snapshot: %v", err)
	}

	got, err := store.GetSnapshot(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if diff := cmp.Diff(record, got); diff != "" {
		t.Errorf("snapshot round trip (-want +got):\n%s", diff)
	}
}

func TestGetSnapshotNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetSnapshot(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAppendAndListEvents(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := storage.SessionRecord{
		ID: "sess-1", Seed: 7, Mole: crisis.AdvisorVance, Status: "ACTIVE",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := store.PutSession(ctx, session); err != nil {
		t.Fatalf("put session: %v", err)
	}

	first := []crisis.Event{
		{Type: crisis.EventDirectiveApplied, Message: "EXECUTING."},
		{Type: crisis.EventAnomaly, Message: "ANOMALY [1]."},
	}
	if err := store.AppendEvents(ctx, "sess-1", 1, first); err != nil {
		t.Fatalf("append first turn: %v", err)
	}
	second := []crisis.Event{
		{Type: crisis.EventTraceLock, Message: "LOCK."},
	}
	if err := store.AppendEvents(ctx, "sess-1", 2, second); err != nil {
		t.Fatalf("append second turn: %v", err)
	}

	records, err := store.ListEvents(ctx, "sess-1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d events, want 3", len(records))
	}
	for i, record := range records {
		if record.Seq != int64(i+1) {
			t.Errorf("event %d seq = %d, want %d", i, record.Seq, i+1)
		}
	}
	if records[0].Type != string(crisis.EventDirectiveApplied) || records[2].Turn != 2 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestAppendEventsEmptyIsNoop(t *testing.T) {
	store := openTestStore(t)

	if err := store.AppendEvents(context.Background(), "sess-1", 1, nil); err != nil {
		t.Fatalf("append empty: %v", err)
	}
	records, err := store.ListEvents(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d events, want 0", len(records))
	}
}
