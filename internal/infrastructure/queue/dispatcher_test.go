package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	done    chan struct{}
}

func newRecordingAudit(expected int) *recordingAudit {
	return &recordingAudit{done: make(chan struct{}, expected)}
}

func (a *recordingAudit) Append(_ context.Context, actor, action, details string) error {
	a.mu.Lock()
	a.entries = append(a.entries, domain.AuditEntry{Actor: actor, Action: action, Details: details})
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *recordingAudit) List(_ context.Context) ([]domain.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AuditEntry(nil), a.entries...), nil
}

func waitFor(t *testing.T, audit *recordingAudit, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-audit.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for alert %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversAlert(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := newRecordingAudit(1)
	d := NewDispatcher(2, audit, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.StockAlert{RecordID: "i1", Item: "Insulin", Quantity: 3, Category: "Medicines"})
	waitFor(t, audit, 1)

	entries, _ := audit.List(ctx)
	entry := entries[0]
	if entry.Actor != SystemActor {
		t.Errorf("actor = %s, want %s", entry.Actor, SystemActor)
	}
	if entry.Action != "low stock alert" {
		t.Errorf("action = %s", entry.Action)
	}
	if entry.Details != "Insulin down to 3 units" {
		t.Errorf("details = %s", entry.Details)
	}
}

func TestDispatcher_SameRecordSameShard(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	first := d.shardIndex("record-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("record-42"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	audit := newRecordingAudit(4)
	d := NewDispatcher(1, audit, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.StockAlert{RecordID: "i1", Item: "Gauze", Quantity: 1, Category: "Supplies"})
	waitFor(t, audit, 1)

	cancel()
	// Give the worker a moment to observe cancellation, then verify nothing
	// else is processed.
	time.Sleep(50 * time.Millisecond)
	d.Enqueue(ports.StockAlert{RecordID: "i2", Item: "Gloves", Quantity: 2, Category: "Supplies"})
	time.Sleep(50 * time.Millisecond)

	entries, _ := audit.List(context.Background())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after cancel, got %d", len(entries))
	}
}
