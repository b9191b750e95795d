package jobqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/memory"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

type recordingPublisher struct {
	mu      sync.Mutex
	seen    []string
	failIDs map[string]struct{}
}

func (p *recordingPublisher) Publish(_ context.Context, entry outbox.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, entry.ID)
	if _, fail := p.failIDs[entry.ID]; fail {
		return errors.New("delivery refused")
	}
	return nil
}

func seedOutbox(t *testing.T, repo *memory.OutboxRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		err := repo.Append(t.Context(), outbox.Entry{
			ID:        id,
			Kind:      outbox.KindPropagationFailure,
			Payload:   map[string]any{"teamIds": []string{"team-1"}},
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("append outbox entry: %v", err)
		}
	}
}

func TestDispatcher_Drain_DeliversAndMarks(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, "entry-1", "entry-2", "entry-3")

	publisher := &recordingPublisher{failIDs: map[string]struct{}{"entry-2": {}}}
	dispatcher := NewDispatcher(repo, publisher, DispatcherConfig{Workers: 2}, logging.NewNop())

	report, err := dispatcher.Drain(t.Context())
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if report.Delivered != 2 || report.Failed != 1 {
		t.Fatalf("expected delivered=2 failed=1, got %+v", report)
	}

	pending, err := repo.ListPending(t.Context(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "entry-2" {
		t.Fatalf("expected only entry-2 pending, got %+v", pending)
	}
	if pending[0].Attempts != 1 || pending[0].LastError == "" {
		t.Fatalf("expected failure recorded on entry-2, got %+v", pending[0])
	}
}

func TestDispatcher_Drain_SkipsExhaustedEntries(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seedOutbox(t, repo, "entry-1")

	publisher := &recordingPublisher{failIDs: map[string]struct{}{"entry-1": {}}}
	dispatcher := NewDispatcher(repo, publisher, DispatcherConfig{MaxAttempts: 2}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := dispatcher.Drain(t.Context()); err != nil {
			t.Fatalf("drain %d failed: %v", i, err)
		}
	}

	report, err := dispatcher.Drain(t.Context())
	if err != nil {
		t.Fatalf("final drain failed: %v", err)
	}
	if report.Exhausted != 1 || report.Failed != 0 {
		t.Fatalf("expected entry parked after max attempts, got %+v", report)
	}
	if len(publisher.seen) != 2 {
		t.Fatalf("expected 2 delivery attempts, got %d", len(publisher.seen))
	}
}

func TestDispatcher_Drain_EmptyOutbox(t *testing.T) {
	repo := memory.NewOutboxRepository()
	dispatcher := NewDispatcher(repo, &recordingPublisher{}, DispatcherConfig{}, logging.NewNop())

	report, err := dispatcher.Drain(t.Context())
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if report != (DrainReport{}) {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
