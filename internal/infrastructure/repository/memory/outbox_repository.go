package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
)

type OutboxRepository struct {
	mu      sync.RWMutex
	entries []outbox.Entry
	now     func() time.Time
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{now: time.Now}
}

func (r *OutboxRepository) Append(_ context.Context, entry outbox.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		return fmt.Errorf("outbox entry id is required")
	}
	r.entries = append(r.entries, cloneEntry(entry))
	return nil
}

func (r *OutboxRepository) ListPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]outbox.Entry, 0, limit)
	for _, entry := range r.entries {
		if entry.DeliveredAt != nil {
			continue
		}
		out = append(out, cloneEntry(entry))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkDelivered(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == entryID {
			deliveredAt := r.now().UTC()
			r.entries[i].DeliveredAt = &deliveredAt
			r.entries[i].Attempts++
			r.entries[i].LastError = ""
			return nil
		}
	}
	return fmt.Errorf("outbox entry %s not found", entryID)
}

func (r *OutboxRepository) MarkFailed(_ context.Context, entryID string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == entryID {
			r.entries[i].Attempts++
			r.entries[i].LastError = reason
			return nil
		}
	}
	return fmt.Errorf("outbox entry %s not found", entryID)
}

func cloneEntry(entry outbox.Entry) outbox.Entry {
	out := entry
	if entry.Payload != nil {
		out.Payload = make(map[string]any, len(entry.Payload))
		for k, v := range entry.Payload {
			out.Payload[k] = v
		}
	}
	if entry.DeliveredAt != nil {
		deliveredAt := *entry.DeliveredAt
		out.DeliveredAt = &deliveredAt
	}
	return out
}
