package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
)

type outboxRow struct {
	ID          string     `db:"id"`
	Kind        string     `db:"kind"`
	Payload     []byte     `db:"payload"`
	Attempts    int        `db:"attempts"`
	CreatedAt   time.Time  `db:"created_at"`
	DeliveredAt *time.Time `db:"delivered_at"`
	LastError   string     `db:"last_error"`
}

func (r outboxRow) toDomain() (outbox.Entry, error) {
	var payload map[string]any
	if len(r.Payload) > 0 {
		if err := sonic.Unmarshal(r.Payload, &payload); err != nil {
			return outbox.Entry{}, fmt.Errorf("decode payload for outbox entry %s: %w", r.ID, err)
		}
	}
	return outbox.Entry{
		ID:          r.ID,
		Kind:        r.Kind,
		Payload:     payload,
		Attempts:    r.Attempts,
		CreatedAt:   r.CreatedAt,
		DeliveredAt: r.DeliveredAt,
		LastError:   r.LastError,
	}, nil
}

type OutboxRepository struct {
	db *sqlx.DB
}

func NewOutboxRepository(db *sqlx.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Append(ctx context.Context, entry outbox.Entry) error {
	payload, err := sonic.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("encode outbox payload: %w", err)
	}

	const query = `
INSERT INTO outbox_entries (id, kind, payload, attempts, created_at, delivered_at, last_error)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Kind, payload, entry.Attempts, entry.CreatedAt, entry.DeliveredAt, entry.LastError)
	if err != nil {
		return fmt.Errorf("append outbox entry: %w", err)
	}
	return nil
}

func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	const query = `
SELECT id, kind, payload, attempts, created_at, delivered_at, last_error
FROM outbox_entries
WHERE delivered_at IS NULL
ORDER BY created_at ASC
LIMIT $1`

	var rows []outboxRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list pending outbox entries: %w", err)
	}

	entries := make([]outbox.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *OutboxRepository) MarkDelivered(ctx context.Context, entryID string) error {
	const query = `
UPDATE outbox_entries
SET delivered_at = $1, attempts = attempts + 1, last_error = ''
WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), entryID)
	if err != nil {
		return fmt.Errorf("mark outbox entry delivered: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark outbox entry delivered: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("outbox entry %s not found", entryID)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, entryID string, reason string) error {
	const query = `
UPDATE outbox_entries
SET attempts = attempts + 1, last_error = $1
WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, reason, entryID)
	if err != nil {
		return fmt.Errorf("mark outbox entry failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark outbox entry failed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("outbox entry %s not found", entryID)
	}
	return nil
}
