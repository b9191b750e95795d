package outbox

import "context"

// Repository describes outbox persistence needs from settlement and the
// dispatcher.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	ListPending(ctx context.Context, limit int) ([]Entry, error)
	MarkDelivered(ctx context.Context, entryID string) error
	MarkFailed(ctx context.Context, entryID string, reason string) error
}
