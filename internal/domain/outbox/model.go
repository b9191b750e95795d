package outbox

import "time"

const KindPropagationFailure = "propagation_failure"

// Entry is one pending operator notification. Settlement appends an entry
// when a propagation fan-out leaves teams unpaid; the dispatcher delivers it
// to the configured webhook so operators can reconcile.
type Entry struct {
	ID          string
	Kind        string
	Payload     map[string]any
	Attempts    int
	CreatedAt   time.Time
	DeliveredAt *time.Time
	LastError   string
}
