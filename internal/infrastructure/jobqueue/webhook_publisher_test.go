package jobqueue

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

func testEntry() outbox.Entry {
	return outbox.Entry{
		ID:        "ob-1",
		Kind:      outbox.KindPropagationFailure,
		Payload:   map[string]any{"player_id": "gal-fwd-01", "delta": float64(7)},
		CreatedAt: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestWebhookPublisher_PublishSendsEntryJSON(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL:       server.URL,
		AuthToken: "hook-token",
		Timeout:   2 * time.Second,
	}, logging.NewNop())

	if err := publisher.Publish(t.Context(), testEntry()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if gotAuth != "Bearer hook-token" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}

	var decoded map[string]any
	if err := sonic.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("decode webhook body: %v", err)
	}
	if decoded["id"] != "ob-1" {
		t.Fatalf("unexpected id in body: %v", decoded["id"])
	}
	if decoded["kind"] != outbox.KindPropagationFailure {
		t.Fatalf("unexpected kind in body: %v", decoded["kind"])
	}
	if decoded["createdAt"] != "2026-05-10T12:00:00Z" {
		t.Fatalf("unexpected createdAt in body: %v", decoded["createdAt"])
	}
}

func TestWebhookPublisher_ClientErrorIsFinal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL:        server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	}, logging.NewNop())

	err := publisher.Publish(t.Context(), testEntry())
	if err == nil {
		t.Fatalf("expected error for 422 response")
	}
	if !strings.Contains(err.Error(), "webhook status=422") {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries for a 4xx, got %d calls", calls.Load())
	}
}

func TestWebhookPublisher_RequiresURL(t *testing.T) {
	t.Parallel()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{}, logging.NewNop())
	if err := publisher.Publish(t.Context(), testEntry()); err == nil {
		t.Fatalf("expected error when webhook url is not configured")
	}
}
