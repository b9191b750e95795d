package statsfeed

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/platform/resilience"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

func TestFetchMatchStats_ParsesEnvelope(t *testing.T) {
	t.Parallel()

	var gotPath, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("api_token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"match_ref": "feed-mt-1",
				"round": 3,
				"home_team": "Galway",
				"away_team": "Cork",
				"home_score": "2-14",
				"away_score": "1-18",
				"lines": [
					{"player_ref": "feed-p-1", "player_name": "A Player", "goals": 1, "points": 4, "minutes_played": 70},
					{"player_ref": "", "player_name": "ignored"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		Logger:  logging.NewNop(),
	})

	stats, err := client.FetchMatchStats(t.Context(), "feed-mt-1")
	if err != nil {
		t.Fatalf("fetch match stats: %v", err)
	}

	if gotPath != "/matches/feed-mt-1/stats" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotToken != "secret-token" {
		t.Fatalf("expected api_token query param, got %q", gotToken)
	}
	if stats.MatchRef != "feed-mt-1" || stats.GameweekNumber != 3 {
		t.Fatalf("unexpected match header: %+v", stats)
	}
	if stats.HomeScore != "2-14" || stats.AwayScore != "1-18" {
		t.Fatalf("unexpected scores: %q %q", stats.HomeScore, stats.AwayScore)
	}
	if len(stats.Lines) != 1 {
		t.Fatalf("expected one stat line after dropping empty ref, got %d", len(stats.Lines))
	}
	if stats.Lines[0].PlayerRef != "feed-p-1" || stats.Lines[0].Goals != 1 || stats.Lines[0].MinutesPlayed != 70 {
		t.Fatalf("unexpected stat line: %+v", stats.Lines[0])
	}
}

func TestFetchMatchStats_RequiresMatchRef(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchMatchStats(t.Context(), "  "); err == nil {
		t.Fatalf("expected error for empty match ref")
	}
}

func TestFetchMatchStats_NonRetryableStatusFailsWithoutRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	_, err := client.FetchMatchStats(t.Context(), "missing")
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "feed status=404") {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt for non-retryable status, got %d", calls.Load())
	}
}

func TestFetchRoundMatchRefs_ParsesRefs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rounds/4/matches" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"match_ref": "feed-mt-7"}, {"match_ref": " "}, {"match_ref": "feed-mt-8"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	refs, err := client.FetchRoundMatchRefs(t.Context(), 4)
	if err != nil {
		t.Fatalf("fetch round matches: %v", err)
	}
	if len(refs) != 2 || refs[0] != "feed-mt-7" || refs[1] != "feed-mt-8" {
		t.Fatalf("unexpected refs: %v", refs)
	}
}

func TestFetchRoundMatchRefs_RejectsNonPositiveRound(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchRoundMatchRefs(t.Context(), 0); err == nil {
		t.Fatalf("expected error for round 0")
	}
}

func TestFetchMatchStats_CircuitOpensAfterServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchMatchStats(t.Context(), "feed-mt-1"); err == nil {
		t.Fatalf("expected error for 500 response")
	}

	_, err := client.FetchMatchStats(t.Context(), "feed-mt-1")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once circuit is open, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected the open circuit to short-circuit the second call, got %d requests", calls.Load())
	}
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	got := redactAPIURL("https://feed.example.com/v1/matches/x/stats?api_token=super-secret&foo=bar")
	if strings.Contains(got, "super-secret") {
		t.Fatalf("token leaked in %q", got)
	}
	if !strings.Contains(got, "api_token=REDACTED") {
		t.Fatalf("expected redaction marker in %q", got)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`dial tcp: lookup feed?api_token=abc123 token abc123`, "abc123")
	if strings.Contains(got, "abc123") {
		t.Fatalf("token leaked in %q", got)
	}
}
