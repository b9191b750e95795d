package statsfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/platform/resilience"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

const defaultBaseURL = "https://feed.gaastats.example.com/v1"

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errStatsFeedTransient = crerr.New("statsfeed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls official match statistics from the county board feed.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type statLinePayload struct {
	PlayerRef     string `json:"player_ref"`
	PlayerName    string `json:"player_name"`
	Goals         int    `json:"goals"`
	Points        int    `json:"points"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
	Saves         int    `json:"saves"`
	PenaltySaves  int    `json:"penalty_saves"`
	Hooks         int    `json:"hooks"`
	Blocks        int    `json:"blocks"`
}

type matchStatsEnvelope struct {
	Data struct {
		MatchRef  string            `json:"match_ref"`
		Round     int               `json:"round"`
		HomeTeam  string            `json:"home_team"`
		AwayTeam  string            `json:"away_team"`
		HomeScore string            `json:"home_score"`
		AwayScore string            `json:"away_score"`
		Lines     []statLinePayload `json:"lines"`
	} `json:"data"`
}

type roundMatchesEnvelope struct {
	Data []struct {
		MatchRef string `json:"match_ref"`
	} `json:"data"`
}

// FetchMatchStats pulls the feed's current statistics lines for one match.
func (c *Client) FetchMatchStats(ctx context.Context, matchRef string) (usecase.ExternalMatchStats, error) {
	matchRef = strings.TrimSpace(matchRef)
	if matchRef == "" {
		return usecase.ExternalMatchStats{}, fmt.Errorf("match ref is required")
	}

	var envelope matchStatsEnvelope
	path := "/matches/" + url.PathEscape(matchRef) + "/stats"
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return usecase.ExternalMatchStats{}, fmt.Errorf("fetch match stats match_ref=%s: %w", matchRef, err)
	}

	out := usecase.ExternalMatchStats{
		MatchRef:       strings.TrimSpace(envelope.Data.MatchRef),
		GameweekNumber: envelope.Data.Round,
		HomeTeam:       strings.TrimSpace(envelope.Data.HomeTeam),
		AwayTeam:       strings.TrimSpace(envelope.Data.AwayTeam),
		HomeScore:      strings.TrimSpace(envelope.Data.HomeScore),
		AwayScore:      strings.TrimSpace(envelope.Data.AwayScore),
	}
	if out.MatchRef == "" {
		out.MatchRef = matchRef
	}
	for _, line := range envelope.Data.Lines {
		if strings.TrimSpace(line.PlayerRef) == "" {
			continue
		}
		out.Lines = append(out.Lines, usecase.ExternalStatLine{
			PlayerRef:     strings.TrimSpace(line.PlayerRef),
			PlayerName:    strings.TrimSpace(line.PlayerName),
			Goals:         line.Goals,
			Points:        line.Points,
			YellowCards:   line.YellowCards,
			RedCards:      line.RedCards,
			MinutesPlayed: line.MinutesPlayed,
			Saves:         line.Saves,
			PenaltySaves:  line.PenaltySaves,
			Hooks:         line.Hooks,
			Blocks:        line.Blocks,
		})
	}
	return out, nil
}

// FetchRoundMatchRefs lists the feed match references scheduled for a
// championship round.
func (c *Client) FetchRoundMatchRefs(ctx context.Context, round int) ([]string, error) {
	if round <= 0 {
		return nil, fmt.Errorf("round must be greater than zero")
	}

	var envelope roundMatchesEnvelope
	path := fmt.Sprintf("/rounds/%d/matches", round)
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch round matches round=%d: %w", round, err)
	}

	refs := make([]string, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		ref := strings.TrimSpace(item.MatchRef)
		if ref == "" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "statsfeed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.token != "" {
		values.Set("api_token", c.token)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(path+"?"+values.Encode(), func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errStatsFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errStatsFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errStatsFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errStatsFeedTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "statsfeed request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func redactAPIURL(fullURL string) string {
	return apiTokenParamRegex.ReplaceAllString(fullURL, "api_token=REDACTED")
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
