package jobqueue

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/platform/resilience"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	URL            string
	AuthToken      string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher delivers outbox entries to the operators' reconciliation
// webhook.
type WebhookPublisher struct {
	client         *fasthttp.Client
	url            string
	authToken      string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) *WebhookPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client:         &fasthttp.Client{},
		url:            strings.TrimSpace(cfg.URL),
		authToken:      strings.TrimSpace(cfg.AuthToken),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Publish posts one outbox entry as JSON. Retries cover transport errors and
// retryable statuses only; a 4xx is final.
func (p *WebhookPublisher) Publish(ctx context.Context, entry outbox.Entry) error {
	if p.url == "" {
		return crerr.New("webhook url is not configured")
	}
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected delivery", "state", p.breaker.State())
			return fmt.Errorf("webhook is temporarily unavailable: %w", err)
		}
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	encoded, err := sonic.Marshal(map[string]any{
		"id":        entry.ID,
		"kind":      entry.Kind,
		"payload":   entry.Payload,
		"attempts":  entry.Attempts,
		"createdAt": entry.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal outbox entry")
	}
	_, _ = body.Write(encoded)

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := p.send(body.Bytes())
		if err == nil {
			p.recordCircuitResult(nil)
			p.logger.InfoContext(ctx, "outbox entry delivered", "entryId", entry.ID, "kind", entry.Kind)
			return nil
		}
		lastErr = err
		if !stderrors.Is(err, errWebhookTransient) {
			break
		}
		if attempt == p.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	p.recordCircuitResult(lastErr)
	return crerr.Wrapf(lastErr, "deliver outbox entry %s", entry.ID)
}

func (p *WebhookPublisher) send(body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.authToken)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return fmt.Errorf("%w: send webhook request: %v", errWebhookTransient, err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == fasthttp.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: webhook status=%d", errWebhookTransient, status)
	default:
		return fmt.Errorf("webhook status=%d", status)
	}
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errWebhookTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}
