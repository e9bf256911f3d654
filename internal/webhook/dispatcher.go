package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sraju03/editor-sub000/internal/config"
)

// Dispatcher delivers signed event payloads to subscriber endpoints,
// retrying failed deliveries with a quadratic backoff.
type Dispatcher struct {
	db          *pgxpool.Pool
	httpClient  *http.Client
	maxAttempts int
	deliveries  chan DeliveryRequest
}

type DeliveryRequest struct {
	WebhookID uuid.UUID
	URL       string
	Secret    string
	Event     string
	Payload   []byte
}

func NewDispatcher(db *pgxpool.Pool, cfg config.WebhookConfig) *Dispatcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}

	d := &Dispatcher{
		db:          db,
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: attempts,
		deliveries:  make(chan DeliveryRequest, 1000),
	}
	go d.processLoop()
	return d
}

func (d *Dispatcher) Enqueue(req DeliveryRequest) {
	select {
	case d.deliveries <- req:
	default:
		slog.Warn("webhook delivery queue full, dropping", "webhook_id", req.WebhookID, "event", req.Event)
	}
}

func (d *Dispatcher) processLoop() {
	for req := range d.deliveries {
		d.deliver(req)
	}
}

func (d *Dispatcher) deliver(req DeliveryRequest) {
	var (
		status  int
		lastErr error
	)

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt*attempt) * 500 * time.Millisecond)
		}

		status, lastErr = d.post(req)
		if lastErr == nil && status < 400 {
			d.recordDelivery(req, status, attempt, true)
			return
		}
		slog.Warn("webhook delivery attempt failed",
			"webhook_id", req.WebhookID,
			"event", req.Event,
			"attempt", attempt,
			"status", status,
			"error", lastErr,
		)
	}

	d.recordDelivery(req, status, d.maxAttempts, false)
}

func (d *Dispatcher) post(req DeliveryRequest) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.httpClient.Timeout+5*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", req.URL, bytes.NewReader(req.Payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Webhook-Event", req.Event)
	httpReq.Header.Set("X-Webhook-Signature", Sign(req.Payload, req.Secret))
	httpReq.Header.Set("X-Webhook-ID", req.WebhookID.String())

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func (d *Dispatcher) recordDelivery(req DeliveryRequest, status, attempts int, delivered bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var deliveredAt *time.Time
	if delivered {
		now := time.Now()
		deliveredAt = &now
	}

	_, err := d.db.Exec(ctx,
		`INSERT INTO webhook_deliveries (webhook_id, event, payload, response_status, attempts, delivered_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		req.WebhookID, req.Event, req.Payload, status, attempts, deliveredAt,
	)
	if err != nil {
		slog.Error("failed to record webhook delivery", "error", err)
	}
}

// Sign computes the payload signature subscribers verify.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return fmt.Sprintf("sha256=%s", hex.EncodeToString(mac.Sum(nil)))
}
