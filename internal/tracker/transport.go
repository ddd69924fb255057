package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jobmate/jobboard/internal/model"
)

// Transport delivers a new application to whoever processes it.
type Transport interface {
	Deliver(ctx context.Context, app model.Application) error
}

// LocalTransport stands in for a backend: it only waits Latency, so
// callers keep their asynchronous contract.
type LocalTransport struct {
	Latency time.Duration
}

func (t LocalTransport) Deliver(ctx context.Context, _ model.Application) error {
	if t.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(t.Latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

const submitTimeout = 15 * time.Second

// HTTPTransport POSTs the application as JSON to Endpoint. Any non-2xx
// response is an error.
type HTTPTransport struct {
	Endpoint string
	client   *http.Client
}

// NewHTTPTransport constructs a transport with its own HTTP client.
func NewHTTPTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{
		Endpoint: endpoint,
		client:   &http.Client{Timeout: submitTimeout},
	}
}

func (t *HTTPTransport) Deliver(ctx context.Context, app model.Application) error {
	body, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("submission endpoint returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
