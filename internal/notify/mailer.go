package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayError is a non-2xx response from the mail relay.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("mail relay returned %d: %s", e.Status, e.Body)
}

// Retryable reports whether the failure is worth another attempt.
// Client errors other than throttling are permanent.
func (e *RelayError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// MailRelay posts notification payloads to an HTTP mail-delivery service.
type MailRelay struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMailRelay constructs a relay client for baseURL.
func NewMailRelay(baseURL, apiKey string) *MailRelay {
	return &MailRelay{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the payload to the relay's send endpoint.
func (m *MailRelay) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("X-Api-Key", m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &RelayError{Status: resp.StatusCode, Body: string(snippet)}
	}
	return nil
}
