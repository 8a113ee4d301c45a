package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/httputil"
)

// Transport carries update messages across the external boundary to the
// rendering side. Implementations must be safe for use from multiple
// goroutines.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// =============================================================================
// Channel Transport
// =============================================================================

// ChannelTransport delivers messages over an in-process channel. It serves
// embeddings where the rendering side runs in the same process (and the test
// suite, which asserts on the exact messages sent).
type ChannelTransport struct {
	ch chan Message
}

// NewChannelTransport creates a channel transport with the given buffer size.
func NewChannelTransport(buffer int) *ChannelTransport {
	return &ChannelTransport{ch: make(chan Message, buffer)}
}

// Send delivers msg to the channel, honoring context cancellation when the
// buffer is full.
func (t *ChannelTransport) Send(ctx context.Context, msg Message) error {
	select {
	case t.ch <- msg:
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeInternal, ctx.Err(), "transport send cancelled")
	}
}

// Messages exposes the receive side of the channel.
func (t *ChannelTransport) Messages() <-chan Message {
	return t.ch
}

// =============================================================================
// HTTP Transport
// =============================================================================

// HTTPTransport posts messages as JSON to a remote message intake endpoint,
// typically the chartbridge server's /v1/instances/{id}/messages route.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates an HTTP transport targeting baseURL. A nil client
// falls back to http.DefaultClient.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Send posts msg to the remote intake endpoint. Transient failures (network
// errors, 5xx responses) are retried with backoff; other non-2xx responses
// are reported as internal errors carrying the response status.
func (t *HTTPTransport) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode message")
	}

	url := fmt.Sprintf("%s/v1/instances/%s/messages", t.baseURL, msg.ID)
	return httputil.RetryWithBackoff(ctx, func() error {
		return t.post(ctx, url, body, msg.Kind)
	})
}

func (t *HTTPTransport) post(ctx context.Context, url string, body []byte, kind Kind) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return httputil.Retryable(
			errors.Wrap(errors.ErrCodeInternal, err, "failed to send %s message", kind))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the error message; the rest is
		// discarded.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		sendErr := errors.New(errors.ErrCodeInternal,
			"remote rejected %s message: %s: %s", kind, resp.Status, snippet)
		if resp.StatusCode >= 500 {
			return httputil.Retryable(sendErr)
		}
		return sendErr
	}
	return nil
}
