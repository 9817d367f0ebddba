// Package mailer wraps the transactional email provider's HTTP API and
// implements the per-recipient notification fan-out.  The provider is
// treated as a black box: one POST per message, bearer-key auth, and
// any non-2xx response body is captured verbatim as the per-recipient
// error detail.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DefaultAPIURL is the provider's send endpoint.  Tests point the
// client at a local server instead.
const DefaultAPIURL = "https://api.resend.com/emails"

// DefaultFrom is the sender used until a verified domain is configured.
const DefaultFrom = "Booking Bot <onboarding@resend.dev>"

// Client sends individual emails through the provider API.  No retry or
// timeout policy is layered on top of the HTTP client's defaults.
type Client struct {
	apiURL string
	apiKey string
	from   string
	http   *http.Client
}

// New returns a Client authenticated with the given API key.  Empty
// apiURL and from fall back to the provider defaults.
func New(apiKey, apiURL, from string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if from == "" {
		from = DefaultFrom
	}
	return &Client{apiURL: apiURL, apiKey: apiKey, from: from, http: http.DefaultClient}
}

// message is the provider's send payload.
type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send delivers one email to a single recipient.  A non-2xx response
// yields an error carrying the response body so callers can report the
// provider's own diagnostic per recipient.
func (c *Client) Send(ctx context.Context, to, subject, text string) error {
	body, err := json.Marshal(message{From: c.from, To: to, Subject: subject, Text: text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
}

// SendFailure records one recipient's failed delivery.
type SendFailure struct {
	To    string `json:"to"`
	Error string `json:"error"`
}

// BroadcastResult accounts for every recipient of a fan-out
// independently.  Sent and Failures together cover the full recipient
// list, each preserving the configured recipient order.
type BroadcastResult struct {
	Sent     []string
	Failures []SendFailure
}

// OK reports whether every recipient succeeded.
func (r BroadcastResult) OK() bool { return len(r.Failures) == 0 }

// Broadcast sends the same message to every recipient, one independent
// request each.  Sends run concurrently and are all attempted
// regardless of individual failures; the result is only assembled once
// every send has settled.  Each goroutine writes to its own slot of the
// outcomes slice, so no further synchronization is needed beyond the
// join.
func (c *Client) Broadcast(ctx context.Context, recipients []string, subject, text string) BroadcastResult {
	outcomes := make([]error, len(recipients))
	var wg sync.WaitGroup
	for i, to := range recipients {
		wg.Add(1)
		go func(i int, to string) {
			defer wg.Done()
			outcomes[i] = c.Send(ctx, to, subject, text)
		}(i, to)
	}
	wg.Wait()

	var res BroadcastResult
	for i, to := range recipients {
		if outcomes[i] != nil {
			res.Failures = append(res.Failures, SendFailure{To: to, Error: outcomes[i].Error()})
			continue
		}
		res.Sent = append(res.Sent, to)
	}
	return res
}

// SplitRecipients parses a comma-separated recipient list, trimming
// whitespace and dropping empty entries.  Order is preserved from the
// configuration string.
func SplitRecipients(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
