package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records every send and fails the recipients listed in
// failTo with a fixed 422 body.
type fakeProvider struct {
	mu       sync.Mutex
	received []message
	failTo   map[string]bool
}

func (p *fakeProvider) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var m message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		p.mu.Lock()
		p.received = append(p.received, m)
		p.mu.Unlock()

		if p.failTo[m.To] {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}
}

func newTestClient(t *testing.T, p *fakeProvider) (*Client, *httptest.Server) {
	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL, "Booking Bot <bot@example.com>"), srv
}

func TestSendOK(t *testing.T) {
	p := &fakeProvider{}
	c, _ := newTestClient(t, p)

	require.NoError(t, c.Send(context.Background(), "a@x.com", "subj", "body"))
	require.Len(t, p.received, 1)
	assert.Equal(t, "Booking Bot <bot@example.com>", p.received[0].From)
	assert.Equal(t, "a@x.com", p.received[0].To)
}

func TestSendCapturesStatusAndBody(t *testing.T) {
	p := &fakeProvider{failTo: map[string]bool{"bad@x.com": true}}
	c, _ := newTestClient(t, p)

	err := c.Send(context.Background(), "bad@x.com", "subj", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestBroadcastAllSucceed(t *testing.T) {
	p := &fakeProvider{}
	c, _ := newTestClient(t, p)

	res := c.Broadcast(context.Background(), []string{"a@x.com", "b@x.com"}, "subj", "body")
	assert.True(t, res.OK())
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, res.Sent)
	assert.Empty(t, res.Failures)
}

// A failure on one recipient never prevents attempting the others, and
// each outcome is recorded independently.
func TestBroadcastPartialFailure(t *testing.T) {
	p := &fakeProvider{failTo: map[string]bool{"b@x.com": true}}
	c, _ := newTestClient(t, p)

	res := c.Broadcast(context.Background(), []string{"a@x.com", "b@x.com"}, "subj", "body")
	assert.False(t, res.OK())
	assert.Equal(t, []string{"a@x.com"}, res.Sent)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "b@x.com", res.Failures[0].To)
	assert.Contains(t, res.Failures[0].Error, "invalid recipient")

	// Both recipients were attempted despite the injected fault.
	assert.Len(t, p.received, 2)
}

func TestBroadcastTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // sends now fail at the transport level
	c := New("test-key", srv.URL, "")

	res := c.Broadcast(context.Background(), []string{"a@x.com"}, "subj", "body")
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "a@x.com", res.Failures[0].To)
	assert.NotEmpty(t, res.Failures[0].Error)
}

func TestSplitRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, SplitRecipients(" a@x.com , b@x.com "))
	assert.Equal(t, []string{"a@x.com"}, SplitRecipients("a@x.com,,"))
	assert.Empty(t, SplitRecipients(""))
}

func TestNewDefaults(t *testing.T) {
	c := New("k", "", "")
	assert.Equal(t, DefaultAPIURL, c.apiURL)
	assert.Equal(t, DefaultFrom, c.from)
}
