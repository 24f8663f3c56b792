package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/shenikar/incident_triage/internal/models"
)

// chanQueue отдает события из канала вместо Redis
type chanQueue struct {
	events chan string
}

func (q *chanQueue) BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	select {
	case <-ctx.Done():
		return redis.NewStringSliceResult(nil, ctx.Err())
	case p := <-q.events:
		return redis.NewStringSliceResult([]string{keys[0], p}, nil)
	case <-time.After(timeout):
		return redis.NewStringSliceResult(nil, redis.Nil)
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func ignoreHTTPConns() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	}
}

func encode(t *testing.T, e Event) string {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return string(b)
}

func TestWorker_DeliversSignedEvent(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreHTTPConns()...)

	type delivery struct {
		body      string
		signature string
	}
	got := make(chan delivery, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got <- delivery{body: string(b), signature: r.Header.Get("X-Webhook-Signature")}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	q := &chanQueue{events: make(chan string, 1)}
	w := NewWebhookWorker(q, quietLogger(), WorkerConfig{
		URL:        srv.URL,
		Secret:     "s3cret",
		Timeout:    time.Second,
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	payload := encode(t, Event{
		Type:           EventStatusChanged,
		IncidentID:     uuid.New(),
		Status:         models.StatusVerified,
		PreviousStatus: models.StatusVerifying,
		Timestamp:      time.Now().UTC(),
	})
	q.events <- payload

	select {
	case d := <-got:
		assert.Equal(t, payload, d.body)
		assert.Equal(t, generateHMACSHA256(payload, "s3cret"), d.signature)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	cancel()
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestWorker_RetriesWithBackoff(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreHTTPConns()...)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWebhookWorker(&chanQueue{}, quietLogger(), WorkerConfig{
		URL:        srv.URL,
		Timeout:    time.Second,
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
	})

	payload := encode(t, Event{Type: EventIncidentCreated, IncidentID: uuid.New()})
	w.deliver(context.Background(), Event{Type: EventIncidentCreated}, payload)
	assert.Equal(t, int32(3), hits.Load())
}

func TestWorker_GivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	w := NewWebhookWorker(&chanQueue{}, quietLogger(), WorkerConfig{
		URL:        srv.URL,
		Timeout:    time.Second,
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
	})
	w.deliver(context.Background(), Event{}, "{}")
	assert.Equal(t, int32(2), hits.Load())
}

func TestWorker_SkipsWithoutURL(t *testing.T) {
	w := NewWebhookWorker(&chanQueue{}, quietLogger(), WorkerConfig{MaxRetries: 3})
	// no server, must return immediately
	w.deliver(context.Background(), Event{}, "{}")
}

func TestGenerateHMACSHA256(t *testing.T) {
	assert.Equal(t,
		"f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8",
		generateHMACSHA256("The quick brown fox jumps over the lazy dog", "key"),
	)
}
