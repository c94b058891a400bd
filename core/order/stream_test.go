package order

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hanifmaulana/tokokita/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamWriter is a concurrency-safe ResponseWriter with the flushing
// and deadline surface a live stream needs.
type streamWriter struct {
	mu       sync.Mutex
	header   http.Header
	status   int
	buf      bytes.Buffer
	deadline *time.Time
}

func newStreamWriter() *streamWriter {
	return &streamWriter{header: make(http.Header)}
}

func (w *streamWriter) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.header
}

func (w *streamWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *streamWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = code
}

func (w *streamWriter) Flush() {}

func (w *streamWriter) SetWriteDeadline(d time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deadline = &d
	return nil
}

func (w *streamWriter) body() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStreamReplaysSnapshotOnAttachAndPublish(t *testing.T) {
	broker := pubsub.NewMemory()
	w := newStreamWriter()

	var mu sync.Mutex
	trxs := []Transaction{{ID: "TRX-1-AAAAAA"}}
	fetch := func(ctx context.Context) ([]Transaction, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]Transaction, len(trxs))
		copy(out, trxs)
		return out, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- stream(ctx, w, broker, "orders.test", fetch)
	}()

	// Attaching replays the current state before any publish.
	waitFor(t, func() bool {
		return strings.Count(w.body(), "event: snapshot") == 1
	})
	assert.Contains(t, w.body(), "TRX-1-AAAAAA")

	mu.Lock()
	trxs = append(trxs, Transaction{ID: "TRX-2-BBBBBB"})
	mu.Unlock()
	require.NoError(t, broker.Publish(ctx, "orders.test", []byte("changed")))

	// Each notification triggers a fresh full fetch.
	waitFor(t, func() bool {
		return strings.Count(w.body(), "event: snapshot") == 2
	})
	assert.Contains(t, w.body(), "TRX-2-BBBBBB")

	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, "text/event-stream", w.header.Get("Content-Type"))
	assert.Equal(t, http.StatusOK, w.status)

	// The stream must outlive the server's write timeout.
	if assert.NotNil(t, w.deadline) {
		assert.True(t, w.deadline.IsZero())
	}
}

// plainWriter lacks Flush, like a connection that cannot stream.
type plainWriter struct {
	header http.Header
	buf    bytes.Buffer
}

func (w *plainWriter) Header() http.Header         { return w.header }
func (w *plainWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *plainWriter) WriteHeader(code int)        {}

func TestStreamRequiresFlusher(t *testing.T) {
	w := &plainWriter{header: make(http.Header)}

	err := stream(context.Background(), w, pubsub.NewMemory(), "orders.test", nil)
	assert.Error(t, err)
	assert.Zero(t, w.buf.Len())
}
