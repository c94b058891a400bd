package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hanifmaulana/tokokita/api/background"
	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/core/claims"
	"github.com/hanifmaulana/tokokita/pubsub"
	"github.com/jmoiron/sqlx"
)

// TopicAll receives every transaction mutation; TopicUser narrows the
// stream to one buyer.
const TopicAll = "orders.all"

func TopicUser(userID string) string {
	return "orders.user." + userID
}

// Publish broadcasts the updated transaction to the admin firehose and
// the owner's topic. It runs off the request path; a fanout failure is
// logged by the background runner and never fails the write that
// triggered it.
func Publish(bg *background.Background, broker pubsub.Broker, trx Transaction) {
	payload, err := json.Marshal(trx)
	if err != nil {
		return
	}

	bg.Add(func() {
		ctx := context.Background()
		_ = broker.Publish(ctx, TopicAll, payload)
		_ = broker.Publish(ctx, TopicUser(trx.UserID), payload)
	})
}

// stream pumps snapshots over SSE: the full result set from fetch on
// attach, then again after every change notification on the topic,
// until the client goes away. Replace-on-snapshot, last write wins.
func stream(ctx context.Context, w http.ResponseWriter, broker pubsub.Broker, topic string,
	fetch func(context.Context) ([]Transaction, error)) error {

	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("streaming unsupported by the connection")
	}

	// The server's write timeout would sever the stream mid-flight;
	// this connection stays open until the client goes away.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("clearing write deadline: %w", err)
	}

	ch, cancel, err := broker.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func() error {
		trxs, err := fetch(ctx)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(trxs)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := send(); err != nil {
		return fmt.Errorf("sending initial snapshot: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			if err := send(); err != nil {
				return fmt.Errorf("sending snapshot: %w", err)
			}
		}
	}
}

// HandleStreamOwn streams the caller's transactions.
func HandleStreamOwn(db *sqlx.DB, broker pubsub.Broker) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		fetch := func(ctx context.Context) ([]Transaction, error) {
			return FetchByUser(ctx, db, clm.UserID)
		}

		return stream(ctx, w, broker, TopicUser(clm.UserID), fetch)
	}
}

// HandleStreamAll streams every transaction, for the admin delivery
// dashboard.
func HandleStreamAll(db *sqlx.DB, broker pubsub.Broker) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		fetch := func(ctx context.Context) ([]Transaction, error) {
			return FetchAll(ctx, db)
		}

		return stream(ctx, w, broker, TopicAll, fetch)
	}
}
