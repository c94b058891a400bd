// Package pubsub delivers document snapshots to live subscribers. A
// subscriber receives the full payload published on its topic; there is
// no diffing and no ordering guarantee beyond publish order. The last
// snapshot wins, mirroring the replace-on-snapshot model the tracking
// views are built on.
package pubsub

import "context"

// Broker fans payloads out to topic subscribers.
type Broker interface {
	// Publish delivers payload to every current subscriber of topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Subscribe returns a channel of payloads for topic and a cancel
	// function that must be called on teardown. After cancel returns
	// the channel is closed.
	Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error)
}
