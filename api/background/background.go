// Package background runs fire-and-forget tasks spawned by request
// handlers and lets the server drain them on shutdown.
package background

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type Background struct {
	log logrus.FieldLogger
	wg  sync.WaitGroup
}

func New(log logrus.FieldLogger) *Background {
	return &Background{log: log}
}

// Add runs fn on its own goroutine, recovering panics so a broken task
// cannot take the process down.
func (b *Background) Add(fn func()) {
	b.wg.Add(1)

	go func() {
		defer b.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				b.log.Error(fmt.Sprintf("background task panic: %v", rec))
			}
		}()

		fn()
	}()
}

// Shutdown blocks until every pending task finished or ctx expired.
func (b *Background) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
