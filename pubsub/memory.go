package pubsub

import (
	"context"
	"sync"
)

// subscriber buffer; a subscriber that falls further behind than this
// loses intermediate snapshots, which is fine for replace-on-snapshot
// consumers.
const subBuffer = 8

type Memory struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan []byte
	next int
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[string]map[int]chan []byte)}
}

func (m *Memory) Publish(ctx context.Context, topic string, payload []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ch := range m.subs[topic] {
		select {
		case ch <- payload:
		default:
			// Slow subscriber. Drop the oldest snapshot to make room
			// for the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- payload:
			default:
			}
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error) {
	ch := make(chan []byte, subBuffer)

	m.mu.Lock()
	if m.subs[topic] == nil {
		m.subs[topic] = make(map[int]chan []byte)
	}
	id := m.next
	m.next++
	m.subs[topic][id] = ch
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs[topic], id)
			if len(m.subs[topic]) == 0 {
				delete(m.subs, topic)
			}
			m.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel, nil
}
