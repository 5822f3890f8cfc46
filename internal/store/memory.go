package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is an in-process Store with the same semantics as the Redis
// backing. It drives the test suites of every package that talks to the
// store and doubles as a single-device fallback when Redis is unreachable.
type Memory struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
	subs map[int]*memSub
	next int

	// Now lets tests pin the server clock; zero means wall clock.
	Now func() int64
}

type memSub struct {
	prefix string
	ch     chan Event
}

func NewMemory() *Memory {
	return &Memory{
		data: map[string]json.RawMessage{},
		subs: map[int]*memSub{},
	}
}

func (m *Memory) Get(_ context.Context, path string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[path], nil
}

func (m *Memory) List(_ context.Context, prefix string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{}
	for k, v := range m.data {
		if matchesPrefix(k, prefix) && k != prefix {
			snap[k] = v
		}
	}
	return snap, nil
}

func (m *Memory) Write(ctx context.Context, path string, value any) error {
	return m.WriteTTL(ctx, path, value, 0)
}

func (m *Memory) WriteTTL(_ context.Context, path string, value any, _ time.Duration) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[path] = buf
	m.notifyLocked(Event{Path: path, Value: buf})
	m.mu.Unlock()
	return nil
}

func (m *Memory) Update(_ context.Context, values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for path, value := range values {
		if value == nil {
			delete(m.data, path)
			m.notifyLocked(Event{Path: path})
			continue
		}
		buf, err := json.Marshal(value)
		if err != nil {
			return err
		}
		m.data[path] = buf
		m.notifyLocked(Event{Path: path, Value: buf})
	}
	return nil
}

func (m *Memory) AtomicUpdate(_ context.Context, path string, fn func(current json.RawMessage) (any, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(m.data[path])
	if err != nil {
		if err == ErrAbort {
			return nil
		}
		return err
	}
	buf, err := json.Marshal(next)
	if err != nil {
		return err
	}
	m.data[path] = buf
	m.notifyLocked(Event{Path: path, Value: buf})
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, prefix string) (<-chan Event, error) {
	m.mu.Lock()
	id := m.next
	m.next++
	sub := &memSub{prefix: prefix, ch: make(chan Event, 64)}
	m.subs[id] = sub
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, id)
		close(sub.ch)
		m.mu.Unlock()
	}()
	return sub.ch, nil
}

func (m *Memory) ServerTime(_ context.Context) (int64, error) {
	if m.Now != nil {
		return m.Now(), nil
	}
	return time.Now().UnixMilli(), nil
}

func (m *Memory) notifyLocked(ev Event) {
	for _, sub := range m.subs {
		if !matchesPrefix(ev.Path, sub.prefix) {
			continue
		}
		select {
		case sub.ch <- ev:
		default: // slow subscriber, drop rather than block writers
		}
	}
}
