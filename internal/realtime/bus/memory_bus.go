package bus

import (
	"context"
	"sync"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

// MemoryBus delivers events in-process, synchronously, in publish order.
// It also records everything published for inspection in tests.
type MemoryBus struct {
	mu        sync.Mutex
	published []realtime.Event
	handlers  []func(realtime.Event)
	closed    bool
}

func NewMemoryBus() *MemoryBus { return &MemoryBus{} }

func (b *MemoryBus) Publish(ctx context.Context, ev realtime.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.published = append(b.published, ev)
	handlers := append([]func(realtime.Event){}, b.handlers...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
	return nil
}

func (b *MemoryBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return nil
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, onEvent)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.handlers = nil
	b.mu.Unlock()
	return nil
}

// Published returns a copy of every event seen so far.
func (b *MemoryBus) Published() []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.Event(nil), b.published...)
}
