package bus

import (
	"context"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error
	Close() error
}

type noopBus struct{}

// NewNoopBus drops every event. Used when no broker is configured.
func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(context.Context, realtime.Event) error { return nil }
func (noopBus) StartForwarder(context.Context, func(realtime.Event)) error {
	return nil
}
func (noopBus) Close() error { return nil }
