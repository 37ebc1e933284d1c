package services

import (
	"context"
	"time"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime/bus"
)

const publishTimeout = 2 * time.Second

// EventPublisher fans roadmap lifecycle events out to the bus. Publishing
// never fails the caller; errors are logged and counted.
type EventPublisher interface {
	Publish(ctx context.Context, ev realtime.Event)
}

type eventPublisher struct {
	log     *logger.Logger
	bus     bus.Bus
	metrics *observability.Metrics
}

func NewEventPublisher(log *logger.Logger, b bus.Bus, metrics *observability.Metrics) EventPublisher {
	if b == nil {
		b = bus.NewNoopBus()
	}
	return &eventPublisher{log: log.With("service", "EventPublisher"), bus: b, metrics: metrics}
}

func (p *eventPublisher) Publish(ctx context.Context, ev realtime.Event) {
	// Detach from request cancellation so a client hang-up after the write
	// still announces it.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.bus.Publish(pctx, ev); err != nil {
		p.log.Warn("event publish failed", "type", ev.Type, "roadmap_id", ev.RoadmapID, "error", err)
		p.metrics.IncEventPublished(string(ev.Type), "error")
		return
	}
	p.metrics.IncEventPublished(string(ev.Type), "ok")
}
