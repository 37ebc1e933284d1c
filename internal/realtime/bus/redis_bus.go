package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/realtime"
)

const (
	defaultChannelPrefix = "skill-sculptor.events"
	publishTimeout       = 2 * time.Second
)

var errBadEvent = errors.New("event has no type or user")

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Channel is the prefix; each event type gets "<prefix>.<type>".
	Channel string
}

// redisBus fans lifecycle events out over pub/sub, one channel per event
// type, so consumers can subscribe to just the events they care about.
type redisBus struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewRedisBus(log *logger.Logger, cfg RedisConfig) (Bus, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		WriteTimeout: publishTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	log.Info("redis event bus connected", "addr", addr, "prefix", channelPrefix(cfg.Channel))
	return &redisBus{log: log.With("service", "RedisEventBus"), rdb: rdb, prefix: channelPrefix(cfg.Channel)}, nil
}

func channelPrefix(p string) string {
	if p = strings.Trim(strings.TrimSpace(p), "."); p == "" {
		return defaultChannelPrefix
	}
	return p
}

func channelFor(prefix string, t realtime.EventType) string {
	return prefix + "." + string(t)
}

func encodeEvent(ev realtime.Event) ([]byte, error) {
	if ev.Type == "" || strings.TrimSpace(ev.UserID) == "" {
		return nil, errBadEvent
	}
	return json.Marshal(ev)
}

func decodeEvent(payload string) (realtime.Event, error) {
	var ev realtime.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, err
	}
	if ev.Type == "" || ev.UserID == "" {
		return ev, errBadEvent
	}
	return ev, nil
}

func (b *redisBus) Publish(ctx context.Context, ev realtime.Event) error {
	raw, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return b.rdb.Publish(ctx, channelFor(b.prefix, ev.Type), raw).Err()
}

// StartForwarder pattern-subscribes to every event channel under the prefix
// and hands decoded events to onEvent until ctx ends.
func (b *redisBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	sub := b.rdb.PSubscribe(ctx, b.prefix+".*")
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis psubscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				ev, err := decodeEvent(m.Payload)
				if err != nil {
					b.log.Warn("dropping redis event", "channel", m.Channel, "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error {
	return b.rdb.Close()
}
