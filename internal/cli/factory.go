// Package cli holds the command implementations behind cmd/waypoint.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/adapters/redis"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Closer releases what NewApp opened.
type Closer func() error

// NewSlot opens the pending slot described by cfg: redis when an address is
// configured, memory otherwise.
func NewSlot(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.PendingSlot, Closer, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewSlot(), func() error { return nil }, nil
	}

	slot := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithKey(cfg.Redis.Key), redis.WithTTL(cfg.Redis.TTL))
	if err := slot.Ping(ctx); err != nil {
		slot.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
	}
	logger.Info("pending slot on redis", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key, "ttl", cfg.Redis.TTL)
	return slot, slot.Close, nil
}

// NewApp builds the app with CLI conventions: configured prefixes, slot and
// fade, debug hooks merged in front of the caller's hooks.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks, opts ...waypoint.Option) (*waypoint.App, Closer, error) {
	slot, closeSlot, err := NewSlot(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	base := []waypoint.Option{
		waypoint.WithLogger(logger),
		waypoint.WithSlot(slot),
		waypoint.WithMarker(cfg.Marker),
		waypoint.WithFadeDuration(cfg.Animation.Duration),
		waypoint.WithLifecycleHooks(DebugHooks(logger).Merge(hooks)),
	}
	app := waypoint.New(ctx, cfg.Scheme, cfg.Domain, append(base, opts...)...)
	return app, func() error {
		app.Close()
		return closeSlot()
	}, nil
}

// DebugHooks logs every resolution and transition at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			logger.Debug("resolve", "source", e.Source, "outcome", e.Outcome, "correlation_id", e.CorrelationID)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.Debug("transition", "section", e.Section, "kind", e.Kind, "from", e.From, "to", e.To, "outcome", e.Outcome)
		},
	}
}
