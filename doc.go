/*
Package waypoint is a navigation routing subsystem for apps that are opened
from the outside: custom-scheme deep links and https universal links.

It turns an external activation into a typed navigation intent, parks that
intent until the UI is ready, and lets independent section routers react to
it under a static presentability table. Every mutation of the presentation
surface happens on a single UI loop.

# Concept

Routing is split in three layers:

  - The resolver validates a link against the fixed prefixes, walks an ordered
    cascade of sub-route rules and produces an Intent (or a logged rejection).
  - The event channels fan intents and app lifecycle events out to every
    section synchronously, in subscription order.
  - Each section router is a small state machine over its own screens. It
    consults its table before touching the window and reports what it did on
    its output channel.

# Usage

	ctx := context.Background()
	app := waypoint.New(ctx, "acme", "acme.example",
		waypoint.WithLogger(logging.New(slog.LevelInfo)),
	)

	// Cold start: the link arrives before any window exists.
	app.Open(ctx, "acme://acme.example/mobileLink/intercom/42")

	for _, name := range app.Sections() {
		scene := surface.NewScene(bounds)
		app.Attach(ctx, name, scene)
	}

	// The UI is up: replay the parked intent.
	app.Ready(ctx)

# Threading

By default transitions run inline on the caller (dispatch.Inline), which is
what tests and headless tools want. A host with a real UI thread runs a
dispatch.Loop and passes it with WithExecutor; work posted from any other
goroutine is then queued onto the loop.

# Observability

Pass domain.LifecycleHooks with WithLifecycleHooks to observe every
resolution and transition. pkg/observability turns them into Prometheus
metrics.
*/
package waypoint
