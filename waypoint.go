package waypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/resolver"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/dispatch"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/event"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/sections/auth"
	"github.com/aretw0/waypoint/pkg/sections/menu"
	"github.com/aretw0/waypoint/pkg/sections/settings"
	"github.com/aretw0/waypoint/pkg/surface"
)

// Rule is one case of the link path cascade.
type Rule = resolver.Rule

// DefaultRules returns the built-in cascade in precedence order.
func DefaultRules() []Rule {
	return resolver.DefaultRules()
}

// ErrUnknownSection is returned when a section name is not mounted.
var ErrUnknownSection = errors.New("unknown section")

// DefaultFade is the cross-fade used when a section leaves its security screen.
const DefaultFade = 300 * time.Millisecond

// Output is a section router output, flattened for consumers that do not
// know the section's screen type.
type Output struct {
	Section string            `json:"section"`
	Kind    router.OutputKind `json:"kind"`
	Screen  string            `json:"screen"`
	Event   any               `json:"event,omitempty"`
}

// section is the type-erased view of a router the App needs.
type section struct {
	name        string
	attach      func(context.Context, surface.Window)
	state       func() string
	navigate    func(context.Context, string, any) error
	close       func()
	unsubscribe func()
}

// App is the composition root: it owns the event channels, the resolver and
// every section router, and wires them together.
type App struct {
	scheme string
	host   string
	marker string
	fade   time.Duration
	rules  []Rule

	logger *slog.Logger
	exec   dispatch.Executor
	slot   ports.PendingSlot
	hooks  domain.LifecycleHooks

	intents   *event.Channel[domain.Intent]
	lifecycle *event.Channel[domain.LifecycleEvent]
	outputs   *event.Channel[Output]
	resolver  *resolver.Resolver

	sections []section
	byName   map[string]section
}

// Option configures an App.
type Option func(*App)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithSlot sets the pending activity slot. Defaults to memory.
func WithSlot(slot ports.PendingSlot) Option {
	return func(a *App) {
		a.slot = slot
	}
}

// WithExecutor sets the UI executor. Defaults to dispatch.Inline.
func WithExecutor(exec dispatch.Executor) Option {
	return func(a *App) {
		a.exec = exec
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithResolverRules replaces the link cascade.
func WithResolverRules(rules []Rule) Option {
	return func(a *App) {
		a.rules = rules
	}
}

// WithMarker overrides the sub-path links live under.
func WithMarker(marker string) Option {
	return func(a *App) {
		a.marker = marker
	}
}

// WithFadeDuration sets the cross-fade used when leaving the security screen.
func WithFadeDuration(d time.Duration) Option {
	return func(a *App) {
		a.fade = d
	}
}

// New builds the app for links under <scheme>://<host> and https://<host>.
// Section routers are bound to the intent and lifecycle channels right away;
// they drop transitions until a window is attached. ctx is the app lifetime;
// shifts started by bound events finish early once it is done.
func New(ctx context.Context, scheme, host string, opts ...Option) *App {
	a := &App{
		scheme:    scheme,
		host:      host,
		marker:    resolver.DefaultMarker,
		fade:      DefaultFade,
		rules:     resolver.DefaultRules(),
		logger:    logging.NewNop(),
		exec:      dispatch.Inline{},
		slot:      memory.NewSlot(),
		intents:   event.New[domain.Intent](),
		lifecycle: event.New[domain.LifecycleEvent](),
		outputs:   event.New[Output](),
		byName:    make(map[string]section),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.resolver = resolver.New(scheme, host,
		resolver.WithMarker(a.marker),
		resolver.WithRules(a.rules),
		resolver.WithSlot(a.slot),
		resolver.WithIntents(a.intents),
		resolver.WithLogger(a.logger),
		resolver.WithLifecycleHooks(a.hooks),
	)

	ropts := []router.Option{
		router.WithLogger(a.logger),
		router.WithExecutor(a.exec),
		router.WithLifecycleHooks(a.hooks),
	}
	a.add(mount(ctx, a, auth.New(a.fade, ropts...), auth.Parse))
	a.add(mount(ctx, a, menu.New(a.fade, ropts...), menu.Parse))
	a.add(mount(ctx, a, settings.New(a.fade, ropts...), settings.Parse))

	a.logger.Info("app ready", "scheme", scheme, "host", host, "sections", a.Sections())
	return a
}

func mount[S comparable](ctx context.Context, a *App, r *router.Router[S], parse func(string) (S, error)) section {
	r.Bind(ctx, a.intents, a.lifecycle)
	return section{
		name:   r.Name(),
		attach: r.Attach,
		state: func() string {
			return fmt.Sprint(r.State())
		},
		navigate: func(ctx context.Context, screen string, payload any) error {
			s, err := parse(screen)
			if err != nil {
				return err
			}
			r.Transition(ctx, router.Navigate(s, payload))
			return nil
		},
		close: r.Close,
		unsubscribe: r.Outputs().Subscribe(func(o router.Output[S]) {
			a.outputs.Publish(Output{
				Section: o.Section,
				Kind:    o.Kind,
				Screen:  fmt.Sprint(o.Screen),
				Event:   o.Event,
			})
		}),
	}
}

func (a *App) add(s section) {
	a.sections = append(a.sections, s)
	a.byName[s.name] = s
}

// Sections lists section names in mount order.
func (a *App) Sections() []string {
	names := make([]string, len(a.sections))
	for i, s := range a.sections {
		names[i] = s.name
	}
	return names
}

// Intents is the channel resolved intents are published on.
func (a *App) Intents() *event.Channel[domain.Intent] {
	return a.intents
}

// Outputs is the merged outward channel of every section router.
func (a *App) Outputs() *event.Channel[Output] {
	return a.outputs
}

// Resolver exposes the link resolver, with the app's prefixes.
func (a *App) Resolver() *resolver.Resolver {
	return a.resolver
}

// Open handles a custom-scheme deep link.
func (a *App) Open(ctx context.Context, raw string) (domain.Intent, error) {
	return a.resolver.ResolveDeepLink(ctx, raw)
}

// Continue handles a universal link handoff.
func (a *App) Continue(ctx context.Context, act domain.Activation) (domain.Intent, error) {
	return a.resolver.ResolveUniversalLink(ctx, act)
}

// Ready drains the pending slot and republishes the parked intent, so a link
// that arrived before the UI was up still reaches the sections.
// It returns the intent that was replayed, or nil.
func (a *App) Ready(ctx context.Context) domain.Intent {
	in := a.resolver.DrainPending(ctx)
	if in != nil {
		a.intents.Publish(in)
	}
	return in
}

// Attach gives a section the window it presents into.
func (a *App) Attach(ctx context.Context, name string, w surface.Window) error {
	s, ok := a.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	s.attach(ctx, w)
	return nil
}

// Notify fans an app lifecycle event out to every section.
func (a *App) Notify(ctx context.Context, ev domain.LifecycleEvent) {
	a.logger.Info("lifecycle event", "event", ev)
	a.lifecycle.Publish(ev)
}

// Navigate asks a section to present the screen with the given name.
func (a *App) Navigate(ctx context.Context, name, screen string, payload any) error {
	s, ok := a.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return s.navigate(ctx, screen, payload)
}

// States returns the current screen of every section. The read runs on the
// UI executor; it blocks until the executor got to it or ctx is done.
func (a *App) States(ctx context.Context) (map[string]string, error) {
	done := make(chan map[string]string, 1)
	a.exec.Do(ctx, func(context.Context) {
		states := make(map[string]string, len(a.sections))
		for _, s := range a.sections {
			states[s.name] = s.state()
		}
		done <- states
	})
	select {
	case states := <-done:
		return states, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close unbinds every section from the app channels.
func (a *App) Close() {
	for _, s := range a.sections {
		s.close()
		s.unsubscribe()
	}
}
