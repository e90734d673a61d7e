package router

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/dispatch"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/event"
	"github.com/aretw0/waypoint/pkg/surface"
)

// Builder produces the view for a screen. Returning nil means the screen
// cannot be built right now; the transition is dropped.
type Builder[S comparable] func(screen S, payload any) surface.View

// Decorations builds the transient views a router adds on its own.
type Decorations struct {
	Notification func(domain.Notification) surface.View
	Spinner      func() surface.View
}

// Config describes one section.
type Config[S comparable] struct {
	// Name identifies the section in logs, hooks and outputs.
	Name string
	// Root is the initial state and the screen that dismisses every overlay.
	Root    S
	Table   Table[S]
	Builder Builder[S]

	// Intents maps a navigation intent to a request for this section.
	// Returning false ignores the intent.
	Intents func(domain.Intent) (Request[S], bool)
	// Lifecycle maps an app lifecycle event to a request for this section.
	Lifecycle func(domain.LifecycleEvent) (Request[S], bool)

	Decorations Decorations
}

// OutputKind tags what a router reports to the composition root.
type OutputKind string

const (
	OutputNavigated      OutputKind = "navigated"
	OutputShiftCompleted OutputKind = "shift_completed"
	OutputNotified       OutputKind = "notified"
	OutputForwarded      OutputKind = "forwarded"
)

// Output is published on the router's outward channel after a successful transition.
type Output[S comparable] struct {
	Section string
	Kind    OutputKind
	Screen  S
	Event   any
}

type options struct {
	logger *slog.Logger
	exec   dispatch.Executor
	hooks  domain.LifecycleHooks
}

// Option configures a Router.
type Option func(*options)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithExecutor sets the transition executor. Defaults to dispatch.Inline.
func WithExecutor(exec dispatch.Executor) Option {
	return func(o *options) {
		o.exec = exec
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// Router is the state machine of one section.
//
// All fields below are owned by the UI loop: they are read and written only
// from work running on the executor.
type Router[S comparable] struct {
	cfg    Config[S]
	exec   dispatch.Executor
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	out    *event.Channel[Output[S]]

	state S
	// window is a non-owning reference to the composition root's window.
	// The router never outlives the root that attached it.
	window  surface.Window
	spinner surface.View
	host    surface.View

	unbind []func()
}

// New creates a router in its root state.
func New[S comparable](cfg Config[S], opts ...Option) *Router[S] {
	o := options{logger: logging.NewNop(), exec: dispatch.Inline{}}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Decorations.Notification == nil {
		cfg.Decorations.Notification = func(n domain.Notification) surface.View {
			return surface.NewNode("notification:"+n.Title, domain.Rect{})
		}
	}
	if cfg.Decorations.Spinner == nil {
		cfg.Decorations.Spinner = func() surface.View {
			return surface.NewNode("spinner", domain.Rect{})
		}
	}
	return &Router[S]{
		cfg:    cfg,
		exec:   o.exec,
		logger: o.logger.With("component", "router", "section", cfg.Name),
		hooks:  o.hooks,
		out:    event.New[Output[S]](),
		state:  cfg.Root,
	}
}

// Name returns the section name.
func (r *Router[S]) Name() string {
	return r.cfg.Name
}

// State returns the current screen. Call it from the UI loop.
func (r *Router[S]) State() S {
	return r.state
}

// Table returns the presentability table.
func (r *Router[S]) Table() Table[S] {
	return r.cfg.Table
}

// Outputs is the outward channel to the composition root.
func (r *Router[S]) Outputs() *event.Channel[Output[S]] {
	return r.out
}

// Attach injects the window the router presents into.
func (r *Router[S]) Attach(ctx context.Context, w surface.Window) {
	r.exec.Do(ctx, func(context.Context) {
		r.window = w
	})
}

// Bind subscribes the router to intents and lifecycle events.
// Either channel may be nil. ctx is the lifetime of the binding: shifts it
// starts complete early, unfinished, once ctx is done.
func (r *Router[S]) Bind(ctx context.Context, intents *event.Channel[domain.Intent], lifecycle *event.Channel[domain.LifecycleEvent]) {
	if intents != nil && r.cfg.Intents != nil {
		r.unbind = append(r.unbind, intents.Subscribe(func(in domain.Intent) {
			if req, ok := r.cfg.Intents(in); ok {
				r.logger.Info("intent accepted", "intent", in.Kind(), "kind", req.Kind)
				r.Transition(ctx, req)
			}
		}))
	}
	if lifecycle != nil && r.cfg.Lifecycle != nil {
		r.unbind = append(r.unbind, lifecycle.Subscribe(func(ev domain.LifecycleEvent) {
			if req, ok := r.cfg.Lifecycle(ev); ok {
				r.Transition(ctx, req)
			}
		}))
	}
}

// Close drops every subscription made by Bind.
func (r *Router[S]) Close() {
	for _, cancel := range r.unbind {
		cancel()
	}
	r.unbind = nil
}

// Transition requests a move. It runs on the UI loop and may return before
// the request was handled when called from another goroutine.
func (r *Router[S]) Transition(ctx context.Context, req Request[S]) {
	r.exec.Do(ctx, func(ctx context.Context) {
		r.transition(ctx, req)
	})
}

func (r *Router[S]) transition(ctx context.Context, req Request[S]) {
	from := r.state
	log := r.logger.With("kind", req.Kind, "from", name(from))
	if req.Kind == domain.RequestNavigate || req.Kind.IsShift() {
		log = log.With("to", name(req.Screen))
	}

	top := r.top()
	if top == nil {
		log.Error("transition dropped", "err", domain.ErrNoSurface)
		r.emit(ctx, req, from, domain.OutcomeDropped, domain.ErrNoSurface)
		return
	}

	if !r.cfg.Table.Allows(from, req) {
		log.Warn("transition denied", "err", domain.ErrDenied)
		r.emit(ctx, req, from, domain.OutcomeDenied, domain.ErrDenied)
		return
	}

	var err error
	switch req.Kind {
	case domain.RequestNavigate:
		err = r.navigate(req)
	case domain.RequestCrossFade:
		err = r.crossFade(ctx, req)
	case domain.RequestSlideSnapshot:
		err = r.slide(ctx, req, top)
	case domain.RequestNotify:
		top.AddSubview(r.cfg.Decorations.Notification(req.Notification))
		r.out.Publish(Output[S]{Section: r.cfg.Name, Kind: OutputNotified, Screen: r.state})
	case domain.RequestSpinner:
		r.toggleSpinner(top, req.Spinner)
	case domain.RequestForward:
		r.out.Publish(Output[S]{Section: r.cfg.Name, Kind: OutputForwarded, Screen: r.state, Event: req.Event})
	default:
		err = fmt.Errorf("unknown request kind %q", req.Kind)
	}

	if err != nil {
		log.Error("transition dropped", "err", err)
		r.emit(ctx, req, from, domain.OutcomeDropped, err)
		return
	}

	log.Info("transition executed")
	r.emit(ctx, req, from, domain.OutcomeExecuted, nil)
}

// top resolves the active presentation surface.
func (r *Router[S]) top() surface.View {
	if r.window == nil {
		return nil
	}
	return surface.Top(r.window)
}

func (r *Router[S]) navigate(req Request[S]) error {
	if req.Screen == r.cfg.Root {
		r.window.DismissAll()
	} else {
		view := r.build(req)
		if view == nil {
			return domain.ErrNoView
		}
		r.window.Present(view)
	}

	r.state = req.Screen
	r.out.Publish(Output[S]{Section: r.cfg.Name, Kind: OutputNavigated, Screen: req.Screen})
	return nil
}

func (r *Router[S]) crossFade(ctx context.Context, req Request[S]) error {
	incoming := r.build(req)
	if incoming == nil {
		return domain.ErrNoView
	}

	p := req.CrossFade
	w := r.window
	incoming.SetFrame(w.Bounds())
	incoming.SetAlpha(p.FromAlpha)
	w.AddLayer(incoming)

	r.state = req.Screen
	r.exec.Animate(ctx, p.Duration,
		func(progress float64) {
			incoming.SetAlpha(domain.Lerp(p.FromAlpha, p.ToAlpha, progress))
		},
		func(finished bool) {
			w.RemoveLayer(incoming)
			w.SetRoot(incoming)
			r.shiftDone(req.Screen, finished)
		})
	return nil
}

func (r *Router[S]) slide(ctx context.Context, req Request[S], outgoing surface.View) error {
	incoming := r.build(req)
	if incoming == nil {
		return domain.ErrNoView
	}

	// Both snapshots are taken before either hierarchy is touched.
	outSnap, err := outgoing.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: outgoing: %v", domain.ErrSnapshot, err)
	}
	inSnap, err := incoming.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: incoming: %v", domain.ErrSnapshot, err)
	}

	p := req.Slide
	w := r.window
	outSnap.SetFrame(p.OutgoingStart.Frame)
	outSnap.SetAlpha(p.OutgoingStart.Alpha)
	inSnap.SetFrame(p.IncomingStart.Frame)
	inSnap.SetAlpha(p.IncomingStart.Alpha)
	w.AddLayer(outSnap)
	w.AddLayer(inSnap)

	r.state = req.Screen
	r.exec.Animate(ctx, p.Duration,
		func(progress float64) {
			outSnap.SetFrame(p.OutgoingStart.Frame.Lerp(p.OutgoingEnd.Frame, progress))
			outSnap.SetAlpha(domain.Lerp(p.OutgoingStart.Alpha, p.OutgoingEnd.Alpha, progress))
			inSnap.SetFrame(p.IncomingStart.Frame.Lerp(p.IncomingEnd.Frame, progress))
			inSnap.SetAlpha(domain.Lerp(p.IncomingStart.Alpha, p.IncomingEnd.Alpha, progress))
		},
		func(finished bool) {
			incoming.SetFrame(w.Bounds())
			w.SetRoot(incoming)
			w.RemoveLayer(outSnap)
			w.RemoveLayer(inSnap)
			r.shiftDone(req.Screen, finished)
		})
	return nil
}

func (r *Router[S]) build(req Request[S]) surface.View {
	if r.cfg.Builder == nil {
		return nil
	}
	return r.cfg.Builder(req.Screen, req.Payload)
}

func (r *Router[S]) shiftDone(screen S, finished bool) {
	r.logger.Info("shift completed", "to", name(screen), "finished", finished)
	r.out.Publish(Output[S]{Section: r.cfg.Name, Kind: OutputShiftCompleted, Screen: screen})
}

func (r *Router[S]) toggleSpinner(top surface.View, on bool) {
	switch {
	case on && r.spinner == nil:
		r.spinner = r.cfg.Decorations.Spinner()
		r.host = top
		top.AddSubview(r.spinner)
	case !on && r.spinner != nil:
		r.host.RemoveSubview(r.spinner)
		r.spinner, r.host = nil, nil
	}
}

func (r *Router[S]) emit(ctx context.Context, req Request[S], from S, outcome domain.Outcome, err error) {
	ev := &domain.TransitionEvent{
		Timestamp: time.Now(),
		Section:   r.cfg.Name,
		Kind:      req.Kind,
		From:      name(from),
		Outcome:   outcome,
		Err:       err,
	}
	if req.Kind == domain.RequestNavigate || req.Kind.IsShift() {
		ev.To = name(req.Screen)
	}
	r.hooks.EmitTransition(ctx, ev)
}

func name[S comparable](s S) string {
	return fmt.Sprint(s)
}
