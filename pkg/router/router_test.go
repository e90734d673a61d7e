package router_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/event"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screen int

const (
	screenRoot screen = iota
	screenDetail
	screenExtra
	screenSecurity
	screenUnbuildable
)

func (s screen) String() string {
	return [...]string{"root", "detail", "extra", "security", "unbuildable"}[s]
}

var bounds = domain.Rect{W: 320, H: 640}

func testTable() router.Table[screen] {
	return router.Table[screen]{
		Locked:    []screen{screenSecurity},
		Forbidden: map[screen][]screen{screenExtra: {screenDetail}},
	}
}

func testBuilder(s screen, payload any) surface.View {
	if s == screenUnbuildable {
		return nil
	}
	return surface.NewNode(s.String(), bounds)
}

type fixture struct {
	router  *router.Router[screen]
	scene   *surface.Scene
	rec     *logging.Recorder
	outputs []router.Output[screen]
	events  []*domain.TransitionEvent
}

func newFixture(t *testing.T, attach bool) *fixture {
	t.Helper()
	f := &fixture{scene: surface.NewScene(bounds)}
	f.scene.SetRoot(surface.NewNode("root", bounds))

	logger, rec := logging.NewRecorder()
	f.rec = rec
	f.router = router.New(router.Config[screen]{
		Name:    "test",
		Root:    screenRoot,
		Table:   testTable(),
		Builder: testBuilder,
		Intents: func(in domain.Intent) (router.Request[screen], bool) {
			if _, ok := in.(domain.OpenIntercom); ok {
				return router.Navigate(screenDetail, nil), true
			}
			return router.Request[screen]{}, false
		},
		Lifecycle: func(ev domain.LifecycleEvent) (router.Request[screen], bool) {
			if ev == domain.LifecycleWillResignActive {
				return router.Navigate(screenSecurity, nil), true
			}
			return router.CrossFadeTo(screenRoot, domain.DefaultCrossFade(0)), true
		},
	},
		router.WithLogger(logger),
		router.WithLifecycleHooks(domain.LifecycleHooks{
			OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
				f.events = append(f.events, e)
			},
		}),
	)
	f.router.Outputs().Subscribe(func(o router.Output[screen]) {
		f.outputs = append(f.outputs, o)
	})
	if attach {
		f.router.Attach(context.Background(), f.scene)
	}
	return f
}

func TestRouter_StartsAtRoot(t *testing.T) {
	f := newFixture(t, true)
	assert.Equal(t, screenRoot, f.router.State())
	assert.Equal(t, "test", f.router.Name())
}

func TestRouter_NoSurfaceLogsOnceAndKeepsState(t *testing.T) {
	requests := map[string]router.Request[screen]{
		"navigate":   router.Navigate(screenDetail, nil),
		"cross-fade": router.CrossFadeTo(screenDetail, domain.DefaultCrossFade(0)),
		"slide":      router.SlideTo(screenDetail, domain.SlideForward(bounds, 0)),
		"notify":     router.Notify[screen](domain.Notification{Title: "x"}),
		"spinner":    router.Spinner[screen](true),
		"forward":    router.Forward[screen]("x"),
	}
	for name, req := range requests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, false)

			assert.NotPanics(t, func() {
				f.router.Transition(context.Background(), req)
			})

			assert.Equal(t, 1, f.rec.Count(slog.LevelError))
			assert.Equal(t, screenRoot, f.router.State())
			assert.Empty(t, f.outputs)
			require.Len(t, f.events, 1)
			assert.Equal(t, domain.OutcomeDropped, f.events[0].Outcome)
			assert.ErrorIs(t, f.events[0].Err, domain.ErrNoSurface)
		})
	}
}

func TestRouter_NavigateFlipsStateOnce(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.router.Transition(ctx, router.Navigate(screenDetail, "payload"))
	assert.Equal(t, screenDetail, f.router.State())
	require.Len(t, f.scene.Presented(), 1)
	assert.Equal(t, "detail", f.scene.Presented()[0].ID())

	// Second identical request is denied and changes nothing.
	f.router.Transition(ctx, router.Navigate(screenDetail, "payload"))
	assert.Equal(t, screenDetail, f.router.State())
	assert.Len(t, f.scene.Presented(), 1)

	require.Len(t, f.outputs, 1)
	assert.Equal(t, router.OutputNavigated, f.outputs[0].Kind)
	assert.Equal(t, screenDetail, f.outputs[0].Screen)

	require.Len(t, f.events, 2)
	assert.Equal(t, domain.OutcomeExecuted, f.events[0].Outcome)
	assert.Equal(t, "root", f.events[0].From)
	assert.Equal(t, "detail", f.events[0].To)
	assert.Equal(t, domain.OutcomeDenied, f.events[1].Outcome)
}

func TestRouter_NavigateRootDismissesOverlays(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.router.Transition(ctx, router.Navigate(screenDetail, nil))
	f.router.Transition(ctx, router.Navigate(screenRoot, nil))

	assert.Equal(t, screenRoot, f.router.State())
	assert.Empty(t, f.scene.Presented())
}

func TestRouter_RootToRootDenied(t *testing.T) {
	f := newFixture(t, true)
	f.router.Transition(context.Background(), router.Navigate(screenRoot, nil))

	assert.Equal(t, screenRoot, f.router.State())
	assert.Equal(t, 1, f.rec.Count(slog.LevelWarn))
	assert.Equal(t, 0, f.rec.Count(slog.LevelError))
	assert.Empty(t, f.outputs)
}

func TestRouter_SecurityGating(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.router.Transition(ctx, router.Navigate(screenSecurity, nil))
	require.Equal(t, screenSecurity, f.router.State())

	for _, s := range []screen{screenRoot, screenDetail, screenExtra} {
		f.router.Transition(ctx, router.Navigate(s, nil))
		assert.Equal(t, screenSecurity, f.router.State(), "navigate to %s must be denied", s)
	}

	f.router.Transition(ctx, router.Notify[screen](domain.Notification{Title: "locked"}))
	f.router.Transition(ctx, router.Spinner[screen](true))
	f.router.Transition(ctx, router.CrossFadeTo(screenRoot, domain.DefaultCrossFade(0)))

	assert.Equal(t, screenRoot, f.router.State(), "a shift is the way out of the security state")
	denied := 0
	for _, e := range f.events {
		if e.Outcome == domain.OutcomeDenied {
			denied++
		}
	}
	assert.Equal(t, 3, denied)
}

func TestRouter_BuilderReturnsNil(t *testing.T) {
	f := newFixture(t, true)
	f.router.Transition(context.Background(), router.Navigate(screenUnbuildable, nil))

	assert.Equal(t, screenRoot, f.router.State())
	assert.Equal(t, 1, f.rec.Count(slog.LevelError))
	require.Len(t, f.events, 1)
	assert.ErrorIs(t, f.events[0].Err, domain.ErrNoView)
}

func TestRouter_NilBuilderIsMissingDependency(t *testing.T) {
	r := router.New(router.Config[screen]{Name: "bare", Root: screenRoot, Table: testTable()})
	scene := surface.NewScene(bounds)
	scene.SetRoot(surface.NewNode("root", bounds))
	r.Attach(context.Background(), scene)

	assert.NotPanics(t, func() {
		r.Transition(context.Background(), router.Navigate(screenDetail, nil))
		r.Transition(context.Background(), router.CrossFadeTo(screenDetail, domain.DefaultCrossFade(0)))
	})
	assert.Equal(t, screenRoot, r.State())
}

func TestRouter_CrossFade(t *testing.T) {
	f := newFixture(t, true)
	outgoing := f.scene.Root()

	f.router.Transition(context.Background(), router.CrossFadeTo(screenDetail, domain.CrossFade{FromAlpha: 0.2, ToAlpha: 0.9}))

	assert.Equal(t, screenDetail, f.router.State())
	root := f.scene.Root()
	require.NotNil(t, root)
	assert.NotEqual(t, outgoing, root)
	assert.Equal(t, "detail", root.ID())
	assert.InDelta(t, 0.9, root.Alpha(), 1e-9)
	assert.Empty(t, f.scene.Layers())

	require.Len(t, f.outputs, 1)
	assert.Equal(t, router.OutputShiftCompleted, f.outputs[0].Kind)
}

func TestRouter_SlideZeroDurationSwapsRootOnce(t *testing.T) {
	f := newFixture(t, true)
	swapsBefore := f.scene.RootSwaps()

	f.router.Transition(context.Background(), router.SlideTo(screenDetail, domain.SlideForward(bounds, 0)))

	// Completion ran synchronously inside Transition.
	assert.Equal(t, swapsBefore+1, f.scene.RootSwaps())
	assert.Equal(t, "detail", f.scene.Root().ID())
	assert.Empty(t, f.scene.Layers(), "snapshots are removed on completion")
	assert.Equal(t, screenDetail, f.router.State())

	require.Len(t, f.outputs, 1)
	assert.Equal(t, router.OutputShiftCompleted, f.outputs[0].Kind)
}

// spyWindow records the order of hierarchy mutations.
type spyWindow struct {
	*surface.Scene
	log *[]string
}

func (w spyWindow) SetRoot(v surface.View)     { *w.log = append(*w.log, "set-root"); w.Scene.SetRoot(v) }
func (w spyWindow) AddLayer(v surface.View)    { *w.log = append(*w.log, "add-layer"); w.Scene.AddLayer(v) }
func (w spyWindow) RemoveLayer(v surface.View) { *w.log = append(*w.log, "remove-layer"); w.Scene.RemoveLayer(v) }

// spyView records snapshots and can refuse to take one.
type spyView struct {
	*surface.Node
	log  *[]string
	fail bool
}

func (v spyView) Snapshot() (surface.View, error) {
	*v.log = append(*v.log, "snapshot:"+v.ID())
	if v.fail {
		return nil, errors.New("gpu lost")
	}
	return v.Node.Snapshot()
}

func TestRouter_SlideSnapshotsBeforeMutating(t *testing.T) {
	var log []string
	scene := surface.NewScene(bounds)
	scene.SetRoot(spyView{Node: surface.NewNode("root", bounds), log: &log})
	log = nil

	r := router.New(router.Config[screen]{
		Name:  "spy",
		Root:  screenRoot,
		Table: testTable(),
		Builder: func(s screen, _ any) surface.View {
			return spyView{Node: surface.NewNode(s.String(), bounds), log: &log}
		},
	})
	r.Attach(context.Background(), spyWindow{Scene: scene, log: &log})

	r.Transition(context.Background(), router.SlideTo(screenDetail, domain.SlideBackward(bounds, 0)))

	assert.Equal(t, []string{
		"snapshot:root",
		"snapshot:detail",
		"add-layer",
		"add-layer",
		"set-root",
		"remove-layer",
		"remove-layer",
	}, log)
}

func TestRouter_SlideSnapshotFailure(t *testing.T) {
	var log []string
	scene := surface.NewScene(bounds)
	scene.SetRoot(spyView{Node: surface.NewNode("root", bounds), log: &log, fail: true})
	logger, rec := logging.NewRecorder()

	r := router.New(router.Config[screen]{
		Name: "spy", Root: screenRoot, Table: testTable(), Builder: testBuilder,
	}, router.WithLogger(logger))
	r.Attach(context.Background(), scene)

	r.Transition(context.Background(), router.SlideTo(screenDetail, domain.SlideForward(bounds, 0)))

	assert.Equal(t, screenRoot, r.State())
	assert.Empty(t, scene.Layers())
	assert.Equal(t, 1, scene.RootSwaps(), "only the setup swap")
	assert.Equal(t, 1, rec.Count(slog.LevelError))
}

func TestRouter_NotifyAndSpinner(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	root := f.scene.Root()

	f.router.Transition(ctx, router.Notify[screen](domain.Notification{Title: "saved"}))
	f.router.Transition(ctx, router.Spinner[screen](true))
	f.router.Transition(ctx, router.Spinner[screen](true))

	ids := func() []string {
		var out []string
		for _, v := range root.Subviews() {
			out = append(out, v.ID())
		}
		return out
	}
	assert.Equal(t, []string{"notification:saved", "spinner"}, ids())

	f.router.Transition(ctx, router.Spinner[screen](false))
	f.router.Transition(ctx, router.Spinner[screen](false))
	assert.Equal(t, []string{"notification:saved"}, ids())

	assert.Equal(t, screenRoot, f.router.State())
	require.Len(t, f.outputs, 1)
	assert.Equal(t, router.OutputNotified, f.outputs[0].Kind)
}

func TestRouter_Forward(t *testing.T) {
	f := newFixture(t, true)
	f.router.Transition(context.Background(), router.Forward[screen]("logout"))

	require.Len(t, f.outputs, 1)
	assert.Equal(t, router.OutputForwarded, f.outputs[0].Kind)
	assert.Equal(t, "logout", f.outputs[0].Event)
	assert.Equal(t, screenRoot, f.router.State())
}

func TestRouter_BindIntentsAndLifecycle(t *testing.T) {
	f := newFixture(t, true)
	intents := event.New[domain.Intent]()
	lifecycle := event.New[domain.LifecycleEvent]()
	f.router.Bind(context.Background(), intents, lifecycle)

	intents.Publish(domain.OpenAuthorization{Token: "ignored"})
	assert.Equal(t, screenRoot, f.router.State())

	intents.Publish(domain.OpenIntercom{ID: "1"})
	assert.Equal(t, screenDetail, f.router.State())

	lifecycle.Publish(domain.LifecycleWillResignActive)
	assert.Equal(t, screenSecurity, f.router.State())

	lifecycle.Publish(domain.LifecycleBecameActive)
	assert.Equal(t, screenRoot, f.router.State())

	f.router.Close()
	assert.Equal(t, 0, intents.Len())
	assert.Equal(t, 0, lifecycle.Len())

	intents.Publish(domain.OpenIntercom{ID: "2"})
	assert.Equal(t, screenRoot, f.router.State())
}
