package waypoint_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bounds = domain.Rect{W: 390, H: 844}

func attachAll(t *testing.T, app *waypoint.App) map[string]*surface.Scene {
	t.Helper()
	scenes := make(map[string]*surface.Scene)
	for _, name := range app.Sections() {
		scene := surface.NewScene(bounds)
		scene.SetRoot(surface.NewNode(name+"/root", bounds))
		require.NoError(t, app.Attach(context.Background(), name, scene))
		scenes[name] = scene
	}
	return scenes
}

func states(t *testing.T, app *waypoint.App) map[string]string {
	t.Helper()
	s, err := app.States(context.Background())
	require.NoError(t, err)
	return s
}

func TestApp_InitialStates(t *testing.T) {
	app := waypoint.New(context.Background(), "acme", "acme.test")
	defer app.Close()

	assert.Equal(t, []string{"auth", "menu", "settings"}, app.Sections())
	assert.Equal(t, map[string]string{
		"auth":     "login",
		"menu":     "home",
		"settings": "overview",
	}, states(t, app))
}

func TestApp_ColdStartReplaysParkedIntent(t *testing.T) {
	ctx := context.Background()
	logger, rec := logging.NewRecorder()
	slot := memory.NewSlot()
	app := waypoint.New(ctx, "acme", "acme.test",
		waypoint.WithLogger(logger),
		waypoint.WithSlot(slot),
	)
	defer app.Close()

	// No window yet: sections drop the transition with one error each that
	// maps the intent.
	in, err := app.Open(ctx, "acme://acme.test/mobileLink/intercom/42")
	require.NoError(t, err)
	assert.Equal(t, domain.OpenIntercom{ID: "42"}, in)
	assert.Equal(t, 1, rec.Count(slog.LevelError))
	assert.Equal(t, "home", states(t, app)["menu"])

	scenes := attachAll(t, app)
	assert.Equal(t, in, app.Ready(ctx))
	assert.Equal(t, "support", states(t, app)["menu"])
	require.Len(t, scenes["menu"].Presented(), 1)
	assert.Equal(t, "menu/support", scenes["menu"].Presented()[0].ID())

	assert.Nil(t, app.Ready(ctx), "drain is destructive")
	assert.Nil(t, slot.Peek())
}

func TestApp_UniversalLinkReachesAuth(t *testing.T) {
	ctx := context.Background()
	app := waypoint.New(ctx, "acme", "acme.test")
	defer app.Close()
	attachAll(t, app)

	_, err := app.Continue(ctx, domain.Activation{
		Type: domain.ActivationBrowsingWeb,
		URL:  "https://acme.test/mobileLink/backToLogin?params=YWJjMTIz",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"auth":     "restore",
		"menu":     "home",
		"settings": "overview",
	}, states(t, app))
}

func TestApp_PrivacyOverlay(t *testing.T) {
	ctx := context.Background()
	var events []*domain.TransitionEvent
	app := waypoint.New(ctx, "acme", "acme.test",
		waypoint.WithFadeDuration(0),
		waypoint.WithLifecycleHooks(domain.LifecycleHooks{
			OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
				events = append(events, e)
			},
		}),
	)
	defer app.Close()
	scenes := attachAll(t, app)

	require.NoError(t, app.Navigate(ctx, "settings", "profile", nil))

	app.Notify(ctx, domain.LifecycleWillResignActive)
	for name, state := range states(t, app) {
		assert.Equal(t, "security", state, name)
	}

	// Links are held back while locked.
	_, err := app.Open(ctx, "acme://acme.test/mobileLink/intercom/1")
	require.NoError(t, err)
	assert.Equal(t, "security", states(t, app)["menu"])

	var shifts []waypoint.Output
	cancel := app.Outputs().Subscribe(func(o waypoint.Output) {
		if o.Kind == router.OutputShiftCompleted {
			shifts = append(shifts, o)
		}
	})
	defer cancel()

	app.Notify(ctx, domain.LifecycleBecameActive)
	assert.Equal(t, map[string]string{
		"auth":     "login",
		"menu":     "home",
		"settings": "overview",
	}, states(t, app))
	assert.Len(t, shifts, 3)
	for name, scene := range scenes {
		assert.Empty(t, scene.Presented(), name)
		assert.Equal(t, 2, scene.RootSwaps(), name)
	}

	var denied int
	for _, e := range events {
		if e.Outcome == domain.OutcomeDenied {
			denied++
		}
	}
	assert.Equal(t, 1, denied, "the menu denies the intercom link while locked")
}

func TestApp_Navigate(t *testing.T) {
	ctx := context.Background()
	app := waypoint.New(ctx, "acme", "acme.test")
	defer app.Close()
	attachAll(t, app)

	assert.ErrorIs(t, app.Navigate(ctx, "cart", "home", nil), waypoint.ErrUnknownSection)
	assert.Error(t, app.Navigate(ctx, "menu", "cart", nil))
	assert.ErrorIs(t, app.Attach(ctx, "cart", surface.NewScene(bounds)), waypoint.ErrUnknownSection)

	require.NoError(t, app.Navigate(ctx, "menu", "payments", nil))
	assert.Equal(t, "payments", states(t, app)["menu"])
}

func TestApp_CustomRules(t *testing.T) {
	ctx := context.Background()
	rules := append([]waypoint.Rule{{
		Name:   "chat",
		Prefix: "chat/",
		Build: func(rest string) (domain.Intent, error) {
			return domain.OpenIntercom{ID: rest}, nil
		},
	}}, waypoint.DefaultRules()...)
	app := waypoint.New(ctx, "acme", "acme.test",
		waypoint.WithResolverRules(rules),
		waypoint.WithMarker("go"),
	)
	defer app.Close()

	in, err := app.Open(ctx, "acme://acme.test/go/chat/7")
	require.NoError(t, err)
	assert.Equal(t, domain.OpenIntercom{ID: "7"}, in)

	_, err = app.Open(ctx, "acme://acme.test/mobileLink/chat/7")
	assert.ErrorIs(t, err, domain.ErrBadPrefix)
}
