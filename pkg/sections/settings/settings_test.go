package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/event"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/sections/settings"
	"github.com/aretw0/waypoint/pkg/surface"
	"github.com/stretchr/testify/assert"
)

func TestSettings_IgnoresIntents(t *testing.T) {
	cfg := settings.Config(time.Second)
	assert.Nil(t, cfg.Intents)

	r := router.New(cfg)
	scene := surface.NewScene(domain.Rect{W: 100, H: 100})
	scene.SetRoot(surface.NewNode("settings/overview", scene.Bounds()))
	r.Attach(context.Background(), scene)

	intents := event.New[domain.Intent]()
	r.Bind(context.Background(), intents, nil)
	assert.Equal(t, 0, intents.Len())

	r.Transition(context.Background(), router.Navigate(settings.Profile, nil))
	assert.Equal(t, settings.Profile, r.State())
}

func TestSettings_PrivacyFadeUsesConfiguredDuration(t *testing.T) {
	req, ok := settings.Config(250 * time.Millisecond).Lifecycle(domain.LifecycleBecameActive)
	assert.True(t, ok)
	assert.Equal(t, domain.RequestCrossFade, req.Kind)
	assert.Equal(t, settings.Overview, req.Screen)
	assert.Equal(t, 250*time.Millisecond, req.CrossFade.Duration)
}
