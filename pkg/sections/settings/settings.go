// Package settings is the account settings section. It does not react to
// links; only the lifecycle privacy overlay and explicit navigation reach it.
package settings

import (
	"time"

	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/sections"
)

const Name = "settings"

type Screen int

const (
	Overview Screen = iota
	Profile
	Notifications
	Security
)

var Screens = []Screen{Overview, Profile, Notifications, Security}

func (s Screen) String() string {
	switch s {
	case Overview:
		return "overview"
	case Profile:
		return "profile"
	case Notifications:
		return "notifications"
	case Security:
		return "security"
	}
	return "unknown"
}

func Parse(s string) (Screen, error) {
	return sections.Lookup(Screens, s)
}

func Table() router.Table[Screen] {
	return router.Table[Screen]{Locked: []Screen{Security}}
}

func Config(fade time.Duration) router.Config[Screen] {
	return router.Config[Screen]{
		Name:      Name,
		Root:      Overview,
		Table:     Table(),
		Builder:   sections.NodeBuilder[Screen](Name),
		Lifecycle: sections.Privacy(Overview, Security, fade),
	}
}

func New(fade time.Duration, opts ...router.Option) *router.Router[Screen] {
	return router.New(Config(fade), opts...)
}
