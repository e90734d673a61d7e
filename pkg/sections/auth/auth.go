// Package auth is the authorization section shown before sign-in.
package auth

import (
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/sections"
)

const Name = "auth"

// Screen is a destination of the authorization section.
type Screen int

const (
	Login Screen = iota
	Restore
	Registration
	Security
)

var Screens = []Screen{Login, Restore, Registration, Security}

func (s Screen) String() string {
	switch s {
	case Login:
		return "login"
	case Restore:
		return "restore"
	case Registration:
		return "registration"
	case Security:
		return "security"
	}
	return "unknown"
}

func Parse(s string) (Screen, error) {
	return sections.Lookup(Screens, s)
}

// Table is the authorization presentability rule. Restoring access cannot
// start in the middle of a registration.
func Table() router.Table[Screen] {
	return router.Table[Screen]{
		Locked: []Screen{Security},
		Forbidden: map[Screen][]Screen{
			Registration: {Restore},
		},
	}
}

// Route sends an authorization link to the restore screen with its token.
func Route(in domain.Intent) (router.Request[Screen], bool) {
	if v, ok := in.(domain.OpenAuthorization); ok {
		return router.Navigate(Restore, v.Token), true
	}
	return router.Request[Screen]{}, false
}

func Config(fade time.Duration) router.Config[Screen] {
	return router.Config[Screen]{
		Name:      Name,
		Root:      Login,
		Table:     Table(),
		Builder:   sections.NodeBuilder[Screen](Name),
		Intents:   Route,
		Lifecycle: sections.Privacy(Login, Security, fade),
	}
}

func New(fade time.Duration, opts ...router.Option) *router.Router[Screen] {
	return router.New(Config(fade), opts...)
}
