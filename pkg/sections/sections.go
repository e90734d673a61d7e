package sections

import (
	"fmt"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/surface"
)

// Privacy maps app lifecycle events to the security overlay protocol of a
// section: resign active navigates to security, becoming active cross-fades
// back to root.
func Privacy[S comparable](root, security S, fade time.Duration) func(domain.LifecycleEvent) (router.Request[S], bool) {
	return func(ev domain.LifecycleEvent) (router.Request[S], bool) {
		switch ev {
		case domain.LifecycleWillResignActive:
			return router.Navigate(security, nil), true
		case domain.LifecycleBecameActive:
			return router.CrossFadeTo(root, domain.DefaultCrossFade(fade)), true
		}
		return router.Request[S]{}, false
	}
}

// NodeBuilder builds headless scene nodes named <section>/<screen>.
func NodeBuilder[S comparable](section string) router.Builder[S] {
	return func(screen S, payload any) surface.View {
		return surface.NewNode(fmt.Sprintf("%s/%v", section, screen), domain.Rect{})
	}
}

// Lookup finds the screen whose name is s.
func Lookup[S fmt.Stringer](all []S, s string) (S, error) {
	for _, sc := range all {
		if sc.String() == s {
			return sc, nil
		}
	}
	var zero S
	return zero, fmt.Errorf("unknown screen %q", s)
}
