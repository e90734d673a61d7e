// Package surface is the boundary to the host view hierarchy.
//
// Section routers never build or lay out screens; they only move views that a
// builder already produced between the window root, the presented overlays
// and transient animation layers. Hosts adapt their toolkit to View and
// Window. Scene and Node are an in-memory implementation for headless hosts.
package surface

import "github.com/aretw0/waypoint/pkg/domain"

// View is a node of the host view hierarchy.
type View interface {
	ID() string

	Alpha() float64
	SetAlpha(alpha float64)

	Frame() domain.Rect
	SetFrame(frame domain.Rect)

	AddSubview(v View)
	RemoveSubview(v View)
	Subviews() []View

	// Snapshot returns a static copy of the view as it looks now.
	// Later changes to the view do not affect the snapshot.
	Snapshot() (View, error)
}

// Window owns the root view, the stack of presented overlays and the
// transient layers used while a shift is animating.
type Window interface {
	Bounds() domain.Rect

	Root() View
	SetRoot(v View)

	// Presented returns the overlay stack, bottom first.
	Presented() []View
	Present(v View)
	DismissAll()

	AddLayer(v View)
	RemoveLayer(v View)
	Layers() []View
}

// Top returns the topmost presented view, or the root when nothing is presented.
func Top(w Window) View {
	if p := w.Presented(); len(p) > 0 {
		return p[len(p)-1]
	}
	return w.Root()
}
