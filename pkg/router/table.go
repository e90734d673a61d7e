package router

import (
	"slices"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Table is the presentability rule of a section, expressed as static data.
//
//   - shifts, notifications and spinner toggles are always allowed;
//   - while the current state is Locked, everything else is denied;
//   - navigating to the current screen is denied;
//   - navigating from a state to a screen listed in Forbidden[state] is denied.
type Table[S comparable] struct {
	Locked    []S
	Forbidden map[S][]S
}

// Allows reports whether req may run while the section is in current.
func (t Table[S]) Allows(current S, req Request[S]) bool {
	switch req.Kind {
	case domain.RequestCrossFade, domain.RequestSlideSnapshot,
		domain.RequestNotify, domain.RequestSpinner:
		return true
	}

	if t.IsLocked(current) {
		return false
	}

	switch req.Kind {
	case domain.RequestForward:
		return true
	case domain.RequestNavigate:
		if req.Screen == current {
			return false
		}
		return !slices.Contains(t.Forbidden[current], req.Screen)
	}
	return false
}

// IsLocked reports whether s is a security state.
func (t Table[S]) IsLocked(s S) bool {
	return slices.Contains(t.Locked, s)
}
