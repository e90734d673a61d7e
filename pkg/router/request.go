package router

import "github.com/aretw0/waypoint/pkg/domain"

// Request is a tagged transition request for a section whose screens are S.
// Only the fields relevant to Kind are read.
type Request[S comparable] struct {
	Kind domain.RequestKind

	// Screen is the navigation target, or the root a shift moves to.
	Screen S
	// Payload is passed to the screen builder.
	Payload any

	CrossFade    domain.CrossFade
	Slide        domain.SlideSnapshot
	Notification domain.Notification
	Spinner      bool
	Event        any
}

// Navigate requests a named screen.
func Navigate[S comparable](screen S, payload any) Request[S] {
	return Request[S]{Kind: domain.RequestNavigate, Screen: screen, Payload: payload}
}

// CrossFadeTo requests a cross-fade shift to a new root.
func CrossFadeTo[S comparable](screen S, params domain.CrossFade) Request[S] {
	return Request[S]{Kind: domain.RequestCrossFade, Screen: screen, CrossFade: params}
}

// SlideTo requests a snapshot slide shift to a new root.
func SlideTo[S comparable](screen S, params domain.SlideSnapshot) Request[S] {
	return Request[S]{Kind: domain.RequestSlideSnapshot, Screen: screen, Slide: params}
}

// Notify requests a banner over the active surface.
func Notify[S comparable](n domain.Notification) Request[S] {
	return Request[S]{Kind: domain.RequestNotify, Notification: n}
}

// Spinner shows or hides the activity spinner.
func Spinner[S comparable](on bool) Request[S] {
	return Request[S]{Kind: domain.RequestSpinner, Spinner: on}
}

// Forward hands an event to the composition root through the router's outputs.
func Forward[S comparable](ev any) Request[S] {
	return Request[S]{Kind: domain.RequestForward, Event: ev}
}
