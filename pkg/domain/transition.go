package domain

import "time"

// RequestKind tags a transition request.
type RequestKind string

const (
	RequestNavigate      RequestKind = "navigate"
	RequestCrossFade     RequestKind = "cross_fade"
	RequestSlideSnapshot RequestKind = "slide_snapshot"
	RequestNotify        RequestKind = "notify"
	RequestSpinner       RequestKind = "spinner"
	RequestForward       RequestKind = "forward"
)

// IsShift reports whether the kind is one of the animated root shifts.
func (k RequestKind) IsShift() bool {
	return k == RequestCrossFade || k == RequestSlideSnapshot
}

// Rect is a frame in window coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Lerp interpolates between r and to at progress p in [0,1].
func (r Rect) Lerp(to Rect, p float64) Rect {
	return Rect{
		X: lerp(r.X, to.X, p),
		Y: lerp(r.Y, to.Y, p),
		W: lerp(r.W, to.W, p),
		H: lerp(r.H, to.H, p),
	}
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// Lerp interpolates a scalar, exposed for alpha animation.
func Lerp(a, b, p float64) float64 {
	return lerp(a, b, p)
}

// CrossFade adds the incoming root over the outgoing one and animates its opacity.
type CrossFade struct {
	FromAlpha float64
	ToAlpha   float64
	Duration  time.Duration
}

// DefaultCrossFade fades the incoming root fully in.
func DefaultCrossFade(d time.Duration) CrossFade {
	return CrossFade{FromAlpha: 0, ToAlpha: 1, Duration: d}
}

// Keyframe is the geometry and opacity of a snapshot at one end of a slide.
type Keyframe struct {
	Frame Rect
	Alpha float64
}

// SlideSnapshot slides static snapshots of the outgoing and incoming surfaces.
type SlideSnapshot struct {
	OutgoingStart Keyframe
	OutgoingEnd   Keyframe
	IncomingStart Keyframe
	IncomingEnd   Keyframe
	Duration      time.Duration
}

// SlideForward slides the incoming surface in from the right, pushing the outgoing one left.
func SlideForward(bounds Rect, d time.Duration) SlideSnapshot {
	left := bounds
	left.X -= bounds.W
	right := bounds
	right.X += bounds.W
	return SlideSnapshot{
		OutgoingStart: Keyframe{Frame: bounds, Alpha: 1},
		OutgoingEnd:   Keyframe{Frame: left, Alpha: 0},
		IncomingStart: Keyframe{Frame: right, Alpha: 1},
		IncomingEnd:   Keyframe{Frame: bounds, Alpha: 1},
		Duration:      d,
	}
}

// SlideBackward is the mirror of SlideForward, used for logout.
func SlideBackward(bounds Rect, d time.Duration) SlideSnapshot {
	s := SlideForward(bounds, d)
	left := bounds
	left.X -= bounds.W
	right := bounds
	right.X += bounds.W
	s.OutgoingEnd.Frame = right
	s.IncomingStart.Frame = left
	return s
}

// Notification is a transient banner shown over the active surface.
type Notification struct {
	Title   string
	Message string
}
