package dispatch

import (
	"context"
	"time"
)

// Work is a unit of UI mutation. The context it receives identifies the loop
// it runs on and must be passed along to nested Do calls.
type Work func(ctx context.Context)

// Executor runs UI work and animations on the UI-owning thread.
type Executor interface {
	// Do runs work on the UI thread: inline if ctx already belongs to it,
	// otherwise asynchronously.
	Do(ctx context.Context, work Work)

	// Animate drives frame from progress 0 to 1 over duration and then calls
	// completion exactly once. finished is false if ctx ended first.
	Animate(ctx context.Context, duration time.Duration, frame func(progress float64), completion func(finished bool))
}

// Inline is an Executor for hosts whose caller already owns the UI, such as
// headless simulations and tests. Work runs immediately and every animation
// jumps straight to its final frame.
type Inline struct{}

// Do runs work immediately.
func (Inline) Do(ctx context.Context, work Work) {
	work(ctx)
}

// Animate applies the final frame and completes synchronously.
func (Inline) Animate(ctx context.Context, duration time.Duration, frame func(float64), completion func(bool)) {
	animateNow(frame, completion)
}

func animateNow(frame func(float64), completion func(bool)) {
	if frame != nil {
		frame(1)
	}
	if completion != nil {
		completion(true)
	}
}
