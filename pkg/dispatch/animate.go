package dispatch

import (
	"context"
	"sync"
	"time"
)

// animate runs a timed animation whose frames are applied through exec.
// completion is guarded so it fires exactly once whatever happens first.
// exited, if set, is called once the ticker goroutine has queued its last work.
func animate(ctx context.Context, exec Executor, interval, duration time.Duration, frame func(float64), completion func(bool), exited func()) {
	if duration <= 0 {
		animateNow(frame, completion)
		if exited != nil {
			exited()
		}
		return
	}

	var once sync.Once
	finish := func(finished bool) {
		once.Do(func() {
			if completion != nil {
				completion(finished)
			}
		})
	}

	// The ticker goroutine never owns the loop, even when Animate was called
	// from loop work, so every frame is queued.
	tick := offLoop(ctx)
	start := time.Now()
	go func() {
		if exited != nil {
			defer exited()
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				exec.Do(context.WithoutCancel(tick), func(context.Context) { finish(false) })
				return
			case now := <-ticker.C:
				p := float64(now.Sub(start)) / float64(duration)
				done := p >= 1
				if done {
					p = 1
				}
				exec.Do(tick, func(context.Context) {
					if frame != nil {
						frame(p)
					}
					if done {
						finish(true)
					}
				})
				if done {
					return
				}
			}
		}
	}()
}

// offLoop hides any loop marker carried by ctx.
func offLoop(ctx context.Context) context.Context {
	return context.WithValue(ctx, loopKey{}, (*Loop)(nil))
}
