package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"go.uber.org/atomic"
)

// FrameInterval is the default tick between animation frames.
const FrameInterval = 16 * time.Millisecond

// ErrLoopRunning is returned when Run is called on a loop that is already running.
var ErrLoopRunning = errors.New("dispatch loop already running")

type loopKey struct{}

type queued struct {
	ctx  context.Context
	work Work
}

// Loop is the single UI-owning loop.
type Loop struct {
	mu    sync.Mutex
	queue []queued
	wake  chan struct{}

	running   *atomic.Bool
	executed  *atomic.Int64
	animating *atomic.Int64

	frameInterval time.Duration
	logger        *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithFrameInterval sets the tick between animation frames.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// NewLoop creates a loop. Work can be queued before Run starts.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		wake:          make(chan struct{}, 1),
		running:       atomic.NewBool(false),
		executed:      atomic.NewInt64(0),
		animating:     atomic.NewInt64(0),
		frameInterval: FrameInterval,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnLoop reports whether ctx was handed out by this loop.
func (l *Loop) OnLoop(ctx context.Context) bool {
	owner, _ := ctx.Value(loopKey{}).(*Loop)
	return owner == l
}

// Running reports whether Run is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Executed returns how many queued work items the loop has run.
func (l *Loop) Executed() int64 {
	return l.executed.Load()
}

// Do runs work inline when called from the loop, otherwise queues it.
// It never blocks the caller.
func (l *Loop) Do(ctx context.Context, work Work) {
	if l.OnLoop(ctx) {
		work(ctx)
		return
	}

	l.mu.Lock()
	l.queue = append(l.queue, queued{ctx: ctx, work: work})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
		// Already signaled
	}
}

// Run owns the current goroutine and its OS thread until ctx is done,
// executing queued work in FIFO order. Once ctx is done it keeps draining
// until every animation in flight has delivered its completion.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l.logger.Debug("dispatch loop started")
	for {
		l.drain()

		select {
		case <-ctx.Done():
			l.settle()
			l.logger.Debug("dispatch loop stopped", "pending", l.pending())
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Wait blocks until every item queued before the call has run.
// Called from the loop itself it returns immediately.
func (l *Loop) Wait(ctx context.Context) error {
	if l.OnLoop(ctx) {
		return nil
	}
	done := make(chan struct{})
	l.Do(ctx, func(context.Context) { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Animate ticks frames onto the loop. See Executor.
func (l *Loop) Animate(ctx context.Context, duration time.Duration, frame func(float64), completion func(bool)) {
	if duration <= 0 {
		animateNow(frame, completion)
		return
	}
	l.animating.Inc()
	animate(ctx, l, l.frameInterval, duration, frame, completion, func() { l.animating.Dec() })
}

// settle runs queued work until no animation is left ticking.
func (l *Loop) settle() {
	for {
		l.drain()
		if l.animating.Load() == 0 && l.pending() == 0 {
			return
		}
		select {
		case <-l.wake:
		case <-time.After(l.frameInterval):
		}
	}
}

func (l *Loop) drain() {
	for {
		item, ok := l.pop()
		if !ok {
			return
		}
		l.exec(item)
	}
}

func (l *Loop) pop() (queued, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return queued{}, false
	}
	item := l.queue[0]
	l.queue[0] = queued{}
	l.queue = l.queue[1:]
	return item, true
}

func (l *Loop) pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) exec(item queued) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("ui work panicked", "err", fmt.Errorf("%v", r))
		}
	}()
	l.executed.Inc()
	item.work(context.WithValue(item.ctx, loopKey{}, l))
}
