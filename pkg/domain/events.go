package domain

import (
	"context"
	"time"
)

// Outcome is the result of a resolution or a transition.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeExecuted Outcome = "executed"
	OutcomeDenied   Outcome = "denied"
	OutcomeDropped  Outcome = "dropped"
)

// ResolveSource names the kind of activation being resolved.
type ResolveSource string

const (
	SourceDeepLink      ResolveSource = "deep_link"
	SourceUniversalLink ResolveSource = "universal_link"
	SourcePath          ResolveSource = "path"
)

// ResolveEvent describes one resolution attempt.
type ResolveEvent struct {
	Timestamp     time.Time     `json:"timestamp"`
	CorrelationID string        `json:"correlation_id"`
	Source        ResolveSource `json:"source"`
	Input         string        `json:"input"`
	Outcome       Outcome       `json:"outcome"`
	Intent        Intent        `json:"-"`
	Err           error         `json:"-"`
}

// TransitionEvent describes one request handled by a section router.
type TransitionEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Section   string      `json:"section"`
	Kind      RequestKind `json:"kind"`
	From      string      `json:"from"`
	To        string      `json:"to,omitempty"`
	Outcome   Outcome     `json:"outcome"`
	Err       error       `json:"-"`
}

// LifecycleHooks defines callbacks for routing observability.
type LifecycleHooks struct {
	OnResolve    func(context.Context, *ResolveEvent)
	OnTransition func(context.Context, *TransitionEvent)
}

// EmitResolve calls OnResolve if set.
func (h LifecycleHooks) EmitResolve(ctx context.Context, e *ResolveEvent) {
	if h.OnResolve != nil {
		h.OnResolve(ctx, e)
	}
}

// EmitTransition calls OnTransition if set.
func (h LifecycleHooks) EmitTransition(ctx context.Context, e *TransitionEvent) {
	if h.OnTransition != nil {
		h.OnTransition(ctx, e)
	}
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnResolve: func(ctx context.Context, e *ResolveEvent) {
			h.EmitResolve(ctx, e)
			other.EmitResolve(ctx, e)
		},
		OnTransition: func(ctx context.Context, e *TransitionEvent) {
			h.EmitTransition(ctx, e)
			other.EmitTransition(ctx, e)
		},
	}
}
