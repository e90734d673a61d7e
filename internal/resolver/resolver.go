// Package resolver turns external activation inputs into navigation intents.
//
// Deep links (custom scheme) and universal links (https handoffs) are reduced
// to a path below the public link prefix and matched against an ordered
// cascade of sub-route prefixes. A match builds an intent, parks it in the
// pending slot and publishes it. Every rejection is logged with the literal
// input and yields no intent.
package resolver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/event"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/google/uuid"
)

// DefaultMarker is the app-specific sub-path every link lives under.
const DefaultMarker = "mobileLink"

// NestedScheme marks a deep link that wraps a full universal link.
const NestedScheme = "https://"

// Resolver matches activation inputs against the route cascade.
type Resolver struct {
	scheme string
	host   string
	marker string

	rules   []Rule
	slot    ports.PendingSlot
	intents *event.Channel[domain.Intent]
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	newID   func() string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMarker overrides the app-specific sub-path marker.
func WithMarker(marker string) Option {
	return func(r *Resolver) {
		r.marker = strings.Trim(marker, "/")
	}
}

// WithRules replaces the cascade. Order is precedence.
func WithRules(rules []Rule) Option {
	return func(r *Resolver) {
		r.rules = rules
	}
}

// WithSlot sets the pending activity slot. Defaults to an in-memory slot.
func WithSlot(slot ports.PendingSlot) Option {
	return func(r *Resolver) {
		r.slot = slot
	}
}

// WithIntents sets the channel successful resolutions are published on.
func WithIntents(ch *event.Channel[domain.Intent]) Option {
	return func(r *Resolver) {
		r.intents = ch
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Resolver) {
		r.hooks = hooks
	}
}

// New creates a resolver for links of the form
// <scheme>://<host>/<marker>/... and https://<host>/<marker>/...
func New(scheme, host string, opts ...Option) *Resolver {
	r := &Resolver{
		scheme:  strings.TrimSuffix(scheme, "://"),
		host:    strings.Trim(host, "/"),
		marker:  DefaultMarker,
		rules:   DefaultRules(),
		slot:    memory.NewSlot(),
		intents: event.New[domain.Intent](),
		logger:  logging.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "resolver")
	return r
}

// Intents is the channel successful resolutions are published on.
func (r *Resolver) Intents() *event.Channel[domain.Intent] {
	return r.intents
}

// DeepLinkPrefix is the fixed custom-scheme prefix.
func (r *Resolver) DeepLinkPrefix() string {
	return r.scheme + "://"
}

// UniversalPrefix is the fixed public link prefix.
func (r *Resolver) UniversalPrefix() string {
	return NestedScheme + r.subPath()
}

func (r *Resolver) subPath() string {
	return r.host + "/" + r.marker + "/"
}

// DrainPending returns the parked intent, if any, and empties the slot.
func (r *Resolver) DrainPending(ctx context.Context) domain.Intent {
	in, err := r.slot.Drain(ctx)
	if err != nil {
		r.logger.Error("pending slot drain failed", "err", err)
		return nil
	}
	if in != nil {
		r.logger.Info("pending intent drained", "intent", in.Kind())
	}
	return in
}

// ResolveDeepLink resolves a custom-scheme activation.
func (r *Resolver) ResolveDeepLink(ctx context.Context, raw string) (domain.Intent, error) {
	t := r.begin(domain.SourceDeepLink, raw)
	if raw == "" {
		return t.reject(ctx, domain.ErrEmptyInput)
	}
	rest, ok := strings.CutPrefix(raw, r.DeepLinkPrefix())
	if !ok {
		return t.reject(ctx, domain.ErrBadScheme)
	}

	// A deep link may wrap a complete universal link.
	if strings.HasPrefix(rest, NestedScheme) {
		path, ok := strings.CutPrefix(rest, r.UniversalPrefix())
		if !ok {
			return t.reject(ctx, domain.ErrBadPrefix)
		}
		return t.cascade(ctx, path)
	}

	path, ok := strings.CutPrefix(rest, r.subPath())
	if !ok {
		return t.reject(ctx, domain.ErrBadPrefix)
	}
	return t.cascade(ctx, path)
}

// ResolveUniversalLink resolves a web browsing handoff.
func (r *Resolver) ResolveUniversalLink(ctx context.Context, act domain.Activation) (domain.Intent, error) {
	if act.Type != domain.ActivationBrowsingWeb {
		t := r.begin(domain.SourceUniversalLink, act.Type)
		return t.reject(ctx, domain.ErrUnsupportedActivation)
	}
	t := r.begin(domain.SourceUniversalLink, act.URL)
	if act.URL == "" {
		return t.reject(ctx, domain.ErrEmptyInput)
	}
	path, ok := strings.CutPrefix(act.URL, r.UniversalPrefix())
	if !ok {
		return t.reject(ctx, domain.ErrBadPrefix)
	}
	return t.cascade(ctx, path)
}

// ResolveUniversalPath runs the cascade on a path below the public prefix.
func (r *Resolver) ResolveUniversalPath(ctx context.Context, path string) (domain.Intent, error) {
	return r.begin(domain.SourcePath, path).cascade(ctx, path)
}

// attempt carries the context of one resolution call.
type attempt struct {
	r      *Resolver
	id     string
	source domain.ResolveSource
	input  string
	log    *slog.Logger
}

func (r *Resolver) begin(source domain.ResolveSource, input string) *attempt {
	id := r.newID()
	return &attempt{
		r:      r,
		id:     id,
		source: source,
		input:  input,
		log:    r.logger.With("source", source, "input", input, "correlation_id", id),
	}
}

func (t *attempt) cascade(ctx context.Context, path string) (domain.Intent, error) {
	for _, rule := range t.r.rules {
		rest, ok := strings.CutPrefix(path, rule.Prefix)
		if !ok {
			continue
		}
		in, err := rule.Build(rest)
		if err != nil {
			// A matched rule that fails to build does not fall through to later rules.
			return t.reject(ctx, err, "rule", rule.Name)
		}
		return t.accept(ctx, in, rule.Name)
	}

	if err := t.r.slot.Clear(ctx); err != nil {
		t.log.Error("pending slot clear failed", "err", err)
	}
	return t.reject(ctx, domain.ErrNoRoute)
}

func (t *attempt) accept(ctx context.Context, in domain.Intent, rule string) (domain.Intent, error) {
	if err := t.r.slot.Put(ctx, in); err != nil {
		t.log.Error("pending slot write failed", "err", err)
	}
	t.log.Info("link resolved", "rule", rule, "intent", in.Kind())
	t.emit(ctx, domain.OutcomeAccepted, in, nil)
	t.r.intents.Publish(in)
	return in, nil
}

func (t *attempt) reject(ctx context.Context, cause error, attrs ...any) (domain.Intent, error) {
	err := domain.NewResolveError(t.input, cause)
	t.log.Error("link rejected", append(attrs, "err", cause)...)
	t.emit(ctx, domain.OutcomeRejected, nil, err)
	return nil, err
}

func (t *attempt) emit(ctx context.Context, outcome domain.Outcome, in domain.Intent, err error) {
	t.r.hooks.EmitResolve(ctx, &domain.ResolveEvent{
		Timestamp:     time.Now(),
		CorrelationID: t.id,
		Source:        t.source,
		Input:         t.input,
		Outcome:       outcome,
		Intent:        in,
		Err:           err,
	})
}
