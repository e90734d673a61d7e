package ports

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// PendingSlot parks the latest resolved intent until the app is ready to consume it.
// A write replaces any unread value. A drain is destructive: draining twice
// without an intervening write yields nil the second time.
type PendingSlot interface {
	// Put stores the intent, overwriting any previous one.
	Put(ctx context.Context, intent domain.Intent) error

	// Drain returns the parked intent and empties the slot.
	// It returns (nil, nil) when the slot is empty.
	Drain(ctx context.Context) (domain.Intent, error)

	// Clear empties the slot without reading it.
	Clear(ctx context.Context) error
}
