package memory

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
	"go.uber.org/atomic"
)

type parked struct {
	intent domain.Intent
}

// Slot implements ports.PendingSlot in memory.
// Safe for concurrent use; drains are atomic swaps.
type Slot struct {
	cur *atomic.Pointer[parked]
}

// NewSlot creates an empty in-memory slot.
func NewSlot() *Slot {
	return &Slot{cur: atomic.NewPointer[parked](nil)}
}

// Put stores the intent, replacing any unread one.
func (s *Slot) Put(ctx context.Context, intent domain.Intent) error {
	if intent == nil {
		s.cur.Store(nil)
		return nil
	}
	s.cur.Store(&parked{intent: intent})
	return nil
}

// Drain returns the parked intent and empties the slot.
func (s *Slot) Drain(ctx context.Context) (domain.Intent, error) {
	p := s.cur.Swap(nil)
	if p == nil {
		return nil, nil
	}
	return p.intent, nil
}

// Clear empties the slot.
func (s *Slot) Clear(ctx context.Context) error {
	s.cur.Store(nil)
	return nil
}

// Peek returns the parked intent without consuming it.
func (s *Slot) Peek() domain.Intent {
	if p := s.cur.Load(); p != nil {
		return p.intent
	}
	return nil
}
