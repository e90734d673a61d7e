package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// MockSlot is a mutex-guarded implementation of PendingSlot for testing purposes.
type MockSlot struct {
	mu     sync.Mutex
	intent domain.Intent
}

func (m *MockSlot) Put(ctx context.Context, intent domain.Intent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intent = intent
	return nil
}

func (m *MockSlot) Drain(ctx context.Context) (domain.Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in := m.intent
	m.intent = nil
	return in, nil
}

func (m *MockSlot) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intent = nil
	return nil
}

func TestPendingSlot_Contract(t *testing.T) {
	// The mock itself must satisfy the contract every adapter is held to.
	ports.RunPendingSlotContract(t, &MockSlot{})
}
