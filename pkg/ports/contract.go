package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPendingSlotContract runs a suite of tests to verify that a PendingSlot implementation
// adheres to the defined interface contract.
func RunPendingSlotContract(t *testing.T, slot PendingSlot) {
	ctx := context.Background()

	t.Run("Drain Empty", func(t *testing.T) {
		require.NoError(t, slot.Clear(ctx))

		got, err := slot.Drain(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Put and Drain Once", func(t *testing.T) {
		want := domain.OpenAuthorization{Token: "abc123"}
		require.NoError(t, slot.Put(ctx, want))

		got, err := slot.Drain(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		again, err := slot.Drain(ctx)
		require.NoError(t, err)
		assert.Nil(t, again, "second drain without a write must be empty")
	})

	t.Run("Write Overwrites", func(t *testing.T) {
		require.NoError(t, slot.Put(ctx, domain.OpenIntercom{ID: "1"}))
		require.NoError(t, slot.Put(ctx, domain.OpenPayment{Payment: domain.PaymentError, Reference: "x"}))

		got, err := slot.Drain(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.OpenPayment{Payment: domain.PaymentError, Reference: "x"}, got)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, slot.Put(ctx, domain.OpenIntercom{ID: "2"}))
		require.NoError(t, slot.Clear(ctx))

		got, err := slot.Drain(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Concurrent Drain Delivers Once", func(t *testing.T) {
		require.NoError(t, slot.Put(ctx, domain.OpenIntercom{ID: "3"}))

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			hits int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := slot.Drain(ctx)
				if err == nil && got != nil {
					mu.Lock()
					hits++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, hits)
	})
}
