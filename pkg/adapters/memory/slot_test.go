package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot_Contract(t *testing.T) {
	ports.RunPendingSlotContract(t, memory.NewSlot())
}

func TestMemorySlot_PeekDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()
	assert.Nil(t, slot.Peek())

	require.NoError(t, slot.Put(ctx, domain.OpenIntercom{ID: "7"}))
	assert.Equal(t, domain.OpenIntercom{ID: "7"}, slot.Peek())
	assert.Equal(t, domain.OpenIntercom{ID: "7"}, slot.Peek())

	got, err := slot.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OpenIntercom{ID: "7"}, got)
	assert.Nil(t, slot.Peek())
}

func TestMemorySlot_PutNilClears(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()
	require.NoError(t, slot.Put(ctx, domain.OpenIntercom{ID: "7"}))
	require.NoError(t, slot.Put(ctx, nil))

	got, err := slot.Drain(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
