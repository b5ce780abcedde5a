package flight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_BeginSupersedesPrevious(t *testing.T) {
	var s Slot

	ctx1, gen1 := s.Begin(context.Background())
	require.True(t, s.Current(gen1))

	ctx2, gen2 := s.Begin(context.Background())
	assert.NotEqual(t, gen1, gen2)
	assert.False(t, s.Current(gen1))
	assert.True(t, s.Current(gen2))

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
}

func TestSlot_InvalidateCancelsWithoutNewOperation(t *testing.T) {
	var s Slot

	ctx, gen := s.Begin(context.Background())
	s.Invalidate()

	assert.False(t, s.Current(gen))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestSlot_FinishReleasesOnlyCurrent(t *testing.T) {
	var s Slot

	_, gen1 := s.Begin(context.Background())
	ctx2, gen2 := s.Begin(context.Background())

	s.Finish(gen1)
	assert.NoError(t, ctx2.Err(), "finishing a stale generation must not cancel the current one")

	s.Finish(gen2)
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.True(t, s.Current(gen2), "finish keeps the generation current")
}

func TestSlot_ZeroGenerationNeverCurrent(t *testing.T) {
	var s Slot
	assert.False(t, s.Current(0))
	assert.Zero(t, s.Generation())
}

func TestSlot_ParentCancellationPropagates(t *testing.T) {
	var s Slot
	parent, cancel := context.WithCancel(context.Background())

	ctx, _ := s.Begin(parent)
	cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
