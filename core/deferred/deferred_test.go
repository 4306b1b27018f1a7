package deferred

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfter(t *testing.T) {
	task := After(20*time.Millisecond, func() string { return "done" })

	_, ok := task.Result()
	assert.False(t, ok, "not resolved before the delay")

	val, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", val)

	val, ok = task.Result()
	assert.True(t, ok)
	assert.Equal(t, "done", val)
}

func TestTask_WaitCancelled(t *testing.T) {
	task := After(time.Hour, func() int { return 1 })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	val, err := task.Wait(ctx)
	assert.Equal(t, context.Canceled, err)
	assert.Zero(t, val)
}

func TestResolved(t *testing.T) {
	val, ok := Resolved(42).Result()
	assert.True(t, ok)
	assert.Equal(t, 42, val)
}

func TestGuard(t *testing.T) {
	g := NewGuard()

	require.NoError(t, g.Acquire("a"))
	assert.True(t, g.Busy("a"))
	assert.Equal(t, ErrInFlight, g.Acquire("a"))
	assert.NoError(t, g.Acquire("b"), "keys are independent")

	g.Release("a")
	assert.False(t, g.Busy("a"))
	assert.NoError(t, g.Acquire("a"))
}
