package draft

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls, last atomic.Int32

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Schedule(func() {
			calls.Add(1)
			last.Store(v)
		})
	}
	require.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_Flush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32
	d.Schedule(func() { calls.Add(1) })

	d.Flush()
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())

	d.Flush()
	assert.Equal(t, int32(1), calls.Load(), "nothing pending")
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	d.Schedule(func() { calls.Add(1) })

	d.Stop()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewDebouncer(0).delay)
}
