package reconcile_test

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/engine/reconcile"
)

func TestDebouncer_Trigger(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := reconcile.NewDebouncer(3*time.Second, func() { calls.Add(1) })

		d.Trigger()
		assert.True(t, d.Pending())

		time.Sleep(3*time.Second + time.Millisecond)
		synctest.Wait()

		require.Equal(t, int32(1), calls.Load())
		assert.False(t, d.Pending())
	})
}

func TestDebouncer_TriggerResetsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := reconcile.NewDebouncer(3*time.Second, func() { calls.Add(1) })

		d.Trigger()
		time.Sleep(2 * time.Second)
		d.Trigger()
		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load(), "second trigger restarted the window")

		time.Sleep(time.Second + time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestDebouncer_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := reconcile.NewDebouncer(time.Second, func() { calls.Add(1) })

		assert.False(t, d.Cancel(), "nothing pending")

		d.Trigger()
		assert.True(t, d.Cancel())

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := reconcile.NewDebouncer(time.Second, func() { calls.Add(1) })

		assert.False(t, d.Flush())
		assert.Equal(t, int32(0), calls.Load(), "flush without a pending run is a no-op")

		d.Trigger()
		assert.True(t, d.Flush())
		assert.Equal(t, int32(1), calls.Load(), "flush runs synchronously")

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load(), "flushed run does not fire again")
	})
}
