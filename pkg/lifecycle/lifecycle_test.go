package lifecycle

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBus_Trigger(t *testing.T) {
	t.Parallel()

	t.Run("runs hooks in registration order", func(t *testing.T) {
		t.Parallel()

		var order []int
		b := New()
		b.OnShutdown(func(context.Context) error { order = append(order, 1); return nil })
		b.OnShutdown(func(context.Context) error { order = append(order, 2); return nil })
		b.OnShutdown(func(context.Context) error { order = append(order, 3); return nil })

		require.NoError(t, b.Trigger(context.Background()))
		require.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("joins hook errors and keeps running", func(t *testing.T) {
		t.Parallel()

		errA := errors.New("a")
		errB := errors.New("b")
		ran := 0

		b := New()
		b.OnShutdown(func(context.Context) error { ran++; return errA })
		b.OnShutdown(func(context.Context) error { ran++; return nil })
		b.OnShutdown(func(context.Context) error { ran++; return errB })

		err := b.Trigger(context.Background())
		require.Error(t, err)
		require.ErrorIs(t, err, errA)
		require.ErrorIs(t, err, errB)
		require.Equal(t, 3, ran)
	})

	t.Run("fires again on repeated trigger", func(t *testing.T) {
		t.Parallel()

		calls := 0
		b := New()
		b.OnShutdown(func(context.Context) error { calls++; return nil })

		require.NoError(t, b.Trigger(context.Background()))
		require.NoError(t, b.Trigger(context.Background()))
		require.Equal(t, 2, calls)
	})

	t.Run("ignores nil hooks", func(t *testing.T) {
		t.Parallel()

		b := New()
		b.OnShutdown(nil)
		require.NoError(t, b.Trigger(context.Background()))
	})
}

func TestBus_Wait(t *testing.T) {
	t.Parallel()

	t.Run("runs hooks when context is cancelled", func(t *testing.T) {
		t.Parallel()

		called := make(chan struct{})
		b := New(WithSignals(syscall.SIGUSR1))
		b.OnShutdown(func(context.Context) error {
			close(called)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- b.Wait(ctx) }()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Wait did not return after cancellation")
		}

		select {
		case <-called:
		default:
			t.Fatal("hook was not called")
		}
	})

	t.Run("hooks get a live context bounded by the timeout", func(t *testing.T) {
		t.Parallel()

		b := New(WithTimeout(time.Minute), WithSignals(syscall.SIGUSR1))
		var hookErr error
		var deadline time.Time
		b.OnShutdown(func(ctx context.Context) error {
			hookErr = ctx.Err()
			deadline, _ = ctx.Deadline()
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, b.Wait(ctx))
		require.NoError(t, hookErr)
		require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, Default(), Default())
}
