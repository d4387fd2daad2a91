package divide

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/logger"
)

var errOdd = stderrors.New("odd input")

func capturePanic(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

func panicsAt(index int) func(int) int {
	return func(v int) int {
		if v == index {
			panic(fmt.Sprintf("bad element %d", v))
		}
		return v
	}
}

func TestWorkerPanicAbortsCall(t *testing.T) {
	for _, d := range dividers() {
		for _, workers := range []int{1, 4, 16} {
			t.Run(fmt.Sprintf("%s/workers=%d", d.name, workers), func(t *testing.T) {
				var out []int
				v := capturePanic(func() {
					out = d.run(rangeInts(0, 99), panicsAt(37), quiet(WithWorkers(workers))...)
				})

				require.Nil(t, out, "no output may be returned")
				pe, ok := v.(*PanicError)
				require.True(t, ok, "expected *PanicError, got %T", v)
				assert.Equal(t, "bad element 37", pe.Value)
				assert.Equal(t, 37, pe.Index)
				assert.GreaterOrEqual(t, pe.Worker, 0)
				assert.Less(t, pe.Worker, workers)
				assert.NotEmpty(t, pe.Stack)
				assert.Contains(t, pe.Error(), "element 37")
			})
		}
	}
}

func TestPanicBelowThresholdIsWrapped(t *testing.T) {
	for _, d := range dividers() {
		t.Run(d.name, func(t *testing.T) {
			v := capturePanic(func() {
				d.run(rangeInts(0, 4), panicsAt(2), quiet()...)
			})
			pe, ok := v.(*PanicError)
			require.True(t, ok, "expected *PanicError, got %T", v)
			assert.Equal(t, 2, pe.Index)
			assert.Equal(t, callerWorker, pe.Worker)
		})
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	cause := stderrors.New("closed")
	pe := &PanicError{Value: cause, Index: 1, Worker: 0}
	assert.ErrorIs(t, pe, cause)
	assert.Nil(t, (&PanicError{Value: "text"}).Unwrap())
}

type tryDivider struct {
	name string
	run  func(input []int, fn func(int) (int, error), opts ...Option) ([]int, error)
}

func tryDividers() []tryDivider {
	return []tryDivider{
		{"equal", TryEqual[int, int]},
		{"work", TryWork[int, int]},
		{"sequential", func(input []int, fn func(int) (int, error), _ ...Option) ([]int, error) {
			return TrySequential(input, fn)
		}},
	}
}

func TestTrySuccess(t *testing.T) {
	for _, d := range tryDividers() {
		t.Run(d.name, func(t *testing.T) {
			out, err := d.run(rangeInts(1, 12), func(v int) (int, error) { return v + 1, nil }, quiet(WithWorkers(3))...)
			require.NoError(t, err)
			assert.Equal(t, rangeInts(2, 13), out)
		})
	}
}

func TestTryTransformFailed(t *testing.T) {
	fn := func(v int) (int, error) {
		if v == 42 {
			return 0, errOdd
		}
		return v, nil
	}
	for _, d := range tryDividers() {
		t.Run(d.name, func(t *testing.T) {
			out, err := d.run(rangeInts(0, 99), fn, quiet(WithWorkers(4))...)
			require.Error(t, err)
			assert.Nil(t, out)

			assert.True(t, errors.HasCode(err, errors.ErrCodeTransformFailed))
			assert.ErrorIs(t, err, errOdd)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 42, appErr.Details["index"])
			assert.False(t, appErr.Fatal())
		})
	}
}

func TestTryPanicBecomesError(t *testing.T) {
	fn := func(v int) (int, error) {
		return panicsAt(13)(v), nil
	}
	for _, d := range tryDividers() {
		t.Run(d.name, func(t *testing.T) {
			var (
				out []int
				err error
			)
			require.NotPanics(t, func() {
				out, err = d.run(rangeInts(0, 49), fn, quiet(WithWorkers(4))...)
			})
			assert.Nil(t, out)
			assert.True(t, errors.HasCode(err, errors.ErrCodeWorkerPanic))

			var pe *PanicError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 13, pe.Index)
			appErr, _ := errors.AsAppError(err)
			assert.True(t, appErr.Fatal())
			assert.Equal(t, 13, appErr.Details["index"])
		})
	}
}

func TestTryStopsStartingElements(t *testing.T) {
	t.Run("work", func(t *testing.T) {
		var calls atomic.Int32
		_, err := TryWork(rangeInts(0, 99), func(v int) (int, error) {
			calls.Add(1)
			return 0, errOdd
		}, quiet(WithWorkers(1))...)

		require.Error(t, err)
		assert.EqualValues(t, 1, calls.Load())
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, 99, appErr.Details["index"], "the queue is popped from the end")
	})

	t.Run("equal", func(t *testing.T) {
		var calls atomic.Int32
		_, err := TryEqual(rangeInts(0, 99), func(v int) (int, error) {
			calls.Add(1)
			return 0, errOdd
		}, quiet(WithWorkers(1))...)

		require.Error(t, err)
		assert.EqualValues(t, 1, calls.Load())
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, 0, appErr.Details["index"])
	})

	t.Run("sequential", func(t *testing.T) {
		var calls atomic.Int32
		_, err := TrySequential(rangeInts(0, 5), func(v int) (int, error) {
			calls.Add(1)
			if v == 2 {
				return 0, errOdd
			}
			return v, nil
		})
		require.Error(t, err)
		assert.EqualValues(t, 3, calls.Load())
	})
}

func TestTryMapDispatch(t *testing.T) {
	input := rangeInts(1, 20)
	out, err := TryMap(input, func(v int) (string, error) { return fmt.Sprint(v), nil },
		quiet(WithStrategy(StrategyEqual), WithWorkers(3))...)
	require.NoError(t, err)
	assert.Equal(t, "20", out[19])
	assert.Equal(t, rangeInts(1, 20), input)
}

func exitsAt(index int) func(int) int {
	return func(v int) int {
		if v == index {
			runtime.Goexit()
		}
		return v
	}
}

func TestWorkerExitIsNotSilent(t *testing.T) {
	for _, d := range dividers() {
		for _, workers := range []int{1, 4} {
			t.Run(fmt.Sprintf("%s/workers=%d", d.name, workers), func(t *testing.T) {
				var out []int
				v := capturePanic(func() {
					out = d.run(rangeInts(0, 99), exitsAt(37), quiet(WithWorkers(workers))...)
				})

				require.Nil(t, out, "a short result must never be returned")
				err, ok := v.(error)
				require.True(t, ok, "expected an error panic, got %T", v)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvariantViolation), "got %v", err)
			})
		}
	}
}

func TestTryWorkerExitIsReported(t *testing.T) {
	fn := func(v int) (int, error) { return exitsAt(37)(v), nil }
	for _, d := range tryDividers()[:2] {
		t.Run(d.name, func(t *testing.T) {
			out, err := d.run(rangeInts(0, 99), fn, quiet(WithWorkers(4))...)
			assert.Nil(t, out)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvariantViolation), "got %v", err)
		})
	}
}

func TestFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "divide-test", &buf)

	_, err := TryEqual(rangeInts(0, 19), func(v int) (int, error) {
		if v == 4 {
			return 0, errOdd
		}
		return v, nil
	}, WithLogger(log), WithMetrics(nil), WithWorkers(2))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"divide failed"`)
	assert.Contains(t, out, `"error":"odd input"`)
	assert.Contains(t, out, `"path":"parallel"`)
}
