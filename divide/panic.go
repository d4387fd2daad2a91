package divide

import (
	"fmt"
	"runtime/debug"

	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/observability"
)

// callerWorker is the Worker of a panic raised on the calling goroutine.
const callerWorker = -1

// PanicError is a panic recovered from the transformation.
type PanicError struct {
	// Value is the value passed to panic.
	Value any
	// Stack is the stack of the panicking goroutine.
	Stack []byte
	// Index is the input position being transformed.
	Index int
	// Worker is the worker that panicked, or -1 for the calling goroutine.
	Worker int
}

func (e *PanicError) Error() string {
	if e.Worker == callerWorker {
		return fmt.Sprintf("divide: transformation panicked on element %d: %v", e.Index, e.Value)
	}
	return fmt.Sprintf("divide: worker %d panicked on element %d: %v", e.Worker, e.Index, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// failure is the first thing that went wrong in a call. It travels through
// errgroup as an error.
type failure struct {
	index  int
	worker int
	err    error
	panic  *PanicError
	broken *errors.AppError
}

// incomplete reports a worker that returned without producing its share of
// the output, e.g. after runtime.Goexit in the transformation.
func incomplete(worker, index int, reason string) *failure {
	return &failure{index: index, worker: worker, broken: errors.InvariantViolation(reason)}
}

func (f *failure) Error() string {
	return f.cause().Error()
}

func (f *failure) cause() error {
	switch {
	case f.panic != nil:
		return f.panic
	case f.broken != nil:
		return f.broken
	}
	return f.err
}

func (f *failure) status() string {
	if f.panic != nil {
		return observability.StatusPanic
	}
	return observability.StatusError
}

func (f *failure) appError() *errors.AppError {
	switch {
	case f.panic != nil:
		return errors.WorkerPanic(f.worker, f.index, f.panic)
	case f.broken != nil:
		return f.broken
	}
	return errors.TransformFailed(f.index, f.err)
}

// raise re-panics for the non-Try entry points. Their transformations cannot
// return errors, so only panics and broken invariants reach here.
func (f *failure) raise() {
	if f.panic != nil {
		panic(f.panic)
	}
	panic(f.appError())
}

// invoke applies fn to v, converting a panic into a failure.
func invoke[T, R any](fn func(T) (R, error), v T, index, worker int) (r R, f *failure) {
	defer func() {
		if p := recover(); p != nil {
			f = &failure{
				index:  index,
				worker: worker,
				panic:  &PanicError{Value: p, Stack: debug.Stack(), Index: index, Worker: worker},
			}
		}
	}()
	r, err := fn(v)
	if err != nil {
		return r, &failure{index: index, worker: worker, err: err}
	}
	return r, nil
}

func infallible[T, R any](fn func(T) R) func(T) (R, error) {
	return func(v T) (R, error) { return fn(v), nil }
}
