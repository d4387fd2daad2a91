package divide

import (
	"github.com/google/uuid"

	"github.com/kbukum/divide/logger"
	"github.com/kbukum/divide/observability"
)

// ShouldParallelize reports whether an input of the given length takes the
// parallel path. threshold is clamped to at least 1, so an empty input never
// does.
func ShouldParallelize(length, threshold int) bool {
	if threshold < 1 {
		threshold = 1
	}
	return length >= threshold
}

// Sequential maps fn over input in order on the calling goroutine. A panic in
// fn propagates unchanged.
func Sequential[T, R any](input []T, fn func(T) R) []R {
	out := make([]R, len(input))
	for i, v := range input {
		out[i] = fn(v)
	}
	return out
}

// Equal maps fn over input with one contiguous partition per worker. Inputs
// shorter than the threshold are mapped sequentially. input is not modified.
//
// fn must be safe for concurrent use. If it panics, Equal panics with a
// *PanicError once every worker has returned.
func Equal[T, R any](input []T, fn func(T) R, opts ...Option) []R {
	out, f := execute(newOptions(opts), StrategyEqual, input, infallible(fn))
	if f != nil {
		f.raise()
	}
	return out
}

// Work maps fn over input with workers popping elements one at a time from a
// shared queue. Inputs shorter than the threshold are mapped sequentially.
//
// Work takes ownership of input: elements are cleared as they are consumed.
// fn must be safe for concurrent use. If it panics, Work panics with a
// *PanicError once every worker has returned.
func Work[T, R any](input []T, fn func(T) R, opts ...Option) []R {
	out, f := execute(newOptions(opts), StrategyDynamic, input, infallible(fn))
	if f != nil {
		f.raise()
	}
	return out
}

// Map runs Equal or Work depending on WithStrategy, dynamic by default.
func Map[T, R any](input []T, fn func(T) R, opts ...Option) []R {
	o := newOptions(opts)
	out, f := execute(o, o.strategy, input, infallible(fn))
	if f != nil {
		f.raise()
	}
	return out
}

// execute runs the gate, the chosen divider and the call telemetry.
func execute[T, R any](o *options, strategy Strategy, input []T, fn func(T) (R, error)) ([]R, *failure) {
	if strategy != StrategyEqual {
		strategy = StrategyDynamic
	}
	length := len(input)
	parallel := ShouldParallelize(length, o.threshold)
	path := PathSequential
	if parallel {
		path = PathParallel
	}

	ctx, call := observability.StartCall(o.ctx, o.metrics, strategy.spanName(), strategy.String(), path, length)
	log := o.log.WithContext(ctx)

	var (
		out []R
		f   *failure
	)
	if parallel {
		workers := o.workerCount()
		runID := uuid.NewString()
		call.Dispatched(workers, runID)
		log = log.WithFields(logger.Fields(
			logger.FieldRunID, runID,
			logger.FieldStrategy, strategy.String(),
			logger.FieldWorkers, workers,
			logger.FieldLength, length,
		))
		log.Debug("divide dispatched")

		r := &reporter{call: call, log: log}
		if strategy == StrategyEqual {
			out, f = equal(input, fn, workers, r)
		} else {
			out, f = work(input, fn, workers, r)
		}
	} else {
		out, f = sequential(input, fn)
		if f != nil {
			call.WorkerFailed(f.status(), f.index, f.cause())
		}
	}

	if f != nil {
		call.End(f.status(), f.cause())
		log.Error("divide failed", logger.MergeWithError(logger.Fields(
			logger.FieldPath, path,
			logger.FieldIndex, f.index,
			logger.FieldStatus, f.status(),
		), f))
		return nil, f
	}

	call.End(observability.StatusOK, nil)
	if log.DebugEnabled() {
		log.Debug("divide finished", logger.MergeWithDuration(logger.Fields(logger.FieldPath, path), call.Duration()))
	}
	return out, nil
}

func sequential[T, R any](input []T, fn func(T) (R, error)) ([]R, *failure) {
	out := make([]R, len(input))
	for i, v := range input {
		r, f := invoke(fn, v, i, callerWorker)
		if f != nil {
			return nil, f
		}
		out[i] = r
	}
	return out, nil
}

// reporter records worker failures as they happen.
type reporter struct {
	call *observability.Call
	log  *logger.Logger
}

func (r *reporter) failed(f *failure) {
	r.call.WorkerFailed(f.status(), f.index, f.cause())
	r.log.Error("worker failed", logger.Fields(
		logger.FieldWorker, f.worker,
		logger.FieldIndex, f.index,
		logger.FieldStatus, f.status(),
		logger.FieldError, f.Error(),
	))
}
