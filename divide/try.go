package divide

// TrySequential maps fn over input in order on the calling goroutine and
// stops at the first failure.
//
// A returned error becomes a TRANSFORM_FAILED *errors.AppError and a panic a
// WORKER_PANIC one, each carrying the input index. The result is nil on
// failure.
func TrySequential[T, R any](input []T, fn func(T) (R, error)) ([]R, error) {
	out, f := sequential(input, fn)
	if f != nil {
		return nil, f.appError()
	}
	return out, nil
}

// TryEqual is Equal for transformations that can fail. After the first
// failure no worker starts another element; the failure observed first is
// returned and the result is nil.
func TryEqual[T, R any](input []T, fn func(T) (R, error), opts ...Option) ([]R, error) {
	out, f := execute(newOptions(opts), StrategyEqual, input, fn)
	if f != nil {
		return nil, f.appError()
	}
	return out, nil
}

// TryWork is Work for transformations that can fail. The first failure
// closes the queue; elements already popped still finish. It takes ownership
// of input like Work.
func TryWork[T, R any](input []T, fn func(T) (R, error), opts ...Option) ([]R, error) {
	out, f := execute(newOptions(opts), StrategyDynamic, input, fn)
	if f != nil {
		return nil, f.appError()
	}
	return out, nil
}

// TryMap runs TryEqual or TryWork depending on WithStrategy.
func TryMap[T, R any](input []T, fn func(T) (R, error), opts ...Option) ([]R, error) {
	o := newOptions(opts)
	out, f := execute(o, o.strategy, input, fn)
	if f != nil {
		return nil, f.appError()
	}
	return out, nil
}
