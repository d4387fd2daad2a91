// Package divide maps a pure function over a slice in parallel and returns
// the results in input order.
//
// Two dividers are provided. They are alternatives, not layers:
//
//   - [Equal] cuts the input into one contiguous partition per worker. It
//     suits transformations whose cost is the same for every element.
//   - [Work] shares the input as a queue that workers pop one element at a
//     time. It suits skewed costs, where a fixed split would leave workers
//     idle behind one slow partition.
//
// Both consult the threshold gate first: inputs shorter than the threshold
// (10 by default) are mapped on the calling goroutine by [Sequential], since
// starting goroutines would cost more than it saves.
//
//	out := divide.Equal(prices, applyTax)
//	out := divide.Work(jobs, render, divide.WithWorkers(4))
//
// Whatever the strategy or timing, len(out) == len(in) and out[i] is the
// result for in[i]. A call is all-or-nothing: when the transformation panics
// on any element every worker is still joined, partial results are dropped
// and the call panics with a [*PanicError] describing the original panic.
//
// Transformations that can fail use the Try variants, which return an
// [*errors.AppError] instead:
//
//	out, err := divide.TryWork(paths, parse)
//	if errors.HasCode(err, errors.ErrCodeTransformFailed) {
//		...
//	}
//
// Every call opens a span (divide.equal or divide.work) on the global
// tracer and records the divide.* instruments from the observability
// package. Both are noops until a provider is installed.
package divide
