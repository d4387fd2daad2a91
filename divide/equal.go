package divide

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// boundaries returns the n+1 partition edges of a slice of the given length.
// Edge k is round(length*k/n), so partitions differ by at most one element.
func boundaries(length, n int) []int {
	b := make([]int, n+1)
	for k := 1; k < n; k++ {
		b[k] = int(math.Round(float64(length) * float64(k) / float64(n)))
	}
	b[n] = length
	return b
}

func equal[T, R any](input []T, fn func(T) (R, error), workers int, r *reporter) ([]R, *failure) {
	b := boundaries(len(input), workers)
	results := make([][]R, workers)
	done := make([]bool, workers)

	// The group context is cancelled by the first failing worker; the others
	// stop before their next element. It is not tied to the caller.
	g, gctx := errgroup.WithContext(context.Background())

	// Partitions are cut from the end. Worker k owns results[k], which keeps
	// the original order regardless of extraction order.
	rest := len(input)
	for k := workers - 1; k >= 0; k-- {
		lo := b[k]
		part := input[lo:rest]
		rest = lo

		g.Go(func() error {
			out := make([]R, 0, len(part))
			for i, v := range part {
				if gctx.Err() != nil {
					return nil
				}
				res, f := invoke(fn, v, lo+i, k)
				if f != nil {
					r.failed(f)
					return f
				}
				out = append(out, res)
			}
			results[k] = out
			done[k] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err.(*failure)
	}

	// A worker that left through runtime.Goexit returns no error to the
	// group; its partition must not be skipped silently.
	for k := range workers {
		if !done[k] || len(results[k]) != b[k+1]-b[k] {
			return nil, incomplete(k, b[k], fmt.Sprintf("partition %d [%d, %d) produced %d of %d results",
				k, b[k], b[k+1], len(results[k]), b[k+1]-b[k]))
		}
	}

	out := make([]R, 0, len(input))
	for _, part := range results {
		out = append(out, part...)
	}
	return out, nil
}
