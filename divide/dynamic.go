package divide

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// queue is the shared input of the dynamic divider.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

// pop removes the last element and returns it with its original index, which
// is the length left after the pop. Both are read under one lock acquisition.
func (q *queue[T]) pop() (T, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.closed || len(q.items) == 0 {
		return zero, 0, false
	}
	last := len(q.items) - 1
	v := q.items[last]
	q.items[last] = zero
	q.items = q.items[:last]
	return v, last, true
}

// close makes every later pop report an empty queue.
func (q *queue[T]) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

type indexed[R any] struct {
	index int
	value R
}

func work[T, R any](input []T, fn func(T) (R, error), workers int, r *reporter) ([]R, *failure) {
	length := len(input)
	q := &queue[T]{items: input}
	parts := make([][]indexed[R], workers)

	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			local := make([]indexed[R], 0, length/workers+1)
			for {
				v, idx, ok := q.pop()
				if !ok {
					break
				}
				res, f := invoke(fn, v, idx, w)
				if f != nil {
					q.close()
					r.failed(f)
					return f
				}
				local = append(local, indexed[R]{index: idx, value: res})
			}
			parts[w] = local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err.(*failure)
	}

	s := newSlots[R](length)
	for _, part := range parts {
		for _, it := range part {
			s.put(it.index, it.value)
		}
	}
	// Elements popped by a worker that left through runtime.Goexit are lost.
	if s.remaining != 0 {
		return nil, incomplete(callerWorker, s.firstMissing(), s.missingReason())
	}
	return s.take(), nil
}
