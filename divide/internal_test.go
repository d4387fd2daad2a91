package divide

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/divide/errors"
)

func TestBoundaries(t *testing.T) {
	tests := []struct {
		length, n int
		want      []int
	}{
		{12, 4, []int{0, 3, 6, 9, 12}},
		{10, 3, []int{0, 3, 7, 10}},
		{11, 4, []int{0, 3, 6, 8, 11}},
		{3, 5, []int{0, 1, 1, 2, 2, 3}},
		{0, 2, []int{0, 0, 0}},
		{7, 1, []int{0, 7}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d/%d", tc.length, tc.n), func(t *testing.T) {
			assert.Equal(t, tc.want, boundaries(tc.length, tc.n))
		})
	}
}

func TestBoundariesBalanced(t *testing.T) {
	for length := 0; length <= 200; length += 7 {
		for n := 1; n <= 17; n++ {
			b := boundaries(length, n)
			require.Len(t, b, n+1)
			require.Equal(t, 0, b[0])
			require.Equal(t, length, b[n])

			lo, hi := length, 0
			for k := 0; k < n; k++ {
				size := b[k+1] - b[k]
				require.GreaterOrEqual(t, size, 0)
				lo, hi = min(lo, size), max(hi, size)
			}
			assert.LessOrEqual(t, hi-lo, 1, "length=%d n=%d edges=%v", length, n, b)
		}
	}
}

func TestQueuePopOrder(t *testing.T) {
	q := &queue[string]{items: []string{"a", "b", "c"}}

	for _, want := range []struct {
		v   string
		idx int
	}{{"c", 2}, {"b", 1}, {"a", 0}} {
		v, idx, ok := q.pop()
		require.True(t, ok)
		assert.Equal(t, want.v, v)
		assert.Equal(t, want.idx, idx)
	}

	_, _, ok := q.pop()
	assert.False(t, ok)
}

func TestQueueClose(t *testing.T) {
	q := &queue[int]{items: []int{1, 2, 3}}
	q.close()
	_, _, ok := q.pop()
	assert.False(t, ok)
	assert.Len(t, q.items, 3)
}

func TestQueueConcurrentPopsAssignEveryIndexOnce(t *testing.T) {
	const n = 10000
	q := &queue[int]{items: rangeInts(0, n-1)}
	seen := make([][]int, 8)

	var wg sync.WaitGroup
	for w := range seen {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, idx, ok := q.pop()
				if !ok {
					return
				}
				if v != idx {
					t.Errorf("element %d popped with index %d", v, idx)
				}
				seen[w] = append(seen[w], idx)
			}
		}()
	}
	wg.Wait()

	s := newSlots[bool](n)
	for _, part := range seen {
		for _, idx := range part {
			s.put(idx, true)
		}
	}
	assert.Len(t, s.take(), n)
}

func TestSlots(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		s := newSlots[string](3)
		s.put(2, "c")
		s.put(0, "a")
		s.put(1, "b")
		assert.Equal(t, []string{"a", "b", "c"}, s.take())
	})

	violation := func(t *testing.T, fn func()) {
		t.Helper()
		v := capturePanic(fn)
		err, ok := v.(error)
		require.True(t, ok, "expected an error panic, got %T", v)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvariantViolation))
	}

	t.Run("written twice", func(t *testing.T) {
		s := newSlots[int](2)
		s.put(0, 1)
		violation(t, func() { s.put(0, 2) })
	})

	t.Run("out of range", func(t *testing.T) {
		s := newSlots[int](2)
		violation(t, func() { s.put(2, 1) })
		violation(t, func() { s.put(-1, 1) })
	})

	t.Run("incomplete", func(t *testing.T) {
		s := newSlots[int](3)
		s.put(1, 1)
		assert.Equal(t, 0, s.firstMissing())
		s.put(0, 1)
		assert.Equal(t, 2, s.firstMissing())
		violation(t, func() { s.take() })
	})
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"equal", StrategyEqual, false},
		{" Dynamic ", StrategyDynamic, false},
		{"EQUAL", StrategyEqual, false},
		{"stealing", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStrategy(tc.in)
			if tc.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
