package divide

import (
	"fmt"

	"github.com/kbukum/divide/errors"
)

// slots is a pre-sized output where every index is written exactly once.
// Values are only handed out once all of them are written.
type slots[R any] struct {
	values    []R
	written   []bool
	remaining int
}

func newSlots[R any](n int) *slots[R] {
	return &slots[R]{
		values:    make([]R, n),
		written:   make([]bool, n),
		remaining: n,
	}
}

func (s *slots[R]) put(i int, v R) {
	if i < 0 || i >= len(s.values) {
		panic(errors.InvariantViolation(fmt.Sprintf("slot %d out of range [0, %d)", i, len(s.values))))
	}
	if s.written[i] {
		panic(errors.InvariantViolation(fmt.Sprintf("slot %d written twice", i)))
	}
	s.values[i] = v
	s.written[i] = true
	s.remaining--
}

func (s *slots[R]) missingReason() string {
	return fmt.Sprintf("%d of %d slots never written", s.remaining, len(s.values))
}

// firstMissing returns the lowest unwritten index, or -1 when all are written.
func (s *slots[R]) firstMissing() int {
	for i, ok := range s.written {
		if !ok {
			return i
		}
	}
	return -1
}

func (s *slots[R]) take() []R {
	if s.remaining != 0 {
		panic(errors.InvariantViolation(s.missingReason()))
	}
	out := s.values
	s.values = nil
	return out
}
