package divide

import (
	"testing"

	"github.com/kbukum/divide/logger"
)

func fibonacci(n int) int {
	if n < 2 {
		return 1
	}
	return fibonacci(n-1) + fibonacci(n-2)
}

func benchOptions() []Option {
	return []Option{WithLogger(logger.Nop()), WithMetrics(nil)}
}

// Uniform cost: every element is cheap and equally so.
func BenchmarkUniform(b *testing.B) {
	input := rangeInts(1, 1000)
	double := func(v int) int { return v * 2 }

	b.Run("sequential", func(b *testing.B) {
		for b.Loop() {
			Sequential(input, double)
		}
	})
	b.Run("equal", func(b *testing.B) {
		for b.Loop() {
			Equal(input, double, benchOptions()...)
		}
	})
	b.Run("dynamic", func(b *testing.B) {
		for b.Loop() {
			Work(append([]int(nil), input...), double, benchOptions()...)
		}
	})
}

// Skewed cost: fibonacci(29) dwarfs fibonacci(0), so a fixed split leaves
// the worker holding the tail busy long after the others finish.
func BenchmarkSkewed(b *testing.B) {
	input := rangeInts(0, 29)

	b.Run("sequential", func(b *testing.B) {
		for b.Loop() {
			Sequential(input, fibonacci)
		}
	})
	b.Run("equal", func(b *testing.B) {
		for b.Loop() {
			Equal(input, fibonacci, benchOptions()...)
		}
	})
	b.Run("dynamic", func(b *testing.B) {
		for b.Loop() {
			Work(append([]int(nil), input...), fibonacci, benchOptions()...)
		}
	})
}
