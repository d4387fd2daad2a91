package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/kbukum/divide/divide"
	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/logger"
)

type workload struct {
	name  string
	input []int
	fn    func(int) int
}

func double(v int) int { return v * 2 }

// fibonacci is deliberately naive so element cost grows with the input.
func fibonacci(n int) int {
	if n < 2 {
		return 1
	}
	return fibonacci(n-1) + fibonacci(n-2)
}

func newWorkload(name string, size int) workload {
	switch name {
	case WorkloadSkewed:
		input := make([]int, 30)
		for i := range input {
			input[i] = i
		}
		return workload{name: name, input: input, fn: fibonacci}
	default:
		input := make([]int, size)
		for i := range input {
			input[i] = i + 1
		}
		return workload{name: name, input: input, fn: double}
	}
}

// result is the measurement of one workload under one strategy.
type result struct {
	Workload string
	Strategy divide.Strategy
	Rounds   int
	Mean     time.Duration
	Elements int
}

// Throughput returns elements mapped per second.
func (r result) Throughput() float64 {
	if r.Mean <= 0 {
		return 0
	}
	return float64(r.Elements) / r.Mean.Seconds()
}

func strategies(name string) []divide.Strategy {
	if name == "both" {
		return []divide.Strategy{divide.StrategyEqual, divide.StrategyDynamic}
	}
	s, err := divide.ParseStrategy(name)
	if err != nil {
		return []divide.Strategy{divide.StrategyDynamic}
	}
	return []divide.Strategy{s}
}

// runBench measures every configured workload and strategy. Every round is
// checked against the sequential result. ctx is only checked between rounds.
func runBench(ctx context.Context, cfg *BenchConfig, log *logger.Logger) ([]result, error) {
	var results []result

	for _, name := range cfg.Bench.Workloads {
		w := newWorkload(name, cfg.Bench.Size)
		want := divide.Sequential(w.input, w.fn)

		for _, s := range strategies(cfg.Bench.Strategy) {
			opts := []divide.Option{
				divide.WithConfig(cfg.Divide),
				divide.WithStrategy(s),
				divide.WithContext(ctx),
			}

			var total time.Duration
			for round := range cfg.Bench.Rounds {
				if err := ctx.Err(); err != nil {
					return results, err
				}

				// Work consumes its input, so every round gets a fresh copy.
				input := slices.Clone(w.input)
				start := time.Now()
				got := divide.Map(input, w.fn, opts...)
				total += time.Since(start)

				if !slices.Equal(got, want) {
					return results, errors.InvariantViolation(
						fmt.Sprintf("%s/%s round %d differs from the sequential result", w.name, s, round),
					)
				}
			}

			r := result{
				Workload: w.name,
				Strategy: s,
				Rounds:   cfg.Bench.Rounds,
				Mean:     total / time.Duration(cfg.Bench.Rounds),
				Elements: len(w.input),
			}
			results = append(results, r)

			log.Info("workload measured", logger.Fields(
				"workload", r.Workload,
				logger.FieldStrategy, r.Strategy.String(),
				"rounds", r.Rounds,
				logger.FieldLength, r.Elements,
				"mean_us", r.Mean.Microseconds(),
				"elements_per_sec", int64(r.Throughput()),
			))
		}
	}
	return results, nil
}
