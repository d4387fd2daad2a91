package divide

import (
	"fmt"
	"strings"

	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/observability"
)

// Strategy selects the divider used by Map and TryMap.
type Strategy string

const (
	// StrategyEqual splits the input into one partition per worker.
	StrategyEqual Strategy = "equal"
	// StrategyDynamic shares the input as a queue popped by every worker.
	StrategyDynamic Strategy = "dynamic"
)

// Execution paths reported in logs, spans and metrics.
const (
	PathSequential = "sequential"
	PathParallel   = "parallel"
)

// ParseStrategy parses a strategy name, ignoring case and surrounding space.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyEqual:
		return StrategyEqual, nil
	case StrategyDynamic:
		return StrategyDynamic, nil
	default:
		return "", errors.InvalidConfig("strategy", fmt.Sprintf("unknown strategy %q, want equal or dynamic", s))
	}
}

func (s Strategy) String() string { return string(s) }

func (s Strategy) spanName() string {
	if s == StrategyEqual {
		return observability.SpanEqual
	}
	return observability.SpanWork
}
