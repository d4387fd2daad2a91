package divide

import (
	"context"
	"runtime"

	"github.com/kbukum/divide/config"
	"github.com/kbukum/divide/logger"
	"github.com/kbukum/divide/observability"
)

// DefaultThreshold is the minimum input length that takes the parallel path.
const DefaultThreshold = config.DefaultThreshold

// Option configures a single divide call.
type Option func(*options)

type options struct {
	threshold int
	workers   int
	detector  func() int
	strategy  Strategy
	log       *logger.Logger
	metrics   *observability.DivideMetrics
	ctx       context.Context
}

func newOptions(opts []Option) *options {
	o := &options{
		threshold: DefaultThreshold,
		detector:  detectWorkers,
		strategy:  StrategyDynamic,
		log:       logger.Get("divide"),
		metrics:   observability.DefaultDivideMetrics(),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.threshold < 1 {
		o.threshold = 1
	}
	return o
}

// WithThreshold sets the minimum input length for the parallel path.
// Values below 1 are treated as 1.
func WithThreshold(n int) Option {
	return func(o *options) { o.threshold = n }
}

// WithWorkers fixes the worker count. Zero or less falls back to the detector.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithDetector replaces the available-parallelism query. It is only called
// on the parallel path.
func WithDetector(detect func() int) Option {
	return func(o *options) {
		if detect != nil {
			o.detector = detect
		}
	}
}

// WithStrategy selects the divider used by Map and TryMap.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithLogger sets the logger for the call.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics sets the instruments recorded by the call. nil disables metrics.
func WithMetrics(m *observability.DivideMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithContext sets the parent context of the call's span. It does not cancel
// the call.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithConfig applies a loaded DivideConfig. Zero values keep the defaults.
func WithConfig(cfg config.DivideConfig) Option {
	return func(o *options) {
		if cfg.Threshold > 0 {
			o.threshold = cfg.Threshold
		}
		if cfg.Workers > 0 {
			o.workers = cfg.Workers
		}
		if cfg.Strategy == "" {
			return
		}
		s, err := ParseStrategy(cfg.Strategy)
		if err != nil {
			o.log.Warn("ignoring configured strategy", logger.Fields(logger.FieldError, err.Error()))
			return
		}
		o.strategy = s
	}
}

// workerCount resolves N. A detector result below 1 degrades to one worker.
func (o *options) workerCount() int {
	if o.workers > 0 {
		return o.workers
	}
	n := o.detector()
	if n < 1 {
		o.log.Warn("parallelism detection failed, using one worker", logger.Fields("detected", n))
		return 1
	}
	return n
}

func detectWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Workers reports the worker count a parallel call with opts would use.
func Workers(opts ...Option) int {
	return newOptions(opts).workerCount()
}
