// Command divide-bench measures the throughput of the divide strategies on
// a uniform and a skewed workload.
//
//	divide-bench --strategy both --size 100000 --rounds 50
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/divide/divide"
	"github.com/kbukum/divide/config"
	"github.com/kbukum/divide/logger"
	"github.com/kbukum/divide/observability"
	"github.com/kbukum/divide/version"
)

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"strategy":  "bench.strategy",
	"size":      "bench.size",
	"rounds":    "bench.rounds",
	"workers":   "divide.workers",
	"threshold": "divide.threshold",
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to config.yml")
	envFile := fs.String("env-file", "", "path to .env file")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.String("strategy", "both", "strategy to measure: equal, dynamic or both")
	fs.Int("size", 1000, "length of the uniform workload")
	fs.Int("rounds", 20, "rounds per workload and strategy")
	fs.Int("workers", 0, "worker count, 0 for one per available core")
	fs.Int("threshold", divide.DefaultThreshold, "minimum length for the parallel path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	// Config loading logs before the configured logger exists.
	logger.SetGlobalLogger(logger.NewFromEnv(serviceName))

	cfg, err := loadConfig(fs, *configFile, *envFile)
	if err != nil {
		return err
	}

	logger.Init(&cfg.Logging)
	logger.RegisterDefaults("divide", "bench")
	log := logger.Get("bench")
	log.Info("starting", version.GetVersionInfo().Fields())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	start := time.Now()
	results, err := runBench(ctx, cfg, log)
	if err != nil {
		log.Error("benchmark failed", logger.ErrorFields("bench", err))
		return err
	}
	fields := logger.DurationFields("bench", time.Since(start))
	fields["measurements"] = len(results)
	log.Info("benchmark finished", fields)
	return nil
}

func loadConfig(fs *pflag.FlagSet, configFile, envFile string) (*BenchConfig, error) {
	opts := []config.LoaderOption{config.WithFlags(fs, flagKeys)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	var cfg BenchConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// initTelemetry installs the OTLP meter and tracer when enabled. The returned
// func flushes and shuts both down.
func initTelemetry(ctx context.Context, cfg *BenchConfig) (func(), error) {
	if !cfg.Telemetry.Enabled {
		return func() {}, nil
	}

	serviceVersion := cfg.Version
	if serviceVersion == "" {
		serviceVersion = version.GetShortVersion()
	}

	meterCfg := observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Interval:       cfg.Telemetry.Interval,
	}
	mp, err := observability.InitMeter(ctx, &meterCfg)
	if err != nil {
		return nil, err
	}

	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, err
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}, nil
}
