package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/kbukum/divide/divide"
	"github.com/kbukum/divide/errors"
	"github.com/kbukum/divide/logger"
)

func validConfig() *BenchConfig {
	cfg := &BenchConfig{}
	cfg.ApplyDefaults()
	return cfg
}

func TestBenchConfigDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Name != serviceName {
		t.Errorf("expected name %q, got %q", serviceName, cfg.Name)
	}
	if cfg.Divide.Threshold != divide.DefaultThreshold {
		t.Errorf("expected threshold %d, got %d", divide.DefaultThreshold, cfg.Divide.Threshold)
	}
	if cfg.Bench.Strategy != "both" || cfg.Bench.Rounds != 20 || len(cfg.Bench.Workloads) != 2 {
		t.Errorf("unexpected bench defaults %+v", cfg.Bench)
	}
}

func TestBenchConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BenchConfig)
		code   errors.ErrorCode
	}{
		{"unknown strategy", func(c *BenchConfig) { c.Bench.Strategy = "stealing" }, errors.ErrCodeInvalidConfig},
		{"unknown workload", func(c *BenchConfig) { c.Bench.Workloads = []string{"random"} }, errors.ErrCodeInvalidConfig},
		{"negative rounds", func(c *BenchConfig) { c.Bench.Rounds = -1 }, errors.ErrCodeInvalidConfig},
		{"bad divide strategy", func(c *BenchConfig) { c.Divide.Strategy = "both" }, errors.ErrCodeInvalidConfig},
		{"telemetry without endpoint", func(c *BenchConfig) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, errors.ErrCodeMissingField},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if !errors.HasCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := "name: divide-bench\nenvironment: development\nbench:\n  size: 50\n  rounds: 3\ndivide:\n  threshold: 20\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("strategy", "both", "")
	fs.Int("size", 1000, "")
	fs.Int("rounds", 20, "")
	fs.Int("workers", 0, "")
	fs.Int("threshold", divide.DefaultThreshold, "")
	if err := fs.Parse([]string{"--rounds", "2", "--strategy", "equal"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(fs, path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bench.Rounds != 2 {
		t.Errorf("flag should override file rounds, got %d", cfg.Bench.Rounds)
	}
	if cfg.Bench.Strategy != "equal" {
		t.Errorf("expected strategy from flag, got %q", cfg.Bench.Strategy)
	}
	if cfg.Bench.Size != 50 {
		t.Errorf("expected size from file, got %d", cfg.Bench.Size)
	}
	if cfg.Divide.Threshold != 20 {
		t.Errorf("expected threshold from file, got %d", cfg.Divide.Threshold)
	}
}

func TestRunBench(t *testing.T) {
	cfg := validConfig()
	cfg.Bench.Size = 200
	cfg.Bench.Rounds = 2
	cfg.Divide.Workers = 3

	results, err := runBench(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 2 workloads x 2 strategies, got %d", len(results))
	}
	for _, r := range results {
		if r.Rounds != 2 {
			t.Errorf("%s/%s: expected 2 rounds, got %d", r.Workload, r.Strategy, r.Rounds)
		}
	}
	if results[0].Elements != 200 || results[2].Elements != 30 {
		t.Errorf("unexpected element counts %d and %d", results[0].Elements, results[2].Elements)
	}
}

func TestRunBenchStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runBench(ctx, validConfig(), logger.Nop())
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFibonacci(t *testing.T) {
	want := []int{1, 1, 2, 3, 5, 8, 13}
	for n, w := range want {
		if got := fibonacci(n); got != w {
			t.Errorf("fibonacci(%d) = %d, want %d", n, got, w)
		}
	}
}

func TestStrategies(t *testing.T) {
	if got := strategies("both"); len(got) != 2 {
		t.Errorf("expected both strategies, got %v", got)
	}
	if got := strategies("equal"); len(got) != 1 || got[0] != divide.StrategyEqual {
		t.Errorf("expected equal only, got %v", got)
	}
}

func TestRunVersion(t *testing.T) {
	if err := run([]string{"--version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
