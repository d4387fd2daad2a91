// Package observability provides the OpenTelemetry tracing and metrics
// recorded by divide calls.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("divide-bench"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
// Until a provider is installed the global noop providers are used, so
// instrumented calls cost little more than a few interface calls.
//
// Each divide call is tracked with a [Call]:
//
//	ctx, call := observability.StartCall(ctx, metrics, observability.SpanWork, "dynamic", "parallel", len(input))
//	call.Dispatched(workers, runID)
//	call.End(observability.StatusOK, nil)
package observability
