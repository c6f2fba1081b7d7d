// Package trace records spans and instant events from the paracell pipeline.
//
// Tracing is switched on from the command line:
//
//	paracell check --trace=- --trace-level=phase src/
//
// A Tracer is carried through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Implementations: Nop, StreamTracer (immediate write), RingTracer (last N
// events in memory) and MultiTracer (fan-out).
package trace
