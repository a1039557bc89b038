// Package trace records where a conversion run spends its time.
//
// Events are grouped into spans by scope: the whole batch, one file, one
// pipeline phase of a file (parse, scan, transform, generate, normalize,
// format), and finer steps such as cache lookups. The level picks how deep
// the recording goes:
//
//	flow2ts convert --trace=- --trace-level=phase src/
//
// A tracer travels through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", parent)
//	defer span.End("")
//
// With tracing off every call is a cheap no-op.
package trace
