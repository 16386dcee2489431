// Package trace records what a formatting run spends its time on.
//
// Events are spans (begin/end pairs) and points, tagged with a scope:
//
//   - ScopeDriver: the batch run as a whole
//   - ScopeFile: one input file
//   - ScopePass: lex, parse, layout, render, delegate
//   - ScopeNode: one delegated region
//
// The level picks the finest scope written: phase keeps driver and file
// events, detail adds passes, debug adds everything.
//
//	vfmt fmt --trace=- --trace-level=detail src/
//
// A Tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
