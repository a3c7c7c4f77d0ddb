// Package trace records what a chain controller does in response to widget
// events.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	chainsel run --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed; the ring is dumped on failures
//   - LevelEvent: controller setup and one span per handled widget event
//   - LevelDetail: adds widget refreshes
//   - LevelDebug: adds per-node reveal and hide operations
//
// # Scopes
//
//   - ScopeController: initialization and controller-wide operations
//   - ScopeEvent: one widget event (check, uncheck, check-all, ...)
//   - ScopeWidget: a widget refresh
//   - ScopeNode: reveal/hide of a single node's options
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeEvent, "item_checked", 0)
//	defer span.End("")
package trace
