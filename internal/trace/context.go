package trace

import "context"

// ctxKey is the key type for storing Tracer in context.
type ctxKey struct{}

// FromContext extracts the Tracer from context.
// If not found, returns Nop tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// chainTracer stamps every event with the id of the controller emitting it.
type chainTracer struct {
	Tracer
	chain string
}

func (t chainTracer) Emit(ev *Event) {
	ev.Chain = t.chain
	t.Tracer.Emit(ev)
}

// ForChain wraps t so that every event carries the given chain id.
func ForChain(t Tracer, chain string) Tracer {
	if t == nil || !t.Enabled() {
		return Nop
	}
	return chainTracer{Tracer: t, chain: chain}
}
