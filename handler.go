package dtree

import "context"

// Handler is a single step of a dispatch tree: it receives the container for
// the current dispatch call and either produces a final answer (Break) or
// passes control onward (Continue).
//
// Handlers are immutable values built once at startup. A handler closes over
// whatever it needs (child handlers, an injectable function, shared state)
// and is safe to invoke concurrently from independent dispatch calls. Any
// mutable state it captures must be synchronization-safe (an atomic counter,
// a mutex-guarded cache); the engine itself holds no locks.
type Handler[T any] struct {
	run func(ctx context.Context, c *Container) (Outcome[T], error)
	sig Signature
}

// FromFn builds a handler from a raw run function and its signature. This is
// the escape hatch for custom combinators; most callers want Endpoint,
// Filter, Parse, or Node instead.
func FromFn[T any](run func(ctx context.Context, c *Container) (Outcome[T], error), sig Signature) Handler[T] {
	return Handler[T]{run: run, sig: sig}
}

// Handle runs the handler against c. The error return is reserved for hard
// failures (a missing mandatory dependency, an endpoint body failing); a
// handler that merely declines returns Continue, not an error.
func (h Handler[T]) Handle(ctx context.Context, c *Container) (Outcome[T], error) {
	if h.run == nil {
		return Continue[T](c), nil
	}
	return h.run(ctx, c)
}

// Signature returns the introspection metadata attached at construction.
// It is descriptive only: dispatch never branches on it.
func (h Handler[T]) Signature() Signature {
	return h.sig
}
