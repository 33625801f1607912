package dtree

import (
	"context"
	"slices"
)

// NodeBuilder assembles an ordered chain of handlers. Declaration order is
// observable semantics: the first handler whose condition matches wins, and
// swapping two matching handlers changes the result.
type NodeBuilder[T any] struct {
	handlers []Handler[T]
}

// Node starts a new chain.
func Node[T any]() *NodeBuilder[T] {
	return &NodeBuilder[T]{}
}

// And appends h to the chain and returns the builder for chaining.
func (b *NodeBuilder[T]) And(h Handler[T]) *NodeBuilder[T] {
	b.handlers = append(b.handlers, h)
	return b
}

// Build returns the chain as a handler. Evaluation is left to right with
// first-Break-wins: the first handler to Break short-circuits the chain and
// no later handler is invoked. A handler that Continues hands its (possibly
// extended) container to the next sibling. If every handler Continues the
// built handler itself Continues, which is what lets nodes nest inside
// other nodes; the outermost node's Continue is what the dispatcher reports
// as ErrNoHandlerMatched.
//
// The builder can keep growing after Build; the built handler snapshots the
// chain as of the call.
func (b *NodeBuilder[T]) Build() Handler[T] {
	handlers := slices.Clone(b.handlers)

	sig := Signature{Inputs: TypeSet{}, Outputs: TypeSet{}, Obligations: TypeSet{}}
	for _, h := range handlers {
		sig = sig.merge(h.Signature())
	}

	run := func(ctx context.Context, c *Container) (Outcome[T], error) {
		for _, h := range handlers {
			out, err := h.Handle(ctx, c)
			if err != nil || out.IsBreak() {
				return out, err
			}
			c = out.Container()
		}
		return Continue[T](c), nil
	}
	return FromFn(run, sig)
}
