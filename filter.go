package dtree

import (
	"context"
	"reflect"
)

// Predicate gates a branch on the contents of the container. A false result
// is a soft mismatch: the branch declines and the next sibling runs.
type Predicate func(c *Container) bool

// On builds a Predicate from a condition on a single container entry of
// type E. If no entry of type E is live, the predicate is false: absence
// at a filter is a soft mismatch, not an error.
func On[E any](pred func(e E) bool) Predicate {
	return func(c *Container) bool {
		e, ok := Get[E](c)
		return ok && pred(e)
	}
}

// Filter builds a combinator that gates its inner handler on pred. When
// pred(c) is false the composed handler returns Continue with the container
// untouched and the inner handler is never invoked; when true, the inner
// handler's outcome is returned verbatim.
func Filter[T any](pred Predicate) Combinator[T] {
	return Combinator[T]{wrap: func(inner Handler[T]) Handler[T] {
		run := func(ctx context.Context, c *Container) (Outcome[T], error) {
			if !pred(c) {
				return Continue[T](c), nil
			}
			return inner.Handle(ctx, c)
		}
		return FromFn(run, inner.Signature())
	}}
}

// FilterOn is Filter with an On predicate, recording E in the composed
// handler's declared inputs. E is an input but not an obligation: its
// absence makes the filter decline, it does not fail the dispatch call.
func FilterOn[T, E any](pred func(e E) bool) Combinator[T] {
	inner := Filter[T](On(pred))
	return Combinator[T]{wrap: func(h Handler[T]) Handler[T] {
		wrapped := inner.Then(h)
		sig := wrapped.Signature()
		sig.Inputs = sig.Inputs.Union(NewTypeSet(reflect.TypeFor[E]()))
		return FromFn(wrapped.Handle, sig)
	}}
}
