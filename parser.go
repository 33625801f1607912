package dtree

import (
	"context"
	"reflect"
)

// Narrower is the reversible conversion of an event into a more specific
// subtype. Narrow consumes a From and, on success, yields the narrowed
// value plus whatever remainder is needed to rebuild the original; on
// failure it reports false and the event is left to the next sibling.
// Recombine is the exact inverse on the success path: Recombine(Narrow(e))
// must be observably equal to e in every field narrowing did not touch.
type Narrower[From, To, Rest any] interface {
	Narrow(from From) (To, Rest, bool)
	Recombine(to To, rest Rest) From
}

// NarrowerFunc builds a Narrower from a pair of functions. Use for
// narrowing relations that don't need a struct:
//
//	n := dtree.NarrowerFunc(
//	    func(e Event) (SetValue, struct{}, bool) { ... },
//	    func(sv SetValue, _ struct{}) Event { ... },
//	)
func NarrowerFunc[From, To, Rest any](
	narrow func(from From) (To, Rest, bool),
	recombine func(to To, rest Rest) From,
) Narrower[From, To, Rest] {
	return &narrowerFunc[From, To, Rest]{narrow: narrow, recombine: recombine}
}

type narrowerFunc[From, To, Rest any] struct {
	narrow    func(From) (To, Rest, bool)
	recombine func(To, Rest) From
}

func (n *narrowerFunc[From, To, Rest]) Narrow(from From) (To, Rest, bool) {
	return n.narrow(from)
}

func (n *narrowerFunc[From, To, Rest]) Recombine(to To, rest Rest) From {
	return n.recombine(to, rest)
}

// AsVariant returns a Narrower for interface-typed events whose variants
// are concrete types: narrowing is a type assertion with an empty
// remainder, recombination converts the variant back to the interface.
func AsVariant[From, To any]() Narrower[From, To, struct{}] {
	return NarrowerFunc(
		func(from From) (To, struct{}, bool) {
			to, ok := any(from).(To)
			return to, struct{}{}, ok
		},
		func(to To, _ struct{}) From {
			return any(to).(From)
		},
	)
}

// Parse builds a combinator that narrows the event for its inner handler.
//
// On narrowing success the inner handler sees the container with the
// narrowed value inserted under To. If the inner handler Continues, the
// original event is recombined and restored under From (and the narrowed
// entry masked) before the Continue is returned, so downstream siblings
// observe the un-narrowed event. On narrowing failure the composed handler
// Continues with the container untouched and the inner handler is never
// invoked.
//
// The event type From must be present in the container; its absence means
// the dispatch call was mis-seeded and fails with a *DependencyError.
func Parse[T, From, To, Rest any](n Narrower[From, To, Rest]) Combinator[T] {
	return Combinator[T]{wrap: func(inner Handler[T]) Handler[T] {
		run := func(ctx context.Context, c *Container) (Outcome[T], error) {
			from, ok := Get[From](c)
			if !ok {
				return Outcome[T]{}, &DependencyError{Type: reflect.TypeFor[From]()}
			}
			to, rest, ok := n.Narrow(from)
			if !ok {
				return Continue[T](c), nil
			}
			out, err := inner.Handle(ctx, Insert(c, to))
			if err != nil || out.IsBreak() {
				return out, err
			}
			restored := Insert(out.Container().drop(reflect.TypeFor[To]()), n.Recombine(to, rest))
			return Continue[T](restored), nil
		}
		return FromFn(run, parserSignature[From, To](inner.Signature()))
	}}
}

// parserSignature rewrites the inner handler's signature as seen from
// outside the parser: the narrowed type is provided internally, the
// original event type is consumed instead.
func parserSignature[From, To any](inner Signature) Signature {
	from := NewTypeSet(reflect.TypeFor[From]())
	to := reflect.TypeFor[To]()
	return Signature{
		Inputs:      inner.Inputs.Without(to).Union(from),
		Outputs:     inner.Outputs.Union(NewTypeSet(to)),
		Obligations: inner.Obligations.Without(to).Union(from),
	}
}
