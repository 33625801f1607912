package dtree

// Combinator is a partially built handler: a wrapping step (a filter gate or
// a narrowing parser) waiting for the inner handler it guards.
//
// Terminate a combinator with Endpoint, or continue the chain with Then:
//
//	dtree.Filter[string](isPing).Endpoint(pong)
//	dtree.Parse[string](narrower).Then(subtree)
type Combinator[T any] struct {
	wrap func(inner Handler[T]) Handler[T]
}

// Then completes the combinator with an inner handler and returns the
// composed handler.
func (c Combinator[T]) Then(inner Handler[T]) Handler[T] {
	return c.wrap(inner)
}

// Endpoint completes the combinator with a terminal handler built from f.
func (c Combinator[T]) Endpoint(f Injectable[T]) Handler[T] {
	return c.wrap(Endpoint(f))
}
