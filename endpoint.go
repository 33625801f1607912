package dtree

import "context"

// Endpoint builds a terminal handler from an injectable function. An
// endpoint always produces Break with f's result, never Continue, so
// it must be the last step of any branch it appears in.
//
// f's parameters are extracted from the container by exact type, in
// declared order. A missing mandatory parameter fails the dispatch call
// with a *DependencyError; it is never substituted or skipped.
func Endpoint[T any](f Injectable[T]) Handler[T] {
	run := func(ctx context.Context, c *Container) (Outcome[T], error) {
		call, err := f.Bind(c)
		if err != nil {
			return Outcome[T]{}, err
		}
		v, err := call(ctx)
		if err != nil {
			return Outcome[T]{}, err
		}
		return Break(v), nil
	}
	return FromFn(run, signatureOf(f))
}
