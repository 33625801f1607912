package dtree

// Outcome is the two-variant result of running a handler.
//
// Break carries a final answer of type T and terminates the dispatch call:
// no later sibling runs. Continue carries the (possibly extended) container
// forward to the next sibling in declaration order.
type Outcome[T any] struct {
	broke     bool
	value     T
	container *Container
}

// Break builds a terminal outcome carrying the final answer v.
func Break[T any](v T) Outcome[T] {
	return Outcome[T]{broke: true, value: v}
}

// Continue builds a non-terminal outcome carrying c onward.
func Continue[T any](c *Container) Outcome[T] {
	return Outcome[T]{container: c}
}

// IsBreak reports whether the outcome is terminal.
func (o Outcome[T]) IsBreak() bool { return o.broke }

// Value returns the final answer of a Break outcome. For a Continue outcome
// it returns the zero value of T.
func (o Outcome[T]) Value() T { return o.value }

// Container returns the container a Continue outcome carries forward. For a
// Break outcome it returns nil.
func (o Outcome[T]) Container() *Container { return o.container }
