package dtree

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Dispatch errors.
var (
	// ErrNoHandlerMatched indicates the root node exhausted every handler
	// with Continue. It is an explicit "unhandled" result for the caller,
	// not a process-level failure.
	ErrNoHandlerMatched = errors.New("dtree: no handler matched event")
)

// ObligationError reports handler obligations that no seed type covers.
// Returned by Dispatcher.Check; it is the build-time form of what would
// otherwise surface at run time as a *DependencyError.
type ObligationError struct {
	Missing []reflect.Type
}

func (e *ObligationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, t := range e.Missing {
		names[i] = t.String()
	}
	return fmt.Sprintf("dtree: unsatisfied obligations: %s", strings.Join(names, ", "))
}

// Dispatcher is the entry point of a handler tree. It is built once with
// the root handler and shared dependencies, and then drives any number of
// concurrent dispatch calls: each call gets its own container seeded with
// the shared dependencies, the per-call dependencies, and the event under
// its static type E.
//
// Usage:
//
//	root := dtree.Node[string]().
//	    And(pingHandler()).
//	    And(setValueHandler(store)).
//	    Build()
//
//	d := dtree.NewDispatcher[Event](root, dtree.WithDependencies(store))
//
//	out, err := d.Dispatch(ctx, event)
//
// Dispatcher is safe for concurrent use. The engine holds no locks and
// defines no timeout or cancellation of its own; ctx is passed through to
// endpoint bodies for the caller's cancellation policy.
type Dispatcher[E, T any] struct {
	root  Handler[T]
	deps  []any
	hooks hooks

	// eventName feeds hooks; computed once at construction.
	eventName string
}

// NewDispatcher builds a dispatcher around root. Values passed via
// WithDependencies seed every dispatch call's container.
//
// The event type parameter E must be named explicitly; T is inferred from
// the root handler:
//
//	d := dtree.NewDispatcher[Event](root)
func NewDispatcher[E, T any](root Handler[T], opts ...Option) *Dispatcher[E, T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Dispatcher[E, T]{
		root:      root,
		deps:      s.deps,
		hooks:     s.hooks,
		eventName: reflect.TypeFor[E]().String(),
	}
}

// Dispatch runs one event through the handler tree.
//
// The flow:
//  1. Seed a fresh container: shared dependencies, then per-call deps,
//     then the event under type E.
//  2. Run the root handler.
//  3. A Break outcome is returned as the result.
//  4. Exhaustion (every handler Continued) returns ErrNoHandlerMatched,
//     unless an OnNoMatch hook overrides it.
//
// A *DependencyError from an injectable, or an error from an endpoint
// body, fails the call; soft mismatches (filter false, narrowing failure)
// never do; they only move control to the next sibling.
func (d *Dispatcher[E, T]) Dispatch(ctx context.Context, event E, deps ...any) (T, error) {
	var zero T

	c := NewContainer(d.deps...)
	for _, dep := range deps {
		c = c.insertDynamic(dep)
	}
	c = Insert(c, event)

	for _, fn := range d.hooks.onDispatch {
		fn(ctx, d.eventName)
	}

	start := time.Now()
	out, err := d.root.Handle(ctx, c)
	duration := time.Since(start)

	if err != nil {
		for _, fn := range d.hooks.onError {
			fn(ctx, d.eventName, err, duration)
		}
		return zero, err
	}

	if out.IsBreak() {
		for _, fn := range d.hooks.onBreak {
			fn(ctx, d.eventName, duration)
		}
		return out.Value(), nil
	}

	return zero, d.handleNoMatch(ctx)
}

// handleNoMatch applies the OnNoMatch policy: with no hooks configured,
// exhaustion is ErrNoHandlerMatched; hooks may substitute their own error
// or, by all returning nil, mark the event as deliberately skipped.
func (d *Dispatcher[E, T]) handleNoMatch(ctx context.Context) error {
	if len(d.hooks.onNoMatch) == 0 {
		return ErrNoHandlerMatched
	}
	for _, fn := range d.hooks.onNoMatch {
		if err := fn(ctx, d.eventName); err != nil {
			return err
		}
	}
	return nil
}

// Check validates the tree's obligations against the types a dispatch call
// will provide: E, the shared dependencies, and any extra types the caller
// promises to pass per call. It returns an *ObligationError naming every
// mandatory type nothing covers, converting potential run-time
// DependencyError failures into a build-time finding.
//
// Check is optional tooling: dispatch itself never consults signatures.
func (d *Dispatcher[E, T]) Check(extra ...reflect.Type) error {
	provided := NewTypeSet(reflect.TypeFor[E]())
	for _, dep := range d.deps {
		provided.add(reflect.TypeOf(dep))
	}
	for _, t := range extra {
		provided.add(t)
	}

	// Types a parser provides to its subtree appear in Outputs; they are
	// satisfied internally, so count them as provided.
	sig := d.root.Signature()
	provided = provided.Union(sig.Outputs)

	if missing := sig.Unsatisfied(provided); len(missing) > 0 {
		return &ObligationError{Missing: missing}
	}
	return nil
}
