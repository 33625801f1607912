// Package dtree provides a composable event-dispatch engine built from
// small, independently testable handlers.
//
// Applications assemble a tree of handlers. Each handler receives the
// container for the current dispatch call and either produces a final
// answer (Break) or declines and passes control to the next sibling
// (Continue). Ordered chains with first-match-wins semantics replace
// hand-written branching over heterogeneous events: bot commands, RPC
// requests, CLI commands.
//
// # Quick Start
//
// Declare an event type and build handlers from the combinators:
//
//	type Event interface{ isEvent() }
//
//	type Ping struct{}
//	type SetValue struct{ Value int32 }
//
//	func pingHandler() dtree.Handler[string] {
//	    return dtree.FilterOn[string](func(e Event) bool {
//	        _, ok := e.(Ping)
//	        return ok
//	    }).Endpoint(dtree.Func0(func(ctx context.Context) (string, error) {
//	        return "Pong", nil
//	    }))
//	}
//
//	func setValueHandler() dtree.Handler[string] {
//	    return dtree.Parse[string](dtree.AsVariant[Event, SetValue]()).
//	        Endpoint(dtree.Func2(func(ctx context.Context, sv SetValue, store *atomic.Int32) (string, error) {
//	            store.Store(sv.Value)
//	            return fmt.Sprintf("%d stored", sv.Value), nil
//	        }))
//	}
//
// Chain them in a node, wrap the node in a dispatcher, and dispatch:
//
//	root := dtree.Node[string]().
//	    And(pingHandler()).
//	    And(setValueHandler()).
//	    Build()
//
//	d := dtree.NewDispatcher[Event](root, dtree.WithDependencies(store))
//
//	out, err := d.Dispatch(ctx, event)
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Container: an immutable, type-keyed pool of values for one dispatch
//     call, seeding handlers with the event and shared resources
//   - Combinators: Filter, Parse, and Endpoint wrap inner handlers with
//     gating, narrowing, and termination
//   - Node: ordered chains with short-circuit semantics, themselves
//     handlers, so trees nest
//
// This separation allows:
//   - Handlers that are pure values, built once and reused concurrently
//   - Order-sensitive routing without switch statements
//   - Consistent observability via hooks
//   - Static validation of dependencies via signatures
//
// # Container and Injection
//
// A Container maps each type to at most one value. Insert never mutates:
// it layers a new entry over the old container, so one base container can
// seed multiple sibling branches safely. Each dispatch call gets a fresh
// container seeded with the shared dependencies, the per-call
// dependencies, and the event.
//
// Endpoints are built from injectable functions via Func0 through Func4.
// Parameters are extracted from the container by exact type, in declared
// order:
//
//	dtree.Func2(func(ctx context.Context, e SetValue, store *atomic.Int32) (string, error) {
//	    ...
//	})
//
// A missing mandatory parameter fails the dispatch call with a
// *DependencyError, never a zero value or a silent skip. Wrap a
// parameter in Opt to declare it optional:
//
//	dtree.Func1(func(ctx context.Context, tz dtree.Opt[*time.Location]) (string, error) {
//	    loc := time.UTC
//	    if tz.Ok {
//	        loc = tz.Value
//	    }
//	    ...
//	})
//
// # Break and Continue
//
// Running a handler yields one of two outcomes. Break carries a final
// answer and short-circuits everything above it: no later sibling runs.
// Continue carries the (possibly extended) container to the next sibling
// in declaration order. Declaration order is semantics: the first matching
// handler wins, and swapping two matching handlers changes the result.
//
// Soft mismatches (a filter predicate returning false, a narrowing that
// fails) produce Continue, not errors. Hard failures (a missing mandatory
// dependency, an endpoint body returning an error) fail the dispatch
// call.
//
// # Narrowing
//
// Parse temporarily specializes the event for one branch. A Narrower
// converts an event into a more specific subtype plus a remainder, and
// recombines the pair back into the original:
//
//	type Narrower[From, To, Rest any] interface {
//	    Narrow(from From) (To, Rest, bool)
//	    Recombine(to To, rest Rest) From
//	}
//
// On narrowing success the branch sees the narrowed value; if the branch
// Continues, the original event is recombined and restored before the next
// sibling runs. AsVariant covers the common case of interface-typed events
// with concrete variant types.
//
// # Signatures
//
// Every handler carries a Signature: the types it consumes, the types it
// provides to its subtree, and the mandatory subset (obligations).
// Signatures never drive dispatch; Break and Continue are decided solely
// by predicates and narrowing. Their use is static validation:
//
//	if err := d.Check(); err != nil {
//	    log.Fatal(err) // a handler's obligation nothing will provide
//	}
//
// # Hooks
//
// Hooks provide observability without coupling the engine to a logging or
// metrics system. Configure them with functional options:
//
//	d := dtree.NewDispatcher[Event](root,
//	    dtree.WithOnBreak(func(ctx context.Context, event string, d time.Duration) {
//	        metrics.Timing("dispatch.handled", d)
//	    }),
//	    dtree.WithOnNoMatch(func(ctx context.Context, event string) error {
//	        logger.Warn("unhandled event", zap.String("event", event))
//	        return nil // skip instead of ErrNoHandlerMatched
//	    }),
//	)
//
// Available hooks:
//   - WithOnDispatch: called just before the root handler runs
//   - WithOnBreak: called after a final answer was produced
//   - WithOnNoMatch: called on exhaustion; controls skip-vs-fail
//   - WithOnError: called on hard failures
//
// Multiple hooks of the same type are called in order.
//
// # Thread Safety
//
// Handlers and dispatchers are immutable after construction and safe for
// concurrent use: independent dispatch calls run concurrently, each owning
// its container snapshot. Mutable state a handler closes over must be
// synchronization-safe (atomics, mutexes); the engine holds no locks,
// performs no blocking waits, and imposes no timeout or cancellation
// policy of its own.
package dtree
