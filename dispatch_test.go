package dtree

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

// testEvent is the event enumeration used across the package tests,
// mirroring a command-style application: ping, print, set_value.
type testEvent interface{ isTestEvent() }

type pingEvent struct{}

type printEvent struct{}

type setEvent struct {
	value int32
}

func (pingEvent) isTestEvent()  {}
func (printEvent) isTestEvent() {}
func (setEvent) isTestEvent()   {}

// isVariant builds a filter predicate matching one event variant.
func isVariant[V testEvent]() func(testEvent) bool {
	return func(e testEvent) bool {
		_, ok := e.(V)
		return ok
	}
}

// breakWith returns a handler that always breaks with v.
func breakWith(v string) Handler[string] {
	return FromFn(func(ctx context.Context, c *Container) (Outcome[string], error) {
		return Break(v), nil
	}, Signature{})
}

// continueAlways returns a handler that always declines, recording each
// invocation in calls.
func continueAlways(calls *int) Handler[string] {
	return FromFn(func(ctx context.Context, c *Container) (Outcome[string], error) {
		*calls++
		return Continue[string](c), nil
	}, Signature{})
}

// commandTree builds the full three-command tree from the package
// documentation against the given store.
func commandTree() Handler[string] {
	ping := FilterOn[string](isVariant[pingEvent]()).
		Endpoint(Func0(func(ctx context.Context) (string, error) {
			return "Pong", nil
		}))

	set := Parse[string](AsVariant[testEvent, setEvent]()).
		Endpoint(Func2(func(ctx context.Context, e setEvent, store *atomic.Int32) (string, error) {
			store.Store(e.value)
			return fmt.Sprintf("%d stored", e.value), nil
		}))

	print := FilterOn[string](isVariant[printEvent]()).
		Endpoint(Func1(func(ctx context.Context, store *atomic.Int32) (string, error) {
			return strconv.Itoa(int(store.Load())), nil
		}))

	return Node[string]().And(ping).And(set).And(print).Build()
}

// unknownEvent matches no handler in commandTree.
type unknownEvent struct{}

func (unknownEvent) isTestEvent() {}

func TestDispatcher_Scenario(t *testing.T) {
	store := &atomic.Int32{}
	d := NewDispatcher[testEvent](commandTree(), WithDependencies(store))
	ctx := context.Background()

	steps := []struct {
		name  string
		event testEvent
		want  string
	}{
		{"ping answers pong", pingEvent{}, "Pong"},
		{"print shows initial value", printEvent{}, "0"},
		{"set_value stores", setEvent{value: 123}, "123 stored"},
		{"print shows stored value", printEvent{}, "123"},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			got, err := d.Dispatch(ctx, step.event)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != step.want {
				t.Errorf("output = %q, want %q", got, step.want)
			}
		})
	}

	t.Run("counter state persists across calls", func(t *testing.T) {
		if got := store.Load(); got != 123 {
			t.Errorf("store = %d, want 123", got)
		}
	})

	t.Run("unmatched event reports exhaustion", func(t *testing.T) {
		_, err := d.Dispatch(ctx, unknownEvent{})
		if !errors.Is(err, ErrNoHandlerMatched) {
			t.Errorf("error = %v, want ErrNoHandlerMatched", err)
		}
	})
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("per-call dependencies reach the endpoint", func(t *testing.T) {
		root := Endpoint(Func1(func(ctx context.Context, greeting string) (string, error) {
			return greeting, nil
		}))
		d := NewDispatcher[pingEvent](root)

		got, err := d.Dispatch(ctx, pingEvent{}, "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "hello" {
			t.Errorf("output = %q, want %q", got, "hello")
		}
	})

	t.Run("per-call dependency shadows shared dependency", func(t *testing.T) {
		root := Endpoint(Func1(func(ctx context.Context, greeting string) (string, error) {
			return greeting, nil
		}))
		d := NewDispatcher[pingEvent](root, WithDependencies("shared"))

		got, err := d.Dispatch(ctx, pingEvent{}, "per-call")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "per-call" {
			t.Errorf("output = %q, want %q", got, "per-call")
		}
	})

	t.Run("missing dependency fails the call", func(t *testing.T) {
		root := Endpoint(Func1(func(ctx context.Context, n *atomic.Int32) (string, error) {
			return "", nil
		}))
		d := NewDispatcher[pingEvent](root)

		_, err := d.Dispatch(ctx, pingEvent{})
		var depErr *DependencyError
		if !errors.As(err, &depErr) {
			t.Fatalf("error = %v, want *DependencyError", err)
		}
		if depErr.Type != TypeOf[*atomic.Int32]() {
			t.Errorf("missing type = %v, want *atomic.Int32", depErr.Type)
		}
	})

	t.Run("endpoint body error propagates", func(t *testing.T) {
		wantErr := errors.New("backend down")
		root := Endpoint(Func0(func(ctx context.Context) (string, error) {
			return "", wantErr
		}))
		d := NewDispatcher[pingEvent](root)

		_, err := d.Dispatch(ctx, pingEvent{})
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})

	t.Run("event is stored under its static type", func(t *testing.T) {
		// E is the interface type; the endpoint asks for the interface,
		// not the concrete variant.
		root := Endpoint(Func1(func(ctx context.Context, e testEvent) (string, error) {
			return fmt.Sprintf("%T", e), nil
		}))
		d := NewDispatcher[testEvent](root)

		got, err := d.Dispatch(ctx, testEvent(pingEvent{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "dtree.pingEvent" {
			t.Errorf("output = %q, want %q", got, "dtree.pingEvent")
		}
	})
}

func TestDispatcher_Concurrent(t *testing.T) {
	store := &atomic.Int32{}
	d := NewDispatcher[testEvent](commandTree(), WithDependencies(store))
	ctx := context.Background()

	const calls = 64

	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Dispatch(ctx, pingEvent{}); err != nil {
				errs <- err
				return
			}
			if _, err := d.Dispatch(ctx, printEvent{}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent dispatch failed: %v", err)
	}
}

func TestDispatcher_Check(t *testing.T) {
	t.Run("passes when every obligation is seeded", func(t *testing.T) {
		store := &atomic.Int32{}
		d := NewDispatcher[testEvent](commandTree(), WithDependencies(store))

		if err := d.Check(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("reports obligations nothing provides", func(t *testing.T) {
		d := NewDispatcher[testEvent](commandTree())

		err := d.Check()
		var oblErr *ObligationError
		if !errors.As(err, &oblErr) {
			t.Fatalf("error = %v, want *ObligationError", err)
		}
		if len(oblErr.Missing) != 1 || oblErr.Missing[0] != TypeOf[*atomic.Int32]() {
			t.Errorf("missing = %v, want [*atomic.Int32]", oblErr.Missing)
		}
	})

	t.Run("extra promised types count as provided", func(t *testing.T) {
		d := NewDispatcher[testEvent](commandTree())

		if err := d.Check(TypeOf[*atomic.Int32]()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
