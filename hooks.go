package dtree

import (
	"context"
	"time"
)

// OnDispatchFunc is called just before the root handler runs. The event
// argument is the event type's name.
type OnDispatchFunc func(ctx context.Context, event string)

// OnBreakFunc is called after a dispatch call produced a Break outcome.
type OnBreakFunc func(ctx context.Context, event string, duration time.Duration)

// OnNoMatchFunc is called when the root node exhausts every handler with
// Continue. Return nil to treat the event as deliberately skipped (Dispatch
// returns the zero output and a nil error); return an error to fail the
// call with it instead of ErrNoHandlerMatched.
type OnNoMatchFunc func(ctx context.Context, event string) error

// OnErrorFunc is called when a dispatch call fails hard: a missing
// mandatory dependency or an endpoint body error.
type OnErrorFunc func(ctx context.Context, event string, err error, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch []OnDispatchFunc
	onBreak    []OnBreakFunc
	onNoMatch  []OnNoMatchFunc
	onError    []OnErrorFunc
}

// settings collects dispatcher construction options.
type settings struct {
	hooks hooks
	deps  []any
}

// Option configures a Dispatcher at construction.
type Option func(*settings)

// WithDependencies seeds every dispatch call's container with the given
// values, each stored under its dynamic type. Shared mutable state a
// handler needs across calls (counters, caches) belongs here, wrapped in a
// synchronization-safe type by the caller.
func WithDependencies(deps ...any) Option {
	return func(s *settings) {
		s.deps = append(s.deps, deps...)
	}
}

// WithOnDispatch adds a hook called just before the root handler runs.
// Multiple hooks are called in order.
//
// Example:
//
//	dtree.WithOnDispatch(func(ctx context.Context, event string) {
//	    logger.Debug("dispatching", zap.String("event", event))
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(s *settings) {
		s.hooks.onDispatch = append(s.hooks.onDispatch, fn)
	}
}

// WithOnBreak adds a hook called after a dispatch call produced a final
// answer. Multiple hooks are called in order.
//
// Example:
//
//	dtree.WithOnBreak(func(ctx context.Context, event string, d time.Duration) {
//	    metrics.Timing("dispatch.handled", d, "event:"+event)
//	})
func WithOnBreak(fn OnBreakFunc) Option {
	return func(s *settings) {
		s.hooks.onBreak = append(s.hooks.onBreak, fn)
	}
}

// WithOnNoMatch adds a hook called on exhaustion. Return nil to skip the
// event, return an error to fail. Multiple hooks are called in order; first
// error wins.
//
// Example:
//
//	dtree.WithOnNoMatch(func(ctx context.Context, event string) error {
//	    logger.Warn("unhandled event", zap.String("event", event))
//	    return nil // skip
//	})
func WithOnNoMatch(fn OnNoMatchFunc) Option {
	return func(s *settings) {
		s.hooks.onNoMatch = append(s.hooks.onNoMatch, fn)
	}
}

// WithOnError adds a hook called when a dispatch call fails hard. Multiple
// hooks are called in order.
//
// Example:
//
//	dtree.WithOnError(func(ctx context.Context, event string, err error, d time.Duration) {
//	    logger.Error("dispatch failed", zap.String("event", event), zap.Error(err))
//	})
func WithOnError(fn OnErrorFunc) Option {
	return func(s *settings) {
		s.hooks.onError = append(s.hooks.onError, fn)
	}
}
