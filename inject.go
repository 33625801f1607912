package dtree

import (
	"context"
	"fmt"
	"reflect"
	"slices"
)

// Injectable is a function-like value whose parameters are pulled from a
// Container by exact type. It is the contract Endpoint builds on.
//
// InputTypes lists every type the function consumes, in declared order.
// Obligations is the mandatory subset: Bind fails with a *DependencyError
// if any of them is absent. Bind extracts the parameters and returns a
// zero-argument invocable closed over them.
type Injectable[R any] interface {
	InputTypes() []reflect.Type
	Obligations() []reflect.Type
	Bind(c *Container) (func(ctx context.Context) (R, error), error)
}

// DependencyError reports that an injectable required a type absent from
// the container. It is fatal to the dispatch call it occurs in: the engine
// neither substitutes a default nor skips the handler.
type DependencyError struct {
	// Type is the missing dependency's type identifier.
	Type reflect.Type
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dtree: missing dependency %s", e.Type)
}

// Opt marks an injectable parameter as optional. A parameter of type Opt[T]
// contributes T to the function's input types but not to its obligations:
// when T is absent from the container the function still runs and receives
// a zero Opt with Ok false.
type Opt[T any] struct {
	Value T
	Ok    bool
}

// optionalParam is implemented by Opt[T] for every T. It lets the generic
// extraction code treat optional parameters uniformly without reflection
// over struct fields.
type optionalParam interface {
	dependencyType() reflect.Type
	fromContainer(c *Container) any
}

func (Opt[T]) dependencyType() reflect.Type { return reflect.TypeFor[T]() }

func (Opt[T]) fromContainer(c *Container) any {
	v, ok := Get[T](c)
	return Opt[T]{Value: v, Ok: ok}
}

// injectable is the concrete Injectable produced by Func0..Func4.
type injectable[R any] struct {
	inputs      []reflect.Type
	obligations []reflect.Type
	bind        func(c *Container) (func(ctx context.Context) (R, error), error)
}

func (f *injectable[R]) InputTypes() []reflect.Type  { return slices.Clone(f.inputs) }
func (f *injectable[R]) Obligations() []reflect.Type { return slices.Clone(f.obligations) }

func (f *injectable[R]) Bind(c *Container) (func(ctx context.Context) (R, error), error) {
	return f.bind(c)
}

// addParam records parameter type A on inj, unwrapping Opt.
func addParam[A, R any](inj *injectable[R]) {
	var zero A
	if opt, ok := any(zero).(optionalParam); ok {
		inj.inputs = append(inj.inputs, opt.dependencyType())
		return
	}
	t := reflect.TypeFor[A]()
	inj.inputs = append(inj.inputs, t)
	inj.obligations = append(inj.obligations, t)
}

// extract pulls a value of type A from the container, honoring Opt.
func extract[A any](c *Container) (A, error) {
	var zero A
	if opt, ok := any(zero).(optionalParam); ok {
		return opt.fromContainer(c).(A), nil
	}
	v, ok := Get[A](c)
	if !ok {
		return zero, &DependencyError{Type: reflect.TypeFor[A]()}
	}
	return v, nil
}

// Func0 builds an Injectable from a function with no container parameters.
func Func0[R any](fn func(ctx context.Context) (R, error)) Injectable[R] {
	return &injectable[R]{
		bind: func(*Container) (func(ctx context.Context) (R, error), error) {
			return fn, nil
		},
	}
}

// Func1 builds an Injectable whose single parameter is extracted from the
// container by type.
func Func1[A, R any](fn func(ctx context.Context, a A) (R, error)) Injectable[R] {
	inj := &injectable[R]{}
	addParam[A](inj)
	inj.bind = func(c *Container) (func(ctx context.Context) (R, error), error) {
		a, err := extract[A](c)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (R, error) { return fn(ctx, a) }, nil
	}
	return inj
}

// Func2 builds an Injectable with two container parameters, extracted in
// declared order.
func Func2[A, B, R any](fn func(ctx context.Context, a A, b B) (R, error)) Injectable[R] {
	inj := &injectable[R]{}
	addParam[A](inj)
	addParam[B](inj)
	inj.bind = func(c *Container) (func(ctx context.Context) (R, error), error) {
		a, err := extract[A](c)
		if err != nil {
			return nil, err
		}
		b, err := extract[B](c)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (R, error) { return fn(ctx, a, b) }, nil
	}
	return inj
}

// Func3 builds an Injectable with three container parameters.
func Func3[A, B, C, R any](fn func(ctx context.Context, a A, b B, c C) (R, error)) Injectable[R] {
	inj := &injectable[R]{}
	addParam[A](inj)
	addParam[B](inj)
	addParam[C](inj)
	inj.bind = func(cont *Container) (func(ctx context.Context) (R, error), error) {
		a, err := extract[A](cont)
		if err != nil {
			return nil, err
		}
		b, err := extract[B](cont)
		if err != nil {
			return nil, err
		}
		c, err := extract[C](cont)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (R, error) { return fn(ctx, a, b, c) }, nil
	}
	return inj
}

// Func4 builds an Injectable with four container parameters. Handlers
// needing more than four dependencies usually want a struct dependency
// inserted as one entry instead.
func Func4[A, B, C, D, R any](fn func(ctx context.Context, a A, b B, c C, d D) (R, error)) Injectable[R] {
	inj := &injectable[R]{}
	addParam[A](inj)
	addParam[B](inj)
	addParam[C](inj)
	addParam[D](inj)
	inj.bind = func(cont *Container) (func(ctx context.Context) (R, error), error) {
		a, err := extract[A](cont)
		if err != nil {
			return nil, err
		}
		b, err := extract[B](cont)
		if err != nil {
			return nil, err
		}
		c, err := extract[C](cont)
		if err != nil {
			return nil, err
		}
		d, err := extract[D](cont)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (R, error) { return fn(ctx, a, b, c, d) }, nil
	}
	return inj
}

// signatureOf derives the Signature slice-to-set conversion shared by
// Endpoint and injectable-aware combinators.
func signatureOf[R any](f Injectable[R]) Signature {
	return Signature{
		Inputs:      NewTypeSet(f.InputTypes()...),
		Outputs:     TypeSet{},
		Obligations: NewTypeSet(f.Obligations()...),
	}
}
