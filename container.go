package dtree

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Container is an immutable, type-keyed pool of values threaded through a
// single dispatch call. Each type has at most one live value; inserting a
// value of a type that is already present shadows the older entry.
//
// Insert never mutates: it returns a new Container layered on top of the
// receiver. The same base container can therefore seed multiple sibling
// branches without synchronization; each branch extends its own copy.
//
// The zero value of *Container (nil) is a valid empty container.
type Container struct {
	parent *Container
	key    reflect.Type
	value  any
}

// dropped masks an entry. A lookup that reaches a layer holding dropped
// reports the type as absent without consulting older layers.
type dropped struct{}

// NewContainer builds a container seeded with the given values, each stored
// under its dynamic type. Later values shadow earlier ones of the same type.
func NewContainer(values ...any) *Container {
	var c *Container
	for _, v := range values {
		c = c.insertDynamic(v)
	}
	return c
}

// Insert returns a container extended with v stored under type T. Any
// existing entry of type T is shadowed. The receiver is unchanged.
func Insert[T any](c *Container, v T) *Container {
	return &Container{parent: c, key: reflect.TypeFor[T](), value: v}
}

// Get returns the value stored under type T, or false if no entry of that
// type is live in the container.
func Get[T any](c *Container) (T, bool) {
	v, ok := c.lookup(reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// insertDynamic stores v under its dynamic type. Used for ...any dependency
// seeding, where the static type is not available.
func (c *Container) insertDynamic(v any) *Container {
	return &Container{parent: c, key: reflect.TypeOf(v), value: v}
}

// drop returns a container in which type t is absent, regardless of how many
// shadowed entries of t older layers hold.
func (c *Container) drop(t reflect.Type) *Container {
	return &Container{parent: c, key: t, value: dropped{}}
}

// lookup walks the layers newest-first and returns the first live entry of
// type t.
func (c *Container) lookup(t reflect.Type) (any, bool) {
	for layer := c; layer != nil; layer = layer.parent {
		if layer.key != t {
			continue
		}
		if _, masked := layer.value.(dropped); masked {
			return nil, false
		}
		return layer.value, true
	}
	return nil, false
}

// Types returns the set of types with a live entry in the container.
func (c *Container) Types() TypeSet {
	ts := TypeSet{}
	seen := map[reflect.Type]bool{}
	for layer := c; layer != nil; layer = layer.parent {
		if seen[layer.key] {
			continue
		}
		seen[layer.key] = true
		if _, masked := layer.value.(dropped); masked {
			continue
		}
		ts.add(layer.key)
	}
	return ts
}

// String lists the live types, mostly useful in test failures and
// DependencyError investigation.
func (c *Container) String() string {
	names := make([]string, 0, 8)
	for t := range c.Types() {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return fmt.Sprintf("Container[%s]", strings.Join(names, ", "))
}
