package dtree

import (
	"reflect"
	"sort"
	"strings"
)

// TypeSet is a set of type identifiers.
type TypeSet map[reflect.Type]struct{}

// NewTypeSet builds a TypeSet from the given types.
func NewTypeSet(types ...reflect.Type) TypeSet {
	ts := TypeSet{}
	for _, t := range types {
		ts.add(t)
	}
	return ts
}

// TypeOf returns the type identifier for T, for use with Check and
// Unsatisfied.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func (ts TypeSet) add(t reflect.Type) { ts[t] = struct{}{} }

// Contains reports whether t is in the set.
func (ts TypeSet) Contains(t reflect.Type) bool {
	_, ok := ts[t]
	return ok
}

// Union returns a new set holding every type in ts or other.
func (ts TypeSet) Union(other TypeSet) TypeSet {
	out := TypeSet{}
	for t := range ts {
		out.add(t)
	}
	for t := range other {
		out.add(t)
	}
	return out
}

// Without returns a new set with the given types removed.
func (ts TypeSet) Without(types ...reflect.Type) TypeSet {
	out := TypeSet{}
	for t := range ts {
		out.add(t)
	}
	for _, t := range types {
		delete(out, t)
	}
	return out
}

func (ts TypeSet) String() string {
	names := make([]string, 0, len(ts))
	for t := range ts {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ", ") + "}"
}

// Signature describes what a handler consumes and produces. It is attached
// at construction and is purely descriptive: dispatch never consults it.
// Its use is static validation and tooling; see Dispatcher.Check.
type Signature struct {
	// Inputs are the types the handler reads from the container.
	Inputs TypeSet

	// Outputs are the types the handler makes available to handlers it
	// wraps (e.g. the narrowed type a parser provides).
	Outputs TypeSet

	// Obligations are the subset of inputs that must be present in the
	// container for the handler to run without a DependencyError.
	Obligations TypeSet
}

// merge combines sibling signatures: a node consumes the union of what its
// children consume.
func (s Signature) merge(other Signature) Signature {
	return Signature{
		Inputs:      s.Inputs.Union(other.Inputs),
		Outputs:     s.Outputs.Union(other.Outputs),
		Obligations: s.Obligations.Union(other.Obligations),
	}
}

// Unsatisfied returns the obligations not covered by the provided types,
// sorted by type name. An empty result means every mandatory dependency
// would be available.
func (s Signature) Unsatisfied(provided TypeSet) []reflect.Type {
	var missing []reflect.Type
	for t := range s.Obligations {
		if !provided.Contains(t) {
			missing = append(missing, t)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].String() < missing[j].String()
	})
	return missing
}
