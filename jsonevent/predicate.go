package jsonevent

import "github.com/bjaus/dtree"

// Predicate decides whether a Message should be handled by a branch.
// Predicates are cheap field checks, evaluated before any handler body
// runs.
type Predicate func(m Message) bool

// HasFields returns a Predicate that matches when all paths exist.
func HasFields(paths ...string) Predicate {
	return func(m Message) bool {
		for _, p := range paths {
			if !m.Has(p) {
				return false
			}
		}
		return true
	}
}

// FieldEquals returns a Predicate that matches when the path exists and
// equals the given string value.
func FieldEquals(path, value string) Predicate {
	return func(m Message) bool {
		s, ok := m.Str(path)
		return ok && s == value
	}
}

// And returns a Predicate that matches when all predicates match.
func And(ps ...Predicate) Predicate {
	return func(m Message) bool {
		for _, p := range ps {
			if !p(m) {
				return false
			}
		}
		return true
	}
}

// Or returns a Predicate that matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(m Message) bool {
		for _, p := range ps {
			if p(m) {
				return true
			}
		}
		return false
	}
}

// Matches bridges a Predicate to a dtree filter gate: the Message is read
// from the container, and its absence is a soft mismatch.
func Matches(p Predicate) dtree.Predicate {
	return dtree.On(func(m Message) bool { return p(m) })
}
