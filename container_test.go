package dtree

import (
	"strings"
	"testing"
)

func TestContainer_InsertGet(t *testing.T) {
	t.Run("stores and retrieves by type", func(t *testing.T) {
		c := Insert(nil, 42)
		c = Insert(c, "hello")

		n, ok := Get[int](c)
		if !ok || n != 42 {
			t.Errorf("Get[int] = %v, %v; want 42, true", n, ok)
		}
		s, ok := Get[string](c)
		if !ok || s != "hello" {
			t.Errorf("Get[string] = %v, %v; want hello, true", s, ok)
		}
	})

	t.Run("missing type reports absent", func(t *testing.T) {
		c := Insert(nil, 42)

		if _, ok := Get[string](c); ok {
			t.Error("Get[string] reported present on a container without a string")
		}
	})

	t.Run("empty container is usable", func(t *testing.T) {
		var c *Container
		if _, ok := Get[int](c); ok {
			t.Error("Get on nil container reported present")
		}
	})

	t.Run("newest entry of a type wins", func(t *testing.T) {
		c := Insert(nil, "old")
		c = Insert(c, "new")

		s, _ := Get[string](c)
		if s != "new" {
			t.Errorf("Get[string] = %q, want %q", s, "new")
		}
	})

	t.Run("interface entries are keyed by the interface type", func(t *testing.T) {
		var e testEvent = pingEvent{}
		c := Insert(nil, e)

		got, ok := Get[testEvent](c)
		if !ok {
			t.Fatal("Get[testEvent] reported absent")
		}
		if _, isPing := got.(pingEvent); !isPing {
			t.Errorf("Get[testEvent] = %T, want pingEvent", got)
		}

		// The concrete type was never inserted as its own entry.
		if _, ok := Get[pingEvent](c); ok {
			t.Error("Get[pingEvent] reported present")
		}
	})
}

func TestContainer_Immutability(t *testing.T) {
	t.Run("insert leaves the base unchanged", func(t *testing.T) {
		base := Insert(nil, 1)
		extended := Insert(base, "branch")

		if _, ok := Get[string](base); ok {
			t.Error("base container observed a sibling's insert")
		}
		if _, ok := Get[string](extended); !ok {
			t.Error("extended container lost its insert")
		}
	})

	t.Run("one base seeds independent sibling branches", func(t *testing.T) {
		base := Insert(nil, 1)
		left := Insert(base, "left")
		right := Insert(base, "right")

		l, _ := Get[string](left)
		r, _ := Get[string](right)
		if l != "left" || r != "right" {
			t.Errorf("branches = %q, %q; want left, right", l, r)
		}
	})
}

func TestContainer_Drop(t *testing.T) {
	t.Run("masks every older entry of the type", func(t *testing.T) {
		c := Insert(nil, "first")
		c = Insert(c, "second")
		c = c.drop(TypeOf[string]())

		if _, ok := Get[string](c); ok {
			t.Error("dropped type still visible")
		}
	})

	t.Run("insert after drop revives the type", func(t *testing.T) {
		c := Insert(nil, "old")
		c = c.drop(TypeOf[string]())
		c = Insert(c, "revived")

		s, ok := Get[string](c)
		if !ok || s != "revived" {
			t.Errorf("Get[string] = %q, %v; want revived, true", s, ok)
		}
	})

	t.Run("other types are untouched", func(t *testing.T) {
		c := Insert(nil, 42)
		c = Insert(c, "gone")
		c = c.drop(TypeOf[string]())

		if n, ok := Get[int](c); !ok || n != 42 {
			t.Errorf("Get[int] = %v, %v; want 42, true", n, ok)
		}
	})
}

func TestContainer_Types(t *testing.T) {
	c := NewContainer(42, "hello")
	c = Insert(c, int32(7))
	c = Insert(c, "shadowing") // same type, no new entry in the set
	c = c.drop(TypeOf[int32]())

	ts := c.Types()
	if len(ts) != 2 {
		t.Fatalf("Types() = %v, want 2 entries", ts)
	}
	if !ts.Contains(TypeOf[int]()) || !ts.Contains(TypeOf[string]()) {
		t.Errorf("Types() = %v, want {int, string}", ts)
	}
}

func TestContainer_String(t *testing.T) {
	c := NewContainer("hello", 42)

	got := c.String()
	if !strings.Contains(got, "int") || !strings.Contains(got, "string") {
		t.Errorf("String() = %q, want both int and string listed", got)
	}
}
