// Package jsonevent adapts dtree to applications whose events are raw JSON
// documents: a Message event type with gjson-backed field access, predicate
// combinators for filter gates, and a field-plucking narrowing relation.
//
// The package is tooling for callers; the engine itself never parses
// bytes. A typical setup stores the whole incoming document as the event
// and routes on its fields:
//
//	root := dtree.Node[string]().
//	    And(dtree.Filter[string](jsonevent.Matches(
//	        jsonevent.FieldEquals("type", "ping"),
//	    )).Endpoint(pong)).
//	    And(dtree.Parse[string](jsonevent.Pluck("value")).Endpoint(setValue)).
//	    Build()
//
//	d := dtree.NewDispatcher[jsonevent.Message](root)
package jsonevent

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by New when the input is not valid JSON.
var ErrInvalidJSON = errors.New("jsonevent: invalid JSON")

// Message is a raw JSON event. It is stored in the container as-is; field
// access goes through gjson paths ("detail.userId", "items.0.name").
type Message []byte

// New validates raw and returns it as a Message.
func New(raw []byte) (Message, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return Message(raw), nil
}

// Has returns true if the path exists in the message.
func (m Message) Has(path string) bool {
	return gjson.GetBytes(m, path).Exists()
}

// Str returns the string value at path, or false if the path is absent or
// not a string.
func (m Message) Str(path string) (string, bool) {
	r := gjson.GetBytes(m, path)
	if !r.Exists() || r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

// Raw returns the raw JSON value at path (including quotes for strings),
// or false if the path is absent.
func (m Message) Raw(path string) ([]byte, bool) {
	r := gjson.GetBytes(m, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}

func (m Message) String() string { return string(m) }
