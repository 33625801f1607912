package jsonevent

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/bjaus/dtree"
)

// Field is a JSON field narrowed out of a Message: the path it was plucked
// from and its parsed value.
type Field struct {
	Path  string
	Value gjson.Result
}

// Pluck returns a Narrower that specializes a Message to one of its
// fields. Narrowing succeeds when the path exists: the branch receives the
// Field, and the remainder is the message with the field removed.
// Recombination writes the field back, restoring a message observably
// equivalent to the original for every path narrowing did not touch.
//
// Narrowing fails softly when the path is absent, so the next sibling sees
// the message unchanged.
func Pluck(path string) dtree.Narrower[Message, Field, Message] {
	return dtree.NarrowerFunc(
		func(m Message) (Field, Message, bool) {
			r := gjson.GetBytes(m, path)
			if !r.Exists() {
				return Field{}, nil, false
			}
			rest, err := sjson.DeleteBytes(m, path)
			if err != nil {
				return Field{}, nil, false
			}
			return Field{Path: path, Value: r}, Message(rest), true
		},
		func(f Field, rest Message) Message {
			restored, err := sjson.SetRawBytes(rest, f.Path, []byte(f.Value.Raw))
			if err != nil {
				// Delete succeeded on this path during narrowing, so the
				// write-back cannot fail; keep the remainder if it somehow does.
				return rest
			}
			return Message(restored)
		},
	)
}
