/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package value implements the runtime value representation of dxcty.
//
// A Value is an immutable pair of a declared types.Type and a payload. The
// payload is one of:
//
//   - a string (always NFC-normalized),
//   - a bool,
//   - a sequence of element payloads (lists and tuples),
//   - a mapping of names to element payloads (maps and objects),
//   - Null: the slot has no value but its type is known,
//   - Unknown: the type is known but the content is not determined yet.
//
// Values are only created through the constructors of this package, which
// check that every element carries exactly the element type declared for
// its collection. Collection payloads are held in persistent (immutable)
// vectors and hash maps, so a constructed Value can be shared between
// goroutines and never changes afterwards.
//
// Equality follows an explicit policy for partial knowledge; see
// Value.Equal and DeepEqual.
package value

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"dirpx.dev/dxcty/dxcore/errors"
	"dirpx.dev/dxcty/dxcore/model"
	"dirpx.dev/dxcty/dxcore/model/types"
	"github.com/xiaq/persistent/hash"
	"github.com/xiaq/persistent/hashmap"
	"github.com/xiaq/persistent/vector"
)

// Value is an immutable (type, payload) pair.
//
// The zero Value has neither type nor payload. No constructor returns it
// except alongside an error; IsZero reports true for it and Validate fails.
type Value struct {
	ty types.Type
	v  payload
}

// Value implements every model contract except Serializable.
var _ interface {
	model.Validatable
	model.Loggable
	model.Identifiable
	model.ZeroCheckable
	model.Comparable[Value]
} = Value{}

type payload interface {
	isPayload()
}

type (
	stringPayload   string
	boolPayload     bool
	sequencePayload struct{ vec vector.Vector }
	mappingPayload  struct{ m hashmap.Map }
	unknownPayload  struct{}
	nullPayload     struct{}
)

func (stringPayload) isPayload()   {}
func (boolPayload) isPayload()     {}
func (sequencePayload) isPayload() {}
func (mappingPayload) isPayload()  {}
func (unknownPayload) isPayload()  {}
func (nullPayload) isPayload()     {}

// emptyMapping is the root all mapping payloads are built from. Keys are
// always strings.
var emptyMapping = hashmap.New(
	func(a, b any) bool { return a.(string) == b.(string) },
	func(k any) uint32 { return hash.String(k.(string)) },
)

// Type returns the declared type of v.
func (v Value) Type() types.Type {
	return v.ty
}

// TypeOf returns the declared type of v. It is equivalent to v.Type().
func TypeOf(v Value) types.Type {
	return v.ty
}

// IsNull reports whether v is a null value.
func (v Value) IsNull() bool {
	_, ok := v.v.(nullPayload)
	return ok
}

// IsKnown reports whether the content of v is determined, that is whether
// v was not built by Unknown or Dynamic. A known collection may still
// contain unknown elements; see IsWhollyKnown. The zero Value is not known.
func (v Value) IsKnown() bool {
	if v.v == nil {
		return false
	}
	_, unknown := v.v.(unknownPayload)
	return !unknown
}

// IsWhollyKnown reports whether v and every element nested inside it are
// known.
func (v Value) IsWhollyKnown() bool {
	return v.v != nil && whollyKnown(v.v)
}

func whollyKnown(p payload) bool {
	switch p := p.(type) {
	case unknownPayload:
		return false
	case sequencePayload:
		for it := p.vec.Iterator(); it.HasElem(); it.Next() {
			if !whollyKnown(it.Elem().(payload)) {
				return false
			}
		}
	case mappingPayload:
		for it := p.m.Iterator(); it.HasElem(); it.Next() {
			_, ev := it.Elem()
			if !whollyKnown(ev.(payload)) {
				return false
			}
		}
	}
	return true
}

// AsString returns the text of a known string value. The second result is
// false for any other value.
func (v Value) AsString() (string, bool) {
	s, ok := v.v.(stringPayload)
	return string(s), ok
}

// AsBool returns the flag of a known bool value. The second result is false
// for any other value.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.v.(boolPayload)
	return bool(b), ok
}

// Len returns the number of elements of a known list, map, tuple or object
// value, and 0 for every other value.
func (v Value) Len() int {
	switch p := v.v.(type) {
	case sequencePayload:
		return p.vec.Len()
	case mappingPayload:
		return p.m.Len()
	default:
		return 0
	}
}

// Index returns the i-th element of a known list or tuple value, typed with
// the element type declared by the collection. The second result is false
// when v is not a known sequence or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	seq, ok := v.v.(sequencePayload)
	if !ok || i < 0 || i >= seq.vec.Len() {
		return Value{}, false
	}
	ep, _ := seq.vec.Index(i)
	return Value{ty: elementTypeAt(v.ty, i), v: ep.(payload)}, true
}

// Elements returns the elements of a known list or tuple value in order. It
// returns nil for every other value.
func (v Value) Elements() []Value {
	seq, ok := v.v.(sequencePayload)
	if !ok {
		return nil
	}
	elems := make([]Value, 0, seq.vec.Len())
	i := 0
	for it := seq.vec.Iterator(); it.HasElem(); it.Next() {
		elems = append(elems, Value{ty: elementTypeAt(v.ty, i), v: it.Elem().(payload)})
		i++
	}
	return elems
}

// Get returns the element stored under name in a known map or object
// value. The second result is false when v is not a known mapping or has no
// such key.
func (v Value) Get(name string) (Value, bool) {
	mp, ok := v.v.(mappingPayload)
	if !ok {
		return Value{}, false
	}
	ep, ok := mp.m.Index(name)
	if !ok {
		return Value{}, false
	}
	return Value{ty: elementTypeOf(v.ty, name), v: ep.(payload)}, true
}

// Keys returns the keys of a known map or object value in lexical order. It
// returns nil for every other value.
func (v Value) Keys() []string {
	mp, ok := v.v.(mappingPayload)
	if !ok {
		return nil
	}
	keys := make([]string, 0, mp.m.Len())
	for it := mp.m.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		keys = append(keys, k.(string))
	}
	slices.Sort(keys)
	return keys
}

func elementTypeAt(ty types.Type, i int) types.Type {
	if ty.Kind() == types.KindTuple {
		return ty.TupleElementTypes()[i]
	}
	return ty.ElementType()
}

func elementTypeOf(ty types.Type, name string) types.Type {
	if ty.Kind() == types.KindObject {
		ft, _ := ty.FieldType(name)
		return ft
	}
	return ty.ElementType()
}

// String returns a complete representation of v including string content,
// for example:
//
//	Value{Type:list(string), Data:["a", "b"]}
//	Value{Type:map(bool), Data:{x = true}}
//	Value{Type:any, Data:unknown}
//
// Map and object keys are listed in lexical order. String MAY expose
// sensitive configuration data; use Redacted for logs.
func (v Value) String() string {
	return v.render(false)
}

// Redacted returns the same representation as String with every string
// payload replaced by "***". Types, structure, keys and bool flags are kept.
func (v Value) Redacted() string {
	return v.render(true)
}

func (v Value) render(redact bool) string {
	var sb strings.Builder
	sb.WriteString("Value{Type:")
	sb.WriteString(v.ty.String())
	sb.WriteString(", Data:")
	writePayload(&sb, v.v, redact)
	sb.WriteByte('}')
	return sb.String()
}

func writePayload(sb *strings.Builder, p payload, redact bool) {
	switch p := p.(type) {
	case nil:
		sb.WriteString("invalid")
	case nullPayload:
		sb.WriteString("null")
	case unknownPayload:
		sb.WriteString("unknown")
	case boolPayload:
		sb.WriteString(strconv.FormatBool(bool(p)))
	case stringPayload:
		if redact {
			sb.WriteString(`"***"`)
		} else {
			sb.WriteString(strconv.Quote(string(p)))
		}
	case sequencePayload:
		sb.WriteByte('[')
		i := 0
		for it := p.vec.Iterator(); it.HasElem(); it.Next() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePayload(sb, it.Elem().(payload), redact)
			i++
		}
		sb.WriteByte(']')
	case mappingPayload:
		entries := make(map[string]payload, p.m.Len())
		for it := p.m.Iterator(); it.HasElem(); it.Next() {
			k, ev := it.Elem()
			entries[k.(string)] = ev.(payload)
		}
		sb.WriteByte('{')
		for i, k := range slices.Sorted(maps.Keys(entries)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(" = ")
			writePayload(sb, entries[k], redact)
		}
		sb.WriteByte('}')
	}
}

// TypeName returns "Value".
func (v Value) TypeName() string {
	return "Value"
}

// IsZero reports whether v is the zero Value.
func (v Value) IsZero() bool {
	return v.v == nil && v.ty.IsZero()
}

// Validate checks that v has a valid declared type and that its payload is
// consistent with that type all the way down. Values returned by the
// constructors of this package always validate; the zero Value does not.
func (v Value) Validate() error {
	if v.v == nil {
		return &errors.ValidationError{Type: "Value", Reason: "zero value"}
	}
	if err := v.ty.Validate(); err != nil {
		return &errors.ValidationError{Type: "Value", Field: "Type", Reason: err.Error()}
	}
	return checkPayload(v.ty, v.v)
}

func checkPayload(ty types.Type, p payload) error {
	mismatch := func() error {
		return &errors.ValidationError{
			Type:   "Value",
			Field:  "Data",
			Reason: "payload is not a valid " + ty.String(),
		}
	}

	switch p := p.(type) {
	case nullPayload, unknownPayload:
		return nil
	case stringPayload:
		if ty.Kind() != types.KindString {
			return mismatch()
		}
	case boolPayload:
		if ty.Kind() != types.KindBool {
			return mismatch()
		}
	case sequencePayload:
		switch ty.Kind() {
		case types.KindList:
		case types.KindTuple:
			if len(ty.TupleElementTypes()) != p.vec.Len() {
				return mismatch()
			}
		default:
			return mismatch()
		}
		i := 0
		for it := p.vec.Iterator(); it.HasElem(); it.Next() {
			if err := checkPayload(elementTypeAt(ty, i), it.Elem().(payload)); err != nil {
				return err
			}
			i++
		}
	case mappingPayload:
		switch ty.Kind() {
		case types.KindMap:
		case types.KindObject:
			if len(ty.FieldNames()) != p.m.Len() {
				return mismatch()
			}
		default:
			return mismatch()
		}
		for it := p.m.Iterator(); it.HasElem(); it.Next() {
			k, ev := it.Elem()
			et := elementTypeOf(ty, k.(string))
			if et.IsZero() {
				return mismatch()
			}
			if err := checkPayload(et, ev.(payload)); err != nil {
				return err
			}
		}
	default:
		return mismatch()
	}
	return nil
}
