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

package types

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxcty/dxcore/errors"
	"dirpx.dev/dxcty/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Kind identifies the variant of a Type.
//
// The type algebra is a closed set: three primitive kinds (String, Bool,
// Number), three homogeneous collection kinds parameterized by a single
// element type (List, Map, Set), two heterogeneous structural kinds (Tuple,
// Object) and the dynamic kind Any. KindInvalid is the kind of the zero
// Type and is never produced by a constructor.
type Kind int

const (
	// KindInvalid is the kind of the zero Type.
	KindInvalid Kind = iota

	// KindString is the kind of Unicode text, stored NFC-normalized.
	KindString

	// KindBool is the kind of boolean flags.
	KindBool

	// KindNumber is the kind of numbers. The algebra can describe numbers,
	// but no value constructor produces a known number.
	KindNumber

	// KindList is the kind of ordered sequences of one element type.
	KindList

	// KindMap is the kind of unordered string-keyed mappings of one element
	// type.
	KindMap

	// KindSet is the kind of unordered collections of distinct elements of
	// one element type. Like KindNumber it is declared but has no
	// constructor for known values.
	KindSet

	// KindTuple is the kind of fixed-arity sequences whose positions each
	// carry their own type.
	KindTuple

	// KindObject is the kind of named-field records whose fields each carry
	// their own type.
	KindObject

	// KindAny is the dynamic kind: no static shape constraint.
	KindAny
)

// Compile-time check that Kind implements model.Model interface.
var _ model.Model = (*Kind)(nil)

// String constants for Kind values used in type expressions, encoded type
// descriptors and error messages. Changing any of them is a breaking change
// for every document that spells out a type.
const (
	InvalidStr = "invalid"
	StringStr  = "string"
	BoolStr    = "bool"
	NumberStr  = "number"
	ListStr    = "list"
	MapStr     = "map"
	SetStr     = "set"
	TupleStr   = "tuple"
	ObjectStr  = "object"
	AnyStr     = "any"
)

// String returns the canonical lowercase name of the kind, for example
// "list" or "any". KindInvalid and out-of-range values render as "invalid".
func (k Kind) String() string {
	switch k {
	case KindString:
		return StringStr
	case KindBool:
		return BoolStr
	case KindNumber:
		return NumberStr
	case KindList:
		return ListStr
	case KindMap:
		return MapStr
	case KindSet:
		return SetStr
	case KindTuple:
		return TupleStr
	case KindObject:
		return ObjectStr
	case KindAny:
		return AnyStr
	default:
		return InvalidStr
	}
}

// ParseKind converts a kind name into a Kind.
//
// Matching is case-insensitive, so "list", "List" and "LIST" are all
// accepted. "dynamic" is accepted as an alias of "any", the spelling used by
// configuration languages that call the dynamic kind a pseudo-type. The name
// "invalid" is rejected: KindInvalid cannot be spelled.
//
// On failure ParseKind returns KindInvalid and a *errors.ParseError.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case StringStr:
		return KindString, nil
	case BoolStr:
		return KindBool, nil
	case NumberStr:
		return KindNumber, nil
	case ListStr:
		return KindList, nil
	case MapStr:
		return KindMap, nil
	case SetStr:
		return KindSet, nil
	case TupleStr:
		return KindTuple, nil
	case ObjectStr:
		return KindObject, nil
	case AnyStr, "dynamic":
		return KindAny, nil
	default:
		return KindInvalid, &errors.ParseError{Type: "Kind", Value: s}
	}
}

// Valid reports whether k is one of the defined kinds other than
// KindInvalid.
func (k Kind) Valid() bool {
	return k > KindInvalid && k <= KindAny
}

// IsPrimitive reports whether k is a data-less primitive kind (string, bool
// or number).
func (k Kind) IsPrimitive() bool {
	return k == KindString || k == KindBool || k == KindNumber
}

// IsCollection reports whether k is a homogeneous collection kind
// parameterized by a single element type (list, map or set).
func (k Kind) IsCollection() bool {
	return k == KindList || k == KindMap || k == KindSet
}

// IsStructural reports whether k is a heterogeneous kind whose positions or
// fields carry individual types (tuple or object).
func (k Kind) IsStructural() bool {
	return k == KindTuple || k == KindObject
}

// MarshalJSON implements json.Marshaler for Kind.
//
// A valid Kind is serialized as its canonical name. Invalid kinds produce a
// *errors.MarshalError instead of JSON output.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Kind.
//
// Both the string form ("list") and the numeric form (4, the declaration
// order of the constants) are accepted. The numeric form exists for
// documents that store enum-like values as integers; the string form is
// preferred.
func (k *Kind) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseKind(str)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
	}
	if !Kind(i).Valid() {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: "invalid numeric value"}
	}
	*k = Kind(i)
	return nil
}

// MarshalText implements encoding.TextMarshaler for Kind.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Kind using
// ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Kind.
func (k Kind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Kind.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TypeName returns "Kind".
func (k Kind) TypeName() string {
	return "Kind"
}

// Redacted returns the same string as String; kinds carry no sensitive data.
func (k Kind) Redacted() string {
	return k.String()
}

// IsZero reports whether k is KindInvalid, the zero Kind.
func (k Kind) IsZero() bool {
	return k == KindInvalid
}

// Validate returns a *errors.ValidationError if k is not a defined kind.
func (k Kind) Validate() error {
	if !k.Valid() {
		return &errors.ValidationError{Type: "Kind", Reason: "undefined kind", Value: int(k)}
	}
	return nil
}
