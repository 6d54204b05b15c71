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

// Package types implements the type algebra of dxcty: an algebraic
// description of the shapes runtime values can take.
//
// A Type is one of a closed set of variants:
//
//   - the primitives String, Bool and Number;
//   - the homogeneous collections List(T), Map(T) and Set(T);
//   - the heterogeneous structures Tuple(T1, ..., Tn) and
//     Object({name: T, ...});
//   - the dynamic type Any.
//
// Types are pure, immutable descriptions. They carry no payload, have no
// lifecycle and may be copied and shared freely between goroutines. Types
// are compared structurally with Equal: two independently built
// List(String) types are equal. There is no subtyping, variance or
// widening; Any is equal only to Any.
//
// Types render to and parse from a compact type-expression syntax
// ("list(string)", "object({name = string, tags = set(string)})") and encode
// to JSON and YAML for use in schema documents.
package types

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"dirpx.dev/dxcty/dxcore/errors"
	"dirpx.dev/dxcty/dxcore/model"
	"dirpx.dev/rxmerr"
)

// Type is a structural description of a value's shape.
//
// The zero Type is the invalid type: it has KindInvalid, IsZero reports
// true and Validate fails. Every Type returned by the constructors of this
// package (or by ParseType and the decoders) is valid as long as the types
// passed to the constructors were.
//
// Type values MUST be compared with Equal, not with ==. The == operator
// compares the internal representation and reports false for structurally
// equal tuple and object types that were built separately.
type Type struct {
	impl typeImpl
}

// Compile-time check that Type implements model.Model interface.
var _ model.Model = (*Type)(nil)

// typeImpl is implemented by the variant representations below. Tuple and
// object types are held by pointer so that Type stays comparable with ==
// without panicking.
type typeImpl interface {
	kind() Kind
}

type primitiveType struct {
	k Kind
}

type collectionType struct {
	k    Kind
	elem Type
}

type tupleType struct {
	elems []Type
}

type objectType struct {
	fields map[string]Type
}

func (t primitiveType) kind() Kind  { return t.k }
func (t collectionType) kind() Kind { return t.k }
func (t *tupleType) kind() Kind     { return KindTuple }
func (t *objectType) kind() Kind    { return KindObject }

var (
	// String is the type of Unicode text.
	String = Type{primitiveType{KindString}}

	// Bool is the type of boolean flags.
	Bool = Type{primitiveType{KindBool}}

	// Number is the type of numbers. It can be declared, for example as a
	// list element type or an object field type, but there is no
	// representation for known number values.
	Number = Type{primitiveType{KindNumber}}

	// Any is the dynamic type. A value of type Any has no static shape
	// constraint; in practice only null and unknown values carry it.
	Any = Type{primitiveType{KindAny}}
)

// List returns the type of ordered sequences whose elements all have type
// elem.
func List(elem Type) Type {
	return Type{collectionType{k: KindList, elem: elem}}
}

// Map returns the type of string-keyed mappings whose elements all have
// type elem.
func Map(elem Type) Type {
	return Type{collectionType{k: KindMap, elem: elem}}
}

// Set returns the type of sets whose elements all have type elem.
func Set(elem Type) Type {
	return Type{collectionType{k: KindSet, elem: elem}}
}

// Tuple returns the type of fixed-arity sequences whose i-th element has
// type elems[i]. The slice is copied. Tuple() with no arguments is the
// empty tuple type.
func Tuple(elems ...Type) Type {
	return Type{&tupleType{elems: slices.Clone(elems)}}
}

// Object returns the type of records with exactly the given fields. The map
// is copied, so later changes to fields do not affect the returned type.
// A nil or empty map yields the empty object type.
func Object(fields map[string]Type) Type {
	cp := make(map[string]Type, len(fields))
	maps.Copy(cp, fields)
	return Type{&objectType{fields: cp}}
}

// Kind returns the variant of t, or KindInvalid for the zero Type.
func (t Type) Kind() Kind {
	if t.impl == nil {
		return KindInvalid
	}
	return t.impl.kind()
}

// IsPrimitive reports whether t is String, Bool or Number.
func (t Type) IsPrimitive() bool {
	return t.Kind().IsPrimitive()
}

// IsCollection reports whether t is a List, Map or Set type.
func (t Type) IsCollection() bool {
	return t.Kind().IsCollection()
}

// ElementType returns the element type of a List, Map or Set type. For any
// other type it returns the zero Type.
func (t Type) ElementType() Type {
	if ct, ok := t.impl.(collectionType); ok {
		return ct.elem
	}
	return Type{}
}

// TupleElementTypes returns a copy of the positional element types of a
// Tuple type, or nil for any other type.
func (t Type) TupleElementTypes() []Type {
	if tt, ok := t.impl.(*tupleType); ok {
		return slices.Clone(tt.elems)
	}
	return nil
}

// FieldTypes returns a copy of the fields of an Object type, or nil for any
// other type.
func (t Type) FieldTypes() map[string]Type {
	if ot, ok := t.impl.(*objectType); ok {
		return maps.Clone(ot.fields)
	}
	return nil
}

// FieldType returns the type of the named field of an Object type. The
// second result is false when t is not an Object type or has no such field.
func (t Type) FieldType(name string) (Type, bool) {
	if ot, ok := t.impl.(*objectType); ok {
		ft, ok := ot.fields[name]
		return ft, ok
	}
	return Type{}, false
}

// FieldNames returns the field names of an Object type in lexical order, or
// nil for any other type.
func (t Type) FieldNames() []string {
	if ot, ok := t.impl.(*objectType); ok {
		return slices.Sorted(maps.Keys(ot.fields))
	}
	return nil
}

// Equal reports whether t and other describe the same shape.
//
// Equality is structural, recursive and total: two types are equal if and
// only if they have the same kind and, for parameterized kinds, recursively
// equal parameters. Object types are equal when they have the same set of
// field names and pairwise-equal field types; field order plays no role.
// Any is equal only to Any. Two zero Types are equal to each other and to
// nothing else.
func (t Type) Equal(other Type) bool {
	switch a := t.impl.(type) {
	case nil:
		return other.impl == nil
	case primitiveType:
		b, ok := other.impl.(primitiveType)
		return ok && a.k == b.k
	case collectionType:
		b, ok := other.impl.(collectionType)
		return ok && a.k == b.k && a.elem.Equal(b.elem)
	case *tupleType:
		b, ok := other.impl.(*tupleType)
		if !ok || len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !a.elems[i].Equal(b.elems[i]) {
				return false
			}
		}
		return true
	case *objectType:
		b, ok := other.impl.(*objectType)
		if !ok || len(a.fields) != len(b.fields) {
			return false
		}
		for name, at := range a.fields {
			bt, ok := b.fields[name]
			if !ok || !at.Equal(bt) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns the canonical type expression for t, for example
// "list(string)", "tuple([string, bool])" or
// "object({name = string, port = number})". Object fields are listed in
// lexical order; names that are not plain identifiers are quoted. The zero
// Type renders as "invalid".
//
// ParseType accepts every string produced by String and returns an equal
// Type.
func (t Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Type) writeTo(sb *strings.Builder) {
	switch impl := t.impl.(type) {
	case nil:
		sb.WriteString(InvalidStr)
	case primitiveType:
		sb.WriteString(impl.k.String())
	case collectionType:
		sb.WriteString(impl.k.String())
		sb.WriteByte('(')
		impl.elem.writeTo(sb)
		sb.WriteByte(')')
	case *tupleType:
		sb.WriteString("tuple([")
		for i, et := range impl.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			et.writeTo(sb)
		}
		sb.WriteString("])")
	case *objectType:
		sb.WriteString("object({")
		for i, name := range slices.Sorted(maps.Keys(impl.fields)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			if isIdent(name) {
				sb.WriteString(name)
			} else {
				sb.WriteString(strconv.Quote(name))
			}
			sb.WriteString(" = ")
			impl.fields[name].writeTo(sb)
		}
		sb.WriteString("})")
	}
}

// Redacted returns the same string as String. Type descriptors describe
// shapes only and never contain user data.
func (t Type) Redacted() string {
	return t.String()
}

// TypeName returns "Type".
func (t Type) TypeName() string {
	return "Type"
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool {
	return t.impl == nil
}

// Validate checks that t and every type nested in it were built by a
// constructor of this package, and that object field names are non-empty
// valid UTF-8.
//
// All problems in the tree are reported, not just the first one: tuple
// positions are checked with model.ValidateAll and object fields are
// collected with an rxmerr.Collector.
func (t Type) Validate() error {
	switch impl := t.impl.(type) {
	case nil:
		return &errors.ValidationError{Type: "Type", Reason: "zero type"}
	case primitiveType:
		return nil
	case collectionType:
		if err := impl.elem.Validate(); err != nil {
			return &errors.ValidationError{
				Type:   "Type",
				Field:  "ElementType",
				Reason: impl.k.String() + " element type: " + err.Error(),
			}
		}
		return nil
	case *tupleType:
		return model.ValidateAll(impl.elems)
	case *objectType:
		c := rxmerr.NewCollector()
		for _, name := range slices.Sorted(maps.Keys(impl.fields)) {
			if name == "" {
				c.Append(&errors.ValidationError{Type: "Type", Field: "Fields", Reason: "field name must not be empty"})
			} else if !utf8.ValidString(name) {
				c.Append(&errors.ValidationError{
					Type:   "Type",
					Field:  "Fields",
					Reason: "field name " + strconv.Quote(name) + " is not valid UTF-8",
				})
			}
			if err := impl.fields[name].Validate(); err != nil {
				c.Append(&errors.ValidationError{
					Type:   "Type",
					Field:  "Fields",
					Reason: "field " + strconv.Quote(name) + ": " + err.Error(),
				})
			}
		}
		return c.Err()
	default:
		return &errors.ValidationError{Type: "Type", Reason: "unknown representation"}
	}
}

// isIdent reports whether s can be written unquoted as an object field name
// in a type expression.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], i == 0) {
			return false
		}
	}
	return true
}

// isIdentByte reports whether c may appear in an unquoted field name, at the
// first position when first is set.
func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		return true
	case !first && (c == '-' || ('0' <= c && c <= '9')):
		return true
	default:
		return false
	}
}
