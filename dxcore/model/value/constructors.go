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

package value

import (
	"fmt"
	"maps"
	"slices"

	"dirpx.dev/dxcty/dxcore/errors"
	"dirpx.dev/dxcty/dxcore/model/types"
	"github.com/xiaq/persistent/vector"
	"golang.org/x/text/unicode/norm"
)

// Null returns the null value of ty. It never fails, for any ty.
func Null(ty types.Type) Value {
	return Value{ty: ty, v: nullPayload{}}
}

// Unknown returns a value of ty whose content is not determined yet. It
// never fails, for any ty.
func Unknown(ty types.Type) Value {
	return Value{ty: ty, v: unknownPayload{}}
}

// Dynamic returns an unknown value of type Any.
func Dynamic() Value {
	return Unknown(types.Any)
}

// String returns a known string value. The text is stored in Unicode
// Normalization Form C, so canonically equivalent inputs produce equal
// values.
func String(text string) Value {
	return Value{ty: types.String, v: stringPayload(norm.NFC.String(text))}
}

// Bool returns a known bool value.
func Bool(flag bool) Value {
	return Value{ty: types.Bool, v: boolPayload(flag)}
}

// List returns a list value of elemType holding elems in order.
//
// Every element must carry exactly elemType; no coercion is applied and Any
// is not a wildcard. The first element that does not match produces a
// *TypeMismatchError and the zero Value. An empty elems builds an empty list
// of any valid elemType.
func List(elemType types.Type, elems []Value) (Value, error) {
	if err := elemType.Validate(); err != nil {
		return Value{}, err
	}
	vec := vector.Empty
	for i, e := range elems {
		if !e.ty.Equal(elemType) || e.v == nil {
			return Value{}, &TypeMismatchError{
				Expected: elemType,
				Actual:   e.ty,
				Context:  "list element",
				Index:    i,
			}
		}
		vec = vec.Cons(e.v)
	}
	return Value{ty: types.List(elemType), v: sequencePayload{vec}}, nil
}

// MustList is like List but panics if the elements do not match.
func MustList(elemType types.Type, elems []Value) Value {
	v, err := List(elemType, elems)
	if err != nil {
		panic(err)
	}
	return v
}

// Map returns a map value of elemType holding entries.
//
// Every entry must carry exactly elemType. Entries are checked in key order,
// so the reported mismatch is deterministic when several entries are wrong.
func Map(elemType types.Type, entries map[string]Value) (Value, error) {
	if err := elemType.Validate(); err != nil {
		return Value{}, err
	}
	m := emptyMapping
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		e := entries[k]
		if !e.ty.Equal(elemType) || e.v == nil {
			return Value{}, &TypeMismatchError{
				Expected: elemType,
				Actual:   e.ty,
				Context:  "map entry",
				Key:      k,
			}
		}
		m = m.Assoc(k, e.v)
	}
	return Value{ty: types.Map(elemType), v: mappingPayload{m}}, nil
}

// MustMap is like Map but panics if the entries do not match.
func MustMap(elemType types.Type, entries map[string]Value) Value {
	v, err := Map(elemType, entries)
	if err != nil {
		panic(err)
	}
	return v
}

// Entry is a single key/value pair for MapFromPairs.
type Entry struct {
	Key   string
	Value Value
}

// MapFromPairs is like Map but takes an ordered list of pairs. When a key
// occurs more than once the last pair wins; every pair is still checked,
// including the ones that are overwritten.
func MapFromPairs(elemType types.Type, pairs []Entry) (Value, error) {
	if err := elemType.Validate(); err != nil {
		return Value{}, err
	}
	m := emptyMapping
	for _, p := range pairs {
		if !p.Value.ty.Equal(elemType) || p.Value.v == nil {
			return Value{}, &TypeMismatchError{
				Expected: elemType,
				Actual:   p.Value.ty,
				Context:  "map entry",
				Key:      p.Key,
			}
		}
		m = m.Assoc(p.Key, p.Value.v)
	}
	return Value{ty: types.Map(elemType), v: mappingPayload{m}}, nil
}

// Tuple returns a tuple value whose type is built from the declared types of
// elems. It fails only when one of elems is the zero Value.
func Tuple(elems ...Value) (Value, error) {
	tys := make([]types.Type, len(elems))
	for i, e := range elems {
		if e.v == nil {
			return Value{}, zeroElement("tuple", i)
		}
		tys[i] = e.ty
	}
	return TupleOf(types.Tuple(tys...), elems)
}

// TupleOf returns a tuple value of the declared tuple type ty. The number of
// elems must match the arity of ty and every element must carry exactly the
// type declared for its position.
func TupleOf(ty types.Type, elems []Value) (Value, error) {
	if ty.Kind() != types.KindTuple {
		return Value{}, &ShapeMismatchError{Expected: ty, Context: "tuple", Reason: "not a tuple type"}
	}
	if err := ty.Validate(); err != nil {
		return Value{}, err
	}
	want := ty.TupleElementTypes()
	if len(elems) != len(want) {
		return Value{}, &ShapeMismatchError{
			Expected: ty,
			Context:  "tuple",
			Reason:   fmt.Sprintf("got %d elements", len(elems)),
		}
	}
	vec := vector.Empty
	for i, e := range elems {
		if !e.ty.Equal(want[i]) || e.v == nil {
			return Value{}, &TypeMismatchError{
				Expected: want[i],
				Actual:   e.ty,
				Context:  "tuple element",
				Index:    i,
			}
		}
		vec = vec.Cons(e.v)
	}
	return Value{ty: ty, v: sequencePayload{vec}}, nil
}

// Object returns an object value whose type is built from the declared types
// of fields. It fails when a field name is empty or a field is the zero
// Value.
func Object(fields map[string]Value) (Value, error) {
	tys := make(map[string]types.Type, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		if fields[name].v == nil {
			return Value{}, &errors.ValidationError{
				Type:   "Value",
				Field:  name,
				Reason: "object field is the zero Value",
			}
		}
		tys[name] = fields[name].ty
	}
	return ObjectOf(types.Object(tys), fields)
}

// ObjectOf returns an object value of the declared object type ty. fields
// must have exactly the field names of ty and every field must carry
// exactly its declared type.
func ObjectOf(ty types.Type, fields map[string]Value) (Value, error) {
	if ty.Kind() != types.KindObject {
		return Value{}, &ShapeMismatchError{Expected: ty, Context: "object", Reason: "not an object type"}
	}
	if err := ty.Validate(); err != nil {
		return Value{}, err
	}
	for _, name := range ty.FieldNames() {
		if _, ok := fields[name]; !ok {
			return Value{}, &ShapeMismatchError{
				Expected: ty,
				Context:  "object",
				Reason:   fmt.Sprintf("missing field %q", name),
			}
		}
	}
	m := emptyMapping
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		want, ok := ty.FieldType(name)
		if !ok {
			return Value{}, &ShapeMismatchError{
				Expected: ty,
				Context:  "object",
				Reason:   fmt.Sprintf("unexpected field %q", name),
			}
		}
		f := fields[name]
		if !f.ty.Equal(want) || f.v == nil {
			return Value{}, &TypeMismatchError{
				Expected: want,
				Actual:   f.ty,
				Context:  "object field",
				Key:      name,
			}
		}
		m = m.Assoc(name, f.v)
	}
	return Value{ty: ty, v: mappingPayload{m}}, nil
}

// Constructible reports whether known values of ty can be built. Number and
// Set have no known payload representation; Constructible returns a
// *errors.ValidationError when either occurs anywhere in ty. Null and
// Unknown values of such types are always available.
func Constructible(ty types.Type) error {
	if err := ty.Validate(); err != nil {
		return err
	}
	if k := unsupported(ty); k != types.KindInvalid {
		return &errors.ValidationError{
			Type:   "Value",
			Reason: fmt.Sprintf("known %s values are not supported in %s", k, ty),
		}
	}
	return nil
}

func unsupported(ty types.Type) types.Kind {
	switch ty.Kind() {
	case types.KindNumber, types.KindSet:
		return ty.Kind()
	case types.KindList, types.KindMap:
		return unsupported(ty.ElementType())
	case types.KindTuple:
		for _, et := range ty.TupleElementTypes() {
			if k := unsupported(et); k != types.KindInvalid {
				return k
			}
		}
	case types.KindObject:
		for _, name := range ty.FieldNames() {
			ft, _ := ty.FieldType(name)
			if k := unsupported(ft); k != types.KindInvalid {
				return k
			}
		}
	}
	return types.KindInvalid
}

func zeroElement(context string, i int) error {
	return &errors.ValidationError{
		Type:   "Value",
		Reason: fmt.Sprintf("%s element %d is the zero Value", context, i),
	}
}
