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
	stderrors "errors"
	"strings"
	"testing"

	"dirpx.dev/dxcty/dxcore/errors"
	"github.com/google/go-cmp/cmp"
)

func TestType_Kind(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want Kind
	}{
		{"zero", Type{}, KindInvalid},
		{"String", String, KindString},
		{"Bool", Bool, KindBool},
		{"Number", Number, KindNumber},
		{"Any", Any, KindAny},
		{"List", List(String), KindList},
		{"Map", Map(Bool), KindMap},
		{"Set", Set(Number), KindSet},
		{"Tuple", Tuple(String, Bool), KindTuple},
		{"Object", Object(map[string]Type{"a": String}), KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Kind(); got != tt.want {
				t.Errorf("Type.Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestType_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same primitive", String, String, true},
		{"different primitives", String, Bool, false},
		{"list of same element", List(String), List(String), true},
		{"list of different element", List(String), List(Bool), false},
		{"list vs set", List(String), Set(String), false},
		{"list vs map", List(String), Map(String), false},
		{"nested collections", Map(List(Set(Bool))), Map(List(Set(Bool))), true},
		{"nested difference", Map(List(Set(Bool))), Map(List(Set(String))), false},
		{"any equals any", Any, Any, true},
		{"any is not string", Any, String, false},
		{"string is not any", String, Any, false},
		{"list(any) is not list(string)", List(Any), List(String), false},
		{"tuple same", Tuple(String, Bool), Tuple(String, Bool), true},
		{"tuple order matters", Tuple(String, Bool), Tuple(Bool, String), false},
		{"tuple arity", Tuple(String), Tuple(String, String), false},
		{"empty tuples", Tuple(), Tuple(), true},
		{
			"object same fields",
			Object(map[string]Type{"a": String, "b": List(Bool)}),
			Object(map[string]Type{"b": List(Bool), "a": String}),
			true,
		},
		{
			"object different field type",
			Object(map[string]Type{"a": String}),
			Object(map[string]Type{"a": Bool}),
			false,
		},
		{
			"object different field names",
			Object(map[string]Type{"a": String}),
			Object(map[string]Type{"b": String}),
			false,
		},
		{
			"object extra field",
			Object(map[string]Type{"a": String}),
			Object(map[string]Type{"a": String, "b": String}),
			false,
		},
		{"empty objects", Object(nil), Object(map[string]Type{}), true},
		{"object vs tuple", Object(nil), Tuple(), false},
		{"zero vs zero", Type{}, Type{}, true},
		{"zero vs string", Type{}, String, false},
		{"string vs zero", String, Type{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestType_EqualIgnoresFieldInsertionOrder(t *testing.T) {
	a := map[string]Type{}
	a["first"] = String
	a["second"] = Bool
	b := map[string]Type{}
	b["second"] = Bool
	b["first"] = String

	if !Object(a).Equal(Object(b)) {
		t.Error("Object types with the same fields in different insertion order are not equal")
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"zero", Type{}, "invalid"},
		{"string", String, "string"},
		{"any", Any, "any"},
		{"list", List(String), "list(string)"},
		{"map of set", Map(Set(Number)), "map(set(number))"},
		{"tuple", Tuple(String, List(Bool)), "tuple([string, list(bool)])"},
		{"empty tuple", Tuple(), "tuple([])"},
		{
			"object sorted",
			Object(map[string]Type{"port": Number, "host": String}),
			"object({host = string, port = number})",
		},
		{
			"object quoted names",
			Object(map[string]Type{"with space": Bool, "1st": String}),
			`object({"1st" = string, "with space" = bool})`,
		},
		{"empty object", Object(nil), "object({})"},
		{"nested zero", List(Type{}), "list(invalid)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("Type.String() = %q, want %q", got, tt.want)
			}
			if got := tt.typ.Redacted(); got != tt.want {
				t.Errorf("Type.Redacted() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestType_Accessors(t *testing.T) {
	obj := Object(map[string]Type{"b": Bool, "a": String})
	tup := Tuple(String, Number)

	if got := List(Bool).ElementType(); !got.Equal(Bool) {
		t.Errorf("List(Bool).ElementType() = %v, want bool", got)
	}
	if got := String.ElementType(); !got.IsZero() {
		t.Errorf("String.ElementType() = %v, want zero Type", got)
	}
	if diff := cmp.Diff([]Type{String, Number}, tup.TupleElementTypes()); diff != "" {
		t.Errorf("TupleElementTypes() mismatch (-want +got):\n%s", diff)
	}
	if got := obj.TupleElementTypes(); got != nil {
		t.Errorf("Object.TupleElementTypes() = %v, want nil", got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, obj.FieldNames()); diff != "" {
		t.Errorf("FieldNames() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]Type{"a": String, "b": Bool}, obj.FieldTypes()); diff != "" {
		t.Errorf("FieldTypes() mismatch (-want +got):\n%s", diff)
	}
	if ft, ok := obj.FieldType("a"); !ok || !ft.Equal(String) {
		t.Errorf("FieldType(a) = %v, %v, want string, true", ft, ok)
	}
	if _, ok := obj.FieldType("missing"); ok {
		t.Error("FieldType(missing) reported ok")
	}
	if _, ok := tup.FieldType("a"); ok {
		t.Error("Tuple.FieldType(a) reported ok")
	}
	if !String.IsPrimitive() || List(String).IsPrimitive() {
		t.Error("IsPrimitive() misclassifies types")
	}
	if !Set(String).IsCollection() || tup.IsCollection() {
		t.Error("IsCollection() misclassifies types")
	}
}

func TestType_ConstructorsCopyInputs(t *testing.T) {
	elems := []Type{String, Bool}
	tup := Tuple(elems...)
	elems[0] = Number

	fields := map[string]Type{"a": String}
	obj := Object(fields)
	fields["a"] = Number
	fields["b"] = Bool

	if !tup.Equal(Tuple(String, Bool)) {
		t.Errorf("Tuple changed after caller mutated its slice: %v", tup)
	}
	if !obj.Equal(Object(map[string]Type{"a": String})) {
		t.Errorf("Object changed after caller mutated its map: %v", obj)
	}

	got := obj.FieldTypes()
	got["c"] = Any
	if _, ok := obj.FieldType("c"); ok {
		t.Error("mutating FieldTypes() result changed the Object type")
	}
}

func TestType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		wantErr bool
	}{
		{"string", String, false},
		{"nested", Map(List(Tuple(String, Object(map[string]Type{"x": Any})))), false},
		{"zero", Type{}, true},
		{"list of zero", List(Type{}), true},
		{"tuple with zero", Tuple(String, Type{}), true},
		{"object with zero field", Object(map[string]Type{"a": Type{}}), true},
		{"object with empty name", Object(map[string]Type{"": String}), true},
		{"object with non-UTF-8 name", Object(map[string]Type{"\xff": List(String)}), true},
		{"object with unicode name", Object(map[string]Type{"ünïcode": String}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Type.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestType_ValidateReportsEveryField(t *testing.T) {
	typ := Object(map[string]Type{"": String, "a": Type{}, "b": List(Type{})})

	err := typ.Validate()
	if err == nil {
		t.Fatal("Validate() returned nil for an object with three broken fields")
	}
	for _, want := range []string{`field "a"`, `field "b"`, "field name must not be empty"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestType_ModelContract(t *testing.T) {
	if got := String.TypeName(); got != "Type" {
		t.Errorf("TypeName() = %q, want %q", got, "Type")
	}
	if !(Type{}).IsZero() {
		t.Error("zero Type IsZero() = false")
	}
	if String.IsZero() || Tuple().IsZero() {
		t.Error("constructed Type IsZero() = true")
	}
}

func TestType_ValidateZero(t *testing.T) {
	err := Type{}.Validate()
	var ve *errors.ValidationError
	if !stderrors.As(err, &ve) {
		t.Fatalf("Validate() error = %v, want *errors.ValidationError", err)
	}
	if ve.Type != "Type" {
		t.Errorf("ValidationError.Type = %q, want %q", ve.Type, "Type")
	}
}
