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
	"strconv"

	"dirpx.dev/dxcty/dxcore/model/types"
)

// TypeMismatchError is returned when an element offered to a collection
// constructor does not carry exactly the declared element type.
//
// Context names the slot being filled ("list element", "map entry",
// "tuple element", "object field", or "declaration" for schema checks);
// Index is set for sequences and Key for everything else.
type TypeMismatchError struct {
	// Expected is the declared element type.
	Expected types.Type

	// Actual is the declared type of the rejected element.
	Actual types.Type

	// Context names the kind of slot, for example "list element".
	Context string

	// Key is the map key or object field name of the rejected element.
	Key string

	// Index is the position of the rejected element in a list or tuple.
	Index int
}

// Error implements the error interface for TypeMismatchError.
//
// The error message format is:
//
//	"dxcty: list element 2 has type bool, want string"
//	"dxcty: map entry \"a\" has type bool, want string"
func (e *TypeMismatchError) Error() string {
	return "dxcty: " + e.Context + " " + e.slot() +
		" has type " + e.Actual.String() + ", want " + e.Expected.String()
}

func (e *TypeMismatchError) slot() string {
	switch e.Context {
	case "list element", "tuple element":
		return strconv.Itoa(e.Index)
	default:
		return strconv.Quote(e.Key)
	}
}

// ShapeMismatchError is returned when the elements offered to TupleOf or
// ObjectOf do not have the shape of the declared structural type: wrong
// arity, a different field set, or a declared type that is not a tuple or
// object at all.
type ShapeMismatchError struct {
	// Expected is the declared structural type.
	Expected types.Type

	// Context is "tuple" or "object".
	Context string

	// Reason describes the mismatch.
	Reason string
}

// Error implements the error interface for ShapeMismatchError.
//
// The error message format is:
//
//	"dxcty: tuple does not match tuple([string, bool]): got 1 elements"
func (e *ShapeMismatchError) Error() string {
	return "dxcty: " + e.Context + " does not match " + e.Expected.String() + ": " + e.Reason
}
