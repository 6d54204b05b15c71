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

// Package errors provides the error value types shared by the dxcty model
// packages.
//
// Type descriptors, values and schema documents all fail in a handful of
// recurring ways: a textual type expression cannot be parsed, an invalid
// descriptor is about to be encoded, an encoded descriptor cannot be decoded,
// or a model instance violates one of its invariants. Centralizing these
// types keeps the message format stable across packages and lets callers
// recognize failures with errors.As instead of string matching.
//
// # Error Types
//
//   - ParseError
//     Returned when a textual form (for example a type expression such as
//     "list(string)" or a Kind name) cannot be interpreted.
//
//   - MarshalError
//     Returned when an invalid enum-like value or descriptor would otherwise
//     be emitted into JSON, YAML or text.
//
//   - UnmarshalError
//     Returned when decoding JSON or YAML into a model type fails.
//
//   - ValidationError
//     Returned by Validate methods and capability checks when an instance
//     violates an invariant.
//
// Errors that carry type descriptors (such as the element type mismatch
// raised by collection constructors) live next to the constructors in the
// value package, because this package sits below the type algebra and cannot
// import it.
//
// # Usage
//
//	func ParseKind(s string) (Kind, error) {
//	    switch s {
//	    case "string":
//	        return String, nil
//	    default:
//	        return Invalid, &errors.ParseError{Type: "Kind", Value: s}
//	    }
//	}
package errors

import "strconv"

// ParseError is returned when parsing a string into a typed value fails.
//
// Type identifies the logical type being parsed (for example "Kind" or
// "Type"), and Value contains the exact string that could not be
// interpreted. Reason is optional; when set it narrows down what was wrong
// with the input (for example "unexpected ')' at offset 5").
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Kind").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string

	// Reason optionally describes the failure in more detail.
	Reason string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxcty: invalid {Type} value: {Value}"
//	"dxcty: invalid {Type} value: {Value}: {Reason}" (when Reason is set)
func (e *ParseError) Error() string {
	msg := "dxcty: invalid " + e.Type + " value: " + e.Value
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// MarshalError is returned when marshaling a typed value fails because it is
// outside the set of valid values.
//
// Type identifies the logical type being marshaled and Value contains the
// underlying numeric discriminator that was deemed invalid (for a type
// descriptor, its Kind). In most cases a MarshalError indicates a programming
// error, such as encoding a zero Type that was never constructed.
type MarshalError struct {
	// Type is the logical name of the type being marshaled (for example, "Kind").
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxcty: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxcty: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated, Data contains the raw
// payload and Reason a short human-readable explanation. The Data field is
// not included in the formatted message; callers MAY log it separately.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxcty: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxcty: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for example,
// "Type", "Value", "Schema"), Field optionally identifies which field or
// path failed validation, Reason explains the failure and Value optionally
// carries the offending value.
//
// # Example
//
//	func (s Schema) Validate() error {
//	    if s.Version.IsZero() {
//	        return &errors.ValidationError{
//	            Type:   "Schema",
//	            Field:  "Version",
//	            Reason: "must not be empty",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire instance.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxcty: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxcty: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxcty: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxcty: invalid " + e.Type + ": " + e.Reason
}
