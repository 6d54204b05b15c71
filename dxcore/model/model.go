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

// Package model defines the contracts shared by the dxcty model types and a
// small set of generic helpers built on those contracts.
//
// Type descriptors (types.Type), format versions (semver.Version) and schema
// documents (schema.Schema) implement the full Model interface: they validate
// themselves, round-trip through JSON and YAML, render safely for logs,
// report a canonical type name and detect their zero value. Runtime values (value.Value) implement every
// contract except Serializable, because encoding values is outside the scope
// of this module; a Value only describes data, it never persists it.
//
// All model types in dxcty are immutable value types. Methods never mutate
// the receiver once construction has completed, so instances are safe for
// concurrent reads without synchronization. The only mutating methods are
// the Unmarshal* methods, which populate a receiver that the caller owns
// exclusively during decoding.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all contracts required for
// serializable dxcty types.
//
// Implementations MUST satisfy every embedded interface: Validatable checks
// invariants, Serializable provides JSON and YAML encoding, Loggable offers
// safe and full string representations, Identifiable supplies a canonical
// type name, and ZeroCheckable detects uninitialized instances.
//
// Because the Unmarshal methods need pointer receivers, it is the pointer
// type that implements Model:
//
//	var _ Model = (*Type)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST return nil if and only if every invariant holds. When
// validation fails the returned error MUST say what is wrong, preferably as
// a *errors.ValidationError naming the type and the offending field, so that
// callers can point users at the exact part of a type expression or schema
// document that needs fixing.
//
// Validate MUST be fast, deterministic and free of side effects. It MUST NOT
// mutate the receiver. Zero-value instances of dxcty types are never valid:
// a zero Type has no kind, a zero Value has no type, and a zero Schema has
// no format version.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants and is
	// ready for use.
	Validate() error
}

// Serializable defines the contract for types that can be encoded to and
// decoded from JSON and YAML.
//
// Marshal methods MUST refuse to encode invalid instances (returning a
// *errors.MarshalError or the validation error) so that broken descriptors
// never leak into documents. Unmarshal methods MUST validate the decoded
// result and report malformed input as *errors.UnmarshalError.
//
// A value encoded with either format and decoded again MUST be equal to the
// original.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide string
// representations for logging and debugging.
//
// Redacted returns a representation suitable for production logs. Values
// built from configuration input may contain secrets, so Redacted MUST hide
// string payloads while preserving enough structure (types, lengths, keys)
// to correlate log entries. String returns the full representation and MAY
// include sensitive data; it is meant for tests and local debugging.
type Loggable interface {
	// Redacted returns a safe string representation suitable for logging in
	// production.
	Redacted() string

	// String returns a complete, human-readable representation of the
	// instance. It MAY include sensitive data.
	String() string
}

// Identifiable defines the contract for types that identify themselves by a
// canonical type name.
//
// TypeName MUST return a constant CamelCase name without a package prefix
// (for example "Type", "Value", "Schema"). Error values use it to say which
// kind of instance failed validation.
type Identifiable interface {
	// TypeName returns the canonical name of this model type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are in a zero or empty state.
//
// IsZero MUST return true if and only if the instance was never constructed
// (it holds its Go zero value). It MUST be fast and MUST NOT allocate.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for
// equality.
//
// For type descriptors Equal is a structural equivalence relation: it is
// reflexive, symmetric and transitive. Runtime values deliberately deviate
// from reflexivity: a value whose content is unknown is never equal to
// anything, including itself. Implementations that deviate MUST document it
// on their Equal method.
//
// Equal MUST NOT mutate either operand and MUST be total: comparing
// instances of different shapes returns false, it never panics.
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to other.
	Equal(other T) bool
}
