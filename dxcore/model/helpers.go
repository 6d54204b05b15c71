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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Checked is the constraint satisfied by every model type that can validate
// itself and name itself in error messages.
type Checked interface {
	Validatable
	Identifiable
}

// ValidateAll validates a slice of models and returns all validation errors
// encountered, rather than stopping at the first one.
//
// When a model fails validation, its error is wrapped with the model's
// position in the slice (zero-indexed) and its type name, so that callers can
// tell exactly which element is broken; for a tuple type this is the
// position of the offending element type. All failures are combined into a
// single error using rxmerr.Collector. If every model is valid, or the slice
// is empty, ValidateAll returns nil.
//
// Example:
//
//	if err := ValidateAll([]types.Type{types.String, types.Type{}}); err != nil {
//	    // err reports: model[1] (Type): dxcty: invalid Type: zero type
//	}
func ValidateAll[T Checked](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// MustValidate validates a model and panics if validation fails.
//
// It is meant for package-level declarations and tests, where an invalid
// model is a programming error:
//
//	var configType = model.MustValidate(types.MustParseType("map(string)"))
func MustValidate[T Checked](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns the Redacted representation of m, or its full String
// representation when unsafe is true. It gives logging call sites a single,
// explicit switch between the two.
//
//	log.Info("checking", "value", SafeString(v, false)) // strings masked
func SafeString[T Loggable](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and then encodes it with json.Marshal. Invalid models
// are never encoded; the validation error is returned wrapped with the
// model's type name.
func ToJSON[T Checked](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and then encodes it with yaml.Marshal. Invalid models
// are never encoded.
func ToYAML[T Checked](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes data into a new T and validates the result.
//
// The second type parameter ties T to its pointer type, whose UnmarshalJSON
// method does the decoding, so value types with pointer-receiver decoders
// can be used directly:
//
//	t, err := model.FromJSON[types.Type]([]byte(`["list", "string"]`))
//
// Empty input decodes to the zero T, which then fails validation.
func FromJSON[T Checked, PT interface {
	*T
	json.Unmarshaler
}](data []byte) (T, error) {
	var m T
	if len(data) > 0 {
		if err := json.Unmarshal(data, PT(&m)); err != nil {
			var zero T
			return zero, fmt.Errorf("cannot unmarshal JSON: %w", err)
		}
	}
	if err := m.Validate(); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshaled %s is invalid: %w", m.TypeName(), err)
	}
	return m, nil
}

// FromYAML decodes data into a new T and validates the result. It is the
// YAML counterpart of FromJSON; since JSON is a subset of YAML, documents
// written in either syntax are accepted.
func FromYAML[T Checked, PT interface {
	*T
	yaml.Unmarshaler
}](data []byte) (T, error) {
	var m T
	if err := yaml.Unmarshal(data, PT(&m)); err != nil {
		var zero T
		return zero, fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshaled %s is invalid: %w", m.TypeName(), err)
	}
	return m, nil
}
