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

// Package schema loads and checks versioned sets of named dxcty types.
//
// A schema document declares the types a configuration is expected to
// have:
//
//	version: 1.0.0
//	types:
//	  region: string
//	  zones: list(string)
//	  limits: [object, {cpu: string, burst: bool}]
//
// Each type is written either as a type expression or in the structured
// form used by the types package JSON and YAML codecs. JSON documents with
// the same shape are accepted too.
package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"dirpx.dev/dxcty/dxcore/errors"
	"dirpx.dev/dxcty/dxcore/model"
	"dirpx.dev/dxcty/dxcore/model/semver"
	"dirpx.dev/dxcty/dxcore/model/types"
	"dirpx.dev/dxcty/dxcore/model/value"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Supported is the range of document format versions this package reads.
var Supported = semver.MustParseRange(">=1.0.0 <2.0.0")

// Schema is a versioned set of named types.
type Schema struct {
	// Version is the document format version.
	Version semver.Version

	// Types maps declared names to their types.
	Types map[string]types.Type
}

var _ model.Model = (*Schema)(nil)

// document is the on-disk shape of a Schema.
type document struct {
	Version semver.Version        `json:"version" yaml:"version"`
	Types   map[string]types.Type `json:"types" yaml:"types"`
}

// Load decodes and validates a schema document. YAML and JSON syntax are
// both accepted.
func Load(data []byte) (Schema, error) {
	return model.FromYAML[Schema](data)
}

// LoadJSON decodes and validates a JSON schema document.
func LoadJSON(data []byte) (Schema, error) {
	return model.FromJSON[Schema](data)
}

// Marshal validates s and encodes it as a YAML document.
func (s Schema) Marshal() ([]byte, error) {
	return model.ToYAML(s)
}

// Lookup returns the type declared under name.
func (s Schema) Lookup(name string) (types.Type, bool) {
	t, ok := s.Types[name]
	return t, ok
}

// Names returns the declared names in lexical order.
func (s Schema) Names() []string {
	return slices.Sorted(maps.Keys(s.Types))
}

// Check reports whether v may be bound to name. The declared type of v must
// be exactly the declared type of name; no conversion is attempted. It
// returns a *value.TypeMismatchError when the types differ and a
// *errors.ValidationError when name is not declared.
func (s Schema) Check(name string, v value.Value) error {
	want, ok := s.Types[name]
	if !ok {
		return &errors.ValidationError{
			Type:   "Schema",
			Field:  "Types",
			Reason: fmt.Sprintf("%q is not declared", name),
		}
	}
	if !v.Type().Equal(want) {
		return &value.TypeMismatchError{
			Expected: want,
			Actual:   v.Type(),
			Context:  "declaration",
			Key:      name,
		}
	}
	return nil
}

// Validate checks that s has a supported format version and that every
// declaration has a non-empty name and a valid type. All problems are
// reported together.
func (s Schema) Validate() error {
	c := rxmerr.NewCollector()

	if err := s.Version.Validate(); err != nil {
		c.Append(err)
	} else if !Supported.Contains(s.Version) {
		c.Append(&errors.ValidationError{
			Type:   "Schema",
			Field:  "Version",
			Reason: fmt.Sprintf("unsupported format version %s (want %s)", s.Version, Supported),
			Value:  s.Version.String(),
		})
	}

	for _, name := range s.Names() {
		if name == "" {
			c.Append(&errors.ValidationError{Type: "Schema", Field: "Types", Reason: "type name must not be empty"})
			continue
		}
		if err := s.Types[name].Validate(); err != nil {
			c.Append(fmt.Errorf("type %q: %w", name, err))
		}
	}

	return c.Err()
}

// TypeName returns "Schema".
func (s Schema) TypeName() string {
	return "Schema"
}

// IsZero reports whether s has neither a version nor declarations.
func (s Schema) IsZero() bool {
	return s.Version.IsZero() && len(s.Types) == 0
}

// String returns a one-line summary listing every declaration in name
// order, for example:
//
//	Schema{Version:1.0.0, Types:{"region" = string, "zones" = list(string)}}
func (s Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema{Version:")
	sb.WriteString(s.Version.String())
	sb.WriteString(", Types:{")
	for i, name := range s.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(name))
		sb.WriteString(" = ")
		sb.WriteString(s.Types[name].String())
	}
	sb.WriteString("}}")
	return sb.String()
}

// Redacted returns the same text as String. Types carry no payloads.
func (s Schema) Redacted() string {
	return s.String()
}

func (s Schema) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(document(s))
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &errors.UnmarshalError{Type: "Schema", Data: data, Reason: err.Error()}
	}
	*s = Schema(doc)
	return nil
}

func (s Schema) MarshalYAML() (any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return document(s), nil
}

func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	var doc document
	if err := node.Decode(&doc); err != nil {
		return &errors.UnmarshalError{Type: "Schema", Reason: err.Error()}
	}
	*s = Schema(doc)
	return nil
}
