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
	"fmt"

	"dirpx.dev/dxcty/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Type descriptors have a structured encoding shared by JSON and YAML:
//
//	"string", "bool", "number", "any"     primitives and the dynamic type
//	["list", T], ["map", T], ["set", T]   collections
//	["tuple", [T1, T2, ...]]              tuples
//	["object", {"name": T, ...}]          objects
//
// Decoders additionally accept any type expression in string form, so
// "list(string)" and ["list", "string"] decode to the same Type.

// encodable converts t into plain Go values (strings, slices and maps) that
// encoding/json and yaml.v3 render in the structured form. The caller MUST
// have validated t.
func (t Type) encodable() any {
	switch impl := t.impl.(type) {
	case primitiveType:
		return impl.k.String()
	case collectionType:
		return []any{impl.k.String(), impl.elem.encodable()}
	case *tupleType:
		elems := make([]any, len(impl.elems))
		for i, et := range impl.elems {
			elems[i] = et.encodable()
		}
		return []any{TupleStr, elems}
	case *objectType:
		fields := make(map[string]any, len(impl.fields))
		for name, ft := range impl.fields {
			fields[name] = ft.encodable()
		}
		return []any{ObjectStr, fields}
	default:
		return nil
	}
}

func (t Type) checkMarshal() error {
	if err := t.Validate(); err != nil {
		return &errors.MarshalError{Type: "Type", Value: int(t.Kind())}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Type.
//
// Invalid types (the zero Type, or a type with a zero Type nested inside)
// produce a *errors.MarshalError carrying the outer kind.
func (t Type) MarshalJSON() ([]byte, error) {
	if err := t.checkMarshal(); err != nil {
		return nil, err
	}
	return json.Marshal(t.encodable())
}

// UnmarshalJSON implements json.Unmarshaler for Type.
func (t *Type) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Type", Data: data, Reason: "empty data"}
	}

	var decoded Type
	switch data[0] {
	case '"':
		var expr string
		if err := json.Unmarshal(data, &expr); err != nil {
			return &errors.UnmarshalError{Type: "Type", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseType(expr)
		if err != nil {
			return err
		}
		decoded = parsed
	case '[':
		var pair []json.RawMessage
		if err := json.Unmarshal(data, &pair); err != nil {
			return &errors.UnmarshalError{Type: "Type", Data: data, Reason: err.Error()}
		}
		if len(pair) != 2 {
			return &errors.UnmarshalError{Type: "Type", Data: data, Reason: fmt.Sprintf("expected [kind, parameter], got %d items", len(pair))}
		}
		var k Kind
		if err := json.Unmarshal(pair[0], &k); err != nil {
			return &errors.UnmarshalError{Type: "Type", Data: data, Reason: err.Error()}
		}
		var err error
		decoded, err = build(k, func(dst any) error { return json.Unmarshal(pair[1], dst) })
		if err != nil {
			return &errors.UnmarshalError{Type: "Type", Data: data, Reason: err.Error()}
		}
	default:
		return &errors.UnmarshalError{Type: "Type", Data: data, Reason: "expected string or array"}
	}

	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("unmarshaled Type is invalid: %w", err)
	}
	*t = decoded
	return nil
}

// build constructs a parameterized type of kind k, decoding its parameter
// with decode. It is shared by the JSON and YAML decoders.
func build(k Kind, decode func(dst any) error) (Type, error) {
	switch k {
	case KindList, KindMap, KindSet:
		var elem Type
		if err := decode(&elem); err != nil {
			return Type{}, err
		}
		switch k {
		case KindList:
			return List(elem), nil
		case KindMap:
			return Map(elem), nil
		default:
			return Set(elem), nil
		}
	case KindTuple:
		var elems []Type
		if err := decode(&elems); err != nil {
			return Type{}, err
		}
		return Tuple(elems...), nil
	case KindObject:
		var fields map[string]Type
		if err := decode(&fields); err != nil {
			return Type{}, err
		}
		return Object(fields), nil
	default:
		return Type{}, fmt.Errorf("kind %s takes no parameter", k)
	}
}

// MarshalYAML implements yaml.Marshaler for Type. The YAML form mirrors the
// JSON form; collections are written as two-item flow sequences.
func (t Type) MarshalYAML() (any, error) {
	if err := t.checkMarshal(); err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := node.Encode(t.encodable()); err != nil {
		return nil, err
	}
	setFlow(&node)
	return &node, nil
}

func setFlow(n *yaml.Node) {
	if n.Kind == yaml.SequenceNode || n.Kind == yaml.MappingNode {
		n.Style = yaml.FlowStyle
	}
	for _, c := range n.Content {
		setFlow(c)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Type. Scalars are parsed as
// type expressions; sequences use the structured [kind, parameter] form.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return t.UnmarshalYAML(node.Alias)
	}

	var decoded Type
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseType(node.Value)
		if err != nil {
			return err
		}
		decoded = parsed
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return &errors.UnmarshalError{
				Type:   "Type",
				Data:   []byte(node.Value),
				Reason: fmt.Sprintf("line %d: expected [kind, parameter], got %d items", node.Line, len(node.Content)),
			}
		}
		var k Kind
		if err := node.Content[0].Decode(&k); err != nil {
			return &errors.UnmarshalError{Type: "Type", Data: []byte(node.Content[0].Value), Reason: err.Error()}
		}
		var err error
		decoded, err = build(k, node.Content[1].Decode)
		if err != nil {
			return &errors.UnmarshalError{Type: "Type", Reason: fmt.Sprintf("line %d: %v", node.Line, err)}
		}
	default:
		return &errors.UnmarshalError{Type: "Type", Reason: fmt.Sprintf("line %d: expected scalar or sequence", node.Line)}
	}

	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("unmarshaled Type is invalid: %w", err)
	}
	*t = decoded
	return nil
}

// MarshalText implements encoding.TextMarshaler for Type using the type
// expression produced by String.
func (t Type) MarshalText() ([]byte, error) {
	if err := t.checkMarshal(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Type using
// ParseType.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
