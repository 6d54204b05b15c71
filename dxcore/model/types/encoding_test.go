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
	stderrors "errors"
	"testing"

	"dirpx.dev/dxcty/dxcore/errors"
	"gopkg.in/yaml.v3"
)

func TestType_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"string", String, `"string"`},
		{"any", Any, `"any"`},
		{"list", List(String), `["list","string"]`},
		{"map of set", Map(Set(Bool)), `["map",["set","bool"]]`},
		{"tuple", Tuple(String, Number), `["tuple",["string","number"]]`},
		{"empty tuple", Tuple(), `["tuple",[]]`},
		{
			"object keys sorted",
			Object(map[string]Type{"b": Bool, "a": List(String)}),
			`["object",{"a":["list","string"],"b":"bool"}]`,
		},
		{"empty object", Object(nil), `["object",{}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.typ)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestType_MarshalJSON_Invalid(t *testing.T) {
	for _, typ := range []Type{{}, List(Type{}), Object(map[string]Type{"": String}), Object(map[string]Type{"\xff": List(String)})} {
		_, err := json.Marshal(typ)
		var me *errors.MarshalError
		if !stderrors.As(err, &me) {
			t.Errorf("json.Marshal(%v) error = %v, want *errors.MarshalError", typ, err)
		}
	}
}

func TestType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{"primitive", `"bool"`, Bool, false},
		{"expression string", `"list(map(string))"`, List(Map(String)), false},
		{"structured list", `["list","string"]`, List(String), false},
		{"mixed forms", `["map","list(bool)"]`, Map(List(Bool)), false},
		{"numeric kind", `[4,"string"]`, List(String), false},
		{"tuple", `["tuple",["string",["set","number"]]]`, Tuple(String, Set(Number)), false},
		{"object", `["object",{"a":"string","b":["list","any"]}]`, Object(map[string]Type{"a": String, "b": List(Any)}), false},

		{"empty", ``, Type{}, true},
		{"number", `42`, Type{}, true},
		{"object literal", `{"kind":"list"}`, Type{}, true},
		{"bad expression", `"list("`, Type{}, true},
		{"wrong arity", `["list"]`, Type{}, true},
		{"too many items", `["list","string","bool"]`, Type{}, true},
		{"primitive with parameter", `["string","bool"]`, Type{}, true},
		{"unknown kind", `["vector","string"]`, Type{}, true},
		{"tuple parameter not array", `["tuple","string"]`, Type{}, true},
		{"object with empty field name", `["object",{"":"string"}]`, Type{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Type
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("json.Unmarshal(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestType_YAML(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"string", String, "string\n"},
		{"list", List(String), "[list, string]\n"},
		{"tuple", Tuple(Bool, Map(Number)), "[tuple, [bool, [map, number]]]\n"},
		{"object", Object(map[string]Type{"b": Any, "a": String}), "[object, {a: string, b: any}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := yaml.Marshal(tt.typ)
			if err != nil {
				t.Fatalf("yaml.Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("yaml.Marshal() = %q, want %q", data, tt.want)
			}

			var got Type
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("yaml.Unmarshal(%q) error = %v", data, err)
			}
			if !got.Equal(tt.typ) {
				t.Errorf("yaml round trip = %v, want %v", got, tt.typ)
			}
		})
	}
}

func TestType_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{"expression", "map(list(string))", Map(List(String)), false},
		{"block sequence", "- list\n- bool\n", List(Bool), false},
		{"object block", "- object\n- name: string\n  ports: list(number)\n", Object(map[string]Type{"name": String, "ports": List(Number)}), false},
		{"anchor and alias", "a: &t [set, string]\nb: *t\n", Type{}, false},

		{"mapping", "kind: list\n", Type{}, true},
		{"single item", "[list]", Type{}, true},
		{"bad expression", "list(", Type{}, true},
		{"primitive with parameter", "[bool, string]", Type{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "anchor and alias" {
				var doc map[string]Type
				if err := yaml.Unmarshal([]byte(tt.input), &doc); err != nil {
					t.Fatalf("yaml.Unmarshal() error = %v", err)
				}
				if !doc["b"].Equal(Set(String)) || !doc["a"].Equal(doc["b"]) {
					t.Errorf("alias decoded to %v and %v, want set(string)", doc["a"], doc["b"])
				}
				return
			}

			var got Type
			err := yaml.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("yaml.Unmarshal(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("yaml.Unmarshal(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestType_Text(t *testing.T) {
	typ := Object(map[string]Type{"a": List(Bool)})

	text, err := typ.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "object({a = list(bool)})" {
		t.Errorf("MarshalText() = %q", text)
	}

	var got Type
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if !got.Equal(typ) {
		t.Errorf("UnmarshalText() = %v, want %v", got, typ)
	}

	if _, err := (Type{}).MarshalText(); err == nil {
		t.Error("MarshalText() of zero Type returned nil error")
	}
}

func TestType_UnmarshalTextRejectsInvalid(t *testing.T) {
	for _, in := range []string{`object({"" = string})`, `object({"\xff" = string})`} {
		t.Run(in, func(t *testing.T) {
			got := List(Bool)
			err := got.UnmarshalText([]byte(in))
			var pe *errors.ParseError
			if !stderrors.As(err, &pe) {
				t.Fatalf("UnmarshalText(%q) error = %v, want *errors.ParseError", in, err)
			}
			if !got.Equal(List(Bool)) {
				t.Errorf("UnmarshalText(%q) overwrote the receiver with %v", in, got)
			}
		})
	}
}

func TestType_JSONInsideStruct(t *testing.T) {
	type variable struct {
		Name string `json:"name"`
		Type Type   `json:"type"`
	}

	in := variable{Name: "tags", Type: Set(String)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"name":"tags","type":["set","string"]}` {
		t.Errorf("json.Marshal() = %s", data)
	}

	var out variable
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out.Name != in.Name || !out.Type.Equal(in.Type) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
