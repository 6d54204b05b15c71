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
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"dirpx.dev/dxcty/dxcore/errors"
)

// ParseType parses a type expression as produced by Type.String.
//
// The grammar is:
//
//	type   = primitive | coll "(" type ")" | tuple | object
//	prim   = "string" | "bool" | "number" | "any" | "dynamic"
//	coll   = "list" | "map" | "set"
//	tuple  = "tuple" "(" "[" [ type { "," type } [ "," ] ] "]" ")"
//	object = "object" "(" "{" [ field { "," field } [ "," ] ] "}" ")"
//	field  = ( ident | quoted ) "=" type
//
// Keywords are case-insensitive and whitespace between tokens is ignored.
// Quoted field names use Go string literal syntax. Declaring the same object
// field twice is an error, and so are empty or non-UTF-8 field names.
//
// On failure ParseType returns the zero Type and a *errors.ParseError whose
// Reason names the offending position.
//
// Example:
//
//	t, err := types.ParseType("map(list(string))")
//	// t.Equal(types.Map(types.List(types.String))) == true
func ParseType(s string) (Type, error) {
	p := &parser{src: s}
	t, err := p.parseType()
	if err == nil {
		p.skipSpace()
		if p.pos < len(p.src) {
			err = p.errorf("unexpected %q after type", p.src[p.pos:])
		}
	}
	if err == nil {
		err = t.Validate()
	}
	if err != nil {
		return Type{}, &errors.ParseError{Type: "Type", Value: s, Reason: err.Error()}
	}
	return t, nil
}

// MustParseType is like ParseType but panics if the expression cannot be
// parsed. It simplifies initialization of package-level type declarations.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: "+format, append([]any{p.pos}, args...)...)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

// peek returns the next non-space byte, or 0 at the end of input.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.src) {
			return p.errorf("expected %q, got end of input", c)
		}
		return p.errorf("expected %q, got %q", c, p.src[p.pos])
	}
	p.pos++
	return nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parseType() (Type, error) {
	word := p.ident()
	if word == "" {
		if p.pos >= len(p.src) {
			return Type{}, p.errorf("expected type, got end of input")
		}
		return Type{}, p.errorf("expected type, got %q", p.src[p.pos])
	}
	k, err := ParseKind(word)
	if err != nil {
		return Type{}, p.errorf("unknown type keyword %q", word)
	}

	switch k {
	case KindString:
		return String, nil
	case KindBool:
		return Bool, nil
	case KindNumber:
		return Number, nil
	case KindAny:
		return Any, nil
	case KindList, KindMap, KindSet:
		if err := p.expect('('); err != nil {
			return Type{}, err
		}
		elem, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect(')'); err != nil {
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
		return p.parseTuple()
	default:
		return p.parseObject()
	}
}

func (p *parser) parseTuple() (Type, error) {
	if err := p.expect('('); err != nil {
		return Type{}, err
	}
	if err := p.expect('['); err != nil {
		return Type{}, err
	}
	var elems []Type
	for p.peek() != ']' {
		et, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		elems = append(elems, et)
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect(']'); err != nil {
		return Type{}, err
	}
	if err := p.expect(')'); err != nil {
		return Type{}, err
	}
	return Tuple(elems...), nil
}

func (p *parser) parseObject() (Type, error) {
	if err := p.expect('('); err != nil {
		return Type{}, err
	}
	if err := p.expect('{'); err != nil {
		return Type{}, err
	}
	fields := make(map[string]Type)
	for p.peek() != '}' {
		name, err := p.fieldName()
		if err != nil {
			return Type{}, err
		}
		if _, dup := fields[name]; dup {
			return Type{}, p.errorf("duplicate field %q", name)
		}
		if err := p.expect('='); err != nil {
			return Type{}, err
		}
		ft, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		fields[name] = ft
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect('}'); err != nil {
		return Type{}, err
	}
	if err := p.expect(')'); err != nil {
		return Type{}, err
	}
	return Object(fields), nil
}

func (p *parser) fieldName() (string, error) {
	if p.peek() == '"' {
		lit, err := strconv.QuotedPrefix(p.src[p.pos:])
		if err != nil {
			return "", p.errorf("malformed quoted field name")
		}
		p.pos += len(lit)
		name, err := strconv.Unquote(lit)
		if err != nil {
			return "", p.errorf("malformed quoted field name")
		}
		if name == "" {
			return "", p.errorf("field name must not be empty")
		}
		if !utf8.ValidString(name) {
			return "", p.errorf("field name %q is not valid UTF-8", name)
		}
		return name, nil
	}
	name := p.ident()
	if name == "" {
		if p.pos >= len(p.src) {
			return "", p.errorf("expected field name, got end of input")
		}
		return "", p.errorf("expected field name, got %q", p.src[p.pos])
	}
	return name, nil
}
