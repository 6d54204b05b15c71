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

// Package semver provides the format version carried by dxcty schema
// documents, and version ranges used to decide which formats a reader
// supports.
//
// Version wraps github.com/blang/semver/v4 to get full Semantic Versioning
// 2.0.0 parsing and precedence, and adds the dxcty model contracts on top:
// validation, redaction-safe logging and JSON/YAML codecs. Parsing is
// tolerant, because version numbers in hand-written YAML are often short:
//
//	version: 1      # 1.0.0
//	version: "1.2"  # 1.2.0
//	version: v1.2.3 # 1.2.3
package semver

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxcty/dxcore/errors"
	"dirpx.dev/dxcty/dxcore/model"
	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// Version is a semantic version. The zero Version means "no version" and
// does not validate; 0.0.0 is never a valid document format.
type Version struct {
	bv bsemver.Version
}

var (
	_ model.Model               = (*Version)(nil)
	_ model.Comparable[Version] = Version{}
)

// New returns the release version major.minor.patch.
func New(major, minor, patch uint64) Version {
	return Version{bv: bsemver.Version{Major: major, Minor: minor, Patch: patch}}
}

// ParseVersion parses s as a semantic version. A leading "v" is ignored and
// missing minor or patch components default to zero.
//
// On failure it returns the zero Version and a *errors.ParseError.
func ParseVersion(s string) (Version, error) {
	in := strings.TrimSpace(s)
	bv, err := bsemver.ParseTolerant(in)
	if err != nil {
		return Version{}, &errors.ParseError{Type: "Version", Value: s, Reason: err.Error()}
	}
	return Version{bv: bv}, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Major returns the major component.
func (v Version) Major() uint64 { return v.bv.Major }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.bv.Minor }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.bv.Patch }

// String returns the canonical form, for example "1.2.0-rc.1+build.5".
func (v Version) String() string {
	return v.bv.String()
}

// Redacted returns the same text as String. Versions carry no secrets.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v.bv.EQ(bsemver.Version{}) && len(v.bv.Build) == 0
}

// Validate reports an error for the zero Version and for versions whose
// prerelease or build identifiers are malformed.
func (v Version) Validate() error {
	if v.IsZero() {
		return &errors.ValidationError{Type: "Version", Reason: "version is required"}
	}
	if err := v.bv.Validate(); err != nil {
		return &errors.ValidationError{Type: "Version", Reason: err.Error(), Value: v.bv.String()}
	}
	return nil
}

// Compare returns -1, 0 or 1 when v has lower, equal or higher precedence
// than other. Build metadata is ignored.
func (v Version) Compare(other Version) int {
	return v.bv.Compare(other.bv)
}

// Less reports whether v has lower precedence than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other have the same precedence.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Bare JSON numbers such as 1 or 1.2 are accepted for symmetry
		// with YAML.
		var n json.Number
		if json.Unmarshal(data, &n) != nil {
			return &errors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
		}
		s = n.String()
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &errors.UnmarshalError{
			Type:   "Version",
			Data:   []byte(node.Value),
			Reason: "version must be a scalar",
		}
	}

	parsed, err := ParseVersion(node.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Range is a set of versions described by a range expression such as
// ">=1.0.0 <2.0.0" or ">=1.2.0 || 3.x"; see blang/semver for the syntax.
type Range struct {
	expr     string
	contains bsemver.Range
}

// ParseRange parses a range expression. On failure it returns a
// *errors.ParseError.
func ParseRange(expr string) (Range, error) {
	r, err := bsemver.ParseRange(expr)
	if err != nil {
		return Range{}, &errors.ParseError{Type: "Range", Value: expr, Reason: err.Error()}
	}
	return Range{expr: expr, contains: r}, nil
}

// MustParseRange is like ParseRange but panics on malformed input.
func MustParseRange(expr string) Range {
	r, err := ParseRange(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains reports whether v lies inside r. The zero Range contains
// nothing.
func (r Range) Contains(v Version) bool {
	return r.contains != nil && r.contains(v.bv)
}

// String returns the expression r was parsed from.
func (r Range) String() string {
	return r.expr
}
