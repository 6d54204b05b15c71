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

// Equal reports whether v and other are equal under the partial-knowledge
// policy:
//
//   - the declared types must be Equal;
//   - an Unknown payload is never equal to anything, not even to itself;
//   - two Null payloads are equal;
//   - two Bool payloads are equal when their flags are;
//   - two String payloads are equal when their normalized texts are;
//   - every other combination is not equal, including two collections.
//
// Equal is therefore not reflexive. It is symmetric, total and never
// panics. Use DeepEqual to compare collections element by element.
func (v Value) Equal(other Value) bool {
	if !v.ty.Equal(other.ty) {
		return false
	}
	return payloadEqual(v.v, other.v, false)
}

// DeepEqual is like Value.Equal except that two list, tuple, map or object
// payloads are compared element by element: they are equal when they have
// the same length (or key set) and every pair of corresponding elements is
// equal under the same relation. An Unknown anywhere inside makes the
// values unequal.
func DeepEqual(a, b Value) bool {
	if !a.ty.Equal(b.ty) {
		return false
	}
	return payloadEqual(a.v, b.v, true)
}

func payloadEqual(a, b payload, deep bool) bool {
	switch a := a.(type) {
	case nullPayload:
		_, ok := b.(nullPayload)
		return ok
	case boolPayload:
		bb, ok := b.(boolPayload)
		return ok && a == bb
	case stringPayload:
		bs, ok := b.(stringPayload)
		return ok && a == bs
	case sequencePayload:
		bs, ok := b.(sequencePayload)
		if !deep || !ok || a.vec.Len() != bs.vec.Len() {
			return false
		}
		ai, bi := a.vec.Iterator(), bs.vec.Iterator()
		for ; ai.HasElem(); ai.Next() {
			if !payloadEqual(ai.Elem().(payload), bi.Elem().(payload), deep) {
				return false
			}
			bi.Next()
		}
		return true
	case mappingPayload:
		bm, ok := b.(mappingPayload)
		if !deep || !ok || a.m.Len() != bm.m.Len() {
			return false
		}
		for it := a.m.Iterator(); it.HasElem(); it.Next() {
			k, av := it.Elem()
			bv, ok := bm.m.Index(k)
			if !ok || !payloadEqual(av.(payload), bv.(payload), deep) {
				return false
			}
		}
		return true
	default:
		// unknownPayload and the nil payload of the zero Value.
		return false
	}
}
