// This file is part of dwarfrecon.
//
// dwarfrecon is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dwarfrecon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dwarfrecon.  If not, see <https://www.gnu.org/licenses/>.

package model

// Kind distinguishes the three composite-owning-type variants that share
// the Struct representation: DWARF does not model Class and Union as
// separate data shapes from Struct, only as different default-access and
// keyword conventions.
type Kind int

const (
	KindStruct Kind = iota
	KindClass
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindUnion:
		return "union"
	default:
		return "struct"
	}
}

// DefaultAccess returns the implicit member access for this kind when no
// explicit access attribute is present: private for Class, public for
// Struct and Union.
func (k Kind) DefaultAccess() Access {
	if k == KindClass {
		return AccessPrivate
	}
	return AccessPublic
}

// Base is one entry in a Struct's ordered base-class list.
type Base struct {
	Type   string // already rendered, "virtual " prefixed when applicable
	Access Access
}

// Struct models DW_TAG_structure_type, DW_TAG_class_type and
// DW_TAG_union_type. Members are keyed by declaration line, not by
// encounter order, per the invariant that composite owning types bucket
// by decl_line.
type Struct struct {
	Head

	Kind Kind

	Bases   []Base
	Members map[int][]Object

	// lineOrder preserves first-seen order of member lines for
	// deterministic iteration; map iteration order in Go is randomised.
	lineOrder []int

	Alignment    int
	HasAlignment bool
}

// NewStruct returns an empty Struct of the given kind with an initialised
// member map.
func NewStruct(kind Kind, name string) *Struct {
	s := &Struct{Kind: kind, Members: make(map[int][]Object)}
	s.Name = name
	return s
}

// MemberLines returns the declaration lines that have members, in
// first-seen order.
func (s *Struct) MemberLines() []int {
	return s.lineOrder
}

// AddMember appends obj to the bucket for line, respecting the
// struct-member bucket cap (§4.5). Returns false if the bucket was
// already at cap and obj was dropped.
func (s *Struct) AddMember(line, bucketCap int, obj Object) bool {
	bucket := s.Members[line]
	if len(bucket) >= bucketCap {
		return false
	}
	if len(bucket) == 0 {
		s.lineOrder = append(s.lineOrder, line)
	}
	s.Members[line] = append(bucket, obj)
	return true
}

func (s *Struct) baseKey() string {
	key := ""
	for _, b := range s.Bases {
		key += b.Type + "\x00"
	}
	return key
}

func (s *Struct) Equal(other Object) bool {
	o, ok := other.(*Struct)
	if !ok {
		return false
	}
	return s.Kind == o.Kind && s.Name == o.Name && s.baseKey() == o.baseKey()
}

// Merge absorbs other into s if kind, name, and base list match.
// Per-line member lists are concatenated and then reduced: each new
// member attempts to merge into the previously accepted member at that
// line; if merge fails, it is appended only if not already present.
// Alignment takes whichever side is set.
func (s *Struct) Merge(other Object) bool {
	o, ok := other.(*Struct)
	if !ok || !s.Equal(o) {
		return false
	}

	for _, line := range o.lineOrder {
		for _, incoming := range o.Members[line] {
			existing := s.Members[line]
			if len(existing) > 0 && existing[len(existing)-1].Merge(incoming) {
				continue
			}

			dup := false
			for _, have := range existing {
				if have.Equal(incoming) {
					dup = true
					break
				}
			}
			if dup {
				continue
			}

			if len(existing) == 0 {
				s.lineOrder = append(s.lineOrder, line)
			}
			s.Members[line] = append(existing, incoming)
		}
	}

	if !s.HasAlignment && o.HasAlignment {
		s.Alignment = o.Alignment
		s.HasAlignment = true
	}

	return true
}
