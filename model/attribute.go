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

// Attribute models a DW_TAG_variable or DW_TAG_member: a named, typed
// storage location. Type is either a joined string or, for declarators
// that need one (arrays, function pointers, pointer-to-member), a split
// pair — TypeSplit.Before/After are both empty when Type holds the joined
// form instead.
type Attribute struct {
	Head

	Type      string
	TypeSplit SplitType
	IsSplit   bool

	// DefaultValue is the decoded DW_AT_const_value, formatted per §4.3.6:
	// float/double with trailing ".0" preserved, bool/integer otherwise.
	// Empty when there is no constant value.
	DefaultValue string

	Alignment int
	HasAlignment bool

	BitSize    int
	HasBitSize bool

	IsStatic bool
}

func (a *Attribute) renderedType() string {
	if a.IsSplit {
		return a.TypeSplit.Before + a.TypeSplit.After
	}
	return a.Type
}

func (a *Attribute) Equal(other Object) bool {
	o, ok := other.(*Attribute)
	if !ok {
		return false
	}
	return a.Name == o.Name && a.renderedType() == o.renderedType()
}

// Merge absorbs other into a if both name and rendered type match.
// Fields absent on a (default_value, alignment, bit_size) are filled from
// other; is_static is OR-combined.
func (a *Attribute) Merge(other Object) bool {
	o, ok := other.(*Attribute)
	if !ok || a.Name != o.Name || a.renderedType() != o.renderedType() {
		return false
	}

	if a.DefaultValue == "" && o.DefaultValue != "" {
		a.DefaultValue = o.DefaultValue
	}
	if !a.HasAlignment && o.HasAlignment {
		a.Alignment = o.Alignment
		a.HasAlignment = true
	}
	if !a.HasBitSize && o.HasBitSize {
		a.BitSize = o.BitSize
		a.HasBitSize = true
	}
	a.IsStatic = a.IsStatic || o.IsStatic

	return true
}
