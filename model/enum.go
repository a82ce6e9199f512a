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

// EnumValue is one (name, integer) enumerator.
type EnumValue struct {
	Name  string
	Value int64
}

// Enum models a DW_TAG_enumeration_type.
type Enum struct {
	Head

	Base    string
	HasBase bool

	Values  []EnumValue
	IsClass bool
}

func (e *Enum) Equal(other Object) bool {
	o, ok := other.(*Enum)
	if !ok || e.Name != o.Name || e.Base != o.Base || e.IsClass != o.IsClass {
		return false
	}
	if len(e.Values) != len(o.Values) {
		return false
	}
	for i := range e.Values {
		if e.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// Merge treats two equal enums as interchangeable; there is nothing to
// back-fill since an enum's full definition is always present in a
// single DIE.
func (e *Enum) Merge(other Object) bool {
	return e.Equal(other)
}
