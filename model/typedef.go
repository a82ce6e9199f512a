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

// TypeDef models a DW_TAG_typedef. Value is either a rendered type string
// (ValueType, ValueObject nil) or an in-place anonymous composite that the
// typedef is the sole name for (ValueObject set, marked IsImplicit by the
// Visitor, ValueType empty).
type TypeDef struct {
	Head

	ValueType   string
	ValueObject Object

	Alignment    int
	HasAlignment bool
}

func (t *TypeDef) renderedValue() string {
	if t.ValueObject != nil {
		return t.ValueObject.Head().Name
	}
	return t.ValueType
}

func (t *TypeDef) Equal(other Object) bool {
	o, ok := other.(*TypeDef)
	return ok && t.Name == o.Name && t.renderedValue() == o.renderedValue()
}

// Merge absorbs other into t if equal; alignment takes whichever side is
// set, and an in-place composite value on either side is preferred over a
// plain string (a string value can only arise from a forward-declaring
// occurrence and carries strictly less information).
func (t *TypeDef) Merge(other Object) bool {
	o, ok := other.(*TypeDef)
	if !ok || !t.Equal(o) {
		return false
	}

	if t.ValueObject == nil && o.ValueObject != nil {
		t.ValueObject = o.ValueObject
	}
	if !t.HasAlignment && o.HasAlignment {
		t.Alignment = o.Alignment
		t.HasAlignment = true
	}

	return true
}
