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

package dwarfctx

import "debug/dwarf"

// Unit is a single compile unit root, as produced by dwarf.Data.Reader.
// debug/dwarf gives no public way to tell a legacy .debug_types type unit
// apart from an ordinary compile unit at this layer (see ResolveTypeUnitReference);
// every Unit here is one dwarf.Data.Reader walks to directly, i.e. a
// compile unit.
type Unit struct {
	Root *DIE

	Name    string
	CompDir string
}

// DIE wraps a *dwarf.Entry with the tree structure debug/dwarf's Reader
// never builds: a parent pointer and materialised children, plus the Unit
// it was read from.
type DIE struct {
	*dwarf.Entry

	unit     *Unit
	parent   *DIE
	children []*DIE
}

// Unit returns the compile unit this DIE was read from.
func (d *DIE) Unit() *Unit { return d.unit }

// Parent returns the lexically enclosing DIE, or nil at a unit root.
func (d *DIE) Parent() *DIE { return d.parent }

// Children returns this DIE's direct children in document order.
func (d *DIE) Children() []*DIE { return d.children }

// Find returns the named attribute, decoded, and whether it was present.
func (d *DIE) Find(attr dwarf.Attr) (Attribute, bool) {
	f := d.AttrField(attr)
	if f == nil {
		return Attribute{}, false
	}
	return Attribute{Field: *f}, true
}

// Attributes returns every attribute on this DIE, decoded.
func (d *DIE) Attributes() []Attribute {
	out := make([]Attribute, len(d.Field))
	for i, f := range d.Field {
		out[i] = Attribute{Field: f}
	}
	return out
}

// String returns the string value of attr, if present and of string class.
func (d *DIE) String(attr dwarf.Attr) (string, bool) {
	v, ok := d.Val(attr).(string)
	return v, ok
}

// Int returns the signed integer value of attr, if present.
func (d *DIE) Int(attr dwarf.Attr) (int64, bool) {
	v, ok := d.Val(attr).(int64)
	return v, ok
}

// Uint returns the unsigned integer value of attr, if present. debug/dwarf
// stores DW_FORM_addr and DW_AT_signature values as uint64; everything else
// numeric is int64, so this only ever matches those two families.
func (d *DIE) Uint(attr dwarf.Attr) (uint64, bool) {
	v, ok := d.Val(attr).(uint64)
	return v, ok
}

// Flag returns the boolean value of attr, if present.
func (d *DIE) Flag(attr dwarf.Attr) (bool, bool) {
	v, ok := d.Val(attr).(bool)
	return v, ok
}

// Has reports whether attr is present at all, regardless of class.
func (d *DIE) Has(attr dwarf.Attr) bool {
	return d.AttrField(attr) != nil
}
