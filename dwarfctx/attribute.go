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

import (
	"debug/dwarf"

	"github.com/cxxreflect/dwarfrecon/model"
)

// DW_AT_accessibility values (DWARF5 §7.23).
const (
	dwAccessPublic    = 1
	dwAccessPrivate   = 2
	dwAccessProtected = 3
)

// DW_AT_virtuality values (DWARF5 §7.24).
const (
	dwVirtualityNone        = 0
	dwVirtualityVirtual     = 1
	dwVirtualityPureVirtual = 2
)

// DW_AT_inline values (DWARF5 §7.25). declared_not_inlined and
// declared_inlined both count as "the source marked this inline"; whether
// the compiler then actually inlined it (inlined vs. not_inlined) is not
// something the model distinguishes.
const (
	dwInlNotInlined         = 0
	dwInlInlined            = 1
	dwInlDeclaredNotInlined = 2
	dwInlDeclaredInlined    = 3
)

// Attribute decodes a raw dwarf.Field into the enumerations the model
// package understands. debug/dwarf leaves DW_AT_accessibility,
// DW_AT_virtuality and DW_AT_inline as bare int64 constants; nothing
// upstream of this package should know their numeric encodings.
type Attribute struct {
	dwarf.Field
}

// Access decodes a DW_AT_accessibility value.
func (a Attribute) Access() model.Access {
	switch v, _ := a.Val.(int64); v {
	case dwAccessPublic:
		return model.AccessPublic
	case dwAccessPrivate:
		return model.AccessPrivate
	case dwAccessProtected:
		return model.AccessProtected
	default:
		return model.AccessNone
	}
}

// Virtuality decodes a DW_AT_virtuality value.
func (a Attribute) Virtuality() model.Virtuality {
	switch v, _ := a.Val.(int64); v {
	case dwVirtualityVirtual:
		return model.VirtualityVirtual
	case dwVirtualityPureVirtual:
		return model.VirtualityPureVirtual
	default:
		return model.VirtualityNone
	}
}

// Inline reports whether a DW_AT_inline value marks the subprogram as
// having been written with the inline keyword.
func (a Attribute) Inline() bool {
	v, _ := a.Val.(int64)
	return v == dwInlDeclaredNotInlined || v == dwInlDeclaredInlined
}

// String returns the attribute's string value, if it has one.
func (a Attribute) String() string {
	v, _ := a.Val.(string)
	return v
}

// Int returns the attribute's signed integer value, if it has one.
func (a Attribute) Int() int64 {
	v, _ := a.Val.(int64)
	return v
}

// Flag returns the attribute's boolean value, if it has one.
func (a Attribute) Flag() bool {
	v, _ := a.Val.(bool)
	return v
}
