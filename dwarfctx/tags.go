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

// Package dwarfctx adapts the standard library's debug/dwarf reader onto a
// tree-shaped, reference-resolving view of the DIE graph: a linear
// dwarf.Reader walk only tells you "this entry has children", never which
// ones, and has no lookup from a type-unit signature back to a DIE. The
// first gap is closed once, here, rather than by every caller; the second
// stays open (see Context.ResolveTypeUnitReference, which always fails).
package dwarfctx

import "debug/dwarf"

// GNU vendor tags absent from the standard library's Tag enum. Both appear
// under -gsplit-dwarf/-g3 template debug info from GCC and Clang.
const (
	TagGNUTemplateTemplateParam dwarf.Tag = 0x4106
	TagGNUTemplateParameterPack dwarf.Tag = 0x4107
)

// AttrGNUTemplateName is GCC's vendor attribute on a
// TagGNUTemplateTemplateParam DIE naming the bound template itself (e.g.
// "std::vector"), absent from the standard library's Attr enum.
const AttrGNUTemplateName dwarf.Attr = 0x2110
