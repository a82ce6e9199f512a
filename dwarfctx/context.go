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

	"github.com/pkg/errors"
)

// Context is a fully materialised view of a binary's DWARF debug info: a
// forest of Units and every DIE indexed by its section offset.
type Context struct {
	Data *dwarf.Data

	units    []*Unit
	byOffset map[dwarf.Offset]*DIE

	fileTables map[*Unit][]*dwarf.LineFile
}

// Units returns every compile unit, in the order debug/dwarf produced
// them.
func (c *Context) Units() []*Unit { return c.units }

// DIEAt looks up a DIE by its section-relative offset, the form ordinary
// (non-signature) references use.
func (c *Context) DIEAt(off dwarf.Offset) (*DIE, bool) {
	d, ok := c.byOffset[off]
	return d, ok
}

// ResolveTypeUnitReference looks up the DIE a DW_FORM_ref_sig8 signature
// stands for. It always fails: debug/dwarf parses the 8-byte signature out
// of both the legacy .debug_types header (typeunit.go) and the DWARF5
// unit header (unit.go, "type signature" comment) without retaining it
// anywhere an importer can reach, so there is no table to build this
// index from. A caller hitting this on a ClassReferenceSig attribute
// should treat it as a type-resolution failure, not retry.
func (c *Context) ResolveTypeUnitReference(sig uint64) (*DIE, bool) {
	return nil, false
}

// ResolveReference follows attr on d, whichever of the two DWARF reference
// forms it was encoded with, to the DIE it points at.
func (c *Context) ResolveReference(d *DIE, attr dwarf.Attr) (*DIE, bool) {
	f := d.AttrField(attr)
	if f == nil {
		return nil, false
	}
	switch f.Class {
	case dwarf.ClassReference:
		off, ok := f.Val.(dwarf.Offset)
		if !ok {
			return nil, false
		}
		return c.DIEAt(off)
	case dwarf.ClassReferenceSig:
		sig, ok := f.Val.(uint64)
		if !ok {
			return nil, false
		}
		return c.ResolveTypeUnitReference(sig)
	default:
		return nil, false
	}
}

// New builds a Context over data. Every compile unit is walked exactly
// once; the cost is paid up front so that Visitor, which revisits DIEs
// via specification/abstract_origin/type references, never re-parses.
func New(data *dwarf.Data) (*Context, error) {
	r := data.Reader()
	return build(data, func() (*dwarf.Entry, error) { return r.Next() })
}

// NewFromEntries builds a Context from an already-decoded, flat entry
// sequence, the same shape dwarf.Reader.Next would produce: a zero-value
// *Entry wherever a children list ends. It exists so packages downstream
// of dwarfctx can exercise tree construction and reference resolution in
// tests without assembling real section bytes.
func NewFromEntries(entries []*dwarf.Entry) (*Context, error) {
	i := 0
	return build(nil, func() (*dwarf.Entry, error) {
		if i >= len(entries) {
			return nil, nil
		}
		e := entries[i]
		i++
		return e, nil
	})
}

// build drives the forest construction from a sequence of entries supplied
// by next, terminated by a (nil, nil) pair. Factored out of New so tests
// can feed a synthetic sequence without constructing real DWARF bytes.
func build(data *dwarf.Data, next func() (*dwarf.Entry, error)) (*Context, error) {
	c := &Context{
		Data:     data,
		byOffset: make(map[dwarf.Offset]*DIE),
	}

	var stack []*DIE

	for {
		entry, err := next()
		if err != nil {
			return nil, errors.Wrap(err, "dwarfctx: reading entries")
		}
		if entry == nil {
			break
		}

		// debug/dwarf returns a zero-value *Entry (Offset 0, no tag, no
		// fields) as the terminator of a children list; a real DIE can
		// never land at offset 0, since that offset falls inside the
		// preceding unit header.
		if entry.Offset == 0 {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		die := &DIE{Entry: entry}
		c.byOffset[entry.Offset] = die

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			die.parent = parent
			die.unit = parent.unit
			parent.children = append(parent.children, die)
		} else {
			unit := &Unit{Root: die}
			name, _ := die.String(dwarf.AttrName)
			compDir, _ := die.String(dwarf.AttrCompDir)
			unit.Name = name
			unit.CompDir = compDir
			die.unit = unit
			c.units = append(c.units, unit)
		}

		if entry.Children {
			stack = append(stack, die)
		}
	}

	return c, nil
}
