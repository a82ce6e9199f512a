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

package visitor

import (
	"debug/dwarf"

	"github.com/cxxreflect/dwarfrecon/dwarferr"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
)

// visitTypedef builds a TypeDef. When the target is an anonymous
// composite type declared in place ("typedef struct { ... } Foo;"), it is
// recursed into and embedded as ValueObject with IsImplicit set, rather
// than rendered as a forward-reference string.
func (v *Visitor) visitTypedef(d *dwarfctx.DIE) (model.Object, error) {
	if err := checkAttributes(d, typedefAttrs); err != nil {
		return nil, err
	}
	t := &model.TypeDef{}
	t.Name, _ = d.String(dwarf.AttrName)

	if align, ok := d.Int(dwarf.AttrAlignment); ok {
		t.Alignment = int(align)
		t.HasAlignment = true
	}

	target, _ := v.ctx.ResolveReference(d, dwarf.AttrType)
	if isAnonymousComposite(target) {
		embedded, err := v.visit(target)
		if err != nil {
			return nil, err
		}
		if obj, ok := embedded.(model.Object); ok && obj != nil {
			obj.Head().IsImplicit = true
			t.ValueObject = obj
			return t, nil
		}
	}

	s, err := v.printer.Joined(target)
	if err != nil {
		return nil, err
	}
	t.ValueType = s
	return t, nil
}

var typedefAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:      true,
	dwarf.AttrAlignment: true,
	dwarf.AttrType:      true,
}

// visitEnumerationType builds an Enum from its underlying-type reference,
// enum-class flag, and enumerator children.
func (v *Visitor) visitEnumerationType(d *dwarfctx.DIE) (model.Object, error) {
	if err := checkAttributes(d, enumAttrs); err != nil {
		return nil, err
	}
	e := &model.Enum{}
	e.Name, _ = d.String(dwarf.AttrName)

	if base, ok := v.ctx.ResolveReference(d, dwarf.AttrType); ok {
		s, err := v.printer.Joined(base)
		if err != nil {
			return nil, err
		}
		e.Base = s
		e.HasBase = true
	}
	if cls, ok := d.Flag(dwarf.AttrEnumClass); ok {
		e.IsClass = cls
	}

	for _, c := range d.Children() {
		if c.Tag != dwarf.TagEnumerator {
			if ignorableTag(c.Tag) {
				continue
			}
			return nil, dwarferr.UnhandledChild(uint64(d.Offset), d.Tag.String(), c.Tag.String())
		}
		if err := checkAttributes(c, enumeratorAttrs); err != nil {
			return nil, err
		}
		name, _ := c.String(dwarf.AttrName)
		val, _ := c.Int(dwarf.AttrConstValue)
		e.Values = append(e.Values, model.EnumValue{Name: name, Value: val})
	}

	return e, nil
}

// enumAttrs lists every DW_AT_* visitEnumerationType reads off the
// enumeration_type DIE itself, plus DW_AT_byte_size and DW_AT_declaration,
// which every enum carries or may carry but which this model ignores.
var enumAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:        true,
	dwarf.AttrType:        true,
	dwarf.AttrEnumClass:   true,
	dwarf.AttrByteSize:    true,
	dwarf.AttrDeclaration: true,
}

var enumeratorAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:       true,
	dwarf.AttrConstValue: true,
}
