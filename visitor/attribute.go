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
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"debug/dwarf"

	"github.com/cxxreflect/dwarfrecon/dwarferr"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
)

// handleAttribute builds an Attribute from a DW_TAG_variable or
// DW_TAG_member. Returns a nil Object (a soft skip, not an error) when the
// DIE has no name, no decl_file, no positive decl_line, or is the
// definition side of an out-of-class static member — the declaration
// side, filed when the class body was visited, is authoritative.
func (v *Visitor) handleAttribute(d *dwarfctx.DIE) (model.Object, error) {
	if err := checkAttributes(d, attributeAttrs); err != nil {
		return nil, err
	}
	name, hasName := d.String(dwarf.AttrName)
	if !hasName || name == "" {
		return nil, nil
	}
	if _, ok := v.ctx.DeclFile(d); !ok {
		return nil, nil
	}
	if line, ok := d.Int(dwarf.AttrDeclLine); !ok || line <= 0 {
		return nil, nil
	}
	if _, ok := v.ctx.ResolveReference(d, dwarf.AttrSpecification); ok {
		return nil, nil
	}

	a := &model.Attribute{}
	a.Name = name

	if acc, ok := d.Find(dwarf.AttrAccessibility); ok {
		a.Access = acc.Access()
	}
	if ext, ok := d.Flag(dwarf.AttrExternal); ok {
		a.IsStatic = ext
	}
	if align, ok := d.Int(dwarf.AttrAlignment); ok {
		a.Alignment = int(align)
		a.HasAlignment = true
	}
	if bits, ok := d.Int(dwarf.AttrBitSize); ok {
		a.BitSize = int(bits)
		a.HasBitSize = true
	}

	t, hasType := v.ctx.ResolveReference(d, dwarf.AttrType)
	if hasType && isAnonymousComposite(t) {
		embedded, err := v.visit(t)
		if err != nil {
			return nil, err
		}
		if obj, ok := embedded.(model.Object); ok && obj != nil {
			obj.Head().IsImplicit = true
			v.add(t, obj)
		}
	}

	split, err := v.printer.Split(t)
	if err != nil {
		return nil, err
	}
	if split.After == "" {
		a.Type = split.Before
	} else {
		a.TypeSplit = split
		a.IsSplit = true
	}

	if s, ok := renderConstValue(d, attributeTypeHint(a)); ok {
		a.DefaultValue = s
	}

	var templateParams []model.TemplateParameter
	for _, c := range d.Children() {
		switch c.Tag {
		case dwarf.TagTemplateTypeParameter, dwarf.TagTemplateValueParameter,
			dwarfctx.TagGNUTemplateTemplateParam, dwarfctx.TagGNUTemplateParameterPack:
			p, err := v.buildTemplateParameter(c)
			if err != nil {
				return nil, err
			}
			templateParams = append(templateParams, p)
		default:
			if ignorableTag(c.Tag) {
				continue
			}
			return nil, dwarferr.UnhandledChild(uint64(d.Offset), d.Tag.String(), c.Tag.String())
		}
	}
	if len(templateParams) > 0 {
		a.Template = v.buildOrReuseAttributeTemplate(d, a, templateParams)
	}

	return a, nil
}

// attributeAttrs lists every DW_AT_* handleAttribute reads, plus
// DW_AT_linkage_name, DW_AT_location, DW_AT_byte_size, DW_AT_bit_offset
// and DW_AT_data_member_location, which compilers routinely attach to a
// variable or member but which this model has no field for.
var attributeAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:          true,
	dwarf.AttrLinkageName:   true,
	dwarf.AttrExternal:      true,
	dwarf.AttrLocation:      true,
	dwarf.AttrDeclaration:   true,
	dwarf.AttrByteSize:      true,
	dwarf.AttrBitOffset:     true,
	dwarf.AttrSpecification: true,
	dwarf.AttrType:          true,
	dwarf.AttrConstValue:    true,
	dwarf.AttrAlignment:     true,
	dwarf.AttrAccessibility: true,
	dwarf.AttrDataMemberLoc: true,
	dwarf.AttrBitSize:       true,
}

// attributeTypeHint renders the same string Equal/Merge key off, used only
// to sniff the base-type suffix ("float", "double", "bool") a const_value
// decode needs.
func attributeTypeHint(a *model.Attribute) string {
	if a.IsSplit {
		return a.TypeSplit.Before + a.TypeSplit.After
	}
	return a.Type
}

func isAnonymousComposite(t *dwarfctx.DIE) bool {
	if t == nil {
		return false
	}
	switch t.Tag {
	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType:
		name, ok := t.String(dwarf.AttrName)
		return !ok || name == ""
	default:
		return false
	}
}

// renderConstValue decodes DW_AT_const_value as float/double/bool/integer
// by inspecting typeName's base-type suffix, re-interpreting block-encoded
// bits as IEEE-754 where the type calls for it. Floats are formatted with
// 7 significant digits, doubles with 16, always preserving a trailing
// ".0".
func renderConstValue(d *dwarfctx.DIE, typeName string) (string, bool) {
	f, ok := d.Find(dwarf.AttrConstValue)
	if !ok {
		return "", false
	}
	switch raw := f.Val.(type) {
	case string:
		return raw, true
	case []byte:
		return renderConstBytes(raw, typeName)
	case int64:
		return renderConstInt(raw, typeName), true
	case uint64:
		return renderConstInt(int64(raw), typeName), true
	default:
		return "", false
	}
}

func renderConstInt(v int64, typeName string) string {
	switch {
	case strings.Contains(typeName, "bool"):
		if v != 0 {
			return "true"
		}
		return "false"
	case strings.Contains(typeName, "double"):
		return formatFloatSig(math.Float64frombits(uint64(v)), 16)
	case strings.Contains(typeName, "float"):
		return formatFloatSig(float64(math.Float32frombits(uint32(v))), 7)
	default:
		return strconv.FormatInt(v, 10)
	}
}

func renderConstBytes(b []byte, typeName string) (string, bool) {
	switch len(b) {
	case 4:
		bits := binary.LittleEndian.Uint32(b)
		if strings.Contains(typeName, "float") {
			return formatFloatSig(float64(math.Float32frombits(bits)), 7), true
		}
		return strconv.FormatInt(int64(int32(bits)), 10), true
	case 8:
		bits := binary.LittleEndian.Uint64(b)
		if strings.Contains(typeName, "double") {
			return formatFloatSig(math.Float64frombits(bits), 16), true
		}
		return strconv.FormatInt(int64(bits), 10), true
	default:
		return "", false
	}
}

func formatFloatSig(v float64, sig int) string {
	s := strconv.FormatFloat(v, 'g', sig, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
