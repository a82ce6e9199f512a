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
	"strings"

	"github.com/cxxreflect/dwarfrecon/dwarferr"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
)

// handleStruct builds a Struct/Class/Union from d: member, nested-type,
// subprogram and import children are filed into decl_line buckets capped
// at StructMemberCap; inheritance children become Bases; template
// parameter children produce a Template wrapper rather than a bucket
// entry.
func (v *Visitor) handleStruct(d *dwarfctx.DIE, kind model.Kind) (*model.Struct, error) {
	if err := checkAttributes(d, structAttrs); err != nil {
		return nil, err
	}
	name, _ := d.String(dwarf.AttrName)
	s := model.NewStruct(kind, name)

	if align, ok := d.Int(dwarf.AttrAlignment); ok {
		s.Alignment = int(align)
		s.HasAlignment = true
	}
	if acc, ok := d.Find(dwarf.AttrAccessibility); ok {
		s.Access = acc.Access()
	}
	if decl, ok := d.Flag(dwarf.AttrDeclaration); ok {
		s.IsDeclaration = decl
	}

	defaultAccess := kind.DefaultAccess()

	var templateParams []model.TemplateParameter

	for _, c := range d.Children() {
		switch c.Tag {
		case dwarf.TagInheritance:
			base, err := v.handleInheritance(c, defaultAccess)
			if err != nil {
				return nil, err
			}
			s.Bases = append(s.Bases, base)

		case dwarf.TagTemplateTypeParameter, dwarf.TagTemplateValueParameter,
			dwarfctx.TagGNUTemplateTemplateParam, dwarfctx.TagGNUTemplateParameterPack:
			p, err := v.buildTemplateParameter(c)
			if err != nil {
				return nil, err
			}
			templateParams = append(templateParams, p)

		case dwarf.TagMember, dwarf.TagVariable, dwarf.TagSubprogram,
			dwarf.TagTypedef, dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType,
			dwarf.TagEnumerationType, dwarf.TagImportedModule, dwarf.TagImportedDeclaration:
			if err := v.handleStructMember(s, c, defaultAccess); err != nil {
				return nil, err
			}

		default:
			if ignorableTag(c.Tag) {
				continue
			}
			return nil, dwarferr.UnhandledChild(uint64(d.Offset), d.Tag.String(), c.Tag.String())
		}
	}

	if len(templateParams) > 0 {
		tmpl, err := v.buildOrReuseStructTemplate(d, s, templateParams)
		if err != nil {
			return nil, err
		}
		s.Template = tmpl
	}

	// A class_type/structure_type/union_type DIE that is itself a
	// signature-only declaration would need its definition-side DIE (held
	// in a .debug_types/DWARF5 type unit) visited here too, so that its
	// members get filed under this struct. debug/dwarf gives no way to
	// recover that DIE from a DW_FORM_ref_sig8 signature (see
	// dwarfctx.Context.ResolveTypeUnitReference), so a signature-only
	// declaration is built with no members, same as any other forward
	// declaration.

	return s, nil
}

// structAttrs lists every DW_AT_* this engine reads off a struct/class/
// union DIE, plus DW_AT_calling_convention, DW_AT_byte_size,
// DW_AT_containing_type and DW_AT_export_symbols, which real compilers
// emit on most composite types but which carry nothing this model needs.
var structAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:           true,
	dwarf.AttrAlignment:      true,
	dwarf.AttrAccessibility:  true,
	dwarf.AttrDeclaration:    true,
	dwarf.AttrCalling:        true,
	dwarf.AttrByteSize:       true,
	dwarf.AttrContainingType: true,
	dwarf.AttrExportSymbols:  true,
}

// handleStructMember visits c, applies the default access for kind when
// no explicit accessibility was present, suppresses the return type of a
// constructor/destructor/conversion-operator member function, and files
// the result into s's decl_line bucket. Struct members never receive a
// Namespace parent — only namespace-scope filing does.
func (v *Visitor) handleStructMember(s *model.Struct, c *dwarfctx.DIE, defaultAccess model.Access) error {
	res, err := v.visit(c)
	if err != nil {
		return err
	}
	obj, ok := res.(model.Object)
	if !ok || obj == nil {
		return nil
	}

	if obj.Head().Access == model.AccessNone {
		obj.Head().Access = defaultAccess
	}

	if fn, ok := obj.(*model.Function); ok {
		suppressReturnsForMember(s.Name, fn)
	}

	line, ok := c.Int(dwarf.AttrDeclLine)
	if !ok || line <= 0 {
		return nil
	}
	s.AddMember(int(line), v.opts.StructMemberCap, obj)
	return nil
}

// handleInheritance renders a base-class entry: the base type, its access
// (defaultAccess when no explicit DW_AT_accessibility is present), and a
// "virtual " prefix when DW_AT_virtuality marks it a virtual base.
func (v *Visitor) handleInheritance(c *dwarfctx.DIE, defaultAccess model.Access) (model.Base, error) {
	if err := checkAttributes(c, inheritanceAttrs); err != nil {
		return model.Base{}, err
	}
	t, ok := v.ctx.ResolveReference(c, dwarf.AttrType)
	if !ok {
		return model.Base{}, dwarferr.TypeResolution(uint64(c.Offset), c.Tag.String(), errNoObjectType)
	}
	rendered, err := v.printer.Joined(t)
	if err != nil {
		return model.Base{}, err
	}

	access := defaultAccess
	if a, ok := c.Find(dwarf.AttrAccessibility); ok {
		access = a.Access()
	}
	if virt, ok := c.Find(dwarf.AttrVirtuality); ok && virt.Virtuality() != model.VirtualityNone {
		rendered = "virtual " + rendered
	}
	return model.Base{Type: rendered, Access: access}, nil
}

var inheritanceAttrs = map[dwarf.Attr]bool{
	dwarf.AttrType:          true,
	dwarf.AttrDataMemberLoc: true,
	dwarf.AttrAccessibility: true,
	dwarf.AttrVirtuality:    true,
}

// untemplatedName strips a template instantiation's "<...>" argument
// suffix, leaving the bare class/struct name a Template wrapper or a
// ctor/dtor match is keyed on.
func untemplatedName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}

// suppressReturnsForMember clears a member Function's return type when it
// is a constructor, destructor, or conversion operator: "operator X",
// "ClassName(...)", or "~ClassName(...)" never render a return type.
func suppressReturnsForMember(structName string, fn *model.Function) {
	base := untemplatedName(structName)
	if base == "" {
		return
	}
	if strings.HasPrefix(fn.Name, "operator ") {
		fn.ClearReturns()
		return
	}
	name := strings.TrimPrefix(fn.Name, "~")
	name = untemplatedName(name)
	if name == base {
		fn.ClearReturns()
	}
}
