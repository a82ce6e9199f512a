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
	"strconv"

	"debug/dwarf"

	"github.com/cxxreflect/dwarfrecon/dwarferr"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
)

// visitSubprogram builds a Function. An artificial subprogram (a
// compiler-synthesised special member) is a soft skip, not an error.
//
// A DW_AT_specification reference means this DIE is an out-of-class
// definition: the declaration side is visited first and its returns/
// is_const/access are inherited, and the Function's name becomes the
// declaration's fully qualified scoped name rather than its short name.
func (v *Visitor) visitSubprogram(d *dwarfctx.DIE) (model.Object, error) {
	if err := checkAttributes(d, subprogramAttrs); err != nil {
		return nil, err
	}
	if artificial, ok := d.Flag(dwarf.AttrArtificial); ok && artificial {
		return nil, nil
	}

	fn := &model.Function{}

	if spec, ok := v.ctx.ResolveReference(d, dwarf.AttrSpecification); ok {
		res, err := v.visit(spec)
		if err != nil {
			return nil, err
		}
		declFn, ok := res.(*model.Function)
		if !ok {
			return nil, dwarferr.ShapeViolation(uint64(d.Offset), d.Tag.String(),
				"DW_AT_specification does not resolve to a subprogram")
		}
		name, err := v.printer.QualifiedName(spec)
		if err != nil {
			return nil, err
		}
		fn.Name = name
		fn.Returns = declFn.Returns
		fn.HasReturns = declFn.HasReturns
		fn.IsConst = declFn.IsConst
		fn.Access = declFn.Access
	} else {
		fn.Name, _ = d.String(dwarf.AttrName)
		fn.Returns = "void"
		fn.HasReturns = true
		if t, ok := v.ctx.ResolveReference(d, dwarf.AttrType); ok {
			s, err := v.printer.Joined(t)
			if err != nil {
				return nil, err
			}
			fn.Returns = s
		}

		isConst, isStatic, err := v.detectConstAndStatic(d)
		if err != nil {
			return nil, err
		}
		fn.IsConst = isConst
		fn.IsStatic = isStatic

		if acc, ok := d.Find(dwarf.AttrAccessibility); ok {
			fn.Access = acc.Access()
		}
		if decl, ok := d.Flag(dwarf.AttrDeclaration); ok {
			fn.IsDeclaration = decl
		}
	}

	if virt, ok := d.Find(dwarf.AttrVirtuality); ok {
		fn.Virtuality = virt.Virtuality()
	}
	if inl, ok := d.Find(dwarf.AttrInline); ok {
		fn.IsInline = inl.Inline()
	}
	if exp, ok := d.Flag(dwarf.AttrExplicit); ok {
		fn.IsExplicit = exp
	}
	if del, ok := d.Flag(dwarf.AttrDeleted); ok {
		fn.IsDeleted = del
	}
	if nr, ok := d.Flag(dwarf.AttrNoreturn); ok {
		fn.Noreturn = nr
	}

	var templateParams []model.TemplateParameter
	for _, c := range d.Children() {
		switch c.Tag {
		case dwarf.TagFormalParameter:
			if artificial, ok := c.Flag(dwarf.AttrArtificial); ok && artificial {
				continue
			}
			pname, _ := c.String(dwarf.AttrName)
			t, _ := v.ctx.ResolveReference(c, dwarf.AttrType)
			typeStr, err := v.printer.Joined(t)
			if err != nil {
				return nil, err
			}
			fn.Parameters = append(fn.Parameters, model.Parameter{Name: pname, Type: typeStr})

		case dwarf.TagUnspecifiedParameters:
			fn.Parameters = append(fn.Parameters, model.Parameter{Kind: model.ParameterVariadic})

		case dwarf.TagTemplateTypeParameter, dwarf.TagTemplateValueParameter,
			dwarfctx.TagGNUTemplateTemplateParam, dwarfctx.TagGNUTemplateParameterPack:
			p, err := v.buildTemplateParameter(c)
			if err != nil {
				return nil, err
			}
			templateParams = append(templateParams, p)

		case dwarf.TagLexDwarfBlock, dwarf.TagInlinedSubroutine, dwarf.TagVariable,
			dwarf.TagCallSite, dwarf.TagCallSiteParameter, dwarf.TagLabel:
			// Compiled-body detail (locals, inlined call sites, branch
			// labels): describes the definition, not the declaration
			// this engine reconstructs.
			continue

		default:
			if ignorableTag(c.Tag) {
				continue
			}
			return nil, dwarferr.UnhandledChild(uint64(d.Offset), d.Tag.String(), c.Tag.String())
		}
	}

	if len(templateParams) > 0 {
		fn.Template = v.buildOrReuseFunctionTemplate(d, fn, templateParams)
	}

	v.registerFunction(d, fn)
	return fn, nil
}

// subprogramAttrs lists every DW_AT_* visitSubprogram reads, plus the
// low_pc/high_pc/frame_base/call_all_calls/calling_convention/prototyped/
// vtable_elem_location/containing_type/reference/rvalue_reference family a
// compiler attaches to describe a function's compiled body or its C++
// reference-qualification, none of which this model records.
var subprogramAttrs = map[dwarf.Attr]bool{
	dwarf.AttrLinkageName:     true,
	dwarf.AttrName:            true,
	dwarf.AttrLowpc:           true,
	dwarf.AttrHighpc:          true,
	dwarf.AttrFrameBase:       true,
	dwarf.AttrCallAllCalls:    true,
	dwarf.AttrCalling:         true,
	dwarf.AttrDeclaration:     true,
	dwarf.AttrPrototyped:      true,
	dwarf.AttrArtificial:      true,
	dwarf.AttrSpecification:   true,
	dwarf.AttrVtableElemLoc:   true,
	dwarf.AttrContainingType:  true,
	dwarf.AttrReference:       true,
	dwarf.AttrRvalueReference: true,
	dwarf.AttrExternal:        true,
	dwarf.AttrType:            true,
	dwarf.AttrInline:          true,
	dwarf.AttrNoreturn:        true,
	dwarf.AttrExplicit:        true,
	dwarf.AttrObjectPointer:   true,
	dwarf.AttrAbstractOrigin:  true,
	dwarf.AttrAccessibility:   true,
	dwarf.AttrVirtuality:      true,
	dwarf.AttrDeleted:         true,
}

// detectConstAndStatic follows the object-pointer parameter's type chain
// until a const modifier is found (is_const=true), a non-wrapper leaf is
// reached (is_const=false), or no object pointer exists at all
// (is_static=true: there is no implicit this to qualify).
func (v *Visitor) detectConstAndStatic(d *dwarfctx.DIE) (isConst, isStatic bool, err error) {
	obj, ok := v.ctx.ResolveReference(d, dwarf.AttrObjectPointer)
	if !ok {
		return false, true, nil
	}

	t, ok := v.ctx.ResolveReference(obj, dwarf.AttrType)
	for ok {
		switch t.Tag {
		case dwarf.TagConstType:
			return true, false, nil
		case dwarf.TagPointerType, dwarf.TagReferenceType, dwarf.TagRvalueReferenceType,
			dwarf.TagVolatileType, dwarf.TagRestrictType, dwarf.TagAtomicType:
			t, ok = v.ctx.ResolveReference(t, dwarf.AttrType)
		default:
			return false, false, nil
		}
	}
	return false, false, nil
}

// registrationKey is the linkage name when present (externally linked PL
// functions), otherwise the short name plus parameter count (C-linkage
// functions, which cannot be overloaded and so need no mangled name).
func registrationKey(d *dwarfctx.DIE, fn *model.Function) string {
	if linkage, ok := d.String(dwarf.AttrLinkageName); ok && linkage != "" {
		return linkage
	}
	return fn.Name + "@" + strconv.Itoa(len(fn.Parameters))
}

// registerFunction indexes fn for the cross-occurrence parameter-name
// backfill pass Run performs once every unit has been visited.
func (v *Visitor) registerFunction(d *dwarfctx.DIE, fn *model.Function) {
	key := registrationKey(d, fn)
	v.functions[key] = append(v.functions[key], fn)

	names := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		names[i] = p.Name
	}
	v.paramNames[key] = append(v.paramNames[key], names)
}

// backfillParameterNames unions, position by position, every name
// observed for a given function key across all its occurrences (a
// declaration inside a class and a definition outside it, say) and writes
// the result back into every occurrence sharing that key. Occurrences
// with a mismatched parameter count are left alone: the key already
// disambiguates on count, so this only guards against the quirk of two
// genuinely unrelated functions colliding under an unmangled short name.
func (v *Visitor) backfillParameterNames() {
	for key, occurrences := range v.functions {
		names := v.paramNames[key]
		if len(occurrences) == 0 {
			continue
		}
		width := len(occurrences[0].Parameters)

		union := make([]string, width)
		for _, row := range names {
			if len(row) != width {
				continue
			}
			for i, n := range row {
				if union[i] == "" && n != "" {
					union[i] = n
				}
			}
		}

		for _, fn := range occurrences {
			if len(fn.Parameters) != width {
				continue
			}
			for i := range fn.Parameters {
				if fn.Parameters[i].Name == "" {
					fn.Parameters[i].Name = union[i]
				}
			}
		}
	}
}

// buildOrReuseFunctionTemplate attaches a Template wrapper to a function
// template's declaration occurrence.
func (v *Visitor) buildOrReuseFunctionTemplate(d *dwarfctx.DIE, fn *model.Function, params []model.TemplateParameter) *model.Template {
	decl := &model.Function{}
	decl.Name = untemplatedName(fn.Name)
	decl.IsDeclaration = true
	decl.Returns = fn.Returns
	decl.HasReturns = fn.HasReturns
	decl.Parameters = append([]model.Parameter(nil), fn.Parameters...)
	return v.reuseOrStoreTemplate(v.templateKeyFor(d), decl, params)
}
