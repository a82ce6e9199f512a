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

// buildTemplateParameter builds a single TemplateParameter from one of the
// four DWARF template-parameter shapes. A parameter pack recurses into its
// own children; when every one of them shares a type and carries a bound
// value, the pack's Type is elevated to that shared type.
func (v *Visitor) buildTemplateParameter(c *dwarfctx.DIE) (model.TemplateParameter, error) {
	name, _ := c.String(dwarf.AttrName)

	switch c.Tag {
	case dwarf.TagTemplateTypeParameter:
		if err := checkAttributes(c, templateTypeParamAttrs); err != nil {
			return model.TemplateParameter{}, err
		}
		typeStr, err := v.renderOptionalType(c)
		if err != nil {
			return model.TemplateParameter{}, err
		}
		p := model.TemplateParameter{Name: name, Kind: model.TemplateParamType, Type: typeStr}
		p.Default = defaultValueText(c, typeStr, "")
		return p, nil

	case dwarf.TagTemplateValueParameter:
		if err := checkAttributes(c, templateValueParamAttrs); err != nil {
			return model.TemplateParameter{}, err
		}
		typeStr, err := v.renderOptionalType(c)
		if err != nil {
			return model.TemplateParameter{}, err
		}
		arg, hasArg := renderConstValue(c, typeStr)
		p := model.TemplateParameter{
			Name: name, Kind: model.TemplateParamConstant,
			Type: typeStr, Arg: arg, HasArg: hasArg,
		}
		p.Default = defaultValueText(c, typeStr, arg)
		return p, nil

	case dwarfctx.TagGNUTemplateTemplateParam:
		if err := checkAttributes(c, templateTemplateParamAttrs); err != nil {
			return model.TemplateParameter{}, err
		}
		bound, _ := c.String(dwarfctx.AttrGNUTemplateName)
		return model.TemplateParameter{Name: name, Kind: model.TemplateParamTemplate, Type: bound}, nil

	case dwarfctx.TagGNUTemplateParameterPack:
		if err := checkAttributes(c, templateParameterPackAttrs); err != nil {
			return model.TemplateParameter{}, err
		}
		inner := make([]model.TemplateParameter, 0, len(c.Children()))
		for _, cc := range c.Children() {
			p, err := v.buildTemplateParameter(cc)
			if err != nil {
				return model.TemplateParameter{}, err
			}
			inner = append(inner, p)
		}
		pack := model.TemplateParameter{Name: name, Kind: model.TemplateParamPack, Inner: inner}
		if t, ok := packElevatedType(inner); ok {
			pack.Type = t
		}
		return pack, nil

	default:
		return model.TemplateParameter{}, dwarferr.UnhandledTag(uint64(c.Offset), c.Tag.String())
	}
}

var templateTypeParamAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:         true,
	dwarf.AttrType:         true,
	dwarf.AttrDefaultValue: true,
}

var templateValueParamAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:         true,
	dwarf.AttrType:         true,
	dwarf.AttrConstValue:   true,
	dwarf.AttrDefaultValue: true,
}

var templateTemplateParamAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:               true,
	dwarfctx.AttrGNUTemplateName: true,
}

var templateParameterPackAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName: true,
}

func (v *Visitor) renderOptionalType(c *dwarfctx.DIE) (string, error) {
	t, ok := v.ctx.ResolveReference(c, dwarf.AttrType)
	if !ok {
		return "", nil
	}
	return v.printer.Joined(t)
}

// defaultValueText renders DW_AT_default_value as an opaque textual
// rendering derived from whichever of (typeStr, arg) the parameter's kind
// designates: a type parameter's default is its type, a value parameter's
// is its bound argument (falling back to its type if the argument could
// not be decoded). The source's own handling of this attribute copies
// type in some places and value in others; this is the single rule the
// specification settles on.
func defaultValueText(c *dwarfctx.DIE, typeStr, arg string) string {
	if !c.Has(dwarf.AttrDefaultValue) {
		return ""
	}
	if arg != "" {
		return arg
	}
	return typeStr
}

// packElevatedType reports the type every entry of a parameter pack
// shares, when all of them carry a bound value of that same type.
func packElevatedType(inner []model.TemplateParameter) (string, bool) {
	if len(inner) == 0 {
		return "", false
	}
	t := inner[0].Type
	if t == "" {
		return "", false
	}
	for _, p := range inner {
		if !p.HasArg || p.Type != t {
			return "", false
		}
	}
	return t, true
}

// templateKeyFor derives the dedup key for a struct/attribute's Template
// wrapper: the enclosing scope and the declaration line, shared by every
// instantiation of the same template at that source location.
func (v *Visitor) templateKeyFor(d *dwarfctx.DIE) templateKey {
	line, _ := d.Int(dwarf.AttrDeclLine)
	var parentKey cacheKey
	if p := d.Parent(); p != nil {
		parentKey = keyFor(p)
	}
	return templateKey{parent: parentKey, line: line}
}

// reuseOrStoreTemplate returns the cached Template at tk if candidate
// merges into it, otherwise registers candidate as the new occupant.
func (v *Visitor) reuseOrStoreTemplate(tk templateKey, decl model.Object, params []model.TemplateParameter) *model.Template {
	candidate := &model.Template{Declaration: decl, Parameters: params}
	if existing, ok := v.templates[tk]; ok && existing.Merge(candidate) {
		return existing
	}
	v.templates[tk] = candidate
	return candidate
}

// buildOrReuseStructTemplate attaches a Template wrapper to a composite
// type with template-parameter children: the declaration is a fresh,
// member-less, base-less, alignment-less Struct named by the
// un-templated base name, matching every concrete instantiation that
// shares this declaration site.
func (v *Visitor) buildOrReuseStructTemplate(d *dwarfctx.DIE, s *model.Struct, params []model.TemplateParameter) (*model.Template, error) {
	decl := model.NewStruct(s.Kind, untemplatedName(s.Name))
	decl.IsDeclaration = true
	decl.Access = s.Access
	return v.reuseOrStoreTemplate(v.templateKeyFor(d), decl, params), nil
}

// buildOrReuseAttributeTemplate is the same reuse-or-build step for a
// templated static data member.
func (v *Visitor) buildOrReuseAttributeTemplate(d *dwarfctx.DIE, a *model.Attribute, params []model.TemplateParameter) *model.Template {
	decl := &model.Attribute{}
	decl.Name = untemplatedName(a.Name)
	decl.IsDeclaration = true
	decl.Type = a.Type
	decl.TypeSplit = a.TypeSplit
	decl.IsSplit = a.IsSplit
	return v.reuseOrStoreTemplate(v.templateKeyFor(d), decl, params)
}
