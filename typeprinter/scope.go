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

package typeprinter

import (
	"strconv"
	"strings"

	"debug/dwarf"

	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/normalizer"
)

// scopedTags mirrors the Python original's scoped_tags set: only these
// tags contribute a name to a scope chain. Everything else (lexical
// blocks, subprograms, formal parameters...) is transparent and climbed
// past to find the nearest outermost named ancestor.
func scopedTag(tag dwarf.Tag) bool {
	switch tag {
	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType,
		dwarf.TagNamespace, dwarf.TagEnumerationType, dwarf.TagTypedef:
		return true
	default:
		return false
	}
}

// QualifiedName renders d's fully scoped name: the "::"-joined chain of
// named ancestor scopes, followed by d's own name and, if d has template
// parameter children, its "<arg, ...>" suffix.
func (p *Printer) QualifiedName(d *dwarfctx.DIE) (string, error) {
	scopes, err := p.scopeChain(d.Parent())
	if err != nil {
		return "", err
	}
	own, err := p.unqualifiedName(d)
	if err != nil {
		return "", err
	}
	if scopes == "" {
		return normalizer.Normalize(own), nil
	}
	return normalizer.Normalize(scopes + "::" + own), nil
}

func (p *Printer) scopeChain(d *dwarfctx.DIE) (string, error) {
	if d == nil {
		return "", nil
	}
	if !scopedTag(d.Tag) {
		return p.scopeChain(d.Parent())
	}

	parent, err := p.scopeChain(d.Parent())
	if err != nil {
		return "", err
	}
	name, err := p.unqualifiedName(d)
	if err != nil {
		return "", err
	}
	if name == "" {
		return parent, nil
	}
	if parent == "" {
		return name, nil
	}
	return parent + "::" + name, nil
}

func (p *Printer) unqualifiedName(d *dwarfctx.DIE) (string, error) {
	name, _ := d.String(dwarf.AttrName)
	args, err := p.templateArgs(d.Children())
	if err != nil {
		return "", err
	}
	return name + args, nil
}

// templateArgs renders the "<arg1, arg2, ...>" suffix for a template
// instantiation from its template_type_parameter / template_value_parameter
// / vendor template_template_param / template_parameter_pack children.
// A parameter pack's own children expand inline into the surrounding list
// rather than nesting their own brackets.
func (p *Printer) templateArgs(children []*dwarfctx.DIE) (string, error) {
	args, err := p.collectTemplateArgs(children)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}
	return "<" + strings.Join(args, ", ") + ">", nil
}

func (p *Printer) collectTemplateArgs(children []*dwarfctx.DIE) ([]string, error) {
	var args []string
	for _, c := range children {
		switch c.Tag {
		case dwarf.TagTemplateTypeParameter:
			t, ok := p.typeOf(c)
			if !ok {
				continue
			}
			s, err := p.Joined(t)
			if err != nil {
				return nil, err
			}
			args = append(args, s)

		case dwarf.TagTemplateValueParameter:
			args = append(args, templateValueLiteral(c))

		case dwarfctx.TagGNUTemplateTemplateParam:
			if name, ok := c.String(dwarf.AttrName); ok {
				args = append(args, name)
			}

		case dwarfctx.TagGNUTemplateParameterPack:
			nested, err := p.collectTemplateArgs(c.Children())
			if err != nil {
				return nil, err
			}
			args = append(args, nested...)
		}
	}
	return args, nil
}

// templateValueLiteral renders a template_value_parameter's bound
// constant. debug/dwarf decodes DW_AT_const_value as either a string, a
// signed integer, or a raw byte block depending on the producer's chosen
// form; only the first two are renderable as a PL literal.
func templateValueLiteral(c *dwarfctx.DIE) string {
	if s, ok := c.String(dwarf.AttrConstValue); ok {
		return s
	}
	if v, ok := c.Int(dwarf.AttrConstValue); ok {
		return strconv.FormatInt(v, 10)
	}
	return "0"
}
