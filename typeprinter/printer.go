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

// Package typeprinter renders a DWARF type DIE as a PL (C++-like) type
// expression, in either joined form (a single string) or split form (a
// before/after pair a declarator is built around). It follows the
// modifier chain (pointer, reference, rvalue-reference, const, volatile,
// restrict, atomic, array, subroutine, pointer-to-member, typedef) down
// to a named or basic leaf, the same way the teacher's dwarf_builder.go
// walks TagPointerType/TagConstType/TagArrayType chains to build a
// SourceType, except recursively rather than in the teacher's
// three-pass-over-bld.order style, since the DIE graph here already
// carries real parent/child and reference edges.
package typeprinter

import (
	"errors"
	"strconv"
	"strings"

	"debug/dwarf"

	"github.com/cxxreflect/dwarfrecon/dwarferr"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
	"github.com/cxxreflect/dwarfrecon/normalizer"
)

var errNoContainingType = errors.New("ptr-to-member has no DW_AT_containing_type")

// Printer renders DIEs reachable through a single Context. It is stateless
// beyond that and safe for concurrent use; nothing it computes depends on
// call order.
type Printer struct {
	ctx *dwarfctx.Context
}

// New returns a Printer over ctx.
func New(ctx *dwarfctx.Context) *Printer {
	return &Printer{ctx: ctx}
}

// Joined renders d as a single type string, e.g. "const Foo<int> *". A nil
// d (no DW_AT_type attribute was present on the referring DIE) renders as
// "void".
func (p *Printer) Joined(d *dwarfctx.DIE) (string, error) {
	s, err := p.Split(d)
	if err != nil {
		return "", err
	}
	return normalizer.Normalize(strings.TrimSpace(s.Before + s.After)), nil
}

// Split renders d as a (before, after) declarator pair: before + " " +
// name + after is a valid declarator for a variable of this type.
func (p *Printer) Split(d *dwarfctx.DIE) (model.SplitType, error) {
	if d == nil {
		return model.SplitType{Before: "void"}, nil
	}
	return p.split(d)
}

func (p *Printer) typeOf(d *dwarfctx.DIE) (*dwarfctx.DIE, bool) {
	return p.ctx.ResolveReference(d, dwarf.AttrType)
}

func (p *Printer) splitOfType(d *dwarfctx.DIE) (model.SplitType, error) {
	t, ok := p.typeOf(d)
	if !ok {
		return model.SplitType{Before: "void"}, nil
	}
	return p.split(t)
}

func (p *Printer) split(d *dwarfctx.DIE) (model.SplitType, error) {
	switch d.Tag {
	case dwarf.TagBaseType, dwarf.TagUnspecifiedType:
		name, _ := d.String(dwarf.AttrName)
		return model.SplitType{Before: name}, nil

	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType,
		dwarf.TagEnumerationType, dwarf.TagTypedef:
		name, err := p.QualifiedName(d)
		if err != nil {
			return model.SplitType{}, err
		}
		return model.SplitType{Before: name}, nil

	case dwarf.TagPointerType:
		inner, err := p.splitOfType(d)
		if err != nil {
			return model.SplitType{}, err
		}
		return wrapModifier(inner, "*"), nil

	case dwarf.TagReferenceType:
		inner, err := p.splitOfType(d)
		if err != nil {
			return model.SplitType{}, err
		}
		if refQualifiesSubroutine(d, p) {
			return appendTrailing(inner, "&"), nil
		}
		return wrapModifier(inner, "&"), nil

	case dwarf.TagRvalueReferenceType:
		inner, err := p.splitOfType(d)
		if err != nil {
			return model.SplitType{}, err
		}
		if refQualifiesSubroutine(d, p) {
			return appendTrailing(inner, "&&"), nil
		}
		return wrapModifier(inner, "&&"), nil

	case dwarf.TagConstType:
		return p.splitCV(d, "const")
	case dwarf.TagVolatileType:
		return p.splitCV(d, "volatile")
	case dwarf.TagAtomicType:
		return p.splitCV(d, "_Atomic")
	case dwarf.TagRestrictType:
		return p.splitCV(d, "restrict")

	case dwarf.TagArrayType:
		inner, err := p.splitOfType(d)
		if err != nil {
			return model.SplitType{}, err
		}
		dims, err := p.arrayDims(d)
		if err != nil {
			return model.SplitType{}, err
		}
		return model.SplitType{Before: inner.Before, After: dims + inner.After}, nil

	case dwarf.TagSubroutineType:
		return p.splitSubroutine(d)

	case dwarf.TagPtrToMemberType:
		return p.splitPtrToMember(d)

	default:
		return model.SplitType{}, dwarferr.UnhandledTag(uint64(d.Offset), d.Tag.String())
	}
}

// splitCV renders a cv/atomic/restrict-qualified type. Applied directly to
// a subroutine type it is a member-function qualifier and goes after the
// parameter list ("void f() const"); applied to anything else it is a
// pointee qualifier and goes before ("const Foo *").
func (p *Printer) splitCV(d *dwarfctx.DIE, keyword string) (model.SplitType, error) {
	t, ok := p.typeOf(d)
	if !ok {
		return model.SplitType{Before: keyword + " void"}, nil
	}
	inner, err := p.split(t)
	if err != nil {
		return model.SplitType{}, err
	}
	if t.Tag == dwarf.TagSubroutineType {
		return appendTrailing(inner, keyword), nil
	}
	before := keyword
	if inner.Before != "" {
		before = keyword + " " + inner.Before
	}
	return model.SplitType{Before: before, After: inner.After}, nil
}

func (p *Printer) arrayDims(d *dwarfctx.DIE) (string, error) {
	var b strings.Builder
	for _, c := range d.Children() {
		if c.Tag != dwarf.TagSubrangeType {
			continue
		}
		if upper, ok := c.Int(dwarf.AttrUpperBound); ok {
			b.WriteString("[" + strconv.FormatInt(upper+1, 10) + "]")
			continue
		}
		if count, ok := c.Int(dwarf.AttrCount); ok {
			b.WriteString("[" + strconv.FormatInt(count, 10) + "]")
			continue
		}
		b.WriteString("[]")
	}
	return b.String(), nil
}

func (p *Printer) splitSubroutine(d *dwarfctx.DIE) (model.SplitType, error) {
	ret, err := p.splitOfType(d)
	if err != nil {
		return model.SplitType{}, err
	}
	params, err := p.paramList(d)
	if err != nil {
		return model.SplitType{}, err
	}
	return model.SplitType{Before: ret.Before, After: "(" + params + ")" + ret.After}, nil
}

func (p *Printer) paramList(d *dwarfctx.DIE) (string, error) {
	var parts []string
	for _, c := range d.Children() {
		switch c.Tag {
		case dwarf.TagFormalParameter:
			if artificial, ok := c.Flag(dwarf.AttrArtificial); ok && artificial {
				continue
			}
			t, ok := p.typeOf(c)
			if !ok {
				parts = append(parts, "void")
				continue
			}
			s, err := p.Joined(t)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		case dwarf.TagUnspecifiedParameters:
			parts = append(parts, "...")
		}
	}
	return strings.Join(parts, ", "), nil
}

func (p *Printer) splitPtrToMember(d *dwarfctx.DIE) (model.SplitType, error) {
	containing, ok := p.ctx.ResolveReference(d, dwarf.AttrContainingType)
	if !ok {
		return model.SplitType{}, dwarferr.TypeResolution(uint64(d.Offset), d.Tag.String(),
			errNoContainingType)
	}
	className, err := p.QualifiedName(containing)
	if err != nil {
		return model.SplitType{}, err
	}
	inner, err := p.splitOfType(d)
	if err != nil {
		return model.SplitType{}, err
	}
	return wrapModifier(inner, className+"::*"), nil
}

// wrapModifier attaches a pointer-shaped token ("*", "&", "&&", "Cls::*")
// to inner. When inner is itself array- or function-shaped (its After is
// non-empty) the token has to be grouped in parens, or it would bind to
// the array/parameter-list brackets instead of the pointee: "int (*p)[4]",
// not "int *p[4]" (an array of pointers — a different type).
func wrapModifier(inner model.SplitType, token string) model.SplitType {
	if inner.After != "" {
		return model.SplitType{Before: pad(inner.Before) + "(" + token, After: ")" + inner.After}
	}
	return model.SplitType{Before: pad(inner.Before) + token}
}

func appendTrailing(inner model.SplitType, token string) model.SplitType {
	after := inner.After
	if after != "" {
		after += " "
	}
	return model.SplitType{Before: inner.Before, After: after + token}
}

func pad(s string) string {
	if s == "" {
		return ""
	}
	return s + " "
}

// refQualifiesSubroutine reports whether d (a reference or rvalue
// reference type) applies directly to a subroutine type, i.e. is a
// member-function ref-qualifier rather than an ordinary "T&"/"T&&".
func refQualifiesSubroutine(d *dwarfctx.DIE, p *Printer) bool {
	t, ok := p.typeOf(d)
	return ok && t.Tag == dwarf.TagSubroutineType
}
