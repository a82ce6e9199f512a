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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxxreflect/dwarfrecon/model"
)

func memberDIE(off dwarf.Offset, name string, line int64) *dwarf.Entry {
	return &dwarf.Entry{
		Offset: off,
		Tag:    dwarf.TagMember,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: name, Class: dwarf.ClassString},
			{Attr: dwarf.AttrDeclLine, Val: line, Class: dwarf.ClassConstant},
		},
	}
}

func TestHandleStructDefaultAccessByKind(t *testing.T) {
	cls := &dwarf.Entry{
		Offset:   0x10,
		Tag:      dwarf.TagClassType,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "C", Class: dwarf.ClassString}},
	}
	entries := []*dwarf.Entry{cls, memberDIE(0x11, "x", 1), terminator()}
	v, ctx := newTestVisitor(t, entries)

	s, err := v.handleStruct(die(t, ctx, 0x10), model.KindClass)
	require.NoError(t, err)
	require.Len(t, s.Members[1], 1)
	require.Equal(t, model.AccessPrivate, s.Members[1][0].Head().Access)

	str := &dwarf.Entry{
		Offset:   0x20,
		Tag:      dwarf.TagStructType,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "S", Class: dwarf.ClassString}},
	}
	entries2 := []*dwarf.Entry{str, memberDIE(0x21, "y", 1), terminator()}
	v2, ctx2 := newTestVisitor(t, entries2)

	s2, err := v2.handleStruct(die(t, ctx2, 0x20), model.KindStruct)
	require.NoError(t, err)
	require.Equal(t, model.AccessPublic, s2.Members[1][0].Head().Access)
}

func TestHandleStructMemberCapDropsOverflow(t *testing.T) {
	root := &dwarf.Entry{
		Offset:   0x10,
		Tag:      dwarf.TagStructType,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "Wide", Class: dwarf.ClassString}},
	}
	entries := []*dwarf.Entry{
		root,
		memberDIE(0x11, "a", 5),
		memberDIE(0x12, "b", 5),
		memberDIE(0x13, "c", 5),
		memberDIE(0x14, "d", 5),
		memberDIE(0x15, "e", 5),
		terminator(),
	}
	v, ctx := newTestVisitor(t, entries)
	v.opts.StructMemberCap = 4

	s, err := v.handleStruct(die(t, ctx, 0x10), model.KindStruct)
	require.NoError(t, err)
	require.Len(t, s.Members[5], 4)
}

func TestUntemplatedName(t *testing.T) {
	require.Equal(t, "Vector", untemplatedName("Vector<int>"))
	require.Equal(t, "Plain", untemplatedName("Plain"))
}

func TestSuppressReturnsForConstructorDestructorAndOperator(t *testing.T) {
	ctor := &model.Function{Returns: "void", HasReturns: true}
	ctor.Name = "Widget"
	suppressReturnsForMember("Widget", ctor)
	require.False(t, ctor.HasReturns)
	require.Empty(t, ctor.Returns)

	dtor := &model.Function{Returns: "void", HasReturns: true}
	dtor.Name = "~Widget"
	suppressReturnsForMember("Widget", dtor)
	require.False(t, dtor.HasReturns)

	conv := &model.Function{Returns: "int", HasReturns: true}
	conv.Name = "operator int"
	suppressReturnsForMember("Widget", conv)
	require.False(t, conv.HasReturns)

	ordinary := &model.Function{Returns: "int", HasReturns: true}
	ordinary.Name = "doThing"
	suppressReturnsForMember("Widget", ordinary)
	require.True(t, ordinary.HasReturns)
	require.Equal(t, "int", ordinary.Returns)

	ctorTemplate := &model.Function{Returns: "void", HasReturns: true}
	ctorTemplate.Name = "Vector"
	suppressReturnsForMember("Vector<int>", ctorTemplate)
	require.False(t, ctorTemplate.HasReturns)
}

func TestHandleInheritanceRendersVirtualBase(t *testing.T) {
	base := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagClassType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "Base", Class: dwarf.ClassString}},
	}
	inh := &dwarf.Entry{
		Offset: 0x20,
		Tag:    dwarf.TagInheritance,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrType, Val: dwarf.Offset(0x10), Class: dwarf.ClassReference},
			{Attr: dwarf.AttrVirtuality, Val: int64(1), Class: dwarf.ClassConstant},
		},
	}

	entries := []*dwarf.Entry{base, inh}
	v, ctx := newTestVisitor(t, entries)

	b, err := v.handleInheritance(die(t, ctx, 0x20), model.AccessPrivate)
	require.NoError(t, err)
	require.Equal(t, "virtual Base", b.Type)
	require.Equal(t, model.AccessPrivate, b.Access)
}
