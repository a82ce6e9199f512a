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

func TestVisitSubprogramDefinitionInheritsFromSpecification(t *testing.T) {
	// class Widget { int bar(int); };    // declaration at 0x21
	// int Widget::bar(int x) { ... }     // definition at 0x30, out of class
	cls := &dwarf.Entry{
		Offset:   0x10,
		Tag:      dwarf.TagClassType,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "Widget", Class: dwarf.ClassString}},
	}
	intType := &dwarf.Entry{
		Offset: 0x20,
		Tag:    dwarf.TagBaseType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "int", Class: dwarf.ClassString}},
	}
	decl := &dwarf.Entry{
		Offset: 0x21,
		Tag:    dwarf.TagSubprogram,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "bar", Class: dwarf.ClassString},
			{Attr: dwarf.AttrType, Val: dwarf.Offset(0x20), Class: dwarf.ClassReference},
			{Attr: dwarf.AttrDeclaration, Val: true, Class: dwarf.ClassFlag},
		},
	}
	definition := &dwarf.Entry{
		Offset:   0x30,
		Tag:      dwarf.TagSubprogram,
		Children: true,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrSpecification, Val: dwarf.Offset(0x21), Class: dwarf.ClassReference},
		},
	}
	param := &dwarf.Entry{
		Offset: 0x31,
		Tag:    dwarf.TagFormalParameter,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "x", Class: dwarf.ClassString},
			{Attr: dwarf.AttrType, Val: dwarf.Offset(0x20), Class: dwarf.ClassReference},
		},
	}

	entries := []*dwarf.Entry{
		intType,
		cls, decl, terminator(),
		definition, param, terminator(),
	}
	v, ctx := newTestVisitor(t, entries)

	res, err := v.visit(die(t, ctx, 0x30))
	require.NoError(t, err)
	fn := res.(*model.Function)

	require.Equal(t, "Widget::bar", fn.Name)
	require.Equal(t, "int", fn.Returns)
	require.True(t, fn.HasReturns)
	require.Len(t, fn.Parameters, 1)
	require.Equal(t, "x", fn.Parameters[0].Name)
}

func TestVisitSubprogramArtificialIsSoftSkip(t *testing.T) {
	fn := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagSubprogram,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "__synth", Class: dwarf.ClassString},
			{Attr: dwarf.AttrArtificial, Val: true, Class: dwarf.ClassFlag},
		},
	}
	entries := []*dwarf.Entry{fn}
	v, ctx := newTestVisitor(t, entries)

	res, err := v.visit(die(t, ctx, 0x10))
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestVisitSubprogramVariadicParameter(t *testing.T) {
	fn := &dwarf.Entry{
		Offset:   0x10,
		Tag:      dwarf.TagSubprogram,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "log", Class: dwarf.ClassString}},
	}
	variadic := &dwarf.Entry{Offset: 0x11, Tag: dwarf.TagUnspecifiedParameters}

	entries := []*dwarf.Entry{fn, variadic, terminator()}
	v, ctx := newTestVisitor(t, entries)

	res, err := v.visit(die(t, ctx, 0x10))
	require.NoError(t, err)
	got := res.(*model.Function)
	require.Len(t, got.Parameters, 1)
	require.Equal(t, model.ParameterVariadic, got.Parameters[0].Kind)
}

func TestDetectConstAndStaticNoObjectPointerIsStatic(t *testing.T) {
	fn := &dwarf.Entry{Offset: 0x10, Tag: dwarf.TagSubprogram}
	entries := []*dwarf.Entry{fn}
	v, ctx := newTestVisitor(t, entries)

	isConst, isStatic, err := v.detectConstAndStatic(die(t, ctx, 0x10))
	require.NoError(t, err)
	require.False(t, isConst)
	require.True(t, isStatic)
}

func TestDetectConstAndStaticWalksPointerToConst(t *testing.T) {
	cls := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagClassType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "Widget", Class: dwarf.ClassString}},
	}
	constOfCls := &dwarf.Entry{
		Offset: 0x11,
		Tag:    dwarf.TagConstType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrType, Val: dwarf.Offset(0x10), Class: dwarf.ClassReference}},
	}
	ptrToConst := &dwarf.Entry{
		Offset: 0x12,
		Tag:    dwarf.TagPointerType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrType, Val: dwarf.Offset(0x11), Class: dwarf.ClassReference}},
	}
	thisParam := &dwarf.Entry{
		Offset: 0x20,
		Tag:    dwarf.TagFormalParameter,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrArtificial, Val: true, Class: dwarf.ClassFlag},
			{Attr: dwarf.AttrType, Val: dwarf.Offset(0x12), Class: dwarf.ClassReference},
		},
	}
	fn := &dwarf.Entry{
		Offset:   0x30,
		Tag:      dwarf.TagSubprogram,
		Children: true,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrObjectPointer, Val: dwarf.Offset(0x20), Class: dwarf.ClassReference},
		},
	}

	entries := []*dwarf.Entry{cls, constOfCls, ptrToConst, thisParam, fn, terminator()}
	v, ctx := newTestVisitor(t, entries)

	isConst, isStatic, err := v.detectConstAndStatic(die(t, ctx, 0x30))
	require.NoError(t, err)
	require.True(t, isConst)
	require.False(t, isStatic)
}

func TestRegistrationKeyPrefersLinkageName(t *testing.T) {
	withLinkage := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagSubprogram,
		Field:  []dwarf.Field{{Attr: dwarf.AttrLinkageName, Val: "_Z3fooi", Class: dwarf.ClassString}},
	}
	entries := []*dwarf.Entry{withLinkage}
	_, ctx := newTestVisitor(t, entries)

	fn := &model.Function{}
	fn.Name = "foo"
	require.Equal(t, "_Z3fooi", registrationKey(die(t, ctx, 0x10), fn))

	noLinkage := &dwarf.Entry{Offset: 0x20, Tag: dwarf.TagSubprogram}
	entries2 := []*dwarf.Entry{noLinkage}
	_, ctx2 := newTestVisitor(t, entries2)
	fn2 := &model.Function{Parameters: []model.Parameter{{Type: "int"}}}
	fn2.Name = "foo"
	require.Equal(t, "foo@1", registrationKey(die(t, ctx2, 0x20), fn2))
}

func TestBackfillParameterNamesUnionsAcrossOccurrences(t *testing.T) {
	v, _ := newTestVisitor(t, nil)

	declFn := &model.Function{Parameters: []model.Parameter{{Type: "int"}, {Type: "int"}}}
	declFn.Name = "Widget::bar"
	defFn := &model.Function{Parameters: []model.Parameter{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}}}
	defFn.Name = "Widget::bar"

	v.functions["key"] = []*model.Function{declFn, defFn}
	v.paramNames["key"] = [][]string{{"", ""}, {"a", "b"}}

	v.backfillParameterNames()

	require.Equal(t, "a", declFn.Parameters[0].Name)
	require.Equal(t, "b", declFn.Parameters[1].Name)
	require.Equal(t, "a", defFn.Parameters[0].Name)
}
