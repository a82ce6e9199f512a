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

func TestVisitNamespaceNestsAndQualifies(t *testing.T) {
	outer := &dwarf.Entry{
		Offset:   0x10,
		Tag:      dwarf.TagNamespace,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "outer", Class: dwarf.ClassString}},
	}
	inner := &dwarf.Entry{
		Offset:   0x20,
		Tag:      dwarf.TagNamespace,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "inner", Class: dwarf.ClassString}},
	}

	entries := []*dwarf.Entry{outer, inner, terminator(), terminator()}
	v, ctx := newTestVisitor(t, entries)

	outerDIE := die(t, ctx, 0x10)
	res, err := v.visit(outerDIE)
	require.NoError(t, err)
	outerNS, ok := res.(*model.Namespace)
	require.True(t, ok)
	require.Equal(t, "outer", outerNS.Name)

	innerDIE := die(t, ctx, 0x20)
	res, err = v.visit(innerDIE)
	require.NoError(t, err)
	innerNS, ok := res.(*model.Namespace)
	require.True(t, ok)

	require.Same(t, outerNS, innerNS.Parent)
	require.Equal(t, "outer::inner", innerNS.QualifiedName())
}

func TestVisitNamespaceInlineFlag(t *testing.T) {
	ns := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagNamespace,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "detail", Class: dwarf.ClassString},
			{Attr: dwarf.AttrExportSymbols, Val: true, Class: dwarf.ClassFlag},
		},
	}

	entries := []*dwarf.Entry{ns}
	v, ctx := newTestVisitor(t, entries)

	d := die(t, ctx, 0x10)
	res, err := v.visit(d)
	require.NoError(t, err)
	got, ok := res.(*model.Namespace)
	require.True(t, ok)
	require.True(t, got.IsInline)
}

func TestVisitImportedModuleRequiresNamespaceTarget(t *testing.T) {
	ns := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagNamespace,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "std", Class: dwarf.ClassString}},
	}
	using := &dwarf.Entry{
		Offset: 0x20,
		Tag:    dwarf.TagImportedModule,
		Field:  []dwarf.Field{{Attr: dwarf.AttrImport, Val: dwarf.Offset(0x10), Class: dwarf.ClassReference}},
	}

	entries := []*dwarf.Entry{ns, using}
	v, ctx := newTestVisitor(t, entries)

	d := die(t, ctx, 0x20)
	res, err := v.visit(d)
	require.NoError(t, err)
	obj, ok := res.(model.Object)
	require.True(t, ok)
	im, ok := obj.(*model.ImportedModule)
	require.True(t, ok)
	require.Equal(t, "std", im.Import.Name)
}

func TestVisitImportedDeclarationOfType(t *testing.T) {
	base := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagStructType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "Widget", Class: dwarf.ClassString}},
	}
	using := &dwarf.Entry{
		Offset: 0x20,
		Tag:    dwarf.TagImportedDeclaration,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "Widget", Class: dwarf.ClassString},
			{Attr: dwarf.AttrImport, Val: dwarf.Offset(0x10), Class: dwarf.ClassReference},
		},
	}

	entries := []*dwarf.Entry{base, using}
	v, ctx := newTestVisitor(t, entries)

	d := die(t, ctx, 0x20)
	res, err := v.visit(d)
	require.NoError(t, err)
	obj := res.(model.Object)
	decl := obj.(*model.ImportedDeclaration)
	require.Equal(t, "Widget", decl.ImportType)
	require.Nil(t, decl.ImportNamespace)
}
