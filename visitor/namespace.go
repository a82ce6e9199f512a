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

// visitNamespace builds a Namespace and recurses into its children. A
// namespace is never itself filed into a file bucket — only its named
// members are — so its Parent is assigned by the caller once this
// returns, not here.
func (v *Visitor) visitNamespace(d *dwarfctx.DIE) (*model.Namespace, error) {
	if err := checkAttributes(d, namespaceAttrs); err != nil {
		return nil, err
	}
	name, _ := d.String(dwarf.AttrName)
	ns := &model.Namespace{Name: name}
	if exported, ok := d.Flag(dwarf.AttrExportSymbols); ok {
		ns.IsInline = exported
	}
	if err := v.visitScopeChildren(d, ns, d.Children()); err != nil {
		return nil, err
	}
	return ns, nil
}

var namespaceAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:          true,
	dwarf.AttrExportSymbols: true,
}

// visitScopeChildren iterates the members of a namespace or compile unit
// root, filing each named declaration under parent and into its
// decl_file/decl_line bucket. Nested namespaces recurse through visit and
// are linked to parent directly; they carry no bucket entry of their own.
func (v *Visitor) visitScopeChildren(scope *dwarfctx.DIE, parent *model.Namespace, children []*dwarfctx.DIE) error {
	for _, c := range children {
		switch c.Tag {
		case dwarf.TagNamespace:
			res, err := v.visit(c)
			if err != nil {
				return err
			}
			if ns, ok := res.(*model.Namespace); ok {
				ns.Parent = parent
			}

		case dwarf.TagImportedModule, dwarf.TagImportedDeclaration,
			dwarf.TagTypedef, dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType,
			dwarf.TagEnumerationType, dwarf.TagVariable, dwarf.TagSubprogram:
			if err := v.visitAndFile(c, parent); err != nil {
				return err
			}

		default:
			if ignorableTag(c.Tag) {
				continue
			}
			return dwarferr.UnhandledChild(uint64(scope.Offset), scope.Tag.String(), c.Tag.String())
		}
	}
	return nil
}

// visitAndFile visits c, assigns parent once, and files the result into
// its decl_file/decl_line bucket. A nil result (a soft-skipped
// Attribute, e.g. the definition side of a static member) is a no-op.
func (v *Visitor) visitAndFile(c *dwarfctx.DIE, parent *model.Namespace) error {
	res, err := v.visit(c)
	if err != nil {
		return err
	}
	obj, ok := res.(model.Object)
	if !ok || obj == nil {
		return nil
	}
	if err := obj.Head().SetParentOnce(parent); err != nil {
		return dwarferr.ShapeViolation(uint64(c.Offset), c.Tag.String(), err.Error())
	}
	v.add(c, obj)
	return nil
}

// visitImportedModule builds an ImportedModule (a using-directive) from a
// DW_AT_import reference that must resolve to a namespace.
func (v *Visitor) visitImportedModule(d *dwarfctx.DIE) (model.Object, error) {
	if err := checkAttributes(d, importedModuleAttrs); err != nil {
		return nil, err
	}
	target, ok := v.ctx.ResolveReference(d, dwarf.AttrImport)
	if !ok {
		return nil, dwarferr.TypeResolution(uint64(d.Offset), d.Tag.String(), errNoImportTarget)
	}
	res, err := v.visit(target)
	if err != nil {
		return nil, err
	}
	ns, ok := res.(*model.Namespace)
	if !ok {
		return nil, dwarferr.ShapeViolation(uint64(d.Offset), d.Tag.String(), "DW_AT_import does not reference a namespace")
	}
	m := &model.ImportedModule{Import: ns}
	return m, nil
}

var importedModuleAttrs = map[dwarf.Attr]bool{
	dwarf.AttrImport: true,
}

// visitImportedDeclaration builds an ImportedDeclaration (a
// using-declaration) from a DW_AT_import reference to either a namespace
// member (recorded by reference) or a type/free function (recorded by its
// rendered spelling).
func (v *Visitor) visitImportedDeclaration(d *dwarfctx.DIE) (model.Object, error) {
	if err := checkAttributes(d, importedDeclarationAttrs); err != nil {
		return nil, err
	}
	name, _ := d.String(dwarf.AttrName)
	target, ok := v.ctx.ResolveReference(d, dwarf.AttrImport)
	if !ok {
		return nil, dwarferr.TypeResolution(uint64(d.Offset), d.Tag.String(), errNoImportTarget)
	}

	decl := &model.ImportedDeclaration{}
	decl.Name = name

	if target.Tag == dwarf.TagNamespace {
		res, err := v.visit(target)
		if err != nil {
			return nil, err
		}
		ns, ok := res.(*model.Namespace)
		if !ok {
			return nil, dwarferr.ShapeViolation(uint64(d.Offset), d.Tag.String(), "DW_AT_import does not reference a namespace")
		}
		decl.ImportNamespace = ns
		return decl, nil
	}

	s, err := v.printer.Joined(target)
	if err != nil {
		return nil, err
	}
	decl.ImportType = s
	return decl, nil
}

var importedDeclarationAttrs = map[dwarf.Attr]bool{
	dwarf.AttrName:   true,
	dwarf.AttrImport: true,
}
