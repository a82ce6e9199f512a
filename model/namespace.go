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

package model

// Namespace models a DW_TAG_namespace. Namespaces are never filed into a
// line bucket themselves (only their named members are); they exist as
// parent back-references and scope-chain participants.
type Namespace struct {
	Name     string
	Parent   *Namespace
	IsInline bool
}

// QualifiedName is the "::"-joined chain from the nearest outermost named
// ancestor down to this namespace.
func (n *Namespace) QualifiedName() string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return n.Name
	}
	parent := n.Parent.QualifiedName()
	if parent == "" {
		return n.Name
	}
	if n.Name == "" {
		return parent
	}
	return parent + "::" + n.Name
}

// ImportedModule models a DW_TAG_imported_module (a using-directive).
type ImportedModule struct {
	Head
	Import *Namespace
}

func (m *ImportedModule) Equal(other Object) bool {
	o, ok := other.(*ImportedModule)
	return ok && o.Import == m.Import
}

func (m *ImportedModule) Merge(other Object) bool {
	return m.Equal(other)
}

// ImportedDeclaration models a DW_TAG_imported_declaration (a
// using-declaration). The imported entity is either a Namespace (a
// using-namespace-member declaration) or an already-rendered type string
// (a using-declaration for a type or free function).
type ImportedDeclaration struct {
	Head
	ImportNamespace *Namespace
	ImportType      string
}

func (d *ImportedDeclaration) Equal(other Object) bool {
	o, ok := other.(*ImportedDeclaration)
	if !ok {
		return false
	}
	return d.Name == o.Name && d.ImportNamespace == o.ImportNamespace && d.ImportType == o.ImportType
}

func (d *ImportedDeclaration) Merge(other Object) bool {
	return d.Equal(other)
}
