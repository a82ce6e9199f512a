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

// Package model is the in-memory semantic model the Visitor builds from
// DWARF and the File Assembler reduces: namespaces, types, functions,
// attributes and templates, each with an equality and a merge operation.
package model

import "github.com/pkg/errors"

// Access is the visibility of a member, base class, or declaration.
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessPrivate
	AccessProtected
)

// Virtuality describes whether a member function overrides or may be
// overridden.
type Virtuality int

const (
	VirtualityNone Virtuality = iota
	VirtualityVirtual
	VirtualityPureVirtual
)

// Object is implemented by every entity the Visitor can file into a line
// bucket: ImportedModule, ImportedDeclaration, Attribute, Function,
// Struct, Enum and TypeDef. Namespace and Template are not Objects: a
// Namespace is never filed, and Template has its own Equal/Merge over
// *Template.
//
// Equal reports structural equality (names, kinds, and signature-defining
// fields — never addresses or parent pointers). Merge attempts to absorb
// other into the receiver, returning true if it succeeded; on success the
// receiver has been mutated to the union of both and other should be
// discarded. Merge must not mutate either side when it returns false.
type Object interface {
	Equal(other Object) bool
	Merge(other Object) bool

	// Head returns the object's common header for parent/access bookkeeping.
	Head() *Head
}

// Head is the common header embedded in every model object.
type Head struct {
	Name         string
	Parent       *Namespace
	IsImplicit   bool
	IsDeclaration bool
	Access       Access
	Template     *Template
}

func (h *Head) Head() *Head { return h }

// SetParentOnce assigns parent, returning an error if a different parent
// is already set (assigning the same parent again is allowed). Every
// non-namespace object's parent is set exactly once, at the moment it is
// filed into its enclosing namespace or type — a second assignment
// indicates a shape violation in the DWARF tree (a DIE visited as the
// child of two different scopes), which is fatal per the engine's error
// taxonomy.
func (h *Head) SetParentOnce(parent *Namespace) error {
	if h.Parent != nil && h.Parent != parent {
		return errors.Errorf("object %q already has a parent", h.Name)
	}
	h.Parent = parent
	return nil
}
