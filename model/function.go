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

// Function models a DW_TAG_subprogram. Returns is absent (empty string,
// HasReturns false) for constructors, destructors, and conversion
// operators, which never render a return type.
type Function struct {
	Head

	Parameters []Parameter
	Returns    string
	HasReturns bool

	Noreturn   bool
	IsExplicit bool
	IsDeleted  bool
	IsInline   bool
	IsStatic   bool
	IsConst    bool

	Virtuality Virtuality
}

// ClearReturns marks the function as having no return type, for
// constructors, destructors, and conversion operators.
func (f *Function) ClearReturns() {
	f.Returns = ""
	f.HasReturns = false
}

func (f *Function) signature() (name, returns string, positional []string) {
	name = f.Name
	returns = f.Returns
	for _, p := range f.Parameters {
		if p.Kind == ParameterVariadic {
			positional = append(positional, "...")
			continue
		}
		positional = append(positional, p.Type)
	}
	return
}

func (f *Function) Equal(other Object) bool {
	o, ok := other.(*Function)
	if !ok {
		return false
	}
	fn, fr, fp := f.signature()
	on, or, op := o.signature()
	if fn != on || fr != or || f.HasReturns != o.HasReturns || len(fp) != len(op) {
		return false
	}
	for i := range fp {
		if fp[i] != op[i] {
			return false
		}
	}
	return true
}

// Merge absorbs other into f if name, return type, and parameter
// count/positional-types match. Missing parameter names are back-filled
// from other; boolean/enum flags are OR-combined; virtuality takes
// whichever side is set.
func (f *Function) Merge(other Object) bool {
	o, ok := other.(*Function)
	if !ok || !f.Equal(o) {
		return false
	}

	for i := range f.Parameters {
		if f.Parameters[i].Name == "" && o.Parameters[i].Name != "" {
			f.Parameters[i].Name = o.Parameters[i].Name
		}
	}

	f.Noreturn = f.Noreturn || o.Noreturn
	f.IsExplicit = f.IsExplicit || o.IsExplicit
	f.IsDeleted = f.IsDeleted || o.IsDeleted
	f.IsInline = f.IsInline || o.IsInline
	f.IsStatic = f.IsStatic || o.IsStatic
	f.IsConst = f.IsConst || o.IsConst

	if f.Virtuality == VirtualityNone {
		f.Virtuality = o.Virtuality
	}

	return true
}
