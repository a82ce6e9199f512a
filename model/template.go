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

// TemplateParameterKind distinguishes the four DWARF template-parameter
// shapes: DW_TAG_template_type_parameter, DW_TAG_template_value_parameter,
// the vendor DW_TAG_GNU_template_template_param, and the vendor
// DW_TAG_GNU_template_parameter_pack.
type TemplateParameterKind int

const (
	TemplateParamConstant TemplateParameterKind = iota
	TemplateParamType
	TemplateParamTemplate
	TemplateParamPack
)

// TemplateParameter is one entry in a Template's parameter list.
//
// Default is an opaque textual rendering derived from whichever of
// (Type, Arg) the parameter Kind designates: for TemplateParamType it is
// Type, for TemplateParamConstant it is Arg, matching the source's
// inconsistent DW_AT_default_value handling (spec.md §9 Open Questions).
type TemplateParameter struct {
	Name string
	Kind TemplateParameterKind

	Type    string
	Arg     string
	HasArg  bool
	Default string

	// Inner holds the nested parameters of a pack.
	Inner []TemplateParameter
}

// Template wraps a generic declaration (a Struct with IsDeclaration=true,
// bases/members/alignment cleared, named by its un-templated base name;
// or an Attribute with IsDeclaration=true) together with the template
// parameter list that governs every concrete instantiation on file.
type Template struct {
	Declaration Object
	Parameters  []TemplateParameter
}

func templateParamsEqual(a, b []TemplateParameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Kind != b[i].Kind {
			return false
		}
	}
	return true
}

func templateParamsBound(params []TemplateParameter) bool {
	for _, p := range params {
		if p.HasArg {
			return true
		}
	}
	return false
}

func (t *Template) Equal(other *Template) bool {
	if other == nil {
		return false
	}
	if t.Declaration == nil || other.Declaration == nil {
		return t.Declaration == other.Declaration
	}
	return t.Declaration.Equal(other.Declaration) && templateParamsEqual(t.Parameters, other.Parameters)
}

// Merge absorbs other into t only if name, declaration, and parameter
// count match and both sides' parameters have no bound arg. Missing
// defaults are back-filled.
func (t *Template) Merge(other *Template) bool {
	if !t.Equal(other) {
		return false
	}
	if templateParamsBound(t.Parameters) || templateParamsBound(other.Parameters) {
		return false
	}

	for i := range t.Parameters {
		if t.Parameters[i].Default == "" {
			t.Parameters[i].Default = other.Parameters[i].Default
		}
	}

	return true
}
