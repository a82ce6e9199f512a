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

// ParameterKind distinguishes a named formal parameter from the variadic
// ellipsis sentinel (DW_TAG_unspecified_parameters).
type ParameterKind int

const (
	ParameterPositional ParameterKind = iota
	ParameterVariadic
)

// Parameter is a single function parameter. Name may be empty — either
// because the DIE carried no DW_AT_name (common for declarations) or
// because Kind is ParameterVariadic, in which case Name and Type are
// always empty.
type Parameter struct {
	Name string
	Type string
	Kind ParameterKind
}

// SplitType is the (before, after) pair a Type Printer split-mode render
// returns; wrapping it around a name produces a valid declarator.
type SplitType struct {
	Before string
	After  string
}

// Declarator renders the full declarator for name, e.g.
// SplitType{"void (*", ")(int, int)"}.Declarator("cb") == "void (*cb)(int, int)".
//
// A space separates Before from name unless Before already ends in a
// token that abuts a declared name directly in PL grammar ('*', '&', or
// the open paren of a pointer/reference grouping) — otherwise every
// pointer or reference declarator would carry a stray space before its
// name ("void (* cb)").
func (s SplitType) Declarator(name string) string {
	out := s.Before
	if out != "" && name != "" {
		switch out[len(out)-1] {
		case '*', '&', '(':
		default:
			out += " "
		}
	}
	out += name
	out += s.After
	return out
}
