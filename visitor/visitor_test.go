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

	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/typeprinter"
)

func terminator() *dwarf.Entry { return &dwarf.Entry{} }

// newTestVisitor builds a Visitor over a synthetic entry sequence, with no
// base_dir restriction and the default bucket caps.
func newTestVisitor(t *testing.T, entries []*dwarf.Entry) (*Visitor, *dwarfctx.Context) {
	t.Helper()
	ctx, err := dwarfctx.NewFromEntries(entries)
	require.NoError(t, err)
	return New(ctx, typeprinter.New(ctx), Options{}), ctx
}

func die(t *testing.T, ctx *dwarfctx.Context, off dwarf.Offset) *dwarfctx.DIE {
	t.Helper()
	d, ok := ctx.DIEAt(off)
	require.True(t, ok)
	return d
}
