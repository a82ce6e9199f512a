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

// Package dwarfrecon wires dwarfctx, typeprinter, visitor and assembler
// into the single pipeline a host program drives: open debug/dwarf data,
// walk it into the model package's declaration tree, then reduce that
// tree into one deduplicated object sequence per source line.
package dwarfrecon

import (
	"debug/dwarf"

	"github.com/pkg/errors"

	"github.com/cxxreflect/dwarfrecon/assembler"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/typeprinter"
	"github.com/cxxreflect/dwarfrecon/visitor"
)

// Run builds a Context over data, walks it with the given Options, and
// reduces the result through the File Assembler. It is the whole engine
// in one call; a host that needs the intermediate Visitor (e.g. to report
// per-run statistics) should call the three steps directly instead.
func Run(data *dwarf.Data, opts visitor.Options) ([]assembler.File, error) {
	ctx, err := dwarfctx.New(data)
	if err != nil {
		return nil, errors.Wrap(err, "dwarfrecon: building context")
	}

	v := visitor.New(ctx, typeprinter.New(ctx), opts)
	if err := v.Run(); err != nil {
		return nil, errors.Wrap(err, "dwarfrecon: walking DWARF")
	}

	return assembler.Assemble(v.Files(), v.FileOrder(), opts.BaseDir), nil
}
