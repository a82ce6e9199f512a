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

package dwarfctx

import "debug/dwarf"

// DeclFile resolves a DIE's DW_AT_decl_file index to the source path the
// compiler recorded, via the owning compile unit's line-number program.
func (c *Context) DeclFile(d *DIE) (string, bool) {
	idx, ok := d.Int(dwarf.AttrDeclFile)
	if !ok || idx <= 0 {
		return "", false
	}

	unit := d.Unit()
	if unit == nil || c.Data == nil {
		return "", false
	}

	files, ok := c.fileTable(unit)
	if !ok {
		return "", false
	}
	if idx >= int64(len(files)) || files[idx] == nil {
		return "", false
	}
	return files[idx].Name, true
}

func (c *Context) fileTable(unit *Unit) ([]*dwarf.LineFile, bool) {
	if c.fileTables == nil {
		c.fileTables = make(map[*Unit][]*dwarf.LineFile)
	}
	if files, ok := c.fileTables[unit]; ok {
		return files, files != nil
	}

	lr, err := c.Data.LineReader(unit.Root.Entry)
	if err != nil || lr == nil {
		c.fileTables[unit] = nil
		return nil, false
	}
	files := lr.Files()
	c.fileTables[unit] = files
	return files, true
}
