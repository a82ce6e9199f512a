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

import (
	"debug/dwarf"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader replays a fixed slice of entries, mimicking dwarf.Reader.Next
// without needing real section bytes. A nil entry at the end signals the
// sequence is exhausted, same as the real reader.
func fakeReader(entries []*dwarf.Entry) func() (*dwarf.Entry, error) {
	i := 0
	return func() (*dwarf.Entry, error) {
		if i >= len(entries) {
			return nil, nil
		}
		e := entries[i]
		i++
		return e, nil
	}
}

func terminator() *dwarf.Entry { return &dwarf.Entry{} }

func TestBuildReconstructsTreeFromFlatSequence(t *testing.T) {
	// compile_unit "a.cpp"
	//   structure_type "S"
	//     member "x"
	//   subprogram "f"
	root := &dwarf.Entry{
		Offset:   0x10,
		Tag:      dwarf.TagCompileUnit,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "a.cpp", Class: dwarf.ClassString}},
	}
	structEntry := &dwarf.Entry{
		Offset:   0x20,
		Tag:      dwarf.TagStructType,
		Children: true,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "S", Class: dwarf.ClassString}},
	}
	member := &dwarf.Entry{
		Offset: 0x30,
		Tag:    dwarf.TagMember,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "x", Class: dwarf.ClassString}},
	}
	subprogram := &dwarf.Entry{
		Offset:   0x40,
		Tag:      dwarf.TagSubprogram,
		Children: false,
		Field:    []dwarf.Field{{Attr: dwarf.AttrName, Val: "f", Class: dwarf.ClassString}},
	}

	seq := []*dwarf.Entry{
		root,
		structEntry,
		member,
		terminator(), // ends structEntry's children
		subprogram,
		terminator(), // ends root's children
	}

	c, err := build(nil, fakeReader(seq))
	require.NoError(t, err)
	require.Len(t, c.units, 1)

	unit := c.units[0]
	assert.Equal(t, "a.cpp", unit.Name)
	require.Len(t, unit.Root.Children(), 2)

	s := unit.Root.Children()[0]
	assert.Equal(t, dwarf.TagStructType, s.Tag)
	require.Len(t, s.Children(), 1)
	assert.Equal(t, dwarf.TagMember, s.Children()[0].Tag)
	assert.Same(t, s, s.Children()[0].Parent())

	f := unit.Root.Children()[1]
	assert.Equal(t, dwarf.TagSubprogram, f.Tag)
	assert.Empty(t, f.Children())

	name, ok := f.String(dwarf.AttrName)
	assert.True(t, ok)
	assert.Equal(t, "f", name)
}

func TestDIEAtResolvesOrdinaryReference(t *testing.T) {
	target := &dwarf.Entry{
		Offset: 0x50,
		Tag:    dwarf.TagBaseType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "int", Class: dwarf.ClassString}},
	}
	referrer := &dwarf.Entry{
		Offset: 0x60,
		Tag:    dwarf.TagVariable,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "v", Class: dwarf.ClassString},
			{Attr: dwarf.AttrType, Val: dwarf.Offset(0x50), Class: dwarf.ClassReference},
		},
	}

	seq := []*dwarf.Entry{target, referrer}
	c, err := build(nil, fakeReader(seq))
	require.NoError(t, err)

	die, ok := c.DIEAt(0x60)
	require.True(t, ok)

	resolved, ok := c.ResolveReference(die, dwarf.AttrType)
	require.True(t, ok)
	assert.Equal(t, dwarf.Offset(0x50), resolved.Offset)
}

func TestResolveTypeUnitReferenceAlwaysFails(t *testing.T) {
	c, err := build(nil, fakeReader(nil))
	require.NoError(t, err)

	_, ok := c.ResolveTypeUnitReference(0xdeadbeef)
	assert.False(t, ok)
}

func TestBuildPropagatesReaderError(t *testing.T) {
	boom := assert.AnError
	_, err := build(nil, func() (*dwarf.Entry, error) { return nil, boom })
	require.Error(t, err)
}
