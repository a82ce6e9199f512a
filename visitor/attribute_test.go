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
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
)

// wrapDIE builds a bare dwarfctx.DIE around a synthetic entry for tests
// that exercise a single attribute-decoding helper in isolation, with no
// need for a surrounding tree or Context.
func wrapDIE(e *dwarf.Entry) *dwarfctx.DIE {
	return &dwarfctx.DIE{Entry: e}
}

func TestRenderConstValueStringAndIntForms(t *testing.T) {
	strDIE := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagVariable,
		Field:  []dwarf.Field{{Attr: dwarf.AttrConstValue, Val: "hello", Class: dwarf.ClassString}},
	}
	s, ok := renderConstValue(wrapDIE(strDIE), "const char *")
	require.True(t, ok)
	require.Equal(t, "hello", s)

	intDIE := &dwarf.Entry{
		Offset: 0x11,
		Tag:    dwarf.TagVariable,
		Field:  []dwarf.Field{{Attr: dwarf.AttrConstValue, Val: int64(42), Class: dwarf.ClassConstant}},
	}
	s, ok = renderConstValue(wrapDIE(intDIE), "int")
	require.True(t, ok)
	require.Equal(t, "42", s)

	boolDIE := &dwarf.Entry{
		Offset: 0x12,
		Tag:    dwarf.TagVariable,
		Field:  []dwarf.Field{{Attr: dwarf.AttrConstValue, Val: int64(1), Class: dwarf.ClassConstant}},
	}
	s, ok = renderConstValue(wrapDIE(boolDIE), "bool")
	require.True(t, ok)
	require.Equal(t, "true", s)

	missing := &dwarf.Entry{Offset: 0x13, Tag: dwarf.TagVariable}
	_, ok = renderConstValue(wrapDIE(missing), "int")
	require.False(t, ok)
}

func TestRenderConstValueFloatAndDoubleBlockForm(t *testing.T) {
	var buf4 [4]byte
	binary.LittleEndian.PutUint32(buf4[:], math.Float32bits(1.5))
	floatDIE := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagVariable,
		Field:  []dwarf.Field{{Attr: dwarf.AttrConstValue, Val: buf4[:], Class: dwarf.ClassBlock}},
	}
	s, ok := renderConstValue(wrapDIE(floatDIE), "float")
	require.True(t, ok)
	require.Equal(t, "1.5", s)

	var buf8 [8]byte
	binary.LittleEndian.PutUint64(buf8[:], math.Float64bits(2.25))
	doubleDIE := &dwarf.Entry{
		Offset: 0x11,
		Tag:    dwarf.TagVariable,
		Field:  []dwarf.Field{{Attr: dwarf.AttrConstValue, Val: buf8[:], Class: dwarf.ClassBlock}},
	}
	s, ok = renderConstValue(wrapDIE(doubleDIE), "double")
	require.True(t, ok)
	require.Equal(t, "2.25", s)
}

func TestFormatFloatSigPreservesTrailingDotZero(t *testing.T) {
	require.Equal(t, "4.0", formatFloatSig(4, 7))
	require.Equal(t, "1.5", formatFloatSig(1.5, 7))
}

func TestAttributeTypeHintUsesSplitWhenPresent(t *testing.T) {
	a := &model.Attribute{IsSplit: true, TypeSplit: model.SplitType{Before: "float ", After: "[4]"}}
	require.Equal(t, "float [4]", attributeTypeHint(a))

	plain := &model.Attribute{Type: "int"}
	require.Equal(t, "int", attributeTypeHint(plain))
}

func TestIsAnonymousComposite(t *testing.T) {
	require.False(t, isAnonymousComposite(nil))

	named := &dwarf.Entry{
		Offset: 0x10,
		Tag:    dwarf.TagStructType,
		Field:  []dwarf.Field{{Attr: dwarf.AttrName, Val: "S", Class: dwarf.ClassString}},
	}
	anon := &dwarf.Entry{Offset: 0x20, Tag: dwarf.TagUnionType}
	notComposite := &dwarf.Entry{Offset: 0x30, Tag: dwarf.TagBaseType}

	require.False(t, isAnonymousComposite(wrapDIE(named)))
	require.True(t, isAnonymousComposite(wrapDIE(anon)))
	require.False(t, isAnonymousComposite(wrapDIE(notComposite)))
}
