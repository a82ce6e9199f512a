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

// Package visitor walks a dwarfctx.Context and builds the model package's
// in-memory declaration tree: one Visitor per run, memoised on DIE
// identity, filing every named top-level declaration into a per-file,
// per-line bucket the File Assembler later reduces.
package visitor

import (
	"debug/dwarf"
	"strings"

	"go.uber.org/zap"

	"github.com/cxxreflect/dwarfrecon/dwarferr"
	"github.com/cxxreflect/dwarfrecon/dwarfctx"
	"github.com/cxxreflect/dwarfrecon/model"
	"github.com/cxxreflect/dwarfrecon/rlog"
	"github.com/cxxreflect/dwarfrecon/typeprinter"
)

// Options configures a run. StructMemberCap and FileLineCap default to 4
// and 8 (the bucket-cap policy) when left at zero.
type Options struct {
	BaseDir string

	StructMemberCap int
	FileLineCap     int
}

const (
	defaultStructMemberCap = 4
	defaultFileLineCap     = 8
)

func (o Options) withDefaults() Options {
	if o.StructMemberCap <= 0 {
		o.StructMemberCap = defaultStructMemberCap
	}
	if o.FileLineCap <= 0 {
		o.FileLineCap = defaultFileLineCap
	}
	return o
}

// cacheKey identifies a DIE by its section offset, which debug/dwarf
// never reuses across compile units.
type cacheKey struct {
	offset dwarf.Offset
}

func keyFor(d *dwarfctx.DIE) cacheKey {
	return cacheKey{offset: d.Offset}
}

// templateKey identifies a candidate for template-declaration reuse: the
// enclosing scope plus the declaration line, since distinct instantiations
// of the same template share both.
type templateKey struct {
	parent cacheKey
	line   int64
}

// Visitor owns every piece of mutable state a single run produces. Create
// one per binary; nothing about it is safe for concurrent use, matching
// the engine's single-threaded, synchronous execution model.
type Visitor struct {
	ctx     *dwarfctx.Context
	printer *typeprinter.Printer
	opts    Options

	cache map[cacheKey]interface{}

	fileOrder []string
	files     map[string]map[int64][]model.Object

	functions  map[string][]*model.Function
	paramNames map[string][][]string

	templates map[templateKey]*model.Template

	log *zap.SugaredLogger
}

// New returns a Visitor over ctx, rendering types through printer.
func New(ctx *dwarfctx.Context, printer *typeprinter.Printer, opts Options) *Visitor {
	opts = opts.withDefaults()
	return &Visitor{
		ctx:        ctx,
		printer:    printer,
		opts:       opts,
		cache:      make(map[cacheKey]interface{}),
		files:      make(map[string]map[int64][]model.Object),
		functions:  make(map[string][]*model.Function),
		paramNames: make(map[string][][]string),
		templates:  make(map[templateKey]*model.Template),
		log:        rlog.Get("visitor"),
	}
}

// Files returns the per-file, per-line object buckets built by Run, keyed
// by the absolute decl_file path the compiler recorded.
func (v *Visitor) Files() map[string]map[int64][]model.Object { return v.files }

// FileOrder returns the decl_file paths in first-filed order, the order
// the File Assembler emits them in.
func (v *Visitor) FileOrder() []string { return v.fileOrder }

// Run walks every compile unit whose compilation directory starts with
// BaseDir, then back-fills parameter names across every registered
// Function occurrence.
func (v *Visitor) Run() error {
	for _, u := range v.ctx.Units() {
		if v.opts.BaseDir != "" && !strings.HasPrefix(u.CompDir, v.opts.BaseDir) {
			continue
		}
		if err := v.visitScopeChildren(u.Root, nil, u.Root.Children()); err != nil {
			return dwarferr.Wrap(err, "visitor: compile unit %s", u.Name)
		}
	}

	v.backfillParameterNames()
	return nil
}

// visit is the single memoised entry point every handler and traversal
// loop goes through. A cycle in the type graph (pointer-to-X inside X)
// never reaches here: those edges are walked by the Type Printer directly
// over the DIE graph, never through visit.
func (v *Visitor) visit(d *dwarfctx.DIE) (interface{}, error) {
	key := keyFor(d)
	if obj, ok := v.cache[key]; ok {
		return obj, nil
	}

	obj, err := v.dispatch(d)
	if err != nil {
		return nil, err
	}
	v.cache[key] = obj
	return obj, nil
}

func (v *Visitor) dispatch(d *dwarfctx.DIE) (interface{}, error) {
	switch d.Tag {
	case dwarf.TagNamespace:
		return v.visitNamespace(d)
	case dwarf.TagTypedef:
		obj, err := v.visitTypedef(d)
		return obj, err
	case dwarf.TagStructType:
		obj, err := v.handleStruct(d, model.KindStruct)
		return obj, err
	case dwarf.TagClassType:
		obj, err := v.handleStruct(d, model.KindClass)
		return obj, err
	case dwarf.TagUnionType:
		obj, err := v.handleStruct(d, model.KindUnion)
		return obj, err
	case dwarf.TagEnumerationType:
		obj, err := v.visitEnumerationType(d)
		return obj, err
	case dwarf.TagVariable, dwarf.TagMember:
		obj, err := v.handleAttribute(d)
		return obj, err
	case dwarf.TagSubprogram:
		obj, err := v.visitSubprogram(d)
		return obj, err
	case dwarf.TagImportedModule:
		obj, err := v.visitImportedModule(d)
		return obj, err
	case dwarf.TagImportedDeclaration:
		obj, err := v.visitImportedDeclaration(d)
		return obj, err
	default:
		if ignorableTag(d.Tag) {
			return nil, nil
		}
		return nil, dwarferr.UnhandledTag(uint64(d.Offset), d.Tag.String())
	}
}

// fileAttrs are consumed by add, not by the handler that builds the DIE's
// model.Object: every DIE add ever files carries them.
var fileAttrs = map[dwarf.Attr]bool{
	dwarf.AttrDeclFile: true,
	dwarf.AttrDeclLine: true,
}

// checkAttributes fails with dwarferr.UnhandledAttribute for the first
// attribute on d that is neither in fileAttrs nor allowed. Every top-level
// tag handler calls this first, before reading any attribute, so a
// DWARF extension or vendor attribute the handler was never taught about
// surfaces as a fatal error instead of being silently dropped.
func checkAttributes(d *dwarfctx.DIE, allowed map[dwarf.Attr]bool) error {
	for _, a := range d.Attributes() {
		if fileAttrs[a.Attr] || allowed[a.Attr] {
			continue
		}
		return dwarferr.UnhandledAttribute(uint64(d.Offset), d.Tag.String(), a.Attr.String())
	}
	return nil
}

// ignorableTag is the fixed allowlist of type tags that are only ever
// reached as the target of a DW_AT_type reference, never meaningfully
// visited at scope-member granularity themselves.
func ignorableTag(tag dwarf.Tag) bool {
	switch tag {
	case dwarf.TagBaseType, dwarf.TagArrayType, dwarf.TagConstType, dwarf.TagPointerType,
		dwarf.TagReferenceType, dwarf.TagRvalueReferenceType, dwarf.TagAtomicType,
		dwarf.TagVolatileType, dwarf.TagRestrictType, dwarf.TagUnspecifiedType,
		dwarf.TagSubroutineType, dwarf.TagPtrToMemberType, dwarf.TagLabel:
		return true
	default:
		return false
	}
}

// add files obj under its own decl_file/decl_line, respecting base_dir
// and the file-level bucket cap. Every failure mode here is a soft skip
// per §7 kind 4: no decl_file, no positive decl_line, outside base_dir, or
// bucket already at cap.
func (v *Visitor) add(d *dwarfctx.DIE, obj model.Object) {
	if obj == nil {
		return
	}
	file, ok := v.ctx.DeclFile(d)
	if !ok {
		return
	}
	line, ok := d.Int(dwarf.AttrDeclLine)
	if !ok || line <= 0 {
		return
	}
	if v.opts.BaseDir != "" && !strings.HasPrefix(file, v.opts.BaseDir) {
		v.log.Debugf("skipping %s:%d: outside base dir", file, line)
		return
	}

	bucket := v.files[file]
	if bucket == nil {
		bucket = make(map[int64][]model.Object)
		v.files[file] = bucket
		v.fileOrder = append(v.fileOrder, file)
	}
	if len(bucket[line]) >= v.opts.FileLineCap {
		return
	}
	bucket[line] = append(bucket[line], obj)
}
