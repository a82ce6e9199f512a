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

// Package assembler reduces the Visitor's raw per-file, per-line object
// buckets into the engine's final output: one deduplicated, merged
// sequence of objects per line, keyed by a path relativised to the
// configured base directory. It does no declaration rendering of its
// own — that template-engine surface is explicitly out of scope (§1,
// §5 of the design).
package assembler

import (
	"path/filepath"
	"strings"

	"github.com/cxxreflect/dwarfrecon/model"
)

// File is one source file's reduced output, in the order the Visitor
// first filed it.
type File struct {
	Path  string
	Lines map[int64][]model.Object
}

// Assemble walks files in order, relativising each path to baseDir and
// reducing every line bucket. A path that would escape baseDir (a
// leading "..") is skipped entirely, per §6's path-escape rule.
func Assemble(files map[string]map[int64][]model.Object, order []string, baseDir string) []File {
	out := make([]File, 0, len(order))
	for _, abs := range order {
		rel, ok := relativize(abs, baseDir)
		if !ok {
			continue
		}

		bucket := files[abs]
		lines := make(map[int64][]model.Object, len(bucket))
		for line, objs := range bucket {
			lines[line] = reduce(objs)
		}
		out = append(out, File{Path: rel, Lines: lines})
	}
	return out
}

// reduce applies merge left-to-right across a line bucket: the first
// item seeds the result; each subsequent item is dropped if it already
// equals something kept, otherwise merged into the last kept item, and
// appended only if that merge fails. The result is a fully reduced
// sequence: no two elements compare equal, and no adjacent pair merges.
func reduce(items []model.Object) []model.Object {
	if len(items) == 0 {
		return nil
	}

	result := []model.Object{items[0]}
	for _, item := range items[1:] {
		already := false
		for _, have := range result {
			if have.Equal(item) {
				already = true
				break
			}
		}
		if already {
			continue
		}

		last := result[len(result)-1]
		if !last.Merge(item) {
			result = append(result, item)
		}
	}
	return result
}

// relativize converts an absolute (or compiler-relative) decl_file path
// to one relative to baseDir, POSIX-normalised. A baseDir of "" passes
// every path through unchanged save for slash normalisation.
func relativize(abs, baseDir string) (string, bool) {
	if baseDir == "" {
		return filepath.ToSlash(filepath.Clean(abs)), true
	}

	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
