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

// Package dwarferr classifies the engine's fatal error conditions (§7 of
// the design): unhandled tags/attributes, type-resolution failures, and
// DWARF shape violations. Soft skips (declarations outside base_dir,
// missing decl_file/decl_line, artificial subprograms, capped buckets)
// are never represented here — they are silently ignored by the caller.
package dwarferr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the three fatal error conditions the engine can
// raise. There is deliberately no fourth "soft skip" kind: soft skips are
// not errors.
type Kind int

const (
	// KindUnhandled covers unhandled tags and unhandled attributes: a
	// DWARF construct not in the engine's allowlist.
	KindUnhandled Kind = iota
	// KindTypeResolution covers a DIE referenced as a type that is
	// missing or malformed.
	KindTypeResolution
	// KindShapeViolation covers a DIE whose specification points to an
	// unexpected tag, or a child relationship that violates an
	// invariant (e.g. a second parent assignment).
	KindShapeViolation
)

func (k Kind) String() string {
	switch k {
	case KindUnhandled:
		return "unhandled"
	case KindTypeResolution:
		return "type-resolution"
	case KindShapeViolation:
		return "shape-violation"
	default:
		return "unknown"
	}
}

// Fatal is the single error type the engine returns for every
// non-recoverable condition. It names the offending tag/attribute and DIE
// offset so a diagnostic can point straight at the DWARF entry.
type Fatal struct {
	Kind      Kind
	Offset    uint64
	Tag       string
	Attribute string
	cause     error
}

func (e *Fatal) Error() string {
	msg := fmt.Sprintf("%s: offset=%#x", e.Kind, e.Offset)
	if e.Tag != "" {
		msg += fmt.Sprintf(" tag=%s", e.Tag)
	}
	if e.Attribute != "" {
		msg += fmt.Sprintf(" attr=%s", e.Attribute)
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *Fatal) Unwrap() error { return e.cause }

// UnhandledTag reports a DIE tag with no registered handler and no entry
// in the ignore allowlist.
func UnhandledTag(offset uint64, tag string) error {
	return &Fatal{Kind: KindUnhandled, Offset: offset, Tag: tag}
}

// UnhandledAttribute reports an attribute a handler did not expect to see
// on a DIE of the given tag.
func UnhandledAttribute(offset uint64, tag, attr string) error {
	return &Fatal{Kind: KindUnhandled, Offset: offset, Tag: tag, Attribute: attr}
}

// UnhandledChild reports a child DIE tag a handler did not expect under a
// DIE of the given parent tag.
func UnhandledChild(offset uint64, tag, childTag string) error {
	return &Fatal{Kind: KindUnhandled, Offset: offset, Tag: tag, Attribute: childTag}
}

// TypeResolution reports a type reference that could not be followed to a
// usable DIE.
func TypeResolution(offset uint64, tag string, cause error) error {
	return &Fatal{Kind: KindTypeResolution, Offset: offset, Tag: tag, cause: cause}
}

// ShapeViolation reports a structural inconsistency: a specification
// pointing at the wrong tag, or an object that already has a parent.
func ShapeViolation(offset uint64, tag, detail string) error {
	return &Fatal{Kind: KindShapeViolation, Offset: offset, Tag: tag, cause: errors.New(detail)}
}

// Wrap attaches additional context to err via errors.Wrapf, prefixing the
// formatted message on every call; a nil err stays nil. The original
// error, *Fatal or otherwise, stays reachable through Cause.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Cause unwraps err to its root cause, as github.com/pkg/errors does.
func Cause(err error) error {
	return errors.Cause(err)
}
