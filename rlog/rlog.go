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

// Package rlog is the engine's one logging call shape: rlog.Get(category)
// returns a named sink, the same way the teacher's logger.Logf(category,
// format, args...) is used from deep inside the DWARF builder to report
// recoverable oddities without aborting a build. Here it is backed by
// go.uber.org/zap instead of the teacher's in-house ring buffer, and
// defaults to discarding everything until a host program calls UseLogger.
package rlog

import "go.uber.org/zap"

var base = zap.NewNop()

// UseLogger replaces the package-level logger. A host program (the
// cmd/dwarfrecon demo, or any other caller) calls this once before running
// the engine; until it does, every category is silent.
func UseLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	base = l
}

// SetLevel swaps in a development-style logger at the given level,
// printing to stderr. A convenience for hosts that don't want to build
// their own zap.Logger.
func SetLevel(level zap.AtomicLevel) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	base = l
	return nil
}

// Get returns the sugared logger for category, e.g.
// rlog.Get("visitor").Debugf("skipping %s: outside base dir", path).
func Get(category string) *zap.SugaredLogger {
	return base.Sugar().Named(category)
}
