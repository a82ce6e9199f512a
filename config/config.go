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

// Package config populates visitor.Options from the environment and an
// optional YAML file via github.com/spf13/viper, so a host CLI can wire
// flags/env/file without the engine package itself knowing about any of
// those surfaces.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/cxxreflect/dwarfrecon/visitor"
)

const (
	defaultStructMemberCap = 4
	defaultFileLineCap     = 8
)

// Load builds a viper.Viper pre-seeded with defaults, reading DWARFRECON_*
// environment variables and, if configPath is non-empty, a YAML file, then
// copies the result into visitor.Options. A set environment variable
// takes precedence over the file, which takes precedence over the
// defaults (viper's lookup order).
func Load(configPath string) (visitor.Options, error) {
	v := viper.New()
	v.SetEnvPrefix("DWARFRECON")
	v.AutomaticEnv()

	v.SetDefault("base_dir", "")
	v.SetDefault("struct_member_cap", defaultStructMemberCap)
	v.SetDefault("file_line_cap", defaultFileLineCap)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return visitor.Options{}, errors.Wrapf(err, "config: reading %s", configPath)
		}
	}

	opts := visitor.Options{
		BaseDir:         v.GetString("base_dir"),
		StructMemberCap: v.GetInt("struct_member_cap"),
		FileLineCap:     v.GetInt("file_line_cap"),
	}
	if opts.StructMemberCap <= 0 {
		opts.StructMemberCap = defaultStructMemberCap
	}
	if opts.FileLineCap <= 0 {
		opts.FileLineCap = defaultFileLineCap
	}
	return opts, nil
}
