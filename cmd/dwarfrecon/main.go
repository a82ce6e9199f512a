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

// Command dwarfrecon is a thin demo around the dwarfrecon engine: it
// opens a binary's debug/dwarf data, runs the reconstruction pipeline,
// and prints the resulting per-file object map as JSON. It does not
// render declarations or templates of its own; that surface belongs to
// whatever downstream tool consumes this output.
package main

import (
	"debug/dwarf"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dwarfrecon "github.com/cxxreflect/dwarfrecon"
	"github.com/cxxreflect/dwarfrecon/config"
	"github.com/cxxreflect/dwarfrecon/rlog"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "dwarfrecon <binary>",
		Short: "Reconstruct a per-file declaration map from a binary's DWARF debug info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				if err := rlog.SetLevel(zap.NewAtomicLevelAt(zap.DebugLevel)); err != nil {
					return errors.Wrap(err, "dwarfrecon: configuring logger")
				}
			}

			opts, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			data, err := openDWARF(args[0])
			if err != nil {
				return err
			}

			files, err := dwarfrecon.Run(data, opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(files)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (DWARFRECON_* env vars take precedence over it)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// openDWARF opens path's DWARF debug info, trying ELF first and falling
// back to Mach-O then PE, the three object formats debug/dwarf support.
func openDWARF(path string) (*dwarf.Data, error) {
	if f, err := elf.Open(path); err == nil {
		defer f.Close()
		d, err := f.DWARF()
		if err != nil {
			return nil, errors.Wrapf(err, "dwarfrecon: reading DWARF from ELF %s", path)
		}
		return d, nil
	}

	if f, err := macho.Open(path); err == nil {
		defer f.Close()
		d, err := f.DWARF()
		if err != nil {
			return nil, errors.Wrapf(err, "dwarfrecon: reading DWARF from Mach-O %s", path)
		}
		return d, nil
	}

	if f, err := pe.Open(path); err == nil {
		defer f.Close()
		d, err := f.DWARF()
		if err != nil {
			return nil, errors.Wrapf(err, "dwarfrecon: reading DWARF from PE %s", path)
		}
		return d, nil
	}

	return nil, errors.Errorf("dwarfrecon: %s is not a recognised ELF, Mach-O or PE binary", path)
}
