/*
Copyright © 2018 the txblend authors.
This file is part of txblend.

txblend is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

txblend is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with txblend.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package txblendutil holds the command-line interface for the txblend
// file converters.
package txblendutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twdb/txblend"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()

	// Options are the configuration options available to txblend.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets how much informational output is printed
              (debug, info, warning, or error).`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "format",
			usage: `
              format names the TxBLEND file format to convert: inflow,
              precip, wind, gensal, tide, pcp, vel, or avesald.`,
			shorthand:  "f",
			defaultVal: "inflow",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "zone",
			usage: `
              zone is the UTM longitudinal projection zone. The default of
              14 covers most of the Texas coast; use 15 when working in
              Galveston or Sabine.`,
			defaultVal: 14,
			flagsets:   []*pflag.FlagSet{coordsCmd.Flags()},
		},
		{
			name: "shp",
			usage: `
              shp writes the node coordinates as an ESRI point shapefile
              instead of CSV.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{coordsCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(outflwCmd)
	Root.AddCommand(coordsCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and applies the configured log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("txblend: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("txblend: invalid log level '%s'", Cfg.GetString("loglevel"))
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "txblend",
	Short: "Converters for TxBLEND model files.",
	Long: `txblend converts the fixed-format text files used by the TxBLEND
hydrodynamic model of the Texas coastal bays to and from tabular time
series. Use the subcommands specified below to access the converters.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag) or by using command-line
arguments.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of txblend.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("txblend v%s\n", txblend.Version)
	},
	DisableAutoGenTag: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Convert a TxBLEND file to CSV.",
	Long: `convert reads one TxBLEND input or output file in the format given
by --format and writes the assembled time series to OUTPUT as CSV.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Convert(Cfg.GetString("format"), args[0], args[1])
	},
	DisableAutoGenTag: true,
}

var outflwCmd = &cobra.Command{
	Use:   "outflw RUNDIR OUTDIR",
	Short: "Convert outflw1 check-node output to CSV.",
	Long: `outflw reads the outflw1 and input files from a TxBLEND run
directory and writes one CSV file per check node to OUTDIR, in the order
the nodes first appear in the output.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return OutflowCSV(args[0], args[1])
	},
	DisableAutoGenTag: true,
}

var coordsCmd = &cobra.Command{
	Use:   "coords INPUT OUTPUT",
	Short: "Extract node coordinates from a TxBLEND input file.",
	Long: `coords reads the mesh node coordinates from a TxBLEND input file,
projects them from UTM to latitude/longitude, and writes them to OUTPUT as
CSV, or as an ESRI point shapefile when --shp is set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := txblend.Coords(args[0], cast.ToInt(Cfg.Get("zone")))
		if err != nil {
			return err
		}
		if Cfg.GetBool("shp") {
			return WriteCoordsShapefile(c, args[1])
		}
		return WriteCoordsCSV(c, args[1])
	},
	DisableAutoGenTag: true,
}
