// seehuhn.de/go/ccitt - a decoder for CCITT fax data
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config collects the settings of the faxdecode command from
// the command line, the environment and an optional TOML file.
package config

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"seehuhn.de/go/ccitt/ccittfax"
	"seehuhn.de/go/ccitt/internal/imgout"
)

const (
	EnvVarPrefix = "FAXDECODE"

	DefaultColumns = 1728
	DefaultFormat  = "pbm"

	// StdStream names standard input or standard output.
	StdStream = "-"

	// unsetRows is the --rows value used when the flag is not given.
	unsetRows = -1
)

// VERSION gets set during build
var VERSION = "0.0.0"

type Config struct {
	CLI  *CLI
	TOML *TOML
}

type TOML struct {
	Decode *TOMLDecode `toml:"decode"`
	Output *TOMLOutput `toml:"output"`
}

type TOMLDecode struct {
	Columns   int  `toml:"columns"`
	Rows      int  `toml:"rows"`
	ByteAlign bool `toml:"byte_align"`
}

type TOMLOutput struct {
	Format string `toml:"format"`
}

type CLI struct {
	Input  string `kong:"arg,help='Input file with G3 fax data, or - for stdin'"`
	Output string `kong:"arg,optional,help='Output file (default: stdout)'"`

	ConfigFile string `kong:"help='Path to a TOML config file',short='c'"`
	Columns    int    `kong:"help='Image width in pixels (default: 1728)',short='w'"`
	Rows       int    `kong:"help='Number of rows to decode, 0 means until end of data (default: config file, else 0)',short='r',default='-1'"`
	Format     string `kong:"help='Output format: ${formats} (default: pbm)',short='f'"`
	Force      bool   `kong:"help='Write binary output to a terminal',short='F'"`

	ByteAlign   bool `kong:"help='Rows start on byte boundaries',short='a',xor='align'"`
	NoByteAlign bool `kong:"help='Rows are not byte aligned, overrides the config file',xor='align'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Quiet   bool             `kong:"help='Only show warnings and errors',short='q'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`

	// Internal bits
	Ctx *kong.Context `kong:"-"`
}

// NewConfig parses the command line arguments args (without the program
// name), reads the config file if one is given, and validates the
// resulting settings.
func NewConfig(args []string, options ...kong.Option) (*Config, error) {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	cli, err := readCLIArgs(args, options...)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	tomlConfig, err := readTOML(cli.ConfigFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	c := &Config{
		CLI:  cli,
		TOML: tomlConfig,
	}
	merge(c)

	if err := Validate(c); err != nil {
		return nil, err
	}

	return c, nil
}

// Params returns the decoder parameters for the configured input.
func (c *Config) Params() *ccittfax.Params {
	return &ccittfax.Params{
		Columns:   c.TOML.Decode.Columns,
		Rows:      c.TOML.Decode.Rows,
		ByteAlign: c.TOML.Decode.ByteAlign,
	}
}

func readCLIArgs(args []string, options ...kong.Option) (*CLI, error) {
	cli := &CLI{}

	options = append([]kong.Option{
		kong.Name("faxdecode"),
		kong.Description("Decoder for CCITT Group 3 (1D) fax data"),
		kong.UsageOnError(),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
			"formats": strings.Join(imgout.Formats(), ", "),
		},
	}, options...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return nil, err
	}

	cli.Ctx, err = parser.Parse(args)
	if err != nil {
		return nil, err
	}

	return cli, nil
}

func readTOML(file string) (*TOML, error) {
	t := &TOML{}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read config file")
		}

		if err := toml.Unmarshal(data, t); err != nil {
			return nil, errors.Wrap(err, "unable to parse config file")
		}
	}

	if t.Decode == nil {
		t.Decode = &TOMLDecode{}
	}

	if t.Output == nil {
		t.Output = &TOMLOutput{}
	}

	return t, nil
}

// merge folds the command line settings into the TOML settings and fills
// in defaults.  Command line values take precedence.
func merge(c *Config) {
	d := c.TOML.Decode
	if c.CLI.Columns != 0 {
		d.Columns = c.CLI.Columns
	}
	if d.Columns == 0 {
		d.Columns = DefaultColumns
	}
	if c.CLI.Rows != unsetRows {
		d.Rows = c.CLI.Rows
	}
	switch {
	case c.CLI.ByteAlign:
		d.ByteAlign = true
	case c.CLI.NoByteAlign:
		d.ByteAlign = false
	}

	o := c.TOML.Output
	if c.CLI.Format != "" {
		o.Format = c.CLI.Format
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
}

func Validate(c *Config) error {
	if err := validateCLIArgs(c.CLI); err != nil {
		return errors.Wrap(err, "error validating CLI args")
	}

	if err := validateTOML(c.TOML); err != nil {
		return errors.Wrap(err, "error validating settings")
	}

	return nil
}

func validateCLIArgs(cli *CLI) error {
	if cli == nil {
		return errors.New("CLI args cannot be nil")
	}

	if cli.Input == "" {
		return errors.New("input file cannot be empty")
	}

	if cli.Debug && cli.Quiet {
		return errors.New("--debug and --quiet cannot be used together")
	}

	if cli.Input == StdStream {
		return nil
	}

	info, err := os.Stat(cli.Input)
	if os.IsNotExist(err) {
		return errors.Errorf("input file %s does not exist", cli.Input)
	} else if err != nil {
		return errors.Wrap(err, "unable to access input file")
	}

	if info.IsDir() {
		return errors.Errorf("input file %s is a directory", cli.Input)
	}

	return nil
}

func validateTOML(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if err := validateTOMLDecode(t.Decode); err != nil {
		return errors.Wrap(err, "decode error(s)")
	}

	if err := validateTOMLOutput(t.Output); err != nil {
		return errors.Wrap(err, "output error(s)")
	}

	return nil
}

func validateTOMLDecode(d *TOMLDecode) error {
	if d == nil {
		return errors.New("decode cannot be empty")
	}

	p := &ccittfax.Params{
		Columns:   d.Columns,
		Rows:      d.Rows,
		ByteAlign: d.ByteAlign,
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "invalid decoder parameters")
	}

	return nil
}

func validateTOMLOutput(o *TOMLOutput) error {
	if o == nil {
		return errors.New("output cannot be empty")
	}

	if !imgout.IsSupported(o.Format) {
		return errors.Errorf("output.format %s is invalid (supported: %s)",
			o.Format, strings.Join(imgout.Formats(), ", "))
	}

	return nil
}
