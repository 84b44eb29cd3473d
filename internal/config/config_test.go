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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/ccitt/ccittfax"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(contents), 0o644))
	return fname
}

func TestDefaults(t *testing.T) {
	in := writeFile(t, "in.g3", "")

	cfg, err := NewConfig([]string{in})
	require.NoError(t, err)

	assert.Equal(t, in, cfg.CLI.Input)
	assert.Equal(t, "", cfg.CLI.Output)
	assert.Equal(t, DefaultFormat, cfg.TOML.Output.Format)
	assert.Equal(t, &ccittfax.Params{Columns: DefaultColumns}, cfg.Params())
}

func TestCommandLine(t *testing.T) {
	in := writeFile(t, "in.g3", "")

	cfg, err := NewConfig([]string{"-w", "2048", "-r", "10", "-a", "-f", "png", in, "out.png"})
	require.NoError(t, err)

	assert.Equal(t, "out.png", cfg.CLI.Output)
	assert.Equal(t, "png", cfg.TOML.Output.Format)
	assert.Equal(t, &ccittfax.Params{Columns: 2048, Rows: 10, ByteAlign: true}, cfg.Params())
}

func TestConfigFile(t *testing.T) {
	in := writeFile(t, "in.g3", "")
	conf := writeFile(t, "faxdecode.toml", `
[decode]
columns = 864
rows = 100
byte_align = true

[output]
format = "tiff"
`)

	cfg, err := NewConfig([]string{"--config-file", conf, in})
	require.NoError(t, err)
	assert.Equal(t, "tiff", cfg.TOML.Output.Format)
	assert.Equal(t, &ccittfax.Params{Columns: 864, Rows: 100, ByteAlign: true}, cfg.Params())

	// command line settings take precedence
	cfg, err = NewConfig([]string{"-c", conf, "-w", "1024", "-f", "raw", in})
	require.NoError(t, err)
	assert.Equal(t, "raw", cfg.TOML.Output.Format)
	assert.Equal(t, &ccittfax.Params{Columns: 1024, Rows: 100, ByteAlign: true}, cfg.Params())

	// zero and false values on the command line override the file, too
	cfg, err = NewConfig([]string{"-c", conf, "--rows", "0", "--no-byte-align", in})
	require.NoError(t, err)
	assert.Equal(t, &ccittfax.Params{Columns: 864}, cfg.Params())
}

func TestHelpListsFormats(t *testing.T) {
	buf := &bytes.Buffer{}
	_, _ = NewConfig([]string{"--help"}, kong.Writers(buf, buf), kong.Exit(func(int) {}))
	assert.Contains(t, buf.String(), "pbm, png, raw, tiff")
}

func TestEnvironment(t *testing.T) {
	in := writeFile(t, "in.g3", "")
	t.Setenv(EnvVarPrefix+"_COLUMNS", "640")
	t.Setenv(EnvVarPrefix+"_FORMAT", "raw")

	cfg, err := NewConfig([]string{in})
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Params().Columns)
	assert.Equal(t, "raw", cfg.TOML.Output.Format)
}

func TestStdin(t *testing.T) {
	cfg, err := NewConfig([]string{StdStream})
	require.NoError(t, err)
	assert.Equal(t, StdStream, cfg.CLI.Input)
}

func TestInvalid(t *testing.T) {
	in := writeFile(t, "in.g3", "")
	badConf := writeFile(t, "bad.toml", "[decode\ncolumns = 1")

	cases := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing input", []string{}, "error parsing CLI args"},
		{"input does not exist", []string{filepath.Join(t.TempDir(), "missing")}, "does not exist"},
		{"input is a directory", []string{t.TempDir()}, "is a directory"},
		{"negative width", []string{"--columns=-5", in}, "invalid Columns value"},
		{"too wide", []string{"-w", "2000000", in}, "invalid Columns value"},
		{"negative rows", []string{"--rows=-2", in}, "invalid Rows value"},
		{"conflicting alignment", []string{"-a", "--no-byte-align", in}, "error parsing CLI args"},
		{"unknown format", []string{"-f", "gif", in}, "output.format gif is invalid"},
		{"debug and quiet", []string{"-d", "-q", in}, "cannot be used together"},
		{"missing config file", []string{"-c", filepath.Join(t.TempDir(), "none.toml"), in}, "unable to read config file"},
		{"malformed config file", []string{"-c", badConf, in}, "unable to parse config file"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewConfig(c.args)
			assert.ErrorContains(t, err, c.msg)
		})
	}
}
