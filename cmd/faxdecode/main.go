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

// Faxdecode converts CCITT Group 3 fax data to an image file.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/ccitt/ccittfax"
	"seehuhn.de/go/ccitt/internal/config"
	"seehuhn.de/go/ccitt/internal/imgout"
)

func main() {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	switch {
	case cfg.CLI.Debug:
		logrus.SetLevel(logrus.DebugLevel)
	case cfg.CLI.Quiet:
		logrus.SetLevel(logrus.WarnLevel)
	}
	logrus.SetOutput(os.Stderr)

	displayConfig(cfg)

	if cfg.CLI.Output == "" && !cfg.CLI.Force && term.IsTerminal(int(os.Stdout.Fd())) {
		logrus.Error("refusing to write binary data to a terminal (use --force to override)")
		os.Exit(1)
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		logrus.Errorf("faxdecode: %s", err)
		os.Exit(1)
	}
}

// run decodes the configured input and writes the resulting image.
// The streams stdin and stdout are used when the input or output file
// name is "-" or empty.
func run(cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if cfg.CLI.Input != config.StdStream {
		fd, err := os.Open(cfg.CLI.Input)
		if err != nil {
			return errors.Wrap(err, "unable to open input")
		}
		defer fd.Close()
		in = fd
	}

	p := cfg.Params()
	r, err := ccittfax.NewReader(bufio.NewReader(in), p)
	if err != nil {
		return errors.Wrap(err, "unable to create decoder")
	}

	b, decodeErr := imgout.ReadBitmap(r)
	if decodeErr != nil {
		if b.Rows == 0 {
			return errors.Wrap(decodeErr, "unable to decode input")
		}
		logrus.WithField("rows", b.Rows).Warnf("decoding stopped early: %s", decodeErr)
	}
	if p.Rows > 0 && b.Rows < p.Rows {
		logrus.Warnf("expected %d rows, found only %d", p.Rows, b.Rows)
	}

	if err := writeOutput(cfg, stdout, b); err != nil {
		return err
	}

	pr := message.NewPrinter(language.English)
	logrus.WithFields(logrus.Fields{
		"columns": b.Columns,
		"rows":    b.Rows,
		"format":  cfg.TOML.Output.Format,
	}).Info(pr.Sprintf("decoded %d pixels", b.Columns*b.Rows))

	if decodeErr != nil {
		return errors.Wrap(decodeErr, "input is damaged")
	}
	return nil
}

func writeOutput(cfg *config.Config, stdout io.Writer, b *imgout.Bitmap) error {
	name := cfg.CLI.Output
	if name == "" || name == config.StdStream {
		w := bufio.NewWriter(stdout)
		if err := imgout.Write(w, cfg.TOML.Output.Format, b); err != nil {
			return errors.Wrap(err, "unable to write output")
		}
		return w.Flush()
	}

	fd, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "unable to create output file")
	}
	w := bufio.NewWriter(fd)
	err = imgout.Write(w, cfg.TOML.Output.Format, b)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := fd.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", name)
	}
	return nil
}

func displayConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	logrus.Debug("faxdecode settings:")
	logrus.Debug("  [CLI]")
	logrus.Debugf("  version: %s", config.VERSION)
	logrus.Debugf("  input: %s", cfg.CLI.Input)
	logrus.Debugf("  output: %s", cfg.CLI.Output)
	logrus.Debugf("  config file: %s", cfg.CLI.ConfigFile)
	logrus.Debugf("  force: %v", cfg.CLI.Force)
	logrus.Debug("")
	logrus.Debug("  [DECODE]")
	logrus.Debugf("  decode.columns: %d", cfg.TOML.Decode.Columns)
	logrus.Debugf("  decode.rows: %d", cfg.TOML.Decode.Rows)
	logrus.Debugf("  decode.byte_align: %v", cfg.TOML.Decode.ByteAlign)
	logrus.Debug("")
	logrus.Debug("  [OUTPUT]")
	logrus.Debugf("  output.format: %s", cfg.TOML.Output.Format)
}
