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

// Package imgout writes decoded fax images in various file formats.
package imgout

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"slices"

	"golang.org/x/exp/maps"
	"golang.org/x/image/tiff"

	"seehuhn.de/go/ccitt/ccittfax"
)

// Bitmap is a bi-level image.  Rows are packed with one bit per pixel,
// most significant bit first, and start on byte boundaries.
// A 1 bit is a black pixel.
type Bitmap struct {
	Columns int
	Rows    int
	Data    []byte
}

// ReadBitmap reads all remaining rows from r.
// If decoding fails, the rows decoded before the error are returned
// together with the error.
func ReadBitmap(r *ccittfax.Reader) (*Bitmap, error) {
	b := &Bitmap{Columns: r.Columns}
	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			return b, nil
		} else if err != nil {
			return b, err
		}
		b.Data = append(b.Data, row...)
		b.Rows++
	}
}

func (b *Bitmap) rowBytes() int {
	return (b.Columns + 7) / 8
}

// Image converts the bitmap to a grayscale image.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Columns, b.Rows))
	rowBytes := b.rowBytes()
	for y := range b.Rows {
		row := b.Data[y*rowBytes : (y+1)*rowBytes]
		ccittfax.UnpackRow(img.Pix[y*img.Stride:y*img.Stride+b.Columns], row)
	}
	return img
}

type encodeFunc func(w io.Writer, b *Bitmap) error

var encoders = map[string]encodeFunc{
	"raw":  writeRaw,
	"pbm":  writePBM,
	"png":  writePNG,
	"tiff": writeTIFF,
}

// Formats returns the names of the supported output formats.
func Formats() []string {
	return slices.Sorted(slices.Values(maps.Keys(encoders)))
}

// IsSupported reports whether format is a supported output format.
func IsSupported(format string) bool {
	_, ok := encoders[format]
	return ok
}

// Write writes b to w, using the given output format.
func Write(w io.Writer, format string, b *Bitmap) error {
	enc, ok := encoders[format]
	if !ok {
		return fmt.Errorf("unsupported output format %q", format)
	}
	return enc(w, b)
}

// writeRaw writes the packed rows without a header.
func writeRaw(w io.Writer, b *Bitmap) error {
	_, err := w.Write(b.Data)
	return err
}

// writePBM writes a binary portable bitmap (P4).  The PBM row format is
// the same as the decoder output.
func writePBM(w io.Writer, b *Bitmap) error {
	_, err := fmt.Fprintf(w, "P4\n%d %d\n", b.Columns, b.Rows)
	if err != nil {
		return err
	}
	_, err = w.Write(b.Data)
	return err
}

func writePNG(w io.Writer, b *Bitmap) error {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, b.Image())
}

func writeTIFF(w io.Writer, b *Bitmap) error {
	return tiff.Encode(w, b.Image(), &tiff.Options{Compression: tiff.Deflate})
}
