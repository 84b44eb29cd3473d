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

// Package ccittfax implements a decoder for CCITT Group 3 fax data, using
// the one-dimensional (Modified Huffman) coding scheme from ITU-T T.4.
// This is the format used by the PDF CCITTFaxDecode filter when K is 0.
//
// Decoded scan lines are packed with one bit per pixel, most significant
// bit first.  A 1 bit is a black pixel, a 0 bit is a white pixel.  Each
// row starts on a byte boundary.
package ccittfax

import (
	"fmt"
)

// maxColumns limits the width of an image, to prevent memory exhaustion
// on malicious input.
const maxColumns = 1 << 20

// defaultColumns is the width used when Params.Columns is 0.
const defaultColumns = 1728

// Params holds the parameters of a CCITT fax stream.
// The field names follow the DecodeParms entries of the PDF
// CCITTFaxDecode filter.
type Params struct {
	// K selects the coding scheme.  Only K == 0 (Group 3, one-dimensional
	// coding) is supported.
	K int

	// Columns is the width of the image in pixels.
	// The value 0 selects the default width of 1728 pixels.
	Columns int

	// Rows is the height of the image in pixels.
	// If this is 0, the image extends until the end of the data or
	// until an RTC sequence is found.
	Rows int

	// ByteAlign indicates that each encoded scan line starts on a byte
	// boundary.  Bits left over at the end of the previous line are skipped.
	ByteAlign bool
}

// Validate checks that the parameters describe a stream which can be
// decoded by this package.
func (p *Params) Validate() error {
	if p.K != 0 {
		return fmt.Errorf("K=%d: %w", p.K, ErrUnsupported)
	}
	if p.Columns < 0 || p.Columns > maxColumns {
		return fmt.Errorf("invalid Columns value %d", p.Columns)
	}
	if p.Rows < 0 {
		return fmt.Errorf("invalid Rows value %d", p.Rows)
	}
	return nil
}

// bytesPerRow returns the number of bytes in a decoded scan line.
func (p *Params) bytesPerRow() int {
	return (p.Columns + 7) / 8
}
