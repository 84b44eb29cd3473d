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

package ccittfax

import (
	"fmt"
	"image"
	"io"
)

// maxImagePixels limits the size of the images allocated by DecodeImage.
const maxImagePixels = 1 << 28

// DecodeImage decodes a complete CCITT fax image.
//
// If p.Rows is set, the image has exactly p.Rows rows; rows missing from
// the data are left white.  Otherwise the height of the image is the
// number of rows found in the data.
func DecodeImage(r io.Reader, p *Params) (*image.Gray, error) {
	dec, err := NewReader(r, p)
	if err != nil {
		return nil, err
	}

	width := dec.Columns
	maxRows := maxImagePixels / width
	if dec.Rows > maxRows {
		return nil, fmt.Errorf("image size %dx%d exceeds the limit of %d pixels",
			width, dec.Rows, maxImagePixels)
	}

	var pix []byte
	for {
		row, err := dec.ReadRow()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if dec.NumRows() > maxRows {
			return nil, fmt.Errorf("image height exceeds %d rows", maxRows)
		}
		pix = append(pix, make([]byte, width)...)
		UnpackRow(pix[len(pix)-width:], row)
	}

	height := dec.NumRows()
	if dec.Rows > height {
		pix = append(pix, make([]byte, (dec.Rows-height)*width)...)
		for i := height * width; i < len(pix); i++ {
			pix[i] = 0xFF
		}
		height = dec.Rows
	}

	return &image.Gray{
		Pix:    pix,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// UnpackRow converts a packed scan line into 8-bit gray pixels, one byte
// per pixel.  Black pixels become 0x00, white pixels 0xFF.
// The length of dst gives the number of pixels.
func UnpackRow(dst, row []byte) {
	for x := range dst {
		if row[x/8]&(0x80>>(x%8)) != 0 {
			dst[x] = 0x00
		} else {
			dst[x] = 0xFF
		}
	}
}
