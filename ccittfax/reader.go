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
	"io"
)

// Reader decodes CCITT fax data.  The decoded image is returned one
// scan line at a time; scan lines are decoded only when the bytes of
// the previous line have been consumed.
//
// A Reader is not safe for concurrent use.  It does not close the
// underlying reader.
type Reader struct {
	Params

	dec  *lineDecoder
	line []byte // unread bytes of the current row

	y   int  // index of the last decoded row, -1 before the first row
	eod bool // no more rows will be decoded
	err error
}

// NewReader creates a new CCITT fax decoder which reads encoded data
// from r.
//
// If r implements io.ByteReader, the Reader consumes input one byte at a
// time and never reads past the byte holding the last bit it decodes.
// Otherwise r is wrapped in a bufio.Reader, which may read ahead and
// consume data following the fax image.  Callers who need the data after
// the image must pass an io.ByteReader.
func NewReader(r io.Reader, p *Params) (*Reader, error) {
	pCopy := *p
	if err := pCopy.Validate(); err != nil {
		return nil, err
	}
	if pCopy.Columns == 0 {
		pCopy.Columns = defaultColumns
	}

	return &Reader{
		Params: pCopy,
		dec:    newLineDecoder(newBitReader(r), pCopy.Columns),
		y:      -1,
	}, nil
}

// Read implements the io.Reader interface.
// After the last row, Read returns io.EOF.
func (r *Reader) Read(buf []byte) (n int, err error) {
	for n < len(buf) {
		if len(r.line) == 0 {
			err = r.decodeRow()
			if err != nil {
				if n > 0 {
					// The error is sticky and will be reported by the
					// next call.
					return n, nil
				}
				return 0, err
			}
		}
		k := copy(buf[n:], r.line)
		r.line = r.line[k:]
		n += k
	}
	return n, nil
}

// ReadByte implements the io.ByteReader interface.
func (r *Reader) ReadByte() (byte, error) {
	if len(r.line) == 0 {
		if err := r.decodeRow(); err != nil {
			return 0, err
		}
	}
	c := r.line[0]
	r.line = r.line[1:]
	return c, nil
}

// ReadRow decodes the next scan line and returns the packed row.
// Unread bytes of the current row, if any, are discarded.
// The returned slice must not be modified and is only valid until the
// next call to a method of r.
func (r *Reader) ReadRow() ([]byte, error) {
	err := r.decodeRow()
	if err != nil {
		return nil, err
	}
	row := r.line
	r.line = nil
	return row, nil
}

// NumRows returns the number of rows decoded so far.
func (r *Reader) NumRows() int {
	return r.y + 1
}

// decodeRow decodes the next row into r.line.
func (r *Reader) decodeRow() error {
	if r.err != nil {
		return r.err
	}
	if r.eod || r.Rows > 0 && r.y+1 >= r.Rows {
		r.eod = true
		return io.EOF
	}

	if r.ByteAlign {
		r.dec.br.align()
	}

	status, err := r.dec.decodeLine(r.y + 1)
	if err != nil {
		r.err = err
		r.line = nil
		return err
	}
	switch status {
	case lineEOD:
		r.eod = true
		r.line = nil
		return io.EOF
	case lineLast:
		r.eod = true
	}

	r.y++
	r.line = r.dec.row.bytes()
	return nil
}
