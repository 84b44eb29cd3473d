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
	"bufio"
	"io"
)

// bitReader reads single bits from a byte stream, most significant bit
// first.
type bitReader struct {
	r   io.ByteReader
	err error // sticky read error

	current byte  // the byte being consumed
	nBits   uint8 // number of unread bits in current
	pos     int64 // number of bits consumed so far
}

func newBitReader(r io.Reader) *bitReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &bitReader{r: br}
}

// readBit returns the next bit of the input.
// At the end of the data, io.EOF is returned.
func (b *bitReader) readBit() (uint8, error) {
	if b.nBits == 0 {
		if b.err != nil {
			return 0, b.err
		}
		c, err := b.r.ReadByte()
		if err != nil {
			b.err = err
			return 0, err
		}
		b.current = c
		b.nBits = 8
	}
	b.nBits--
	b.pos++
	return (b.current >> b.nBits) & 1, nil
}

// align skips the remaining bits of a partially consumed byte.
func (b *bitReader) align() {
	b.pos += int64(b.nBits)
	b.nBits = 0
}

// bitsRead returns the number of bits consumed, including bits skipped
// by align.
func (b *bitReader) bitsRead() int64 {
	return b.pos
}
