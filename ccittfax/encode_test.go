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
	"bytes"
	"fmt"
)

// testEncoder produces Group 3 one-dimensional data for the tests.
type testEncoder struct {
	buf       bytes.Buffer
	byteVal   byte
	validBits int
}

func (e *testEncoder) writeBits(bits uint32, width uint8) {
	if width == 0 {
		return
	}
	for bit := uint32(1) << (width - 1); bit > 0; bit >>= 1 {
		if bits&bit != 0 {
			e.byteVal |= 1 << (7 - e.validBits)
		}
		e.validBits++
		if e.validBits == 8 {
			e.buf.WriteByte(e.byteVal)
			e.byteVal = 0
			e.validBits = 0
		}
	}
}

func (e *testEncoder) writeCode(c code) {
	e.writeBits(uint32(c.Bits), c.Width)
}

// writeString writes bits given as a string of '0' and '1' characters.
// Other characters are ignored.
func (e *testEncoder) writeString(s string) {
	for _, c := range s {
		switch c {
		case '0':
			e.writeBits(0, 1)
		case '1':
			e.writeBits(1, 1)
		}
	}
}

func (e *testEncoder) eol() {
	e.writeCode(eolCode)
}

func (e *testEncoder) rtc() {
	for range rtcLength {
		e.eol()
	}
}

// run encodes a run of the given length as make-up codes, followed by
// one terminating code.
func (e *testEncoder) run(length int, black bool) {
	term, makeUp := whiteTermCodes[:], whiteMakeUpCodes[:]
	if black {
		term, makeUp = blackTermCodes[:], blackMakeUpCodes[:]
	}

	for length > 2560 {
		e.writeCode(extMakeUpCodes[len(extMakeUpCodes)-1])
		length -= 2560
	}
	if length >= 64 {
		m := length / 64
		if m <= len(makeUp) {
			e.writeCode(makeUp[m-1])
		} else {
			e.writeCode(extMakeUpCodes[m-len(makeUp)-1])
		}
		length %= 64
	}
	e.writeCode(term[length])
}

// line encodes a scan line given as alternating run lengths, starting
// with white.
func (e *testEncoder) line(runs ...int) {
	for i, l := range runs {
		e.run(l, i%2 == 1)
	}
}

// align pads the output with 0 bits to the next byte boundary.
func (e *testEncoder) align() {
	if e.validBits > 0 {
		e.buf.WriteByte(e.byteVal)
		e.byteVal = 0
		e.validBits = 0
	}
}

// bytes returns the encoded data, padded with 0 bits to a whole number
// of bytes.
func (e *testEncoder) bytes() []byte {
	e.align()
	return e.buf.Bytes()
}

// rowRuns splits a packed row into alternating run lengths, starting
// with white.
func rowRuns(row []byte, columns int) []int {
	var runs []int
	black := false
	start := 0
	for x := range columns {
		pixel := row[x/8]&(0x80>>(x%8)) != 0
		if pixel != black {
			runs = append(runs, x-start)
			start = x
			black = pixel
		}
	}
	return append(runs, columns-start)
}

// encodeImage encodes a packed image, with an EOL before every row and
// an RTC sequence at the end.
func encodeImage(img []byte, columns int) []byte {
	rowBytes := (columns + 7) / 8
	if len(img)%rowBytes != 0 {
		panic(fmt.Sprintf("image size %d is not a multiple of %d", len(img), rowBytes))
	}
	e := &testEncoder{}
	for len(img) > 0 {
		e.eol()
		e.line(rowRuns(img[:rowBytes], columns)...)
		img = img[rowBytes:]
	}
	e.rtc()
	return e.bytes()
}
