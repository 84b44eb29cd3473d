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

// scanline is a bit-packed row of pixels, MSB first.
type scanline struct {
	columns int
	buf     []byte
}

func newScanline(columns int) *scanline {
	s := &scanline{}
	s.resize(columns)
	return s
}

// resize changes the width of the row.  The existing storage is reused
// where possible.  The contents of the row are cleared.
func (s *scanline) resize(columns int) {
	n := (columns + 7) / 8
	if cap(s.buf) >= n {
		s.buf = s.buf[:n]
	} else {
		s.buf = make([]byte, n)
	}
	s.columns = columns
	s.clear()
}

func (s *scanline) clear() {
	clear(s.buf)
}

// setBits sets n consecutive bits, starting at bit position start.
// The range is clipped to the width of the row.
func (s *scanline) setBits(start, n int) {
	end := min(start+n, s.columns)
	start = max(start, 0)

	const full byte = 0xFF
	for start < end {
		i := start / 8
		lo := start - 8*i
		hi := min(end-8*i, 8)
		s.buf[i] |= full>>lo &^ (full >> hi)
		start = 8*i + hi
	}
}

func (s *scanline) getByte(i int) byte {
	return s.buf[i]
}

// bytes returns the packed row.  The returned slice is only valid until
// the row is next modified.
func (s *scanline) bytes() []byte {
	return s.buf
}
