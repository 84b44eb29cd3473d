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

// lineStatus describes the outcome of decoding one scan line.
type lineStatus int

const (
	// lineOK means that a complete row has been decoded.
	lineOK lineStatus = iota

	// lineLast means that the input ended inside the row.  The partial
	// row has been decoded, there is no more data.
	lineLast

	// lineEOD means that no row was decoded because the end of the data
	// has been reached.
	lineEOD
)

// rtcLength is the number of consecutive EOL codes which signal the end
// of the data (return to control).
const rtcLength = 6

// lineDecoder decodes one-dimensional scan lines into a packed row.
type lineDecoder struct {
	columns int
	br      *bitReader
	codes   *codeTable
	row     *scanline

	// eolsLeft is the number of further consecutive EOL codes needed to
	// form an RTC sequence.
	eolsLeft int
}

func newLineDecoder(br *bitReader, columns int) *lineDecoder {
	return &lineDecoder{
		columns:  columns,
		br:       br,
		codes:    codeTables(),
		row:      newScanline(columns),
		eolsLeft: rtcLength,
	}
}

// decodeLine decodes the next scan line into d.row.
//
// Leading EOL codes are skipped.  An EOL code after the start of the
// row ends the row early, the remaining pixels are left white.
// If decoding fails, the returned error is a *DecodeError for the given
// row index, or an error from the underlying reader.
func (d *lineDecoder) decodeLine(y int) (lineStatus, error) {
	d.row.clear()

	x := 0         // number of pixels written
	acc := 0       // accumulated make-up length of the current run
	black := false // the first run of every row is white
	started := false

	for x < d.columns || acc > 0 {
		tree := d.codes.white
		if black {
			tree = d.codes.black
		}

		w, ok, err := tree.next(d.br)
		if err == ErrInvalidCode {
			return lineEOD, &DecodeError{
				Row:    y,
				Column: x,
				Bit:    d.br.bitsRead(),
				Err:    err,
			}
		} else if err != nil {
			return lineEOD, err
		}

		if !ok {
			if x == 0 && acc == 0 {
				return lineEOD, nil
			}
			d.writeRun(x, acc, black)
			return lineLast, nil
		}

		switch w.kind {
		case codeMakeUp:
			acc += w.length
			started = true
			d.eolsLeft = rtcLength

		case codeTerminating:
			x = d.writeRun(x, acc+w.length, black)
			acc = 0
			black = !black
			started = true
			d.eolsLeft = rtcLength

		case codeEOL:
			d.eolsLeft--
			if d.eolsLeft <= 0 {
				return lineEOD, nil
			}
			if started {
				d.writeRun(x, acc, black)
				return lineOK, nil
			}
		}
	}

	return lineOK, nil
}

// writeRun paints a run of n pixels, starting at column x, and returns
// the column after the run.  Runs are clipped at the right edge of the row.
func (d *lineDecoder) writeRun(x, n int, black bool) int {
	n = min(n, d.columns-x)
	if black {
		d.row.setBits(x, n)
	}
	return x + n
}
