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
	"errors"
	"strconv"
)

var (
	// ErrInvalidCode is reported when the input contains a bit sequence
	// which is not a valid code word.
	ErrInvalidCode = errors.New("invalid code word")

	// ErrUnsupported is reported for coding schemes other than
	// one-dimensional Group 3.
	ErrUnsupported = errors.New("unsupported CCITT coding scheme")

	errAmbiguousCode = errors.New("ambiguous code table")
)

// DecodeError indicates that the CCITT data could not be decoded.
// Once a DecodeError has been reported, a Reader returns the same error
// for all subsequent reads.
type DecodeError struct {
	Row    int   // index of the row being decoded
	Column int   // number of pixels decoded in this row
	Bit    int64 // number of input bits consumed
	Err    error
}

func (err *DecodeError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "ccittfax: row " + strconv.Itoa(err.Row) +
		", column " + strconv.Itoa(err.Column) + middle +
		" (at bit " + strconv.FormatInt(err.Bit, 10) + ")"
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}
