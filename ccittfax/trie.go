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
	"io"
	"sync"
)

type codeKind uint8

const (
	codeTerminating codeKind = iota
	codeMakeUp
	codeEOL
)

// codeWord is the meaning of a decoded code.
type codeWord struct {
	kind   codeKind
	length int // run length, unused for codeEOL
}

func (w codeWord) String() string {
	switch w.kind {
	case codeTerminating:
		return fmt.Sprintf("term(%d)", w.length)
	case codeMakeUp:
		return fmt.Sprintf("makeup(%d)", w.length)
	case codeEOL:
		return "EOL"
	default:
		return fmt.Sprintf("codeWord(%d, %d)", w.kind, w.length)
	}
}

// trieNode is a node in a binary prefix tree of codes.
// Leaf nodes carry a code word, all other nodes have at least one child.
type trieNode struct {
	child [2]*trieNode
	leaf  bool
	word  codeWord
}

// insert adds the code c, with meaning w, to the tree rooted at n.
// An error is returned if c is a prefix of an existing code or
// an existing code is a prefix of c.
func (n *trieNode) insert(c code, w codeWord) error {
	for i := int(c.Width) - 1; i >= 0; i-- {
		if n.leaf {
			return errAmbiguousCode
		}
		bit := (c.Bits >> i) & 1
		next := n.child[bit]
		if next == nil {
			next = &trieNode{}
			n.child[bit] = next
		}
		n = next
	}
	if n.leaf || n.child[0] != nil || n.child[1] != nil {
		return errAmbiguousCode
	}
	n.leaf = true
	n.word = w
	return nil
}

// next reads bits from br until a complete code has been read.
// If the input ends before a code is complete, the second return value
// is false and the error is nil.
// If the bits read do not form the start of a valid code,
// ErrInvalidCode is returned.
func (n *trieNode) next(br *bitReader) (codeWord, bool, error) {
	for !n.leaf {
		bit, err := br.readBit()
		if err == io.EOF {
			return codeWord{}, false, nil
		} else if err != nil {
			return codeWord{}, false, err
		}
		n = n.child[bit]
		if n == nil {
			return codeWord{}, false, ErrInvalidCode
		}
	}
	return n.word, true, nil
}

// codeTable holds the decoding trees for white and black runs.
// Once built, the trees are never modified.
type codeTable struct {
	white, black *trieNode
}

// codeTables returns the shared decoding trees.
var codeTables = sync.OnceValue(func() *codeTable {
	t, err := buildCodeTable()
	if err != nil {
		panic(err)
	}
	return t
})

func buildCodeTable() (*codeTable, error) {
	white, err := buildTree(whiteTermCodes[:], whiteMakeUpCodes[:])
	if err != nil {
		return nil, fmt.Errorf("white codes: %w", err)
	}
	black, err := buildTree(blackTermCodes[:], blackMakeUpCodes[:])
	if err != nil {
		return nil, fmt.Errorf("black codes: %w", err)
	}
	return &codeTable{white: white, black: black}, nil
}

func buildTree(term, makeUp []code) (*trieNode, error) {
	root := &trieNode{}
	for l, c := range term {
		if err := root.insert(c, codeWord{kind: codeTerminating, length: l}); err != nil {
			return nil, fmt.Errorf("terminating code %d: %w", l, err)
		}
	}
	for i, c := range makeUp {
		l := 64 * (i + 1)
		if err := root.insert(c, codeWord{kind: codeMakeUp, length: l}); err != nil {
			return nil, fmt.Errorf("make-up code %d: %w", l, err)
		}
	}
	for i, c := range extMakeUpCodes {
		l := 1792 + 64*i
		if err := root.insert(c, codeWord{kind: codeMakeUp, length: l}); err != nil {
			return nil, fmt.Errorf("make-up code %d: %w", l, err)
		}
	}
	if err := root.insert(eolCode, codeWord{kind: codeEOL}); err != nil {
		return nil, fmt.Errorf("EOL: %w", err)
	}

	// Fill bits: any number of additional 0 bits may precede the final 1
	// of an EOL code.
	n := root
	for range eolCode.Width - 1 {
		n = n.child[0]
	}
	if n.child[0] != nil {
		return nil, errAmbiguousCode
	}
	n.child[0] = n

	return root, nil
}
