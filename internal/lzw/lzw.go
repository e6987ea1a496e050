// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package lzw implements the variable-width LZW decompression GIF uses for
// its image data sub-blocks: a dictionary that starts with one entry per
// palette index plus two reserved control codes (CLEAR, END_OF_INFORMATION),
// and grows by one entry per code read until it is reset by CLEAR or a
// maximum code width of 12 bits is reached.
package lzw

import (
	"github.com/ostafen/gifdecode/pkg/bitreader"
)

const maxCodeWidth = 12

// Decompress reads data (the concatenated image data sub-blocks) as an
// LZW stream seeded with the given minimum code size (2..=8, per the GIF
// image descriptor) and returns the decoded sequence of palette indices.
func Decompress(data []byte, minCodeSize uint8) ([]byte, error) {
	base := int(1) << minCodeSize
	clearCode := base
	eoiCode := base + 1

	br := bitreader.New(data)

	var dict [][]byte
	width := minCodeSize + 1

	reset := func() {
		dict = make([][]byte, base, base+2+(1<<maxCodeWidth))
		for i := 0; i < base; i++ {
			dict[i] = []byte{byte(i)}
		}
		dict = append(dict, nil, nil) // clearCode, eoiCode: never indexed, only compared against
		width = minCodeSize + 1
	}

	readCode := func() (int, bool) {
		c, ok := br.Read(width)
		return int(c), ok
	}

	code, ok := readCode()
	if !ok || code != clearCode {
		return nil, ErrMissingClear
	}

	var result []byte

outer:
	for {
		reset()

		code, ok = readCode()
		if !ok {
			return nil, ErrTruncatedBitstream
		}
		switch code {
		case eoiCode:
			break outer
		case clearCode:
			continue outer
		}
		if code >= len(dict) || dict[code] == nil {
			return nil, ErrInvalidCode
		}
		result = append(result, dict[code]...)
		prev := code

		for {
			code, ok = readCode()
			if !ok {
				return nil, ErrTruncatedBitstream
			}
			switch code {
			case clearCode:
				continue outer
			case eoiCode:
				break outer
			}

			var newEntry []byte
			switch {
			case code < len(dict):
				entry := dict[code]
				if entry == nil {
					return nil, ErrInvalidCode
				}
				result = append(result, entry...)
				newEntry = appendIndex(dict[prev], entry[0])
			case code == len(dict):
				prevEntry := dict[prev]
				newEntry = appendIndex(prevEntry, prevEntry[0])
				result = append(result, newEntry...)
			default:
				return nil, ErrInvalidCode
			}

			// Insert the new entry first, then decide whether the code
			// width needs to grow: growing before the entry that
			// triggered it would read the next code at the wrong width.
			dict = append(dict, newEntry)
			if len(dict) == 1<<width {
				if width == maxCodeWidth {
					c, ok := readCode()
					if !ok {
						return nil, ErrTruncatedBitstream
					}
					if c != clearCode {
						return nil, ErrDictSaturated
					}
					continue outer
				}
				width++
			}

			prev = code
		}
	}

	return result, nil
}

func appendIndex(entry []byte, k byte) []byte {
	out := make([]byte, len(entry)+1)
	copy(out, entry)
	out[len(entry)] = k
	return out
}
