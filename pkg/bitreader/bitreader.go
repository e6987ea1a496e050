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

// Package bitreader reads variable-width, LSB-first codes from a packed
// byte slice the way GIF's LZW stream packs them: bits fill each byte from
// the low end up, and codes span byte boundaries low-byte-first. This is
// distinct from the MSB-first packing used by many other LZW variants.
package bitreader

// Reader reads codes of 1 to 12 bits from an in-memory byte slice.
type Reader struct {
	data          []byte
	index         int
	remainingBits uint8 // unconsumed bits in data[index], counted from the LSB up
}

// New returns a Reader over data, positioned at the first bit of data[0].
func New(data []byte) *Reader {
	return &Reader{data: data, remainingBits: 8}
}

// Read returns the next code of the given width (1..=12), or false if
// fewer than width bits remain in the source.
func (r *Reader) Read(width uint8) (uint16, bool) {
	if r.index >= len(r.data) {
		return 0, false
	}

	var result uint16
	var acc uint8
	bits := width
	byteVal := r.data[r.index] >> (8 - r.remainingBits)

	for {
		if bits >= r.remainingBits {
			var mask uint8
			if r.remainingBits == 8 {
				mask = 0xff
			} else {
				mask = ^(^uint8(0) << r.remainingBits)
			}

			result |= uint16(byteVal&mask) << acc

			acc += r.remainingBits
			bits -= r.remainingBits

			r.remainingBits = 8
			r.index++

			if r.index < len(r.data) {
				byteVal = r.data[r.index]
			} else if bits > 0 {
				return 0, false
			}
		} else {
			if bits != 0 {
				mask := ^(^uint8(0) << bits)
				result |= uint16(byteVal&mask) << acc
				r.remainingBits -= bits
			}
			return result, true
		}
	}
}
