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

// Package gifio provides the typed byte-stream primitives the GIF block
// grammar is built from: single bytes, little-endian u16s, exact-length
// reads, and the zero-terminated sub-block chains used by every
// variable-length GIF payload.
package gifio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedEOF is returned whenever a read comes up short of the bytes
// the block grammar requires.
var ErrUnexpectedEOF = errors.New("gifio: unexpected end of file")

// Reader wraps a buffered byte source with the primitives the GIF grammar
// needs. It tracks the number of bytes consumed so callers can report
// offsets in diagnostics.
type Reader struct {
	buf *bufio.Reader
	n   uint64
}

// NewReader wraps r in a buffered Reader. If r is already a *bufio.Reader
// it is used directly rather than double-buffered.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{buf: br}
}

// BytesRead returns the total number of bytes consumed so far.
func (r *Reader) BytesRead() uint64 {
	return r.n
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.buf.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnexpectedEOF, err)
	}
	r.n++
	return b, nil
}

// ReadU16LE reads two bytes and combines them little-endian: lo | hi<<8.
// GIF never stores multi-byte integers any other way, and this must never
// be expressed via host-endianness tricks or type punning.
func (r *Reader) ReadU16LE() (uint16, error) {
	var buf [2]byte
	if err := r.ReadExact(buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// ReadExact fills buf entirely or returns ErrUnexpectedEOF.
func (r *Reader) ReadExact(buf []byte) error {
	n, err := io.ReadFull(r.buf, buf)
	r.n += uint64(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedEOF, err)
	}
	return nil
}

// ReadSubBlocks reads a zero-terminated chain of length-prefixed
// sub-blocks and returns their concatenated payload. The terminator byte
// is consumed but not included in the result.
func (r *Reader) ReadSubBlocks() ([]byte, error) {
	var out []byte
	for {
		size, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out, nil
		}
		chunk := make([]byte, size)
		if err := r.ReadExact(chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}
