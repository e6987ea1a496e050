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

// Package gifformat walks the GIF89a block grammar (header, logical screen
// descriptor, then a mix of image and extension blocks ending in a
// trailer) and builds a typed tree of the parsed structures. It does not
// decompress pixel data or composite frames; that is internal/lzw and
// internal/compositor's job.
package gifformat

import "github.com/ostafen/gifdecode/pkg/color"

// Header is the 6-byte GIF signature and version.
type Header struct {
	Signature string // always "GIF"
	Version   string // "87a" or "89a"
}

// ColorTable is an ordered palette, length a power of two in [2, 256].
type ColorTable []color.Color

// LogicalScreenDescriptor is the canvas every image block composites onto.
type LogicalScreenDescriptor struct {
	Width, Height        uint16
	ColorResolution      uint8 // 3 bits
	SortFlag             bool
	BackgroundColorIndex uint8
	PixelAspectRatio     float32
	GlobalColorTable     ColorTable // nil if absent
}

// ImageDescriptor precedes each image block's optional local color table
// and image data.
type ImageDescriptor struct {
	Left, Top, Width, Height uint16
	InterlaceFlag            bool
	SortFlag                 bool
	LocalColorTableFlag      bool
	LocalColorTableSize      uint8 // 3-bit exponent field, not entry count
}

// DisposalMethod says what the compositor should do with a frame before
// painting the next one.
type DisposalMethod uint8

const (
	DisposalUnspecified DisposalMethod = iota
	DisposalDoNotDispose
	DisposalRestoreToBackgroundColor
	DisposalRestoreToPrevious
	DisposalUndefined
)

func (d DisposalMethod) String() string {
	switch d {
	case DisposalUnspecified:
		return "unspecified"
	case DisposalDoNotDispose:
		return "do-not-dispose"
	case DisposalRestoreToBackgroundColor:
		return "restore-to-background"
	case DisposalRestoreToPrevious:
		return "restore-to-previous"
	default:
		return "undefined"
	}
}

// GraphicControlExtension binds timing, disposal, and transparency to the
// next image or plain-text block.
type GraphicControlExtension struct {
	DisposalMethod                 DisposalMethod
	UserInputExpected              bool
	TransparentColorIndexAvailable bool
	DelayTime                      uint16 // centiseconds
	TransparentColorIndex          uint8
}

// ImageData is the LZW seed size plus the concatenated data sub-blocks.
type ImageData struct {
	LZWMinCodeSize uint8
	Data           []byte
}

// TableBasedImage is a single rendered frame's source material: where it
// sits on the logical screen, its own palette (if any), its compressed
// pixel data, and the GraphicControlExtension that was pending when it was
// parsed, if any.
type TableBasedImage struct {
	ImageDescriptor ImageDescriptor
	LocalColorTable ColorTable // nil if absent
	ImageData       ImageData
	AssociatedGCE   *GraphicControlExtension
}

// ApplicationExtension carries an application identifier/auth code plus
// arbitrary sub-block data (e.g. NETSCAPE2.0 loop-count extensions).
type ApplicationExtension struct {
	Identifier string // 8 bytes
	AuthCode   string // 3 bytes
	Data       []byte
}

// CommentExtension is free-form text, parsed but never rendered.
type CommentExtension struct {
	Text string
}

// PlainTextExtension is parsed but never rendered (spec non-goal).
type PlainTextExtension struct {
	TextGridLeft, TextGridTop     uint16
	TextGridWidth, TextGridHeight uint16
	CharCellWidth, CharCellHeight uint8
	TextForegroundColorIndex      uint8
	TextBackgroundColorIndex      uint8
	Text                          string
	AssociatedGCE                 *GraphicControlExtension
}

// Block is any of the data blocks that can appear between the logical
// screen descriptor and the trailer.
type Block interface {
	isBlock()
}

func (*TableBasedImage) isBlock()         {}
func (*ApplicationExtension) isBlock()    {}
func (*CommentExtension) isBlock()        {}
func (*PlainTextExtension) isBlock()      {}
func (*GraphicControlExtension) isBlock() {}

// ParseResult is the full parsed structure of one GIF stream, in file
// order.
type ParseResult struct {
	Header        Header
	LSD           LogicalScreenDescriptor
	OrderedBlocks []Block
}
