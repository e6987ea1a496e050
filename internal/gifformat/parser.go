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

package gifformat

import (
	"context"
	"fmt"
	"io"

	"github.com/ostafen/gifdecode/internal/gifio"
	"github.com/ostafen/gifdecode/pkg/color"
)

// Block tags, read right after the logical screen descriptor and after
// every subsequent data block.
const (
	blockExtension       = 0x21
	blockImageDescriptor = 0x2C
	blockTrailer         = 0x3B
)

// Extension labels, the byte immediately following blockExtension.
const (
	extPlainText      = 0x01
	extGraphicControl = 0xF9
	extCommentExt     = 0xFE
	extApplicationExt = 0xFF
)

const (
	fieldGlobalColorTable = 1 << 7
	fieldLocalColorTable  = 1 << 7
	fieldInterlace        = 1 << 6
	fieldSort             = 1 << 5 // image descriptor sort flag
	fieldLSDSortFlag      = 1 << 3 // logical screen descriptor sort flag (different bit)
	fieldColorResBits     = 0x70
	fieldSizeBits         = 0x07
	fieldReservedBits     = 0x18 // image descriptor bits 4-3, always zero per GIF89a
)

// Options configures a parse. The zero value is the lenient default
// described by spec.md §9: packed-field reserved bits are never
// validated, only the documented flag/size bits are read.
type Options struct {
	// Strict rejects an image descriptor whose reserved bits (4-3) are
	// set, instead of silently ignoring them the way spec.md §9's
	// "ancient GIF writers" leniency does by default.
	Strict bool
}

// parser walks one GIF stream and accumulates a ParseResult. A
// GraphicControlExtension is buffered until the following image or
// plain-text block consumes it, per the association rule in section 23 of
// the GIF89a spec.
type parser struct {
	r    *gifio.Reader
	res  ParseResult
	opts Options

	pendingGCE *GraphicControlExtension
}

// Parse reads a complete GIF stream from r, walking header, logical
// screen descriptor, and every data block up to (and including) the
// trailer, using the lenient default Options.
func Parse(r io.Reader) (*ParseResult, error) {
	return ParseContext(context.Background(), r)
}

// ParseContext is Parse with cancellation checked once per top-level data
// block, so a caller can abandon a very large or hostile stream without
// the parser ever blocking on anything but r itself.
func ParseContext(ctx context.Context, r io.Reader) (*ParseResult, error) {
	return ParseContextWithOptions(ctx, r, Options{})
}

// ParseContextWithOptions is ParseContext with explicit Options, used by
// gifdecode to thread its own Strict option through to the parser.
func ParseContextWithOptions(ctx context.Context, r io.Reader, opts Options) (*ParseResult, error) {
	p := &parser{r: gifio.NewReader(r), opts: opts}

	if err := p.readHeader(); err != nil {
		return nil, err
	}
	if err := p.readLogicalScreenDescriptor(); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tag, err := p.r.ReadU8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case blockImageDescriptor:
			if err := p.readImage(); err != nil {
				return nil, err
			}
		case blockExtension:
			if err := p.readExtension(); err != nil {
				return nil, err
			}
		case blockTrailer:
			return &p.res, nil
		default:
			return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownBlockTag, tag)
		}
	}
}

func (p *parser) readHeader() error {
	var sig [6]byte
	if err := p.r.ReadExact(sig[:]); err != nil {
		return err
	}
	s := string(sig[:])
	if s != "GIF87a" && s != "GIF89a" {
		return fmt.Errorf("%w: %q", ErrBadSignature, s)
	}
	p.res.Header = Header{Signature: "GIF", Version: s[3:]}
	return nil
}

func (p *parser) readLogicalScreenDescriptor() error {
	width, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	height, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	packed, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	bg, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	aspect, err := p.r.ReadU8()
	if err != nil {
		return err
	}

	lsd := LogicalScreenDescriptor{
		Width:                width,
		Height:               height,
		ColorResolution:      (packed & fieldColorResBits) >> 4,
		SortFlag:             packed&fieldLSDSortFlag != 0,
		BackgroundColorIndex: bg,
	}
	if aspect != 0 {
		lsd.PixelAspectRatio = (float32(aspect) + 15) / 64
	}

	if packed&fieldGlobalColorTable != 0 {
		table, err := p.readColorTable(packed & fieldSizeBits)
		if err != nil {
			return err
		}
		lsd.GlobalColorTable = table
	}

	p.res.LSD = lsd
	return nil
}

// readColorTable reads a color table of 2^(sizeExponent+1) RGB triples,
// per the 3-bit size field shared by the logical screen descriptor and
// every image descriptor.
func (p *parser) readColorTable(sizeExponent byte) (ColorTable, error) {
	n := 1 << (uint(sizeExponent) + 1)
	buf := make([]byte, 3*n)
	if err := p.r.ReadExact(buf); err != nil {
		return nil, err
	}
	table := make(ColorTable, n)
	for i := 0; i < n; i++ {
		table[i] = color.Color{R: buf[3*i], G: buf[3*i+1], B: buf[3*i+2]}
	}
	return table, nil
}

func (p *parser) readImage() error {
	left, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	top, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	width, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	height, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	packed, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	if p.opts.Strict && packed&fieldReservedBits != 0 {
		return fmt.Errorf("%w: image descriptor reserved bits set", ErrInvalidPackedField)
	}

	desc := ImageDescriptor{
		Left:                left,
		Top:                 top,
		Width:               width,
		Height:              height,
		InterlaceFlag:       packed&fieldInterlace != 0,
		SortFlag:            packed&fieldSort != 0,
		LocalColorTableFlag: packed&fieldLocalColorTable != 0,
		LocalColorTableSize: packed & fieldSizeBits,
	}

	img := &TableBasedImage{ImageDescriptor: desc, AssociatedGCE: p.pendingGCE}
	p.pendingGCE = nil

	if desc.LocalColorTableFlag {
		table, err := p.readColorTable(desc.LocalColorTableSize)
		if err != nil {
			return err
		}
		img.LocalColorTable = table
	}

	minCodeSize, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	data, err := p.r.ReadSubBlocks()
	if err != nil {
		return err
	}
	img.ImageData = ImageData{LZWMinCodeSize: minCodeSize, Data: data}

	p.res.OrderedBlocks = append(p.res.OrderedBlocks, img)
	return nil
}

func (p *parser) readExtension() error {
	label, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	switch label {
	case extGraphicControl:
		return p.readGraphicControlExtension()
	case extApplicationExt:
		return p.readApplicationExtension()
	case extCommentExt:
		return p.readCommentExtension()
	case extPlainText:
		return p.readPlainTextExtension()
	default:
		return fmt.Errorf("%w: 0x%02X", ErrUnknownExtensionLabel, label)
	}
}

func (p *parser) readGraphicControlExtension() error {
	size, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	if size != 4 {
		return fmt.Errorf("%w: graphic control block size %d", ErrInvalidPackedField, size)
	}
	packed, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	delay, err := p.r.ReadU16LE()
	if err != nil {
		return err
	}
	transparentIdx, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	terminator, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	if terminator != 0x00 {
		return ErrMissingBlockTerminator
	}

	disposal := DisposalMethod((packed & 0b0001_1100) >> 2)
	if disposal > DisposalUndefined {
		disposal = DisposalUndefined // codes 5-7 are reserved, like 4
	}
	gce := &GraphicControlExtension{
		DisposalMethod:                 disposal,
		UserInputExpected:              packed&0b0000_0010 != 0,
		TransparentColorIndexAvailable: packed&0b0000_0001 != 0,
		DelayTime:                      delay,
		TransparentColorIndex:          transparentIdx,
	}
	p.res.OrderedBlocks = append(p.res.OrderedBlocks, gce)
	p.pendingGCE = gce
	return nil
}

func (p *parser) readApplicationExtension() error {
	size, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	if size != 11 {
		return fmt.Errorf("%w: application extension block size %d", ErrInvalidPackedField, size)
	}
	var idAndAuth [11]byte
	if err := p.r.ReadExact(idAndAuth[:]); err != nil {
		return err
	}
	data, err := p.r.ReadSubBlocks()
	if err != nil {
		return err
	}
	p.res.OrderedBlocks = append(p.res.OrderedBlocks, &ApplicationExtension{
		Identifier: string(idAndAuth[:8]),
		AuthCode:   string(idAndAuth[8:11]),
		Data:       data,
	})
	return nil
}

func (p *parser) readCommentExtension() error {
	data, err := p.r.ReadSubBlocks()
	if err != nil {
		return err
	}
	p.res.OrderedBlocks = append(p.res.OrderedBlocks, &CommentExtension{Text: string(data)})
	return nil
}

func (p *parser) readPlainTextExtension() error {
	size, err := p.r.ReadU8()
	if err != nil {
		return err
	}
	if size != 12 {
		return fmt.Errorf("%w: plain text extension block size %d", ErrInvalidPackedField, size)
	}
	var fixed [12]byte
	if err := p.r.ReadExact(fixed[:]); err != nil {
		return err
	}
	data, err := p.r.ReadSubBlocks()
	if err != nil {
		return err
	}

	pt := &PlainTextExtension{
		TextGridLeft:             uint16(fixed[0]) | uint16(fixed[1])<<8,
		TextGridTop:              uint16(fixed[2]) | uint16(fixed[3])<<8,
		TextGridWidth:            uint16(fixed[4]) | uint16(fixed[5])<<8,
		TextGridHeight:           uint16(fixed[6]) | uint16(fixed[7])<<8,
		CharCellWidth:            fixed[8],
		CharCellHeight:           fixed[9],
		TextForegroundColorIndex: fixed[10],
		TextBackgroundColorIndex: fixed[11],
		Text:                     string(data),
		AssociatedGCE:            p.pendingGCE,
	}
	p.pendingGCE = nil

	p.res.OrderedBlocks = append(p.res.OrderedBlocks, pt)
	return nil
}
