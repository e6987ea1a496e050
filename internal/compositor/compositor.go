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

// Package compositor turns a parsed GIF block tree into full-screen RGB
// frames: it drives internal/lzw per image block and applies disposal,
// transparency, and interlace rules to build each frame on top of the
// last.
package compositor

import (
	"context"
	"fmt"

	"github.com/ostafen/gifdecode/internal/gifformat"
	"github.com/ostafen/gifdecode/internal/lzw"
	"github.com/ostafen/gifdecode/pkg/color"
)

// pixel is an optional color: nil means the source pixel was transparent
// and the frame underneath should show through.
type pixel = *color.Color

// state carries what the compositor needs across frames: the last fully
// composited frame, and the base buffer that frame was built from before
// its own sub-image was blitted in (needed to support RestoreToPrevious,
// which restores to the buffer as it stood before the *previous* frame's
// blit, not the previous rendered frame itself).
type state struct {
	width, height int
	background    color.Color
	last          []color.Color
	lastBase      []color.Color
}

// Composite walks res.OrderedBlocks in file order and renders every image
// block into a Frame.
func Composite(res *gifformat.ParseResult, opts Options) ([]Frame, error) {
	return CompositeContext(context.Background(), res, opts)
}

// CompositeContext is Composite with cancellation checked once per block
// of res.OrderedBlocks, between frames rather than mid-decompress.
func CompositeContext(ctx context.Context, res *gifformat.ParseResult, opts Options) ([]Frame, error) {
	st := &state{
		width:  int(res.LSD.Width),
		height: int(res.LSD.Height),
	}
	if res.LSD.GlobalColorTable != nil {
		st.background = colorAt(res.LSD.GlobalColorTable, int(res.LSD.BackgroundColorIndex))
	}

	var frames []Frame
	frameIndex := 0
	var bytesSoFar int64
	gcePending := false // a GCE not yet consumed by an image or plain-text block

	for _, block := range res.OrderedBlocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch b := block.(type) {
		case *gifformat.GraphicControlExtension:
			if gcePending {
				opts.emit(Diagnostic{Stage: "compositor", Message: "graphic control extension was replaced by a later one before any image block; it was discarded"})
			}
			gcePending = true
		case *gifformat.PlainTextExtension:
			gcePending = false
			if b.AssociatedGCE != nil {
				opts.emit(Diagnostic{
					Stage:   "compositor",
					Message: "plain text extension is not rendered; its graphic control extension was discarded",
				})
			}
		case *gifformat.TableBasedImage:
			gcePending = false
			if opts.MaxFrames > 0 && len(frames) >= opts.MaxFrames {
				return nil, ErrTooManyFrames
			}
			frame, err := st.compositeImage(b, res.LSD.GlobalColorTable)
			if err != nil {
				return nil, err
			}
			frames = append(frames, frame)
			frameIndex++
			bytesSoFar += int64(len(frame.Colors)) * 3
			opts.reportProgress(frameIndex, bytesSoFar)
		}
	}
	if gcePending {
		opts.emit(Diagnostic{Stage: "compositor", Message: "graphic control extension with no following image block was discarded"})
	}

	return frames, nil
}

func (st *state) compositeImage(img *gifformat.TableBasedImage, global gifformat.ColorTable) (Frame, error) {
	table := img.LocalColorTable
	if table == nil {
		table = global
	}
	if table == nil {
		return Frame{}, ErrMissingColorTable
	}

	transparentFlag := false
	var transparentIndex uint8
	disposal := gifformat.DisposalUnspecified
	var delay uint16
	if img.AssociatedGCE != nil {
		transparentFlag = img.AssociatedGCE.TransparentColorIndexAvailable
		transparentIndex = img.AssociatedGCE.TransparentColorIndex
		disposal = img.AssociatedGCE.DisposalMethod
		delay = img.AssociatedGCE.DelayTime
	}

	desc := img.ImageDescriptor
	indices, err := lzw.Decompress(img.ImageData.Data, img.ImageData.LZWMinCodeSize)
	if err != nil {
		return Frame{}, err
	}
	if len(indices) != int(desc.Width)*int(desc.Height) {
		return Frame{}, fmt.Errorf("%w: got %d indices, want %d", ErrDeinterlaceSizeMismatch, len(indices), int(desc.Width)*int(desc.Height))
	}

	sub := make([]pixel, len(indices))
	for i, idx := range indices {
		if transparentFlag && idx == transparentIndex {
			sub[i] = nil
			continue
		}
		c := colorAt(table, int(idx))
		sub[i] = &c
	}

	if desc.InterlaceFlag {
		sub = deinterlace(sub, int(desc.Width), int(desc.Height))
	}

	base, err := st.buildBase(disposal)
	if err != nil {
		return Frame{}, err
	}

	full := make([]color.Color, len(base))
	copy(full, base)
	blit(full, st.width, sub, int(desc.Left), int(desc.Top), int(desc.Width), int(desc.Height))

	st.lastBase = base
	st.last = full

	return Frame{Colors: full, DelayTime: delay}, nil
}

// buildBase returns the full-screen starting buffer for the frame about
// to be composited, per the active disposal method. A reserved disposal
// method is rejected on every frame, the first one included. Otherwise the
// very first frame behaves as DisposalRestoreToBackgroundColor would:
// there is no previous frame, so it starts from a background fill.
func (st *state) buildBase(disposal gifformat.DisposalMethod) ([]color.Color, error) {
	n := st.width * st.height

	if disposal >= gifformat.DisposalUndefined {
		return nil, ErrDisposalUndefined
	}
	if st.last == nil {
		return fill(st.background, n), nil
	}

	switch disposal {
	case gifformat.DisposalUnspecified, gifformat.DisposalDoNotDispose:
		base := make([]color.Color, n)
		copy(base, st.last)
		return base, nil
	case gifformat.DisposalRestoreToBackgroundColor:
		return fill(st.background, n), nil
	case gifformat.DisposalRestoreToPrevious:
		base := make([]color.Color, n)
		copy(base, st.lastBase)
		return base, nil
	default:
		return nil, ErrDisposalUndefined
	}
}

func fill(c color.Color, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func colorAt(table gifformat.ColorTable, index int) color.Color {
	if index < 0 || index >= len(table) {
		return color.Color{}
	}
	return table[index]
}

// blit copies non-transparent sub-image pixels into full at (left, top),
// leaving the underlying buffer untouched wherever the sub-image is
// transparent.
func blit(full []color.Color, fullWidth int, sub []pixel, left, top, width, height int) {
	for y := 0; y < height; y++ {
		rowOffset := (top+y)*fullWidth + left
		for x := 0; x < width; x++ {
			c := sub[y*width+x]
			if c != nil {
				full[rowOffset+x] = *c
			}
		}
	}
}

// deinterlace reorders a sub-image's rows from GIF's four-pass interlace
// order back into top-to-bottom order: (0,8), (4,8), (2,4), (1,2).
func deinterlace(input []pixel, width, height int) []pixel {
	out := make([]pixel, width*height)

	passes := [4][2]int{{0, 8}, {4, 8}, {2, 4}, {1, 2}}
	index := 0
	for _, pass := range passes {
		start, step := pass[0], pass[1]
		for y := start; y < height; y += step {
			dstRow := y * width
			if dstRow >= len(out) {
				break
			}
			for x := 0; x < width; x++ {
				out[dstRow+x] = input[index]
				index++
			}
		}
	}
	return out
}
