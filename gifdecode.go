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

// Package gifdecode decodes GIF89a (and GIF87a) streams into fully
// composited RGB frames: it parses the block grammar, decompresses each
// image block's LZW data, and applies disposal, transparency, and
// interlace rules to build one full-screen buffer per frame.
//
// The decoder is single-threaded and non-suspending: Load only blocks on
// reads from the caller-supplied io.Reader, never internally. Two
// concurrent Load calls over independent readers share no state and may
// run in separate goroutines freely.
package gifdecode

import (
	"context"
	"io"

	"github.com/ostafen/gifdecode/internal/compositor"
	"github.com/ostafen/gifdecode/internal/gifformat"
	"github.com/ostafen/gifdecode/pkg/color"
)

// Color is a plain RGB triple with no alpha channel.
type Color = color.Color

// ImageFrame is one fully composited frame, in row-major order,
// len(Colors) == width*height.
type ImageFrame struct {
	Colors    []Color
	DelayTime uint16
}

// Diagnostic is a non-fatal decode warning: something the GIF grammar
// technically allows (or an ancient encoder got slightly wrong) that
// this decoder tolerates rather than rejects.
type Diagnostic struct {
	Stage   string
	Message string
}

// Gif is the fully decoded result of a Load call.
type Gif struct {
	Width, Height uint32
	ImageFrames   []ImageFrame
	Diagnostics   []Diagnostic
}

// Load reads a complete GIF stream from r and returns every frame fully
// composited. An error aborts the decode entirely; there is no
// partial-success mode.
func Load(r io.Reader, opts ...Option) (*Gif, error) {
	return LoadContext(context.Background(), r, opts...)
}

// LoadContext is Load with cancellation checked once per top-level block
// (each image or extension block, not mid-LZW-code), so a caller can
// abandon a hostile or very large stream without the decoder ever
// blocking on anything but r itself.
func LoadContext(ctx context.Context, r io.Reader, opts ...Option) (*Gif, error) {
	o := newOptions(opts)

	res, err := gifformat.ParseContextWithOptions(ctx, r, gifformat.Options{Strict: o.strict})
	if err != nil {
		return nil, classify("parser", err)
	}

	var diagnostics []Diagnostic
	compOpts := compositor.Options{
		OnDiagnostic: func(d compositor.Diagnostic) {
			diag := Diagnostic{Stage: d.Stage, Message: d.Message}
			diagnostics = append(diagnostics, diag)
			o.logger.Record(d.Stage, d.Message)
		},
		MaxFrames: o.maxFrames,
	}
	if o.onProgress != nil {
		compOpts.OnProgress = o.onProgress
	}

	frames, err := compositor.CompositeContext(ctx, res, compOpts)
	if err != nil {
		return nil, classify("compositor", err)
	}

	imageFrames := make([]ImageFrame, len(frames))
	for i, f := range frames {
		imageFrames[i] = ImageFrame{Colors: f.Colors, DelayTime: f.DelayTime}
	}

	return &Gif{
		Width:       uint32(res.LSD.Width),
		Height:      uint32(res.LSD.Height),
		ImageFrames: imageFrames,
		Diagnostics: diagnostics,
	}, nil
}
