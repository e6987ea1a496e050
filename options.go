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

package gifdecode

import "github.com/ostafen/gifdecode/internal/gifdiag"

// Options configures a Load/LoadContext call. The zero value is a fully
// usable, silent decoder that matches spec.md's stated leniencies
// exactly; use Option functions to change that.
type Options struct {
	logger     *gifdiag.Logger
	onProgress func(frameIndex int, bytesSoFar int64)
	strict     bool
	maxFrames  int
}

// Option customizes Options. Passing none gets you the defaults.
type Option func(*Options)

// WithLogger routes decode diagnostics (discarded GCEs) through l, in
// addition to always recording them in Gif.Diagnostics. Reserved
// packed-field bits ignored by a non-strict decode are not reported.
func WithLogger(l *gifdiag.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithProgress registers a callback invoked once per composited frame
// with the running frame count and the cumulative size, in bytes, of
// every frame buffer produced so far.
func WithProgress(f func(frameIndex int, bytesSoFar int64)) Option {
	return func(o *Options) { o.onProgress = f }
}

// WithStrict rejects an image descriptor whose reserved packed-field bits
// are set instead of silently ignoring them, the way spec.md §9's "a few
// ancient GIF writers" leniency does by default.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.strict = strict }
}

// WithMaxFrames bounds memory on a hostile or runaway animation: once
// compositing would produce more than n frames, Load/LoadContext returns
// ErrTooManyFrames instead of continuing to decode. n <= 0 means
// unbounded, the default.
func WithMaxFrames(n int) Option {
	return func(o *Options) { o.maxFrames = n }
}

func newOptions(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
