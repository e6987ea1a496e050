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

// Package progress renders a rate-limited, per-frame progress line for
// callers decoding animations large enough to care, e.g. a CLI decoding
// a many-megabyte GIF from a slow reader.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/gifdecode/pkg/util/format"
)

// MinRefreshRate bounds how often Reporter actually writes a line,
// regardless of how often Advance is called.
const MinRefreshRate = 200 * time.Millisecond

// Reporter renders a frames-decoded progress bar to w, with a throughput
// estimate based on the cumulative byte size of decoded frame buffers.
type Reporter struct {
	out         io.Writer
	totalFrames int

	startTime      time.Time
	lastRender     time.Time
	lastBytes      int64
	lastFrameIndex int
}

// NewReporter returns a Reporter for an animation of totalFrames frames.
// totalFrames may be 0 if unknown; the bar is then drawn unfilled.
func NewReporter(w io.Writer, totalFrames int) *Reporter {
	return &Reporter{out: w, totalFrames: totalFrames, startTime: time.Now()}
}

// Advance renders the bar for frameIndex (1-based) out of totalFrames,
// having decoded bytesSoFar bytes of frame data in total. Renders are
// rate-limited to MinRefreshRate except for the final frame, which
// always renders so the bar reaches 100%.
func (r *Reporter) Advance(frameIndex int, bytesSoFar int64) {
	force := r.totalFrames > 0 && frameIndex >= r.totalFrames
	if !force && !r.lastRender.IsZero() && time.Since(r.lastRender) < MinRefreshRate {
		return
	}

	var percentage float64
	if r.totalFrames > 0 {
		percentage = float64(frameIndex) / float64(r.totalFrames) * 100
	}

	const barLength = 20
	filled := int(float64(barLength) * percentage / 100)
	var bar string
	if filled >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filled) + ">" + strings.Repeat(" ", barLength-filled-1)
	}

	elapsed := time.Since(r.startTime).Seconds()
	var throughput string
	if !r.lastRender.IsZero() {
		dt := time.Since(r.lastRender).Seconds()
		if dt > 0 {
			bps := float64(bytesSoFar-r.lastBytes) / dt
			throughput = format.FormatBytes(int64(bps)) + "/s"
		}
	}
	if throughput == "" {
		throughput = "calculating..."
	}

	fmt.Fprintf(r.out, "\rframe %d/%d [%s] %3.0f%% decoded %s in %.1fs @ %s    ",
		frameIndex, r.totalFrames, bar, percentage, format.FormatBytes(bytesSoFar), elapsed, throughput)

	r.lastRender = time.Now()
	r.lastBytes = bytesSoFar
	r.lastFrameIndex = frameIndex
}

// Finish ends the progress line with a newline.
func (r *Reporter) Finish() {
	fmt.Fprintln(r.out)
}
