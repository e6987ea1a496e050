package compositor

import (
	"testing"

	"github.com/ostafen/gifdecode/internal/gifformat"
	"github.com/ostafen/gifdecode/pkg/color"
	"github.com/stretchr/testify/require"
)

// packLZWCodes packs a sequence of (code, width) pairs LSB-first, the way
// pkg/bitreader expects, so tests can build a minimal valid LZW stream
// without going through a real encoder.
func packLZWCodes(codes [][2]int) []byte {
	var buf uint32
	var nbits uint
	var out []byte
	for _, c := range codes {
		buf |= uint32(c[0]) << nbits
		nbits += uint(c[1])
		for nbits >= 8 {
			out = append(out, byte(buf))
			buf >>= 8
			nbits -= 8
		}
	}
	if nbits > 0 {
		out = append(out, byte(buf))
	}
	return out
}

// oneByOneImage returns a single-pixel TableBasedImage decoding (via a
// hand-packed minimal LZW stream) to palette index 0.
func oneByOneImage() *gifformat.TableBasedImage {
	// minCodeSize=2: clear=4, eoi=5, width starts at 3. CLEAR, index 0, EOI.
	data := packLZWCodes([][2]int{{4, 3}, {0, 3}, {5, 3}})
	return &gifformat.TableBasedImage{
		ImageDescriptor: gifformat.ImageDescriptor{Width: 1, Height: 1},
		ImageData:       gifformat.ImageData{LZWMinCodeSize: 2, Data: data},
	}
}

func labeledPixels(n int) []pixel {
	out := make([]pixel, n)
	for i := 0; i < n; i++ {
		c := color.Color{R: uint8(i)}
		out[i] = &c
	}
	return out
}

func colorsOf(px []pixel) []color.Color {
	out := make([]color.Color, len(px))
	for i, p := range px {
		if p != nil {
			out[i] = *p
		}
	}
	return out
}

// Scenario S6: a 4x4 interlaced sub-image whose pass data is
// [A,B,C,D, E,F,G,H, I,J,K,L, M,N,O,P] (here, palette indices 0..15)
// must land as rows [0]=A..D, [2]=E..H, [1]=I..L, [3]=M..P.
func TestDeinterlace_S6(t *testing.T) {
	input := labeledPixels(16)
	got := deinterlace(input, 4, 4)

	want := make([]color.Color, 16)
	copy(want[0:4], colorsOf(input[0:4]))   // row 0 = A..D
	copy(want[8:12], colorsOf(input[4:8]))  // row 2 = E..H
	copy(want[4:8], colorsOf(input[8:12]))  // row 1 = I..L
	copy(want[12:16], colorsOf(input[12:16])) // row 3 = M..P

	require.Equal(t, want, colorsOf(got))
}

// Invariant 5: deinterlacing and then re-applying the same pass pattern
// to pick pixels back out in scan order is the identity.
func TestDeinterlace_RoundTrip(t *testing.T) {
	const width, height = 4, 10
	input := labeledPixels(width * height)

	deinterlaced := deinterlace(input, width, height)

	// Re-run the same pass order, reading this time from the
	// now-top-to-bottom buffer, to recover the original pass-order stream.
	passes := [4][2]int{{0, 8}, {4, 8}, {2, 4}, {1, 2}}
	var reinterlaced []pixel
	for _, p := range passes {
		start, step := p[0], p[1]
		for y := start; y < height; y += step {
			reinterlaced = append(reinterlaced, deinterlaced[y*width:(y+1)*width]...)
		}
	}

	require.Equal(t, colorsOf(input), colorsOf(reinterlaced))
}

func ptr(c color.Color) *color.Color { return &c }

func TestCompositeImage_DisposalRestoreToPrevious(t *testing.T) {
	st := &state{width: 2, height: 1, background: color.Color{R: 9}}

	white := color.Color{R: 1}
	red := color.Color{R: 2}
	blue := color.Color{R: 3}

	// Frame 1: unspecified disposal, paints (0,0) white.
	base1, err := st.buildBase(0)
	require.NoError(t, err)
	full1 := make([]color.Color, len(base1))
	copy(full1, base1)
	blit(full1, st.width, []pixel{ptr(white), nil}, 0, 0, 1, 1)
	st.lastBase = base1
	st.last = full1

	// Frame 2: restore-to-background disposal, paints (1,0) red.
	base2, err := st.buildBase(2) // RestoreToBackgroundColor
	require.NoError(t, err)
	require.Equal(t, []color.Color{{R: 9}, {R: 9}}, base2)
	full2 := make([]color.Color, len(base2))
	copy(full2, base2)
	blit(full2, st.width, []pixel{nil, ptr(red)}, 0, 0, 2, 1)
	st.lastBase = base2
	st.last = full2
	require.Equal(t, []color.Color{{R: 9}, {R: 2}}, full2)

	// Frame 3: restore-to-previous must restore base2 (the background
	// fill frame 2 started from), not full2 (what frame 2 rendered to).
	base3, err := st.buildBase(3) // RestoreToPrevious
	require.NoError(t, err)
	require.Equal(t, base2, base3)
	full3 := make([]color.Color, len(base3))
	copy(full3, base3)
	blit(full3, st.width, []pixel{ptr(blue), nil}, 0, 0, 1, 1)
	require.Equal(t, []color.Color{{R: 3}, {R: 9}}, full3)
}

func TestCompositeImage_DisposalUndefined(t *testing.T) {
	st := &state{width: 1, height: 1, last: []color.Color{{}}, lastBase: []color.Color{{}}}
	_, err := st.buildBase(4) // reserved code, maps to DisposalUndefined
	require.ErrorIs(t, err, ErrDisposalUndefined)
}

func TestComposite_MaxFrames(t *testing.T) {
	res := &gifformat.ParseResult{
		LSD: gifformat.LogicalScreenDescriptor{
			Width: 1, Height: 1,
			GlobalColorTable: gifformat.ColorTable{{R: 1}, {R: 2}},
		},
		OrderedBlocks: []gifformat.Block{oneByOneImage(), oneByOneImage()},
	}

	frames, err := Composite(res, Options{MaxFrames: 2})
	require.NoError(t, err)
	require.Len(t, frames, 2)

	_, err = Composite(res, Options{MaxFrames: 1})
	require.ErrorIs(t, err, ErrTooManyFrames)

	frames, err = Composite(res, Options{})
	require.NoError(t, err)
	require.Len(t, frames, 2)
}
