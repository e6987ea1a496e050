package lzw_test

import (
	"testing"

	"github.com/ostafen/gifdecode/internal/lzw"
	"github.com/stretchr/testify/require"
)

// Scenario S2: a 10x10 checkerboard-ish pattern that crosses the code-width
// growth boundary partway through the stream.
func TestDecompress_S2(t *testing.T) {
	input := []byte{
		140, 45, 153, 135, 42, 28, 220, 51, 160, 2, 117, 236,
		149, 250, 168, 222, 96, 140, 4, 145, 76, 1,
	}

	indices, err := lzw.Decompress(input, 2)
	require.NoError(t, err)
	require.Len(t, indices, 100)

	// Palette: [white, red, blue, black]. Expected pattern starts with
	// five red, five blue, five red, five blue, and so on (with a white
	// patch starting at index 33). The code width grows three times over
	// the stream, from 3 to 6 bits.
	want := []byte{
		1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2,
		1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 0, 0, 0, 0, 2, 2, 2,
		1, 1, 1, 0, 0, 0, 0, 2, 2, 2, 2, 2, 2, 0, 0, 0, 0, 1, 1, 1,
		2, 2, 2, 0, 0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1,
	}
	require.Equal(t, want, indices)
}

func TestDecompress_MissingLeadingClear(t *testing.T) {
	_, err := lzw.Decompress([]byte{0x00}, 2)
	require.ErrorIs(t, err, lzw.ErrMissingClear)
}

func TestDecompress_TruncatedBitstream(t *testing.T) {
	// Just a clear code (0b100 for min=2, width=3) and nothing else.
	_, err := lzw.Decompress([]byte{0b0000_0100}, 2)
	require.ErrorIs(t, err, lzw.ErrTruncatedBitstream)
}

func TestDecompress_InvalidCode(t *testing.T) {
	// min=2: clear=4, eoi=5, base width=3. Sequence: CLEAR(4), then an
	// out-of-range code (7) that is neither an existing entry nor the
	// very next dictionary slot.
	packed := packCodes([]codeWidth{{4, 3}, {7, 3}}, 0)
	_, err := lzw.Decompress(packed, 2)
	require.ErrorIs(t, err, lzw.ErrInvalidCode)
}

type codeWidth struct {
	code  uint16
	width uint8
}

func packCodes(cs []codeWidth, pad int) []byte {
	var bitBuf uint32
	var bitCount uint8
	var out []byte
	for _, c := range cs {
		bitBuf |= uint32(c.code) << bitCount
		bitCount += c.width
		for bitCount >= 8 {
			out = append(out, byte(bitBuf))
			bitBuf >>= 8
			bitCount -= 8
		}
	}
	if bitCount > 0 {
		out = append(out, byte(bitBuf))
	}
	return out
}
