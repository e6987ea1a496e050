package bitreader_test

import (
	"testing"

	"github.com/ostafen/gifdecode/pkg/bitreader"
	"github.com/stretchr/testify/require"
)

// Scenario S1 from the specification's testable-properties section.
func TestReader_S1(t *testing.T) {
	data := []byte{0x5D, 0x5D, 0x5D, 0x5D, 0x5D, 0xF5, 0xB6, 0x66, 0xB6, 0x66, 0x54}
	r := bitreader.New(data)

	widths := []uint8{3, 3, 3, 4, 4, 7, 8, 8, 8, 16, 3, 9, 12}
	want := []uint16{
		0b101, 0b011, 0b101, 0b1110, 0b1010, 0b0101110,
		0x5D, 0x5D, 0xF5, 0b0110011010110110, 0b110, 0b011010110, 0b010101000110,
	}

	for i, w := range widths {
		got, ok := r.Read(w)
		require.Truef(t, ok, "read %d (width %d) failed", i, w)
		require.Equalf(t, want[i], got, "read %d (width %d)", i, w)
	}
}

func TestReader_ReturnsFalseOnTruncation(t *testing.T) {
	r := bitreader.New([]byte{0xFF})
	_, ok := r.Read(8)
	require.True(t, ok)

	_, ok = r.Read(1)
	require.False(t, ok)
}

// Invariant 6: packing a list of (width, value) and reading it back
// yields the original list, for widths up to 12 bits.
func TestReader_RoundTrip(t *testing.T) {
	type entry struct {
		width uint8
		value uint16
	}
	entries := []entry{
		{3, 0b101}, {12, 0xABC}, {1, 1}, {1, 0}, {9, 0x1FE},
		{7, 0x7F}, {11, 0x555}, {4, 0xA}, {12, 0xFFF}, {2, 0b10},
	}

	var bitBuf uint32
	var bitCount uint8
	var packed []byte
	flush := func() {
		for bitCount >= 8 {
			packed = append(packed, byte(bitBuf))
			bitBuf >>= 8
			bitCount -= 8
		}
	}
	for _, e := range entries {
		bitBuf |= uint32(e.value) << bitCount
		bitCount += e.width
		flush()
	}
	if bitCount > 0 {
		packed = append(packed, byte(bitBuf))
	}

	r := bitreader.New(packed)
	for i, e := range entries {
		got, ok := r.Read(e.width)
		require.Truef(t, ok, "entry %d", i)
		require.Equalf(t, e.value, got, "entry %d", i)
	}
}
