package gifdecode_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/ostafen/gifdecode"
	"github.com/stretchr/testify/require"
)

// Scenario S3: a single 10x10 frame whose pixels match S2's LZW fixture.
var s3Fixture = []byte{
	71, 73, 70, 56, 57, 97, 10, 0, 10, 0, 145, 0, 0,
	255, 255, 255, 255, 0, 0, 0, 0, 255, 0, 0, 0,
	33, 249, 4, 0, 0, 0, 0, 0,
	44, 0, 0, 0, 0, 10, 0, 10, 0, 0,
	2, 22,
	140, 45, 153, 135, 42, 28, 220, 51, 160, 2, 117, 236,
	149, 250, 168, 222, 96, 140, 4, 145, 76, 1,
	0, 59,
}

func TestLoad_S3(t *testing.T) {
	g, err := gifdecode.Load(bytes.NewReader(s3Fixture))
	require.NoError(t, err)
	require.EqualValues(t, 10, g.Width)
	require.EqualValues(t, 10, g.Height)
	require.Len(t, g.ImageFrames, 1)

	frame := g.ImageFrames[0]
	require.Len(t, frame.Colors, 100)

	white := gifdecode.Color{R: 255, G: 255, B: 255}
	red := gifdecode.Color{R: 255, G: 0, B: 0}
	blue := gifdecode.Color{R: 0, G: 0, B: 255}
	black := gifdecode.Color{R: 0, G: 0, B: 0}

	indices := []byte{
		1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2,
		1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 0, 0, 0, 0, 2, 2, 2,
		1, 1, 1, 0, 0, 0, 0, 2, 2, 2, 2, 2, 2, 0, 0, 0, 0, 1, 1, 1,
		2, 2, 2, 0, 0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1,
	}
	palette := []gifdecode.Color{white, red, blue, black}
	want := make([]gifdecode.Color, len(indices))
	for i, idx := range indices {
		want[i] = palette[idx]
	}
	require.Equal(t, want, frame.Colors)
}

// Scenario S4: every strict prefix of S3 must fail to decode.
func TestLoad_S4_TruncatedPrefixes(t *testing.T) {
	for n := 0; n < len(s3Fixture); n++ {
		_, err := gifdecode.Load(bytes.NewReader(s3Fixture[:n]))
		require.Errorf(t, err, "prefix of length %d should fail to decode", n)
	}
}

// Scenario S5: a stream not beginning with "GIF" is rejected.
func TestLoad_S5_BadSignature(t *testing.T) {
	bad := append([]byte("BMF"), s3Fixture[3:]...)
	_, err := gifdecode.Load(bytes.NewReader(bad))
	require.ErrorIs(t, err, gifdecode.ErrInvalidSignature)

	var decErr *gifdecode.DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, gifdecode.ErrorKindInvalidSignature, decErr.Kind)
}

// WithStrict doesn't reject S3, which sets no reserved packed-field bits.
func TestLoad_WithStrict_AcceptsCleanStream(t *testing.T) {
	g, err := gifdecode.Load(bytes.NewReader(s3Fixture), gifdecode.WithStrict(true))
	require.NoError(t, err)
	require.Len(t, g.ImageFrames, 1)
}

// WithMaxFrames(1) lets a single-frame GIF through; the default
// (unbounded) also succeeds regardless of frame count.
func TestLoad_WithMaxFrames_DoesNotRejectWithinBound(t *testing.T) {
	g, err := gifdecode.Load(bytes.NewReader(s3Fixture), gifdecode.WithMaxFrames(1))
	require.NoError(t, err)
	require.Len(t, g.ImageFrames, 1)
}

// Invariant 1: every successfully decoded GIF has at least one frame,
// and every frame's color count equals width*height.
func TestLoad_FrameCountAndSize(t *testing.T) {
	g, err := gifdecode.Load(bytes.NewReader(s3Fixture))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(g.ImageFrames), 1)
	for _, f := range g.ImageFrames {
		require.Len(t, f.Colors, int(g.Width)*int(g.Height))
	}
}

func TestLoadContext_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gifdecode.LoadContext(ctx, bytes.NewReader(s3Fixture))
	require.ErrorIs(t, err, context.Canceled)
}

// Independent Load calls share no state and produce identical output
// when run concurrently.
func TestLoad_ConcurrentIndependence(t *testing.T) {
	const n = 16
	var wg sync.WaitGroup
	results := make([]*gifdecode.Gif, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = gifdecode.Load(bytes.NewReader(s3Fixture))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0].ImageFrames, results[i].ImageFrames)
	}
}
