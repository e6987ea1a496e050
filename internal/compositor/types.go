package compositor

import "github.com/ostafen/gifdecode/pkg/color"

// Frame is one fully composited, full-screen RGB buffer ready to display.
type Frame struct {
	Colors    []color.Color
	DelayTime uint16
}

// Diagnostic records a non-fatal oddity worth surfacing to a caller that
// asked for logging, without failing the decode over it.
type Diagnostic struct {
	Stage   string
	Message string
}

// Options configures optional diagnostics and progress reporting. The
// zero value runs silently.
type Options struct {
	OnDiagnostic func(Diagnostic)
	// OnProgress is called once per composited frame with the running
	// frame count and the cumulative size (in bytes) of every frame
	// buffer produced so far.
	OnProgress func(frameIndex int, bytesSoFar int64)
	// MaxFrames, when nonzero, bounds memory on hostile animations:
	// compositing stops and ErrTooManyFrames is returned rather than
	// decoding a frame that would exceed the bound.
	MaxFrames int
}

func (o Options) emit(d Diagnostic) {
	if o.OnDiagnostic != nil {
		o.OnDiagnostic(d)
	}
}

func (o Options) reportProgress(frameIndex int, bytesSoFar int64) {
	if o.OnProgress != nil {
		o.OnProgress(frameIndex, bytesSoFar)
	}
}
