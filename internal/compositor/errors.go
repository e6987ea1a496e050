package compositor

import "errors"

// Sentinel errors the root gifdecode package classifies via errors.Is into
// its public ErrorKind values.
var (
	ErrMissingColorTable       = errors.New("compositor: image block has no local or global color table")
	ErrDisposalUndefined       = errors.New("compositor: reserved disposal method encountered")
	ErrDeinterlaceSizeMismatch = errors.New("compositor: decompressed index count does not match image dimensions")
	ErrTooManyFrames           = errors.New("compositor: animation exceeds the configured frame limit")
)
