package lzw

import "errors"

// Sentinel errors classifying why a decompress failed; the root gifdecode
// package maps these onto its public ErrorKind values via errors.Is.
var (
	ErrMissingClear       = errors.New("lzw: missing leading clear code")
	ErrInvalidCode        = errors.New("lzw: invalid code")
	ErrDictSaturated      = errors.New("lzw: dictionary saturated at max code width without a clear code")
	ErrTruncatedBitstream = errors.New("lzw: truncated bit stream")
)
