package gifformat

import "errors"

// Sentinel errors the root gifdecode package classifies via errors.Is into
// its public ErrorKind values.
var (
	ErrBadSignature           = errors.New("gifformat: not a GIF stream")
	ErrUnknownBlockTag        = errors.New("gifformat: unknown block tag")
	ErrUnknownExtensionLabel  = errors.New("gifformat: unknown extension label")
	ErrInvalidPackedField     = errors.New("gifformat: invalid fixed block size")
	ErrMissingBlockTerminator = errors.New("gifformat: missing block terminator")
)
