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

import (
	"context"
	"errors"
	"fmt"

	"github.com/ostafen/gifdecode/internal/compositor"
	"github.com/ostafen/gifdecode/internal/gifformat"
	"github.com/ostafen/gifdecode/internal/lzw"
)

// ErrorKind classifies why a Load failed.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindInvalidSignature
	ErrorKindUnexpectedEOF
	ErrorKindUnknownBlockTag
	ErrorKindUnknownExtensionLabel
	ErrorKindInvalidPackedField
	ErrorKindMissingBlockTerminator
	ErrorKindMissingColorTable
	ErrorKindLzwInvalidCode
	ErrorKindLzwMissingClear
	ErrorKindLzwDictSaturated
	ErrorKindLzwTruncatedBitstream
	ErrorKindDisposalUndefined
	ErrorKindDeinterlaceSizeMismatch
	ErrorKindTooManyFrames
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidSignature:
		return "InvalidSignature"
	case ErrorKindUnexpectedEOF:
		return "UnexpectedEOF"
	case ErrorKindUnknownBlockTag:
		return "UnknownBlockTag"
	case ErrorKindUnknownExtensionLabel:
		return "UnknownExtensionLabel"
	case ErrorKindInvalidPackedField:
		return "InvalidPackedField"
	case ErrorKindMissingBlockTerminator:
		return "MissingBlockTerminator"
	case ErrorKindMissingColorTable:
		return "MissingColorTable"
	case ErrorKindLzwInvalidCode:
		return "LzwInvalidCode"
	case ErrorKindLzwMissingClear:
		return "LzwMissingClear"
	case ErrorKindLzwDictSaturated:
		return "LzwDictSaturated"
	case ErrorKindLzwTruncatedBitstream:
		return "LzwTruncatedBitstream"
	case ErrorKindDisposalUndefined:
		return "DisposalUndefined"
	case ErrorKindDeinterlaceSizeMismatch:
		return "DeinterlaceSizeMismatch"
	case ErrorKindTooManyFrames:
		return "TooManyFrames"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per ErrorKind, so callers can use errors.Is
// without inspecting a DecodeError's fields.
var (
	ErrInvalidSignature        = errors.New("gifdecode: invalid signature")
	ErrUnexpectedEOF           = errors.New("gifdecode: unexpected end of file")
	ErrUnknownBlockTag         = errors.New("gifdecode: unknown block tag")
	ErrUnknownExtensionLabel   = errors.New("gifdecode: unknown extension label")
	ErrInvalidPackedField      = errors.New("gifdecode: invalid packed field")
	ErrMissingBlockTerminator  = errors.New("gifdecode: missing block terminator")
	ErrMissingColorTable       = errors.New("gifdecode: missing color table")
	ErrLzwInvalidCode          = errors.New("gifdecode: invalid lzw code")
	ErrLzwMissingClear         = errors.New("gifdecode: lzw stream missing leading clear code")
	ErrLzwDictSaturated        = errors.New("gifdecode: lzw dictionary saturated without a clear code")
	ErrLzwTruncatedBitstream   = errors.New("gifdecode: truncated lzw bit stream")
	ErrDisposalUndefined       = errors.New("gifdecode: reserved disposal method")
	ErrDeinterlaceSizeMismatch = errors.New("gifdecode: decompressed index count does not match image dimensions")
	ErrTooManyFrames           = errors.New("gifdecode: animation exceeds the configured frame limit")
)

// DecodeError is the error type a failed Load/LoadContext call returns:
// a Kind for programmatic dispatch, the Stage that failed, and the
// underlying cause. A canceled or expired context is the exception: its
// error is returned as is, not wrapped in a DecodeError.
type DecodeError struct {
	Kind  ErrorKind
	Stage string
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gifdecode: %s: %s: %v", e.Stage, e.Kind, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// classify maps an internal package's sentinel error onto the public
// ErrorKind/sentinel pair and wraps it into a *DecodeError carrying the
// stage that produced it.
func classify(stage string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	kind, sentinel := classifyKind(err)
	return &DecodeError{Kind: kind, Stage: stage, cause: fmt.Errorf("%w: %v", sentinel, err)}
}

func classifyKind(err error) (ErrorKind, error) {
	switch {
	case errors.Is(err, gifformat.ErrBadSignature):
		return ErrorKindInvalidSignature, ErrInvalidSignature
	case errors.Is(err, gifformat.ErrUnknownBlockTag):
		return ErrorKindUnknownBlockTag, ErrUnknownBlockTag
	case errors.Is(err, gifformat.ErrUnknownExtensionLabel):
		return ErrorKindUnknownExtensionLabel, ErrUnknownExtensionLabel
	case errors.Is(err, gifformat.ErrInvalidPackedField):
		return ErrorKindInvalidPackedField, ErrInvalidPackedField
	case errors.Is(err, gifformat.ErrMissingBlockTerminator):
		return ErrorKindMissingBlockTerminator, ErrMissingBlockTerminator
	case errors.Is(err, compositor.ErrMissingColorTable):
		return ErrorKindMissingColorTable, ErrMissingColorTable
	case errors.Is(err, compositor.ErrDisposalUndefined):
		return ErrorKindDisposalUndefined, ErrDisposalUndefined
	case errors.Is(err, compositor.ErrDeinterlaceSizeMismatch):
		return ErrorKindDeinterlaceSizeMismatch, ErrDeinterlaceSizeMismatch
	case errors.Is(err, compositor.ErrTooManyFrames):
		return ErrorKindTooManyFrames, ErrTooManyFrames
	case errors.Is(err, lzw.ErrInvalidCode):
		return ErrorKindLzwInvalidCode, ErrLzwInvalidCode
	case errors.Is(err, lzw.ErrMissingClear):
		return ErrorKindLzwMissingClear, ErrLzwMissingClear
	case errors.Is(err, lzw.ErrDictSaturated):
		return ErrorKindLzwDictSaturated, ErrLzwDictSaturated
	case errors.Is(err, lzw.ErrTruncatedBitstream):
		return ErrorKindLzwTruncatedBitstream, ErrLzwTruncatedBitstream
	default:
		// Any I/O failure surfaced through gifio.ErrUnexpectedEOF is
		// reported as UnexpectedEOF: the stream ran out before the grammar
		// finished. Context errors never get here; classify returns them.
		return ErrorKindUnexpectedEOF, ErrUnexpectedEOF
	}
}
