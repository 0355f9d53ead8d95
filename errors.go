package chunkdiff

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind    = errors.New("unrecognized kind")
	ErrPayloadWidth   = errors.New("unexpected payload width")
	ErrNilComponent   = errors.New("nil component")
	ErrMalformedChunk = errors.New("malformed chunk")
	ErrLengthMismatch = errors.New("chunk count mismatch")
	ErrKindMismatch   = errors.New("kind mismatch")
	ErrAmbiguousKind  = errors.New("ambiguous kind")
)

// RecordError is a diagnostic for a single component or chunk that was
// skipped. It never aborts the surrounding call.
type RecordError struct {
	Index int  // position in the input sequence
	Kind  byte // raw tag, zero when no tag could be read
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d (tag 0x%02x): %v", e.Index, e.Kind, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// MalformedChunkError reports a chunk whose header or declared length
// overruns the buffer.
type MalformedChunkError struct {
	Offset    int // offset of the chunk's kind byte
	Declared  int // declared payload length, -1 if the header itself is cut
	Remaining int // bytes left after the header
}

func (e *MalformedChunkError) Error() string {
	if e.Declared < 0 {
		return fmt.Sprintf("%v at offset %d: truncated header, %d bytes left", ErrMalformedChunk, e.Offset, e.Remaining)
	}
	return fmt.Sprintf("%v at offset %d: declared length %d exceeds remaining %d", ErrMalformedChunk, e.Offset, e.Declared, e.Remaining)
}

func (e *MalformedChunkError) Unwrap() error { return ErrMalformedChunk }

// LengthMismatchError is returned by Diff when the two streams carry a
// different number of chunks.
type LengthMismatchError struct {
	Trusted, Candidate int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: trusted has %d, candidate has %d", ErrLengthMismatch, e.Trusted, e.Candidate)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// KindMismatchError is returned by Diff when the chunks at one position
// carry different tags.
type KindMismatchError struct {
	Index              int
	Trusted, Candidate byte
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%v at position %d: trusted 0x%02x, candidate 0x%02x", ErrKindMismatch, e.Index, e.Trusted, e.Candidate)
}

func (e *KindMismatchError) Unwrap() error { return ErrKindMismatch }
