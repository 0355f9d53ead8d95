package chunkdiff

import (
	"bytes"

	"github.com/rawbytedev/chunkdiff/internal/common"
)

// HeaderSize is kind(1) + length(4).
const HeaderSize = 1 + common.LenSize

// Chunk is one framed record. Kind is kept as the raw tag so that chunks
// with unknown tags survive structural parsing.
type Chunk struct {
	Kind    byte
	Payload []byte
}

// Len is the encoded size of c.
func (c Chunk) Len() int { return HeaderSize + len(c.Payload) }

// Equal reports whether both chunks have the same tag and payload bytes.
func (c Chunk) Equal(o Chunk) bool {
	return c.Kind == o.Kind && bytes.Equal(c.Payload, o.Payload)
}

// AppendTo appends the encoded chunk to dst.
func (c Chunk) AppendTo(dst []byte) []byte {
	return AppendChunk(dst, c.Kind, c.Payload)
}

// AppendChunk writes [kind][len(payload)][payload] to dst.
func AppendChunk(dst []byte, kind byte, payload []byte) []byte {
	dst = append(dst, kind)
	dst = common.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// ReadChunk decodes the chunk starting at off and returns the offset of the
// next one. The returned payload aliases buf.
func ReadChunk(buf []byte, off int) (Chunk, int, error) {
	rem := len(buf) - off
	if rem < HeaderSize {
		return Chunk{}, off, &MalformedChunkError{Offset: off, Declared: -1, Remaining: rem}
	}
	kind := buf[off]
	n := common.Uint32(buf[off+1:])
	start := off + HeaderSize
	rem -= HeaderSize
	// compare as uint64 so a huge length can't wrap on 32-bit platforms
	if uint64(n) > uint64(rem) {
		return Chunk{}, off, &MalformedChunkError{Offset: off, Declared: int(n), Remaining: rem}
	}
	end := start + int(n)
	return Chunk{Kind: kind, Payload: buf[start:end:end]}, end, nil
}

// Scanner walks a stream one chunk at a time.
//
//	s := NewScanner(stream)
//	for s.Next() {
//		c := s.Chunk()
//	}
//	if err := s.Err(); err != nil { ... }
type Scanner struct {
	buf []byte
	off int
	cur Chunk
	err error
}

func NewScanner(stream []byte) *Scanner {
	return &Scanner{buf: stream}
}

// Next advances to the next chunk. It returns false at the end of the
// stream or on the first structural error.
func (s *Scanner) Next() bool {
	if s.err != nil || s.off >= len(s.buf) {
		return false
	}
	c, next, err := ReadChunk(s.buf, s.off)
	if err != nil {
		s.err = err
		return false
	}
	s.cur, s.off = c, next
	return true
}

// Chunk returns the chunk read by the last call to Next.
func (s *Scanner) Chunk() Chunk { return s.cur }

// Offset is the cursor position after the current chunk.
func (s *Scanner) Offset() int { return s.off }

func (s *Scanner) Err() error { return s.err }
