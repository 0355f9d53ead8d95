// Package frame wraps a chunk stream into a single checksummed blob,
// optionally zstd-compressed.
//
// Layout (all integers little-endian):
//
//	magic "CD" [2] | flags [1] | length [4] | body | crc32 [4]
//
// length counts the whole frame including the CRC. The CRC (IEEE) covers
// flags through the end of body.
package frame

import (
	"errors"
	"hash/crc32"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/chunkdiff/internal/common"
)

const (
	FlagCompressed byte = 0x01

	knownFlags = FlagCompressed

	magic0, magic1 = 'C', 'D'
	headerSize     = 2 + 1 + common.LenSize
	crcSize        = 4

	// MinSize is the size of a frame with an empty body.
	MinSize = headerSize + crcSize

	maxDecodedSize = 64 << 20
)

var (
	ErrTruncated    = errors.New("frame truncated")
	ErrBadMagic     = errors.New("not a chunk frame")
	ErrFrameLength  = errors.New("frame length mismatch")
	ErrChecksum     = errors.New("crc mismatch")
	ErrUnknownFlags = errors.New("unknown frame flags")
)

type Options struct {
	Compress bool
}

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// zstdCodec returns the shared encoder/decoder. EncodeAll and DecodeAll are
// safe for concurrent use.
func zstdCodec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	})
	return encoder, decoder, codecErr
}

// Encode wraps stream in a frame.
func Encode(stream []byte, opts Options) ([]byte, error) {
	var flags byte
	body := stream
	if opts.Compress {
		enc, _, err := zstdCodec()
		if err != nil {
			return nil, err
		}
		body = enc.EncodeAll(stream, nil)
		flags |= FlagCompressed
	}

	out := make([]byte, 0, MinSize+len(body))
	out = append(out, magic0, magic1, flags)
	out = common.AppendUint32(out, uint32(MinSize+len(body)))
	out = append(out, body...)
	crc := crc32.ChecksumIEEE(out[2:])
	return common.AppendUint32(out, crc), nil
}

// Decode validates a frame and returns the stream it carries.
func Decode(data []byte) ([]byte, error) {
	if len(data) < MinSize {
		return nil, ErrTruncated
	}
	if data[0] != magic0 || data[1] != magic1 {
		return nil, ErrBadMagic
	}
	flags := data[2]
	if int64(common.Uint32(data[3:])) != int64(len(data)) {
		return nil, ErrFrameLength
	}
	end := len(data) - crcSize
	if crc32.ChecksumIEEE(data[2:end]) != common.Uint32(data[end:]) {
		return nil, ErrChecksum
	}
	if flags&^knownFlags != 0 {
		return nil, ErrUnknownFlags
	}
	body := data[headerSize:end]
	if flags&FlagCompressed == 0 {
		return body, nil
	}
	_, dec, err := zstdCodec()
	if err != nil {
		return nil, err
	}
	return dec.DecodeAll(body, nil)
}

// IsFrame reports whether data starts with the frame magic.
func IsFrame(data []byte) bool {
	return len(data) >= 2 && data[0] == magic0 && data[1] == magic1
}
