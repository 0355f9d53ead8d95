// Package chunkdiff encodes entity components into a tagged chunk stream
// and computes correction streams between a trusted and a candidate copy.
//
// Stream layout:
//
//	Stream := Chunk*
//	Chunk  := kind:u8 length:u32le payload:u8[length]
//
// Integer payloads are little-endian on every platform.
package chunkdiff

import (
	"fmt"

	"github.com/rawbytedev/chunkdiff/internal/common"
)

// Kind identifies the type of a component and its chunk.
type Kind byte

// Tag values are part of the wire format and must never change.
const (
	KindHealth  Kind = 0x01
	KindStamina Kind = 0x02
)

// Tag returns the wire tag for k.
func (k Kind) Tag() byte { return byte(k) }

func (k Kind) String() string {
	switch k {
	case KindHealth:
		return "Health"
	case KindStamina:
		return "Stamina"
	default:
		return fmt.Sprintf("Kind(0x%02x)", byte(k))
	}
}

// KindFromTag is the inverse of Kind.Tag. Tags outside the known set
// return ErrUnknownKind.
func KindFromTag(tag byte) (Kind, error) {
	k := Kind(tag)
	if _, ok := decoders[k]; !ok {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownKind, tag)
	}
	return k, nil
}

// Kinds returns every registered kind in tag order.
func Kinds() []Kind {
	return []Kind{KindHealth, KindStamina}
}

// Component is a typed piece of entity state. The set of implementations
// is closed; each one fixes its own kind and payload type.
type Component interface {
	Kind() Kind
	appendPayload(dst []byte) []byte
}

// Health is the Health component.
type Health int64

func (Health) Kind() Kind                        { return KindHealth }
func (h Health) appendPayload(dst []byte) []byte { return common.AppendInt64(dst, int64(h)) }

// Stamina is the Stamina component.
type Stamina int64

func (Stamina) Kind() Kind                        { return KindStamina }
func (s Stamina) appendPayload(dst []byte) []byte { return common.AppendInt64(dst, int64(s)) }

type decodeFunc func(payload []byte) (Component, error)

// decoders must stay in bijection with the Kind constants.
var decoders = map[Kind]decodeFunc{
	KindHealth: func(p []byte) (Component, error) {
		v, err := readInt64(p)
		return Health(v), err
	},
	KindStamina: func(p []byte) (Component, error) {
		v, err := readInt64(p)
		return Stamina(v), err
	},
}

func readInt64(p []byte) (int64, error) {
	v, ok := common.ReadInt64(p)
	if !ok {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrPayloadWidth, len(p), common.Int64Size)
	}
	return v, nil
}

// ToComponent decodes a single chunk into its typed component.
func ToComponent(c Chunk) (Component, error) {
	k, err := KindFromTag(c.Kind)
	if err != nil {
		return nil, err
	}
	return decoders[k](c.Payload)
}

// Value returns the integer payload of an integer-valued component.
func Value(c Component) (int64, bool) {
	switch v := c.(type) {
	case Health:
		return int64(v), true
	case Stamina:
		return int64(v), true
	default:
		return 0, false
	}
}

// New builds the component of kind k carrying v.
func New(k Kind, v int64) (Component, error) {
	switch k {
	case KindHealth:
		return Health(v), nil
	case KindStamina:
		return Stamina(v), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
}
