package chunkdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindTagBijection(t *testing.T) {
	require.Len(t, decoders, len(Kinds()))
	for _, k := range Kinds() {
		got, err := KindFromTag(k.Tag())
		require.NoError(t, err)
		require.Equal(t, k, got)
		_, ok := decoders[k]
		require.True(t, ok, "no decoder for %v", k)
	}
	known := 0
	for b := 0; b < 256; b++ {
		k, err := KindFromTag(byte(b))
		if err != nil {
			require.ErrorIs(t, err, ErrUnknownKind)
			continue
		}
		require.Equal(t, byte(b), k.Tag())
		known++
	}
	require.Equal(t, len(Kinds()), known)
}

func TestStableTags(t *testing.T) {
	require.Equal(t, byte(0x01), KindHealth.Tag())
	require.Equal(t, byte(0x02), KindStamina.Tag())
	require.Equal(t, KindHealth, Health(0).Kind())
	require.Equal(t, KindStamina, Stamina(0).Kind())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Health", KindHealth.String())
	require.Equal(t, "Stamina", KindStamina.String())
	require.Equal(t, "Kind(0x7f)", Kind(0x7f).String())
}

func TestNewAndValue(t *testing.T) {
	c, err := New(KindStamina, -12)
	require.NoError(t, err)
	require.Equal(t, Stamina(-12), c)
	v, ok := Value(c)
	require.True(t, ok)
	require.Equal(t, int64(-12), v)

	_, err = New(Kind(0x33), 1)
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestToComponent(t *testing.T) {
	c, err := ToComponent(Chunk{Kind: 0x01, Payload: []byte{0x1e, 0, 0, 0, 0, 0, 0, 0}})
	require.NoError(t, err)
	require.Equal(t, Health(30), c)

	_, err = ToComponent(Chunk{Kind: 0x02, Payload: []byte{1, 2, 3}})
	require.ErrorIs(t, err, ErrPayloadWidth)

	_, err = ToComponent(Chunk{Kind: 0x09, Payload: make([]byte, 8)})
	require.ErrorIs(t, err, ErrUnknownKind)
}
