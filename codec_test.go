package chunkdiff

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeLittleEndian(t *testing.T) {
	data := mustSerialize(t, Health(30), Stamina(-1))
	want := []byte{
		0x01, 8, 0, 0, 0, 0x1e, 0, 0, 0, 0, 0, 0, 0,
		0x02, 8, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	require.Equal(t, want, data)
}

func TestRoundTrip(t *testing.T) {
	condition := func(vals []int64) bool {
		comps := alternating(vals)
		data, errs := Serialize(comps)
		require.Empty(t, errs)
		got, errs, err := Decode(data)
		require.NoError(t, err)
		require.Empty(t, errs)
		return assert.ObjectsAreEqual(comps, got)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestSerializePreservesOrderAndDuplicates(t *testing.T) {
	comps := []Component{Stamina(5), Health(1), Health(1), Stamina(5)}
	got, errs, err := Decode(mustSerialize(t, comps...))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, comps, got)
}

func TestSerializeSkipsNil(t *testing.T) {
	data, errs := Serialize([]Component{Health(1), nil, Stamina(2)})
	require.Len(t, errs, 1)
	require.Equal(t, 1, errs[0].Index)
	require.ErrorIs(t, errs[0], ErrNilComponent)

	got, derrs, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, derrs)
	require.Equal(t, []Component{Health(1), Stamina(2)}, got)
}

func TestDeserializeSkipsUnknownTag(t *testing.T) {
	data := mustSerialize(t, Health(10))
	data = AppendChunk(data, 0x7f, make([]byte, 8))
	data = append(data, mustSerialize(t, Stamina(20))...)

	got, errs, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, []Component{Health(10), Stamina(20)}, got)
	require.Len(t, errs, 1)
	require.Equal(t, 1, errs[0].Index)
	require.Equal(t, byte(0x7f), errs[0].Kind)
	require.ErrorIs(t, errs[0], ErrUnknownKind)
}

func TestDeserializeSkipsBadWidth(t *testing.T) {
	data := AppendChunk(nil, KindHealth.Tag(), []byte{1, 2, 3, 4})
	data = append(data, mustSerialize(t, Stamina(7))...)

	got, errs, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, []Component{Stamina(7)}, got)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], ErrPayloadWidth)
}

func TestDecodeTruncated(t *testing.T) {
	data := mustSerialize(t, Health(1), Stamina(2))
	for cut := 1; cut < len(data); cut++ {
		if cut == HeaderSize+8 {
			// chunk boundary, still a valid stream
			continue
		}
		_, _, err := Decode(data[:cut])
		require.ErrorIs(t, err, ErrMalformedChunk, "cut at %d", cut)
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, errs, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Empty(t, got)
}

func FuzzParseChunks(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x01, 8, 0, 0, 0, 0x1e, 0, 0, 0, 0, 0, 0, 0})
	f.Add([]byte{0x01, 0xff, 0xff, 0xff, 0xff})
	f.Fuzz(func(t *testing.T, data []byte) {
		chunks, err := ParseChunks(data)
		if err != nil {
			require.ErrorIs(t, err, ErrMalformedChunk)
			return
		}
		var re []byte
		for _, c := range chunks {
			re = c.AppendTo(re)
		}
		require.True(t, bytes.Equal(data, re), "re-encoded stream differs: % x", re)
		// semantic decode must never fail the whole call
		_, _ = Deserialize(chunks)
	})
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(int64(30), int64(90))
	f.Fuzz(func(t *testing.T, h, s int64) {
		comps := []Component{Health(h), Stamina(s)}
		got, errs, err := Decode(mustSerialize(t, comps...))
		require.NoError(t, err)
		require.Empty(t, errs)
		require.Equal(t, comps, got)
	})
}
