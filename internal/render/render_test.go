package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	ID         string   `json:"id" yaml:"id"`
	Correction []byte   `json:"correction" yaml:"correction"`
	Kinds      []string `json:"kinds" yaml:"kinds"`
	hidden     int
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, f)
	f, err = ParseFormat("YAML")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(FormatTable, &buf).Render(sample{ID: "r1", Correction: []byte{1, 0x1e}, Kinds: []string{"Health"}})
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "id:")
	require.Contains(t, out, "r1")
	require.Contains(t, out, "01 1e")
	require.Contains(t, out, "Health")
	require.NotContains(t, out, "hidden")
}

func TestRenderTableSkipsIgnoredFields(t *testing.T) {
	type report struct {
		ID         string  `json:"id"`
		Correction []byte  `json:"-"`
		Values     []int64 `json:"-"`
	}
	var buf bytes.Buffer
	err := NewRenderer(FormatTable, &buf).Render(report{ID: "r1", Correction: []byte{0x01}, Values: []int64{30}})
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "r1")
	require.NotContains(t, out, "Correction")
	require.NotContains(t, out, "Values")
	require.NotContains(t, out, "30")
}

func TestRenderJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatJSON, &buf).Render(sample{ID: "r1"}))
	require.Contains(t, buf.String(), `"id": "r1"`)

	buf.Reset()
	require.NoError(t, NewRenderer(FormatYAML, &buf).Render(sample{ID: "r2", Kinds: []string{"Stamina"}}))
	require.Contains(t, buf.String(), "id: r2")
	require.Contains(t, buf.String(), "- Stamina")
}
