package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSerialization(t *testing.T) {
	r, err := NewRecord(nil)
	require.NoError(t, err)
	assert.Equal(t,
		"fill:#cccccc;fill-rule:evenodd;stroke:#222222;stroke-linecap:butt;"+
			"stroke-linejoin:miter;stroke-opacity:1;stroke-width:2px",
		r.String())
}

func TestKeysSorted(t *testing.T) {
	assert.Equal(t, []string{
		"fill", "fill-rule", "stroke", "stroke-linecap",
		"stroke-linejoin", "stroke-opacity", "stroke-width",
	}, Keys())
}

func TestOverride(t *testing.T) {
	r, err := NewRecord(map[string]any{"fill": "#123456"})
	require.NoError(t, err)

	want := DefaultRecord
	want.Fill = "#123456"
	assert.Equal(t, want, r)

	// the defaults table is not modified
	assert.Equal(t, "#cccccc", DefaultRecord.Fill)
}

func TestNumericOverride(t *testing.T) {
	r, err := NewRecord(map[string]any{StrokeOpacity: 0.5, StrokeWidth: 3})
	require.NoError(t, err)
	assert.Equal(t, "0.5", r.StrokeOpacity)
	assert.Equal(t, "3", r.StrokeWidth)
}

func TestUnknownKey(t *testing.T) {
	_, err := NewRecord(map[string]any{"bogus": 1})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "bogus", ve.Key)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "bogus")

	// the first offending key in sorted order is reported
	_, err = NewRecord(map[string]any{"zzz": 1, "aaa": 2, "fill": "#000000"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "aaa", ve.Key)
}

func TestIsKey(t *testing.T) {
	for _, k := range Keys() {
		assert.True(t, IsKey(k), k)
	}
	assert.False(t, IsKey("opacity"))
	assert.False(t, IsKey(""))
	assert.False(t, IsKey("Fill"))
}

func TestSetGet(t *testing.T) {
	r := DefaultRecord
	require.NoError(t, r.Set(Stroke, "none"))
	v, err := r.Get(Stroke)
	require.NoError(t, err)
	assert.Equal(t, "none", v)

	err = r.Set("opacity", "0.3")
	assert.ErrorIs(t, err, ErrUnknownKey)
	_, err = r.Get("opacity")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, DefaultRecord.Fill, r.Fill)
}

func TestParse(t *testing.T) {
	r, err := Parse("fill:#ff2000; stroke : none;;")
	require.NoError(t, err)
	assert.Equal(t, "#ff2000", r.Fill)
	assert.Equal(t, "none", r.Stroke)
	assert.Equal(t, DefaultRecord.StrokeWidth, r.StrokeWidth)

	back, err := Parse(r.String())
	require.NoError(t, err)
	assert.Equal(t, r, back)

	_, err = Parse("fill")
	assert.Error(t, err)
	_, err = Parse("color:red")
	assert.ErrorIs(t, err, ErrUnknownKey)
}
