package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureEmpty(t *testing.T) {
	ext, err := Measure("", 12)
	require.NoError(t, err)
	assert.Equal(t, Extent{}, ext)
}

func TestMeasureScalesWithSize(t *testing.T) {
	small, err := Measure("Hello", 10)
	require.NoError(t, err)
	large, err := Measure("Hello", 20)
	require.NoError(t, err)

	assert.Greater(t, small.Width, 0.0)
	assert.InDelta(t, small.Width*2, large.Width, 0.5)
	assert.InDelta(t, 12, small.Height, 1e-9)
	assert.Equal(t, 1, small.Lines)
}

func TestMeasureMultiline(t *testing.T) {
	one, err := Measure("wide line here", 12)
	require.NoError(t, err)
	two, err := Measure("wide line here\nx", 12)
	require.NoError(t, err)

	assert.InDelta(t, one.Width, two.Width, 1e-9)
	assert.InDelta(t, one.Height*2, two.Height, 1e-9)
	assert.Equal(t, 2, two.Lines)
}

func TestEncodeWinAnsi(t *testing.T) {
	assert.Equal(t, []byte("abc"), EncodeWinAnsi("abc"))
	assert.Equal(t, []byte{0xe9, 0x80}, EncodeWinAnsi("é€"))
	assert.Equal(t, []byte("?"), EncodeWinAnsi("中"))
}

func TestPDFDescriptor(t *testing.T) {
	d, err := PDFDescriptor()
	require.NoError(t, err)

	assert.Len(t, d.Widths, LastChar-FirstChar+1)
	assert.Greater(t, d.Ascent, 0)
	assert.Less(t, d.Descent, 0)
	// 'A' has a visible advance
	assert.Greater(t, d.Widths['A'-FirstChar], 0)
}
