package ansii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityLUT() *[256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(i)
	}
	return &lut
}

func TestFillRectClips(t *testing.T) {
	fb := NewFramebuffer(8, 4)
	fb.FillRect(5, -2, 2, 4, 10)

	assert.Equal(t, uint8(5), fb.At(0, 2))
	assert.Equal(t, uint8(5), fb.At(1, 3))
	assert.Equal(t, uint8(0), fb.At(2, 2), "right edge is exclusive")
	assert.Equal(t, uint8(0), fb.At(0, 1))
	assert.Equal(t, uint8(0), fb.At(100, 100), "out of range reads are zero")
}

func TestFillCircle(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	fb.FillCircle(9, 8, 8, 4)

	assert.Equal(t, uint8(9), fb.At(8, 8))
	assert.Equal(t, uint8(9), fb.At(12, 8), "points at distance r are filled")
	assert.Equal(t, uint8(9), fb.At(8, 4))
	assert.Equal(t, uint8(0), fb.At(12, 12), "corners of the bounding box stay clear")
	assert.Equal(t, uint8(0), fb.At(13, 8))
}

func TestFillCircleNearEdge(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	assert.NotPanics(t, func() { fb.FillCircle(1, 0, 0, 4) })
	assert.Equal(t, uint8(1), fb.At(0, 0))
}

func TestClear(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	fb.FillRect(4, 0, 0, 3, 3)
	fb.Clear(2)
	for _, p := range fb.Pix {
		assert.Equal(t, uint8(2), p)
	}
}

func TestAppendFrameHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.FillRect(7, 0, 0, 2, 1)
	fb.FillRect(3, 0, 1, 2, 1)

	out := string(AppendFrame(nil, fb, 2, 1, identityLUT()))

	require.True(t, strings.HasPrefix(out, string(home)))
	assert.Equal(t, 1, strings.Count(out, "\033[38;5;7;48;5;3m"), "a run of equal cells shares one colour change")
	assert.Equal(t, 2, strings.Count(out, halfBlock))
	assert.True(t, strings.HasSuffix(out, string(reset)))
}

func TestAppendFrameRowsAndScaling(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.FillRect(1, 0, 0, 2, 4)

	out := string(AppendFrame(nil, fb, 2, 2, identityLUT()))

	assert.Equal(t, 1, strings.Count(out, "\r\n"), "rows are separated, not terminated")
	assert.Equal(t, 4, strings.Count(out, halfBlock))
	assert.Equal(t, 2, strings.Count(out, "\033[38;5;1;48;5;1m"))
	assert.Equal(t, 2, strings.Count(out, "\033[38;5;0;48;5;0m"))
}

func TestAppendFrameReusesBuffer(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	buf := make([]byte, 0, 1024)

	out := AppendFrame(buf[:0], fb, 4, 2, identityLUT())
	assert.Equal(t, &buf[:1][0], &out[:1][0], "a large enough buffer is written in place")
}

func TestAppendFrameEmptyGrid(t *testing.T) {
	out := AppendFrame(nil, NewFramebuffer(4, 4), 0, 0, identityLUT())
	assert.Equal(t, string(home), string(out))
}

func TestPlaceCursor(t *testing.T) {
	out := Screen.PlaceCursor([]byte("x"), 1, 91)
	assert.Equal(t, "x\033[91;1H", string(out), "row comes before column")
}
