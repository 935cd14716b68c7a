package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pongcart/internal/console"
)

func TestProjectDrawOrder(t *testing.T) {
	rec := console.NewRecorder(1)
	g := New(rec, quietLogger())
	g.Init()

	g.Draw()

	require.Len(t, rec.Calls, 4, "a frame is one clear, one circle and two rectangles")
	assert.Equal(t, console.DrawCall{Op: console.OpClear, Color: 0}, rec.Calls[0])
	assert.Equal(t, console.DrawCall{Op: console.OpCircle, Color: BallSlot, X: 160, Y: 90, W: BallRadius}, rec.Calls[1])
	assert.Equal(t, console.DrawCall{Op: console.OpRect, Color: LeftPaddleSlot, X: 10, Y: 58, W: PaddleWidth, H: PaddleHeight}, rec.Calls[2])
	assert.Equal(t, console.DrawCall{Op: console.OpRect, Color: RightPaddleSlot, X: 304, Y: 58, W: PaddleWidth, H: PaddleHeight}, rec.Calls[3])
}

func TestProjectTruncatesPositions(t *testing.T) {
	rec := console.NewRecorder(1)
	s := NewGameState()
	s.Ball.X = 100.9
	s.Ball.Y = 50.99
	s.Paddles[0].Y = 12.6

	Project(&s, rec)

	assert.Equal(t, 100, rec.Calls[1].X, "positions are truncated, not rounded")
	assert.Equal(t, 50, rec.Calls[1].Y)
	assert.Equal(t, 12, rec.Calls[2].Y)
}

func TestDrawIsIdempotent(t *testing.T) {
	rec := console.NewRecorder(1)
	g := New(rec, quietLogger())
	g.Init()
	g.Update()

	g.Draw()
	first := append([]console.DrawCall(nil), rec.Calls...)
	before := g.State()

	g.Draw()

	assert.Equal(t, first, rec.Calls, "drawing twice should emit the same calls")
	assert.Equal(t, before, g.State(), "drawing should not touch the state")
}
