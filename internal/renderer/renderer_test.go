package renderer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pongcart/internal/console"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessInput(t *testing.T) {
	assert.Equal(t, Up, ProcessInput('w'))
	assert.Equal(t, Down, ProcessInput('S'))
	assert.Equal(t, Quit, ProcessInput('q'))
	assert.Equal(t, Unknown, ProcessInput('x'))
}

func TestDecodeInput(t *testing.T) {
	got := DecodeInput(nil, []byte("w\x1b[A\x1b[Bs\x1b[Cz"))
	assert.Equal(t, []UiAction{Up, UpArrow, DownArrow, Down}, got)
	assert.Empty(t, DecodeInput(nil, []byte("aD\x1b[C\x1b[D")), "no host reads left or right")
	assert.Equal(t, Left, ProcessInput('a'), "the rune mapping itself is unchanged")

	assert.Equal(t, []UiAction{Quit}, DecodeInput(nil, []byte{keyCtrlC}))
	assert.Equal(t, []UiAction{Quit}, DecodeInput(nil, []byte{keyEsc}), "a lone escape quits")
	assert.Empty(t, DecodeInput(nil, []byte{keyEsc, 'O'}), "unknown sequences are dropped")
}

// waitPress feeds raw bytes to the keyboard and polls until an action lands.
func waitPress(t *testing.T, w io.Writer, k *Keyboard, raw string, a UiAction) {
	t.Helper()
	_, err := io.WriteString(w, raw)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return k.Poll() == nil && k.Held(a)
	}, time.Second, time.Millisecond)
}

func TestKeyboardHoldWindow(t *testing.T) {
	pr, pw := io.Pipe()
	k := NewKeyboard(pr, 3)
	defer k.Close()

	waitPress(t, pw, k, "w", Up)
	assert.False(t, k.Held(Down))

	require.NoError(t, k.Poll())
	require.NoError(t, k.Poll())
	assert.True(t, k.Held(Up), "still inside the hold window")
	require.NoError(t, k.Poll())
	assert.False(t, k.Held(Up), "released once the window passes")
}

func TestKeyboardQuit(t *testing.T) {
	pr, pw := io.Pipe()
	k := NewKeyboard(pr, 3)
	defer k.Close()

	_, err := io.WriteString(pw, "q")
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return errors.Is(k.Poll(), console.ErrQuit)
	}, time.Second, time.Millisecond)
}

func TestKeyboardEOFQuits(t *testing.T) {
	k := NewKeyboard(strings.NewReader(""), 3)
	defer k.Close()

	assert.Eventually(t, func() bool {
		return errors.Is(k.Poll(), console.ErrQuit)
	}, time.Second, time.Millisecond)
}

func TestKeyboardReadErrorIsWrapped(t *testing.T) {
	boom := errors.New("tty gone")
	pr, pw := io.Pipe()
	k := NewKeyboard(pr, 3)
	defer k.Close()

	pw.CloseWithError(boom)
	assert.Eventually(t, func() bool {
		return errors.Is(k.Poll(), boom)
	}, time.Second, time.Millisecond)
}

func TestTerminalButtonMapping(t *testing.T) {
	pr, pw := io.Pipe()
	kb := NewKeyboard(pr, 5)
	defer kb.Close()

	two := NewTerminal(io.Discard, kb, 2, quietLogger())
	waitPress(t, pw, kb, "\x1b[A", UpArrow)
	assert.True(t, two.ButtonUpHeld(1))
	assert.False(t, two.ButtonUpHeld(0), "arrows belong to player 1 in a two player game")

	one := NewTerminal(io.Discard, kb, 1, quietLogger())
	assert.True(t, one.ButtonUpHeld(0), "arrows also drive player 0 when playing alone")

	waitPress(t, pw, kb, "s", Down)
	assert.True(t, two.ButtonDownHeld(0))
	assert.False(t, two.ButtonDownHeld(1))
	assert.False(t, two.ButtonDownHeld(2))
}

func TestTerminalPresent(t *testing.T) {
	var out bytes.Buffer
	kb := NewKeyboard(strings.NewReader(""), 1)
	defer kb.Close()

	term := NewTerminal(&out, kb, 1, quietLogger())
	term.size = func() (int, int, error) { return 32, 10, nil }

	term.ClearScreen(term.ColorIndex(0))
	term.RectFilled(term.ColorIndex(63), 0, 0, 320, 90)
	require.NoError(t, term.Present())

	frame := out.String()
	assert.True(t, strings.HasPrefix(frame, "\033[H"))
	assert.Equal(t, 8, strings.Count(frame, "\r\n"), "nine rows fit in a ten line terminal")
	assert.Equal(t, 32*9, strings.Count(frame, "▀"))
	// top half white (231), bottom half black (16)
	assert.Contains(t, frame, "\033[38;5;231;48;5;231m")
	assert.Contains(t, frame, "\033[38;5;16;48;5;16m")
	assert.True(t, strings.HasSuffix(frame, "\033[0m\033[10;1H"), "the cursor rests on the line below the frame")
}

func TestTerminalPresentSizeError(t *testing.T) {
	kb := NewKeyboard(strings.NewReader(""), 1)
	defer kb.Close()

	term := NewTerminal(io.Discard, kb, 1, quietLogger())
	boom := errors.New("not a tty")
	term.size = func() (int, int, error) { return 0, 0, boom }

	assert.ErrorIs(t, term.Present(), boom)
}

func TestFitCells(t *testing.T) {
	cols, rows := fitCells(200, 60)
	assert.Equal(t, 200, cols)
	assert.Equal(t, 56, rows)

	cols, rows = fitCells(300, 20)
	assert.Equal(t, 67, cols, "wide terminals are limited by height")
	assert.Equal(t, 19, rows)

	cols, rows = fitCells(80, 200)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 22, rows)

	cols, rows = fitCells(1000, 1000)
	assert.Equal(t, 320, cols)
	assert.Equal(t, 90, rows)

	cols, rows = fitCells(10, 1)
	assert.Zero(t, cols)
	assert.Zero(t, rows)
}
