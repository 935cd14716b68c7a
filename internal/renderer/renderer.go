// Package renderer hosts a cartridge in a terminal: palette-indexed drawing
// goes to a framebuffer that is flushed as half-block cells each frame, and
// raw keyboard input is mapped onto the two player slots.
package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"pongcart/internal/ansii"
	"pongcart/internal/console"
)

// Terminal is a console.Frontend that draws with ANSI escapes.
// Player 0 uses W/S and player 1 the arrow keys. With a single player the
// arrows drive player 0 as well.
type Terminal struct {
	out     io.Writer
	kb      *Keyboard
	players int
	logger  *slog.Logger

	palette console.DefaultPalette
	fb      *ansii.Framebuffer
	lut     [256]uint8
	buf     []byte

	size    func() (int, int, error)
	restore func() error
}

func NewTerminal(out io.Writer, kb *Keyboard, players int, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Terminal{
		out:     out,
		kb:      kb,
		players: players,
		logger:  logger,
		fb:      ansii.NewFramebuffer(console.ScreenWidth, console.ScreenHeight),
		buf:     make([]byte, 0, 64*1024),
		size:    ansii.GetTermSize,
	}
	for i := range t.lut {
		t.lut[i] = console.Xterm256(console.Color(i))
	}
	return t
}

// Open puts the controlling terminal into raw mode and returns a Terminal
// reading stdin and writing stdout. Close restores the terminal.
func Open(players, holdFrames int, logger *slog.Logger) (*Terminal, error) {
	if !ansii.IsTerminal() {
		return nil, fmt.Errorf("terminal frontend: stdin and stdout must be a terminal")
	}
	prev, err := ansii.MakeTermRaw()
	if err != nil {
		return nil, fmt.Errorf("terminal frontend: raw mode: %w", err)
	}

	t := NewTerminal(os.Stdout, NewKeyboard(os.Stdin, holdFrames), players, logger)
	t.restore = func() error {
		return ansii.RestoreTerm(prev)
	}
	io.WriteString(os.Stdout, string(ansii.Screen.HideCursor+ansii.Screen.ClearScreen))
	t.logger.Debug("terminal opened", slog.Int("players", players), slog.Int("holdFrames", holdFrames))
	return t, nil
}

func (t *Terminal) Close() error {
	io.WriteString(t.out, string(ansii.Screen.Reset+ansii.Screen.ClearScreen+ansii.Screen.Home+ansii.Screen.ShowCursor))
	err := t.kb.Close()
	if t.restore != nil {
		if rerr := t.restore(); rerr != nil {
			return fmt.Errorf("restore terminal: %w", rerr)
		}
	}
	return err
}

func (t *Terminal) ColorIndex(slot int) console.Color {
	return t.palette.ColorIndex(slot)
}

func (t *Terminal) ButtonUpHeld(player int) bool {
	switch player {
	case 0:
		return t.kb.Held(Up) || (t.players < 2 && t.kb.Held(UpArrow))
	case 1:
		return t.kb.Held(UpArrow)
	}
	return false
}

func (t *Terminal) ButtonDownHeld(player int) bool {
	switch player {
	case 0:
		return t.kb.Held(Down) || (t.players < 2 && t.kb.Held(DownArrow))
	case 1:
		return t.kb.Held(DownArrow)
	}
	return false
}

func (t *Terminal) NumPlayers() int {
	return t.players
}

func (t *Terminal) ClearScreen(c console.Color) {
	t.fb.Clear(uint8(c))
}

func (t *Terminal) Circle(c console.Color, x, y, radius int) {
	t.fb.FillCircle(uint8(c), x, y, radius)
}

func (t *Terminal) RectFilled(c console.Color, x, y, width, height int) {
	t.fb.FillRect(uint8(c), x, y, width, height)
}

func (t *Terminal) Poll() error {
	return t.kb.Poll()
}

func (t *Terminal) Present() error {
	w, h, err := t.size()
	if err != nil {
		return err
	}
	cols, rows := fitCells(w, h)
	t.buf = ansii.AppendFrame(t.buf[:0], t.fb, cols, rows, &t.lut)
	// Park the cursor on the free line under the frame.
	t.buf = ansii.Screen.PlaceCursor(t.buf, 1, rows+1)
	if _, err := t.out.Write(t.buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// fitCells picks the largest 16:9 cell grid that fits a w x h terminal,
// leaving the last line free so the cursor never scrolls the screen.
// Each cell is two pixels tall.
func fitCells(w, h int) (cols, rows int) {
	rows = min(h-1, console.ScreenHeight/2)
	cols = min(w, console.ScreenWidth)
	if rows <= 0 || cols <= 0 {
		return 0, 0
	}
	if cols*9 > rows*2*16 {
		cols = rows * 2 * 16 / 9
	} else {
		rows = cols * 9 / 32
	}
	return cols, rows
}
