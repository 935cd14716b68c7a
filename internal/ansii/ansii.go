package ansii

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

type ANSI string

const (
	reset       ANSI = "\033[0m"
	home        ANSI = "\033[H"
	clearScreen ANSI = "\033[2J"
	hideCursor  ANSI = "\033[?25l"
	showCursor  ANSI = "\033[?25h"
)

type screen struct {
	Reset       ANSI
	Home        ANSI
	ClearScreen ANSI
	HideCursor  ANSI
	ShowCursor  ANSI
}

var Screen = screen{Reset: reset, Home: home, ClearScreen: clearScreen, HideCursor: hideCursor, ShowCursor: showCursor}

// Upper half block: foreground paints the top pixel, background the bottom one.
const halfBlock = "▀"

// PlaceCursor appends a move to column x, row y (1-based) to dst.
func (s screen) PlaceCursor(dst []byte, x, y int) []byte {
	dst = append(dst, "\033["...)
	dst = strconv.AppendInt(dst, int64(y), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(x), 10)
	return append(dst, 'H')
}

func GetTermSize() (width int, height int, err error) {
	fd := int(os.Stdout.Fd())
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}
	return width, height, nil
}

func MakeTermRaw() (*term.State, error) {
	fd := int(os.Stdin.Fd())
	return term.MakeRaw(fd)
}

func RestoreTerm(prev *term.State) error {
	fd := int(os.Stdin.Fd())
	return term.Restore(fd, prev)
}

func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// appendColors appends an SGR sequence selecting 256-colour foreground and background.
func appendColors(dst []byte, fg, bg uint8) []byte {
	dst = append(dst, "\033[38;5;"...)
	dst = strconv.AppendUint(dst, uint64(fg), 10)
	dst = append(dst, ";48;5;"...)
	dst = strconv.AppendUint(dst, uint64(bg), 10)
	return append(dst, 'm')
}
