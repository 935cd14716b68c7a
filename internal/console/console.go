// Package console is the boundary between a cartridge and whatever hosts it.
// A cartridge only ever sees the capability interfaces below; frame scheduling,
// input polling and rasterisation belong to the host.
package console

import "errors"

// Logical screen size every host presents.
const (
	ScreenWidth  = 320
	ScreenHeight = 180
)

// ErrQuit is returned by a frontend when the player asked to leave.
var ErrQuit = errors.New("console: quit requested")

// Color is an opaque handle produced by Palette.ColorIndex.
type Color int32

type Palette interface {
	ColorIndex(slot int) Color
}

// Input reports the held state of the directional buttons per player slot (0 or 1).
type Input interface {
	ButtonUpHeld(player int) bool
	ButtonDownHeld(player int) bool
	NumPlayers() int
}

type Canvas interface {
	ClearScreen(c Color)
	Circle(c Color, x, y, radius int)
	RectFilled(c Color, x, y, width, height int)
}

// Host is the full capability set handed to a cartridge.
type Host interface {
	Palette
	Input
	Canvas
}

// Cartridge is the program a host runs. Init is called once, then Update and
// Draw alternate for every frame, never concurrently.
type Cartridge interface {
	Init()
	Update()
	Draw()
}

// Frontend is a Host the fixed-rate loop in Run can drive directly.
// Poll samples input before a tick, Present flushes what the cartridge drew.
type Frontend interface {
	Host
	Poll() error
	Present() error
}
