package console

type Op uint8

const (
	OpClear Op = iota + 1
	OpCircle
	OpRect
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpRect:
		return "rect"
	}
	return "unknown"
}

// DrawCall is one recorded canvas invocation. For circles W holds the radius.
type DrawCall struct {
	Op    Op
	Color Color
	X, Y  int
	W, H  int
}

// Recorder is a headless Frontend. It keeps the draw calls of the current
// frame, exposes the button state as plain fields and can be scripted per frame.
type Recorder struct {
	Players int
	Up      [2]bool
	Down    [2]bool

	// Script, when set, runs at the start of every Poll with the number of
	// frames presented so far. Returning ErrQuit stops the loop.
	Script func(frame int, r *Recorder) error

	Calls    []DrawCall
	Resolved []int
	Frames   int

	palette DefaultPalette
}

func NewRecorder(players int) *Recorder {
	return &Recorder{
		Players: players,
		Calls:   make([]DrawCall, 0, 8),
	}
}

func (r *Recorder) ColorIndex(slot int) Color {
	r.Resolved = append(r.Resolved, slot)
	return r.palette.ColorIndex(slot)
}

func (r *Recorder) ButtonUpHeld(player int) bool {
	if player < 0 || player > 1 {
		return false
	}
	return r.Up[player]
}

func (r *Recorder) ButtonDownHeld(player int) bool {
	if player < 0 || player > 1 {
		return false
	}
	return r.Down[player]
}

func (r *Recorder) NumPlayers() int {
	return r.Players
}

// ClearScreen starts a new frame's call list.
func (r *Recorder) ClearScreen(c Color) {
	r.Calls = append(r.Calls[:0], DrawCall{Op: OpClear, Color: c})
}

func (r *Recorder) Circle(c Color, x, y, radius int) {
	r.Calls = append(r.Calls, DrawCall{Op: OpCircle, Color: c, X: x, Y: y, W: radius})
}

func (r *Recorder) RectFilled(c Color, x, y, width, height int) {
	r.Calls = append(r.Calls, DrawCall{Op: OpRect, Color: c, X: x, Y: y, W: width, H: height})
}

func (r *Recorder) Poll() error {
	if r.Script == nil {
		return nil
	}
	return r.Script(r.Frames, r)
}

func (r *Recorder) Present() error {
	r.Frames++
	return nil
}
