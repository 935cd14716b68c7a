package renderer

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"pongcart/internal/console"
)

type UiAction rune

const (
	Unknown    UiAction = iota
	Quit       UiAction = 81 // 'Q'
	Left       UiAction = 65
	Up         UiAction = 87
	Right      UiAction = 68
	Down       UiAction = 83
	LeftArrow  UiAction = 8592
	UpArrow    UiAction = 8593
	RightArrow UiAction = 8594
	DownArrow  UiAction = 8595
)

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

func ProcessInput(rawInput rune) (action UiAction) {
	inputVal := int(rawInput)
	// Convert to UpperCase
	if inputVal >= 97 && inputVal <= 122 {
		inputVal = inputVal - 32
	}
	switch a := UiAction(inputVal); a {
	case Quit, Left, Up, Right, Down, LeftArrow, UpArrow, RightArrow, DownArrow:
		return a
	}
	return Unknown
}

// DecodeInput appends the actions a host can use found in one raw-mode read
// to dst: W/S, the up and down arrows (ESC [ A, ESC [ B) and quit. Left and
// right keys are dropped. A lone ESC or Ctrl-C quits.
func DecodeInput(dst []UiAction, raw []byte) []UiAction {
	for i := 0; i < len(raw); {
		switch b := raw[i]; {
		case b == keyCtrlC:
			dst = append(dst, Quit)
			i++
		case b == keyEsc && i+2 < len(raw) && raw[i+1] == '[':
			switch raw[i+2] {
			case 'A':
				dst = append(dst, UpArrow)
			case 'B':
				dst = append(dst, DownArrow)
			}
			i += 3
		case b == keyEsc && i+1 == len(raw):
			dst = append(dst, Quit)
			i++
		case b == keyEsc:
			i++
		default:
			r, size := utf8.DecodeRune(raw[i:])
			switch a := ProcessInput(r); a {
			case Up, Down, Quit:
				dst = append(dst, a)
			}
			i += size
		}
	}
	return dst
}

// Keyboard turns a raw-mode byte stream into held button state.
// Terminals only report key presses, so a key counts as held for holdFrames
// frames after its last press or auto-repeat.
type Keyboard struct {
	actions chan UiAction
	errs    chan error
	done    chan struct{}
	src     io.Reader

	frame     uint64
	hold      uint64
	lastPress map[UiAction]uint64
}

func NewKeyboard(r io.Reader, holdFrames int) *Keyboard {
	if holdFrames < 1 {
		holdFrames = 1
	}
	k := &Keyboard{
		actions:   make(chan UiAction, 64),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
		src:       r,
		hold:      uint64(holdFrames),
		lastPress: make(map[UiAction]uint64, 8),
	}
	go k.read()
	return k
}

func (k *Keyboard) read() {
	buf := make([]byte, 64)
	decoded := make([]UiAction, 0, 16)
	for {
		n, err := k.src.Read(buf)
		decoded = DecodeInput(decoded[:0], buf[:n])
		for _, a := range decoded {
			select {
			case k.actions <- a:
			case <-k.done:
				return
			}
		}
		if err != nil {
			select {
			case k.errs <- err:
			case <-k.done:
			}
			return
		}
	}
}

// Poll advances the frame counter and applies every action read since the
// previous call. It returns console.ErrQuit when the player quit or the input
// stream ended.
func (k *Keyboard) Poll() error {
	k.frame++
	for {
		select {
		case a := <-k.actions:
			if a == Quit {
				return console.ErrQuit
			}
			k.lastPress[a] = k.frame
			continue
		default:
		}
		break
	}

	select {
	case err := <-k.errs:
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
			return console.ErrQuit
		}
		return fmt.Errorf("read keyboard: %w", err)
	default:
		return nil
	}
}

// Held reports whether a was pressed within the hold window.
func (k *Keyboard) Held(a UiAction) bool {
	last, ok := k.lastPress[a]
	return ok && k.frame-last < k.hold
}

// Close stops the reader goroutine. If the source is an io.Closer it is
// closed too so a pending Read can return.
func (k *Keyboard) Close() error {
	select {
	case <-k.done:
		return nil
	default:
	}
	close(k.done)
	if c, ok := k.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
