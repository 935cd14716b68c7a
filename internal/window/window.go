// Package window hosts a cartridge in a desktop window through ebiten.
// Ebiten owns the frame loop here, so the cartridge is driven from its
// Update and Draw callbacks instead of console.Run.
package window

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"pongcart/internal/console"
)

type Options struct {
	console.Options
	// Scale multiplies the logical screen size for the initial window size.
	Scale int
	Title string
}

var (
	upKeys   = [2][]ebiten.Key{{ebiten.KeyW}, {ebiten.KeyArrowUp}}
	downKeys = [2][]ebiten.Key{{ebiten.KeyS}, {ebiten.KeyArrowDown}}
	quitKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
)

// Window is the console.Host a cartridge sees while ebiten runs it.
type Window struct {
	ctx     context.Context
	cart    console.Cartridge
	players int
	opts    Options
	logger  *slog.Logger

	palette console.DefaultPalette
	pressed func(ebiten.Key) bool
	up      [2]bool
	down    [2]bool
	tick    uint64

	// screen is only set while the cartridge draws.
	screen *ebiten.Image
}

func New(ctx context.Context, players int, opts Options) *Window {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Window{
		ctx:     ctx,
		players: players,
		opts:    opts,
		logger:  logger,
		pressed: ebiten.IsKeyPressed,
	}
}

// Run opens the window and drives cart until the window is closed, the
// player quits, the tick budget is spent or the context is cancelled.
func (w *Window) Run(cart console.Cartridge) error {
	w.cart = cart

	rate := w.opts.TickRate
	if rate <= 0 {
		rate = console.DefaultTickRate
	}
	scale := max(w.opts.Scale, 1)

	ebiten.SetTPS(rate)
	ebiten.SetWindowSize(console.ScreenWidth*scale, console.ScreenHeight*scale)
	ebiten.SetWindowTitle(w.opts.Title)

	cart.Init()
	w.logger.Info("window opened", slog.Int("tickRate", rate), slog.Int("scale", scale))

	if err := ebiten.RunGame(game{w}); err != nil {
		return err
	}
	return w.ctx.Err()
}

func (w *Window) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if w.pressed(k) {
			return true
		}
	}
	return false
}

// step samples the keyboard and runs one cartridge tick.
func (w *Window) step() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if w.anyPressed(quitKeys) {
		w.logger.Info("quit requested", slog.Uint64("tick", w.tick))
		return ebiten.Termination
	}

	for p := range w.up {
		w.up[p] = w.anyPressed(upKeys[p])
		w.down[p] = w.anyPressed(downKeys[p])
	}
	if w.players < 2 {
		w.up[0] = w.up[0] || w.up[1]
		w.down[0] = w.down[0] || w.down[1]
	}

	w.cart.Update()
	w.tick++
	if w.opts.OnTick != nil {
		w.opts.OnTick(w.tick)
	}

	if w.opts.MaxTicks > 0 && w.tick >= w.opts.MaxTicks {
		w.logger.Info("tick budget reached", slog.Uint64("tick", w.tick))
		return ebiten.Termination
	}
	return nil
}

func (w *Window) ColorIndex(slot int) console.Color {
	return w.palette.ColorIndex(slot)
}

func (w *Window) ButtonUpHeld(player int) bool {
	if player < 0 || player > 1 {
		return false
	}
	return w.up[player]
}

func (w *Window) ButtonDownHeld(player int) bool {
	if player < 0 || player > 1 {
		return false
	}
	return w.down[player]
}

func (w *Window) NumPlayers() int {
	return w.players
}

func (w *Window) ClearScreen(c console.Color) {
	if w.screen == nil {
		return
	}
	w.screen.Fill(console.RGBA(c))
}

func (w *Window) Circle(c console.Color, x, y, radius int) {
	if w.screen == nil {
		return
	}
	vector.DrawFilledCircle(w.screen, float32(x), float32(y), float32(radius), console.RGBA(c), false)
}

func (w *Window) RectFilled(c console.Color, x, y, width, height int) {
	if w.screen == nil {
		return
	}
	vector.DrawFilledRect(w.screen, float32(x), float32(y), float32(width), float32(height), console.RGBA(c), false)
}

// game adapts a Window to ebiten.Game.
type game struct {
	w *Window
}

func (g game) Update() error {
	return g.w.step()
}

func (g game) Draw(screen *ebiten.Image) {
	g.w.screen = screen
	g.w.cart.Draw()
	g.w.screen = nil
}

func (game) Layout(int, int) (int, int) {
	return console.ScreenWidth, console.ScreenHeight
}
