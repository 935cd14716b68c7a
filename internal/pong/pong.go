// Package pong is the simulation core of a two-paddle ball-bounce game:
// one ball, two paddles, fixed constants and one time unit per tick.
package pong

import (
	"log/slog"

	"pongcart/internal/console"
)

// Game owns the single GameState and implements console.Cartridge.
type Game struct {
	host   console.Host
	logger *slog.Logger

	state  GameState
	tick   uint64
	events Event
}

func New(host console.Host, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		host:   host,
		logger: logger,
		state:  NewGameState(),
	}
}

// Init resolves the palette. The host calls it once before the first Update.
func (g *Game) Init() {
	g.state.Background = g.host.ColorIndex(BackgroundSlot)
	g.state.BallColor = g.host.ColorIndex(BallSlot)
	g.state.PaddleColor[0] = g.host.ColorIndex(LeftPaddleSlot)
	g.state.PaddleColor[1] = g.host.ColorIndex(RightPaddleSlot)

	g.logger.Info("game initialised", slog.Int("players", g.host.NumPlayers()))
}

// Update runs one tick: physics first, then paddle input or AI.
func (g *Game) Update() {
	g.tick++
	g.events = Integrate(&g.state)
	ResolveControls(&g.state, g.host)

	if g.events.Served() {
		g.logger.Debug("ball served",
			slog.Uint64("tick", g.tick),
			slog.String("event", g.events.String()),
		)
	}
}

func (g *Game) Draw() {
	Project(&g.state, g.host)
}

// State returns a copy of the current state.
func (g *Game) State() GameState {
	return g.state
}

// Snapshot is the per-tick record written to traces.
type Snapshot struct {
	Tick    uint64
	Ball    Ball
	PaddleY [2]float32
	Events  Event
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Ball:    g.state.Ball,
		PaddleY: [2]float32{g.state.Paddles[0].Y, g.state.Paddles[1].Y},
		Events:  g.events,
	}
}
