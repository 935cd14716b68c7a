package pong

import (
	"golang.org/x/exp/constraints"

	"pongcart/internal/console"
)

// ResolveControls moves both paddles for this tick and clamps them into the
// playfield. Paddle 1 follows the second input slot in two-player mode and
// the reactive tracker otherwise.
func ResolveControls(s *GameState, in console.Input) {
	left := &s.Paddles[0]
	right := &s.Paddles[1]

	left.Y += heldDisplacement(in, 0)

	if in.NumPlayers() == 2 {
		right.Y += heldDisplacement(in, 1)
	} else {
		right.Y += trackBall(*right, s.Ball)
	}

	left.Y = clamp(left.Y, 0, PaddleMaxY)
	right.Y = clamp(right.Y, 0, PaddleMaxY)
}

// Up and down held together cancel out.
func heldDisplacement(in console.Input, player int) float32 {
	var dy float32
	if in.ButtonUpHeld(player) {
		dy -= PaddleSpeed
	}
	if in.ButtonDownHeld(player) {
		dy += PaddleSpeed
	}
	return dy
}

// trackBall chases the ball's current height with no look-ahead.
func trackBall(p Paddle, ball Ball) float32 {
	switch {
	case p.Y > ball.Y:
		return -PaddleSpeed
	case p.Y+PaddleHeight < ball.Y:
		return PaddleSpeed
	}
	return 0
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
