package pong

import "pongcart/internal/console"

const (
	ScreenWidth  = console.ScreenWidth
	ScreenHeight = console.ScreenHeight
)

const (
	PaddleWidth  = 6
	PaddleHeight = 32
	PaddleSpeed  = float32(1.0)
	PaddleInset  = 10
	PaddleStartY = float32(ScreenHeight)/2 - PaddleHeight

	// Highest Y a paddle may rest at.
	PaddleMaxY = ScreenHeight - PaddleHeight
)

const (
	BallRadius = 4
	BallSpeed  = float32(0.75)
)

// Palette slots resolved during Init.
const (
	BackgroundSlot  = 0
	BallSlot        = 43
	LeftPaddleSlot  = 31
	RightPaddleSlot = 15
)

type Paddle struct {
	X float32
	Y float32
}

func NewPaddle(x float32) Paddle {
	return Paddle{X: x, Y: PaddleStartY}
}

type Ball struct {
	X    float32
	Y    float32
	XVel float32
	YVel float32
}

// NewBall is the serve position: screen centre, moving right and down.
func NewBall() Ball {
	return Ball{
		X:    float32(ScreenWidth / 2),
		Y:    float32(ScreenHeight / 2),
		XVel: BallSpeed,
		YVel: BallSpeed,
	}
}

// GameState is everything a tick reads or writes. Paddles[0] is the left
// (player) paddle, Paddles[1] the right one.
type GameState struct {
	Paddles [2]Paddle
	Ball    Ball

	Background  console.Color
	BallColor   console.Color
	PaddleColor [2]console.Color
}

func NewGameState() GameState {
	return GameState{
		Paddles: [2]Paddle{
			NewPaddle(PaddleInset),
			NewPaddle(ScreenWidth - (PaddleInset + PaddleWidth)),
		},
		Ball: NewBall(),
	}
}
