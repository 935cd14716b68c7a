package pong

import "pongcart/internal/console"

// Project draws the settled state: background, ball, left paddle, right
// paddle. It only reads s.
func Project(s *GameState, c console.Canvas) {
	c.ClearScreen(s.Background)

	c.Circle(s.BallColor, int(s.Ball.X), int(s.Ball.Y), BallRadius)

	for i := range s.Paddles {
		p := &s.Paddles[i]
		c.RectFilled(s.PaddleColor[i], int(p.X), int(p.Y), PaddleWidth, PaddleHeight)
	}
}
