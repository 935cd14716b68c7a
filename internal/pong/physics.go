package pong

import "strings"

// Event reports what happened to the ball during one Integrate call.
type Event uint8

const (
	// ExitRight: the ball left through the right wall and was re-served leftward.
	ExitRight Event = 1 << iota
	// ExitLeft: the ball left through the left wall and was re-served rightward.
	ExitLeft
	WallBounce
	PaddleHit
)

func (e Event) Served() bool {
	return e&(ExitLeft|ExitRight) != 0
}

func (e Event) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	for _, ev := range []struct {
		bit  Event
		name string
	}{
		{ExitRight, "exit_right"},
		{ExitLeft, "exit_left"},
		{WallBounce, "wall_bounce"},
		{PaddleHit, "paddle_hit"},
	} {
		if e&ev.bit != 0 {
			names = append(names, ev.name)
		}
	}
	return strings.Join(names, "|")
}

// Integrate advances the ball by one tick and resolves wall exits, wall
// bounces and paddle contact, in that order. Boundary tests use the
// truncated integer position of the ball centre.
func Integrate(s *GameState) Event {
	var ev Event
	ball := &s.Ball

	ball.X += ball.XVel
	ball.Y += ball.YVel

	if int32(ball.X)+BallRadius > ScreenWidth {
		*ball = NewBall()
		ball.XVel = -ball.XVel
		ev |= ExitRight
	}

	if int32(ball.X)-BallRadius < 0 {
		*ball = NewBall()
		ev |= ExitLeft
	}

	// Runs on the re-served ball too.
	if int32(ball.Y)-(BallRadius+1) < 0 || int32(ball.Y)+BallRadius > ScreenHeight-1 {
		ball.YVel = -ball.YVel
		ev |= WallBounce
	}

	target := &s.Paddles[1]
	if ball.XVel < 0 {
		target = &s.Paddles[0]
	}
	if Intersects(*ball, *target) {
		ball.XVel = -ball.XVel
		ev |= PaddleHit
	}

	return ev
}

// Intersects reports whether the ball's circle overlaps the paddle rectangle.
// Touching at exactly one radius is not contact.
func Intersects(ball Ball, paddle Paddle) bool {
	closestX := clamp(ball.X, paddle.X, paddle.X+PaddleWidth)
	closestY := clamp(ball.Y, paddle.Y, paddle.Y+PaddleHeight)

	dx := ball.X - closestX
	dy := ball.Y - closestY

	return dx*dx+dy*dy < float32(BallRadius*BallRadius)
}
