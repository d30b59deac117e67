package sim

import "math"

// overlapsVertically reports whether a ball at y with radius r intersects
// a paddle centered at paddleY.
func overlapsVertically(y, r, paddleY, half float64) bool {
	return y+r > paddleY-half && y-r < paddleY+half
}

// bounceWalls reflects the ball off the top and bottom walls. It reports
// which wall was hit, if any.
func bounceWalls(s *State, height float64) (Edge, bool) {
	r := s.BallRadius
	hit := false
	var edge Edge
	if s.BallY < r {
		s.BallY = r
		s.BallVY = math.Abs(s.BallVY)
		edge, hit = Top, true
	}
	if s.BallY > height-r {
		s.BallY = height - r
		s.BallVY = -math.Abs(s.BallVY)
		edge, hit = Bottom, true
	}
	return edge, hit
}

// hitLeft resolves a collision with the left paddle, whose left edge is at x.
// It reports the contact offset when the ball was returned.
func (e *Engine) hitLeft(x float64) (float64, bool) {
	s := &e.state
	p := &e.params
	half := p.HalfHeight()
	if s.BallX-s.BallRadius > x+p.PaddleWidth || s.BallX < x || s.BallVX >= 0 {
		return 0, false
	}
	if !overlapsVertically(s.BallY, s.BallRadius, s.LeftY, half) {
		return 0, false
	}
	s.BallX = x + p.PaddleWidth + s.BallRadius
	s.BallVX = e.capSpeed(math.Abs(s.BallVX) * p.Acceleration)
	off := (s.BallY - s.LeftY) / half
	s.BallVY += off * p.Spin
	return off, true
}

// hitRight resolves a collision with the right paddle, whose left edge is at x.
func (e *Engine) hitRight(x float64) (float64, bool) {
	s := &e.state
	p := &e.params
	half := p.HalfHeight()
	if s.BallX+s.BallRadius < x || s.BallX > x+p.PaddleWidth || s.BallVX <= 0 {
		return 0, false
	}
	if !overlapsVertically(s.BallY, s.BallRadius, s.RightY, half) {
		return 0, false
	}
	s.BallX = x - s.BallRadius
	s.BallVX = -e.capSpeed(math.Abs(s.BallVX) * p.Acceleration)
	off := (s.BallY - s.RightY) / half
	s.BallVY += off * p.Spin
	return off, true
}

// capSpeed limits a horizontal speed magnitude when MaxSpeed is set.
func (e *Engine) capSpeed(v float64) float64 {
	if e.params.MaxSpeed > 0 && v > e.params.MaxSpeed {
		return e.params.MaxSpeed
	}
	return v
}
