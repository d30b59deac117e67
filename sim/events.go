package sim

// Side identifies one half of the field.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Edge identifies a horizontal wall.
type Edge uint8

const (
	Top Edge = iota
	Bottom
)

func (e Edge) String() string {
	if e == Top {
		return "top"
	}
	return "bottom"
}

// Event is something that happened during an engine operation.
type Event interface {
	isEvent()
}

// PaddleHit is emitted when the ball bounces off a paddle.
type PaddleHit struct {
	Side   Side
	Offset float64 // Contact offset from paddle center, -1..1 inside the face
	Speed  float64 // Ball speed after the hit
	X, Y   float64 // Contact point
}

// WallBounce is emitted when the ball reflects off the top or bottom wall.
type WallBounce struct {
	Edge Edge
	X, Y float64
}

// Point is emitted when the ball leaves the field and a side scores.
type Point struct {
	Scorer     Side
	ScoreLeft  int
	ScoreRight int
	Rally      int     // Paddle hits since the last serve
	Y          float64 // Ball height when it left the field
}

// Serve is emitted whenever the ball is put back in play.
type Serve struct {
	Direction int // +1 toward the right paddle, -1 toward the left
	VX, VY    float64
}

// Reset is emitted when the scores are cleared.
type Reset struct{}

func (PaddleHit) isEvent()  {}
func (WallBounce) isEvent() {}
func (Point) isEvent()      {}
func (Serve) isEvent()      {}
func (Reset) isEvent()      {}

// Listener receives engine events synchronously, in the order they occur.
// Listeners run inside the engine call and must not call back into it.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
