package components

// SparkKind selects how a spark is tinted.
type SparkKind uint8

const (
	SparkPaddle SparkKind = iota
	SparkWall
	SparkPoint
)

// Spark is a short-lived impact particle.
type Spark struct {
	Life    float32 // Seconds remaining
	MaxLife float32
	Size    float32
	Kind    SparkKind
}

// Fade returns remaining life as a fraction in [0, 1].
func (s Spark) Fade() float32 {
	if s.MaxLife <= 0 {
		return 0
	}
	f := s.Life / s.MaxLife
	if f < 0 {
		return 0
	}
	return f
}
