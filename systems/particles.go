package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/handpong/components"
)

// ParticleParams controls spark emission and decay.
type ParticleParams struct {
	Lifetime float32 // Seconds
	Speed    float32 // Initial speed in field units per second
	Drag     float32 // Velocity decay per second
	Max      int     // Live spark cap (0 = unlimited)
}

// ParticleSystem owns the impact sparks drawn on top of the field.
// Sparks are purely visual and never feed back into the simulation.
type ParticleSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Spark]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Spark]
	rng    *rand.Rand
	params ParticleParams
	count  int

	expired []ecs.Entity
}

// NewParticleSystem creates a particle system backed by its own ECS world.
func NewParticleSystem(params ParticleParams, seed int64) *ParticleSystem {
	world := ecs.NewWorld()
	return &ParticleSystem{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Spark](world),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Spark](world),
		rng:    rand.New(rand.NewSource(seed)),
		params: params,
	}
}

// Burst emits n sparks at (x, y). A non-zero dirX sends them in a cone
// pointing along that horizontal direction, zero scatters them radially.
func (s *ParticleSystem) Burst(x, y float32, n int, dirX float32, kind components.SparkKind) {
	if s.params.Max > 0 {
		n = min(n, s.params.Max-s.count)
	}
	for i := 0; i < n; i++ {
		var angle float64
		switch {
		case dirX > 0:
			angle = (s.rng.Float64() - 0.5) * math.Pi * 0.6
		case dirX < 0:
			angle = math.Pi + (s.rng.Float64()-0.5)*math.Pi*0.6
		default:
			angle = s.rng.Float64() * 2 * math.Pi
		}
		speed := s.params.Speed * (0.4 + 0.6*s.rng.Float32())
		life := s.params.Lifetime * (0.6 + 0.4*s.rng.Float32())

		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{
			X: float32(math.Cos(angle)) * speed,
			Y: float32(math.Sin(angle)) * speed,
		}
		spark := components.Spark{
			Life:    life,
			MaxLife: life,
			Size:    1.5 + 2*s.rng.Float32(),
			Kind:    kind,
		}
		s.mapper.NewEntity(&pos, &vel, &spark)
		s.count++
	}
}

// Update advances all sparks by dt seconds and removes expired ones.
func (s *ParticleSystem) Update(dt float32) {
	if dt <= 0 {
		return
	}
	decay := float32(math.Exp(float64(-s.params.Drag * dt)))

	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, vel, spark := query.Get()
		spark.Life -= dt
		if spark.Life <= 0 {
			s.expired = append(s.expired, query.Entity())
			continue
		}
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		vel.X *= decay
		vel.Y *= decay
	}

	// Entities cannot be removed while the query holds the world lock
	for _, e := range s.expired {
		s.world.RemoveEntity(e)
		s.count--
	}
}

// Each calls fn for every live spark.
func (s *ParticleSystem) Each(fn func(pos components.Position, spark components.Spark)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, spark := query.Get()
		fn(*pos, *spark)
	}
}

// Count returns the number of live sparks.
func (s *ParticleSystem) Count() int {
	return s.count
}

// Clear removes every spark.
func (s *ParticleSystem) Clear() {
	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		s.expired = append(s.expired, query.Entity())
	}
	for _, e := range s.expired {
		s.world.RemoveEntity(e)
	}
	s.count = 0
}
