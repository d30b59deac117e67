// Package components defines ECS components for visual effects.
package components

// Position represents an entity's position in field coordinates.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in field units per second.
type Velocity struct {
	X, Y float32
}
