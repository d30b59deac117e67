// Package camera maps the fixed-size playing field onto a resizable screen.
package camera

// Viewport letterboxes the field into a screen area, keeping its aspect
// ratio and centering it.
type Viewport struct {
	// Screen area available to the field
	AreaX, AreaY, AreaW, AreaH float32

	// Field dimensions in simulation units
	FieldW, FieldH float32

	// Derived placement
	scale      float32
	offX, offY float32
}

// New creates a viewport that fits the field into the given screen area.
func New(areaX, areaY, areaW, areaH, fieldW, fieldH float32) *Viewport {
	v := &Viewport{FieldW: fieldW, FieldH: fieldH}
	v.SetArea(areaX, areaY, areaW, areaH)
	return v
}

// SetArea moves the viewport to a new screen area and refits the field.
func (v *Viewport) SetArea(x, y, w, h float32) {
	v.AreaX, v.AreaY, v.AreaW, v.AreaH = x, y, w, h
	v.fit()
}

// Resize keeps the area origin and changes its size.
func (v *Viewport) Resize(w, h float32) {
	v.SetArea(v.AreaX, v.AreaY, w, h)
}

func (v *Viewport) fit() {
	if v.FieldW <= 0 || v.FieldH <= 0 || v.AreaW <= 0 || v.AreaH <= 0 {
		v.scale = 0
		v.offX, v.offY = v.AreaX, v.AreaY
		return
	}
	v.scale = min(v.AreaW/v.FieldW, v.AreaH/v.FieldH)
	v.offX = v.AreaX + (v.AreaW-v.FieldW*v.scale)/2
	v.offY = v.AreaY + (v.AreaH-v.FieldH*v.scale)/2
}

// Scale returns screen pixels per field unit.
func (v *Viewport) Scale() float32 {
	return v.scale
}

// FieldToScreen converts field coordinates to screen coordinates.
func (v *Viewport) FieldToScreen(fx, fy float32) (sx, sy float32) {
	return v.offX + fx*v.scale, v.offY + fy*v.scale
}

// ScreenToField converts screen coordinates to field coordinates. Points
// outside the letterboxed field map outside [0, FieldW] x [0, FieldH].
func (v *Viewport) ScreenToField(sx, sy float32) (fx, fy float32) {
	if v.scale == 0 {
		return 0, 0
	}
	return (sx - v.offX) / v.scale, (sy - v.offY) / v.scale
}

// FieldRect returns the screen rectangle covered by the field.
func (v *Viewport) FieldRect() (x, y, w, h float32) {
	return v.offX, v.offY, v.FieldW * v.scale, v.FieldH * v.scale
}

// Contains reports whether a screen point lies on the field.
func (v *Viewport) Contains(sx, sy float32) bool {
	x, y, w, h := v.FieldRect()
	return sx >= x && sx <= x+w && sy >= y && sy <= y+h
}
