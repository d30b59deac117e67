package systems

import "math"

// minEffectiveSpan keeps the mapper finite when the caller's MinSpan is zero
// or negative and the band is inverted or collapsed.
const minEffectiveSpan = 1e-6

// Band is the active region of a normalized sensor range.
// Top < Bottom is expected but not enforced; see Span.
type Band struct {
	Top     float64
	Bottom  float64
	MinSpan float64
}

// FullBand maps the whole sensor range onto the output without rescaling.
func FullBand() Band {
	return Band{Top: 0, Bottom: 1, MinSpan: 0}
}

// Span returns the divisor used by MapNormalizedY: max(MinSpan, Bottom-Top),
// floored at a tiny positive value.
func (b Band) Span() float64 {
	span := max(b.MinSpan, b.Bottom-b.Top)
	if !(span > minEffectiveSpan) {
		return minEffectiveSpan
	}
	return span
}

// MapNormalizedY rescales a raw sample so the band occupies [0, 1].
// Samples outside the band saturate. Non-finite results map to 0.
func MapNormalizedY(yNorm float64, band Band) float64 {
	r := (yNorm - band.Top) / band.Span()
	if math.IsNaN(r) {
		return 0
	}
	return Clamp01(r)
}

// MapToField maps a raw sample into field coordinates of the given height.
func (b Band) MapToField(yNorm, height float64) float64 {
	return MapNormalizedY(yNorm, b) * height
}

// WithTop returns the band with Top moved to v, keeping at least MinSpan
// between Top and Bottom.
func (b Band) WithTop(v float64) Band {
	t := Clamp(v, 0, 0.98)
	if b.Bottom-t < b.MinSpan {
		t = b.Bottom - b.MinSpan
	}
	b.Top = Clamp01(t)
	return b
}

// WithBottom returns the band with Bottom moved to v, keeping at least MinSpan
// between Top and Bottom.
func (b Band) WithBottom(v float64) Band {
	bt := Clamp(v, 0.02, 1)
	if bt-b.Top < b.MinSpan {
		bt = b.Top + b.MinSpan
	}
	b.Bottom = Clamp01(bt)
	return b
}
