package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Metrics holds the vertical metrics of a Face in pixels.
// Descent is a positive distance below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// LineHeight returns the distance between consecutive baselines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face is a FontSource at a specific size.
// Face is NOT safe for concurrent use.
type Face struct {
	source  *FontSource
	size    float64
	face    font.Face
	metrics Metrics
}

// Size returns the size of this face in pixels.
func (f *Face) Size() float64 {
	return f.size
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource {
	return f.source
}

// Metrics returns the vertical metrics at this face's size.
func (f *Face) Metrics() Metrics {
	return f.metrics
}

// Close releases the glyph caches held by the face.
func (f *Face) Close() error {
	if f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
