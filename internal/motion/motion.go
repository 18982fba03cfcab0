// Package motion maps scroll position to the hero layer's parallax offset and fade.
//
// Everything here is a pure function of its inputs. The browser adapter binds the
// Transform tables to scroll events; the values it computes at rest match Progress,
// VerticalOffset and FadeOpacity exactly.
package motion

import (
	"fmt"
	"math"
)

// Progress normalizes a scroll offset to [0,1] over the scrollable range.
// A document that cannot scroll yields 0.
func Progress(offset, documentHeight, viewportHeight float64) float64 {
	scrollable := documentHeight - viewportHeight
	if !finite(offset) || !finite(scrollable) || scrollable <= 0 {
		return 0
	}
	return clamp(offset/scrollable, 0, 1)
}

// Transform is a piecewise-linear mapping over strictly increasing input stops.
// Inputs outside the first/last stop are clamped to the end outputs.
type Transform struct {
	In   []float64 `json:"in"`
	Out  []float64 `json:"out"`
	Unit string    `json:"unit,omitempty"`
}

var (
	// ParallaxY slides the hero background down to 40% over the full scroll.
	ParallaxY = Transform{In: []float64{0, 1}, Out: []float64{0, 40}, Unit: "%"}
	// HeroFade fades the hero background out by half-way.
	HeroFade = Transform{In: []float64{0, 0.5}, Out: []float64{1, 0}}
)

// Validate reports whether the stops describe a usable mapping.
func (t Transform) Validate() error {
	if len(t.In) < 2 {
		return fmt.Errorf("transform needs at least two stops, got %d", len(t.In))
	}
	if len(t.In) != len(t.Out) {
		return fmt.Errorf("transform has %d input stops and %d output stops", len(t.In), len(t.Out))
	}
	for i := 1; i < len(t.In); i++ {
		if !(t.In[i] > t.In[i-1]) {
			return fmt.Errorf("transform input stops must increase strictly at index %d", i)
		}
	}
	return nil
}

// Apply maps x through the transform. An invalid transform maps everything to 0.
func (t Transform) Apply(x float64) float64 {
	if t.Validate() != nil {
		return 0
	}
	return Interpolate(x, t.In, t.Out)
}

// Interpolate maps x linearly between the surrounding stops of in onto out,
// clamping outside the domain. Callers must pass valid stops.
func Interpolate(x float64, in, out []float64) float64 {
	last := len(in) - 1
	if math.IsNaN(x) || x <= in[0] {
		return out[0]
	}
	if x >= in[last] {
		return out[last]
	}
	for i := 1; i <= last; i++ {
		if x <= in[i] {
			ratio := (x - in[i-1]) / (in[i] - in[i-1])
			return out[i-1] + ratio*(out[i]-out[i-1])
		}
	}
	return out[last]
}

// VerticalOffset is the hero layer's downward offset, in percent, for a progress value.
func VerticalOffset(progress float64) float64 {
	return ParallaxY.Apply(progress)
}

// FadeOpacity is the hero layer's opacity for a progress value.
func FadeOpacity(progress float64) float64 {
	return HeroFade.Apply(progress)
}

// Frame is the pair of visual values the hero layer takes at one scroll position.
type Frame struct {
	Progress float64 `json:"progress"`
	OffsetY  float64 `json:"offsetY"`
	Opacity  float64 `json:"opacity"`
}

// At computes the hero frame for a scroll position.
func At(offset, documentHeight, viewportHeight float64) Frame {
	p := Progress(offset, documentHeight, viewportHeight)
	return Frame{Progress: p, OffsetY: VerticalOffset(p), Opacity: FadeOpacity(p)}
}

// Rest is the frame at the top of the page.
func Rest() Frame {
	return Frame{Progress: 0, OffsetY: VerticalOffset(0), Opacity: FadeOpacity(0)}
}

// Style renders the frame as an inline CSS declaration for the hero layer.
func (f Frame) Style() string {
	return fmt.Sprintf("transform: translateY(%g%%); opacity: %g;", f.OffsetY, f.Opacity)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
