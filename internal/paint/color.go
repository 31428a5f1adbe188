package paint

import "github.com/Hilthkess/flow-map-painter/pkg/math"

// Color is a direction encoded as three channels in [0,1] via
// (unit+1)*0.5 per channel. For 2D spaces the third channel is 0.
type Color [3]float32

// Neutral is the brush color forced on cancel, the zero-direction
// midpoint. It keeps a stale or NaN-tainted color from leaking into
// whatever the user paints next.
var Neutral = Color{0.5, 0.5, 0.5}

// IsFinite reports whether every channel is a finite real number.
// Non-finite channels can only come from degenerate geometry upstream
// and must never reach persistent brush state.
func (c Color) IsFinite() bool {
	return math.IsFinite(c[0]) && math.IsFinite(c[1]) && math.IsFinite(c[2])
}
