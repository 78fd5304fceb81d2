package fractalworlds

import (
	"image/color"
	"math"

	"github.com/Flokey82/go_gens/utils"

	"github.com/camkilo/fractalworlds/various"
)

var minMax = utils.MinMax[float64]

var clamp01 = various.Clamp01

var convToMap = various.ConvToMap

// dist2 returns the euclidean distance between two points on the world
// plane.
func dist2(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// shadeColor darkens the given color by the given intensity (0.0-1.0).
func shadeColor(col color.NRGBA, intensity float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(col.R) * intensity),
		G: uint8(float64(col.G) * intensity),
		B: uint8(float64(col.B) * intensity),
		A: col.A,
	}
}

// genBlue returns a blue color with the given intensity (0.0-1.0).
func genBlue(intensity float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(intensity * 255),
		G: uint8(intensity * 255),
		B: 255,
		A: 255,
	}
}
