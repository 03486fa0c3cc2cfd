package fractal

import (
	"image/color"
	"math"
)

// Color returns Sentinel for orbits that reached maxIterations and otherwise a
// fully saturated hue of 360°·iterations/maxIterations.
func Color(iterations, maxIterations int) color.RGBA {
	if iterations >= maxIterations {
		return Sentinel
	}
	return HSV(float64(iterations)/float64(maxIterations), 1, 1)
}

// HSV converts hue (in turns, [0, 1)), saturation and value to RGBA.
func HSV(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 0xff}
}

func to8(f float64) uint8 {
	return uint8(math.Round(f * 0xff))
}
