package fractal

import (
	"fmt"
	"sort"
)

// A Preset is a named RenderConfig and Viewport pair.
type Preset struct {
	Name        string
	Description string
	Config      RenderConfig
	Viewport    Viewport
}

var presets = []Preset{
	{
		Name:        "fractal-1",
		Description: "classic Mandelbrot set",
		Config:      RenderConfig{Width: 800, Height: 600, MaxIterations: 1000, Power: 2},
		Viewport:    DefaultViewport,
	},
	{
		Name:        "fractal-2",
		Description: "cubic multibrot",
		Config:      RenderConfig{Width: 800, Height: 600, MaxIterations: 2000, Power: 3},
		Viewport:    DefaultViewport,
	},
	{
		Name:        "fractal-3",
		Description: "quartic multibrot",
		Config:      RenderConfig{Width: 1024, Height: 768, MaxIterations: 1000, Power: 4},
		Viewport:    DefaultViewport,
	},
	{
		Name:        "fractal-4",
		Description: "quintic multibrot",
		Config:      RenderConfig{Width: 1024, Height: 768, MaxIterations: 2000, Power: 5},
		Viewport:    DefaultViewport,
	},
	{
		Name:        "fractal-5",
		Description: "sextic multibrot, full HD",
		Config:      RenderConfig{Width: 1920, Height: 1080, MaxIterations: 1000, Power: 6},
		Viewport:    DefaultViewport,
	},
	// Landmarks are deep, expensive regions with very uneven cost per row.
	{
		Name:        "seahorse-valley",
		Description: "dense filaments and repeating seahorse curls",
		Config:      RenderConfig{Width: 1920, Height: 1080, MaxIterations: 1000, Power: 2},
		Viewport:    Viewport{MinReal: -0.8, MaxReal: -0.7, MinImaginary: 0.05, MaxImaginary: 0.15},
	},
	{
		Name:        "elephant-valley",
		Description: "large bulb with trunk-like tendrils",
		Config:      RenderConfig{Width: 1920, Height: 1080, MaxIterations: 1000, Power: 2},
		Viewport:    Viewport{MinReal: -1.85, MaxReal: -1.75, MinImaginary: -0.10, MaxImaginary: -0.02},
	},
	{
		Name:        "spiral-minibrot",
		Description: "small Mandelbrot copy with tight spiral arms",
		Config:      RenderConfig{Width: 1920, Height: 1080, MaxIterations: 2000, Power: 2},
		Viewport:    Viewport{MinReal: -0.7435, MaxReal: -0.7420, MinImaginary: 0.1310, MaxImaginary: 0.1325},
	},
}

// Presets returns every preset, ordered by name.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}
