package transforms

// An Iteration advances the orbit point z of the parameter c by one step.
type Iteration interface {
	Next(z, c complex128) complex128
}

var (
	_ Iteration = Mandelbrot{}
	_ Iteration = MandelbrotN{}
)
