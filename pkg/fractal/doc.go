// Package fractal classifies points of the complex plane by their escape
// iteration count under z <- z^power + c and colors them.
//
// Everything here is pure: a Classifier holds only immutable copies of the
// Viewport and RenderConfig it was built from and may be shared freely by
// concurrent workers.
package fractal
