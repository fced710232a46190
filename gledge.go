// Package gledge implements analytic edge antialiasing for hand-authored 2D
// primitives. Each vertex carries a shape-coordinate whose length, scaled by a
// width, is the distance to the primitive's logical edge. The fragment stage
// maps that distance to an alpha coverage value through a linear ramp, giving
// smooth edges without multisampling.
//
// The package holds the CPU form of the coverage math, the vertex layouts and
// immutable meshes consumed by the GL binding in [github.com/soypat/gledge/glview]
// and the software rasterizer in [github.com/soypat/gledge/glrender].
package gledge

import (
	"errors"

	"github.com/chewxy/math32"
)

const (
	// DefaultBlur is the width of the antialiasing transition band in
	// shape-coordinate units. Shape coordinates span roughly [-1, 1].
	DefaultBlur = 0.01
	// floatSize is the size in bytes of a vertex component.
	floatSize = 4
)

var (
	ErrEmptyBuffers   = errors.New("empty buffers")
	ErrMismatchLength = errors.New("buffer length mismatch")
	ErrBadIndices     = errors.New("bad triangle indices")
)

func minf(a, b float32) float32 {
	return math32.Min(a, b)
}

func isbad(f float32) bool {
	return math32.IsNaN(f) || math32.IsInf(f, 0)
}
