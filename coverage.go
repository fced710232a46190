package gledge

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/math/ms1"
)

// Ramp maps a distance to the primitive's edge into alpha coverage.
// The zero value is ready to use and fades over [DefaultBlur].
type Ramp struct {
	// Blur is the width of the linear transition band at a boundary in
	// shape-coordinate units. It should be small relative to the shape extent
	// or the fade becomes visually dominant. Zero selects DefaultBlur.
	Blur float32
}

func (r Ramp) blur() float32 {
	if r.Blur <= 0 || isbad(r.Blur) {
		return DefaultBlur
	}
	return r.Blur
}

// SingleSided returns full coverage for dist <= width-blur and zero coverage for dist >= width
// with a linear fade between. dist == width is the last fully transparent point.
func (r Ramp) SingleSided(dist, width float32) float32 {
	if isbad(dist) || isbad(width) {
		return 0
	}
	blur := r.blur()
	if dist <= width-blur+roundingSlack(width) {
		return 1
	}
	return ms1.Clamp((width-dist)/blur, 0, 1)
}

// DoubleSided returns full coverage in the band [inner, outer-blur], zero coverage for
// dist < inner-blur or dist > outer and linear fades in the two transition bands.
func (r Ramp) DoubleSided(dist, inner, outer float32) float32 {
	if isbad(dist) || isbad(inner) || isbad(outer) {
		return 0
	}
	blur := r.blur()
	slack := roundingSlack(outer)
	if dist >= inner-slack && dist <= outer-blur+slack {
		return 1
	}
	fadeOut := (outer - dist) / blur
	fadeIn := (dist - (inner - blur)) / blur
	return ms1.Clamp(minf(fadeIn, fadeOut), 0, 1)
}

// roundingSlack is the float32 rounding error allowed when comparing a distance
// against a full coverage limit computed from widths of magnitude scale.
func roundingSlack(scale float32) float32 {
	const epsilon32 = 0x1p-23
	return 4 * epsilon32 * math32.Abs(scale)
}

// Blob returns the coverage of a single-sided primitive (circle, blob) for an
// interpolated shape-coordinate. Only the length of normal matters.
func (r Ramp) Blob(normal ms2.Vec, width float32) float32 {
	dist := ms2.Norm(normal) * width
	return r.SingleSided(dist, width)
}

// Capsule returns the coverage of a round line for an interpolated shape-coordinate.
// Distance is reconstructed with the outer width.
func (r Ramp) Capsule(normal ms2.Vec, w Widths) float32 {
	dist := ms2.Norm(normal) * w.Outer
	return r.DoubleSided(dist, w.Inner, w.Outer)
}

// EvaluateBlob computes [Ramp.Blob] for each normal and width pair and stores the result in alpha.
func (r Ramp) EvaluateBlob(normals []ms2.Vec, widths, alpha []float32) error {
	if len(normals) == 0 {
		return ErrEmptyBuffers
	} else if len(normals) != len(widths) || len(normals) != len(alpha) {
		return ErrMismatchLength
	}
	for i, n := range normals {
		alpha[i] = r.Blob(n, widths[i])
	}
	return nil
}

// EvaluateCapsule computes [Ramp.Capsule] for each normal with widths w and stores the result in alpha.
func (r Ramp) EvaluateCapsule(normals []ms2.Vec, w Widths, alpha []float32) error {
	if len(normals) == 0 {
		return ErrEmptyBuffers
	} else if len(normals) != len(alpha) {
		return ErrMismatchLength
	}
	if err := w.Validate(); err != nil {
		return err
	}
	for i, n := range normals {
		alpha[i] = r.Capsule(n, w)
	}
	return nil
}

// Widths is the width pair of a round line. Between Inner and Outer the line is fully covered.
// In GLSL it is passed as a vec2 where .s is Outer and .t is Inner.
type Widths struct {
	Outer float32
	Inner float32
}

// Validate returns a non-nil error if the widths can't describe a capsule band.
func (w Widths) Validate() error {
	var errs []error
	if isbad(w.Outer) || isbad(w.Inner) {
		return errors.New("non-finite widths")
	}
	if w.Outer <= 0 {
		errs = append(errs, fmt.Errorf("outer width must be positive, got %g", w.Outer))
	}
	if w.Inner < 0 {
		errs = append(errs, fmt.Errorf("negative inner width %g", w.Inner))
	}
	if w.Inner >= w.Outer {
		errs = append(errs, fmt.Errorf("inner width %g not smaller than outer width %g", w.Inner, w.Outer))
	}
	return errors.Join(errs...)
}
