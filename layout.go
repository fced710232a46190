package gledge

import (
	"errors"
	"fmt"
)

// Attrib describes a single float32 vertex attribute within an interleaved vertex.
type Attrib struct {
	// Name is the attribute's name in the vertex shader.
	Name string
	// Components is the number of float32 components, 1 to 4.
	Components int
	// Offset is the attribute's offset from the vertex start in float32 units.
	Offset int
}

// OffsetBytes returns the attribute offset in bytes.
func (a Attrib) OffsetBytes() int { return a.Offset * floatSize }

// Layout describes interleaved float32 vertex data.
type Layout struct {
	// Stride is the size of a vertex in float32 units.
	Stride  int
	Attribs []Attrib
}

// StrideBytes returns the vertex size in bytes.
func (l Layout) StrideBytes() int { return l.Stride * floatSize }

// Attrib returns the attribute with the given name.
func (l Layout) Attrib(name string) (Attrib, bool) {
	for _, a := range l.Attribs {
		if a.Name == name {
			return a, true
		}
	}
	return Attrib{}, false
}

// Validate checks attributes fit in the stride without overlapping.
func (l Layout) Validate() error {
	if l.Stride <= 0 {
		return errors.New("layout stride must be positive")
	} else if len(l.Attribs) == 0 {
		return errors.New("layout has no attributes")
	}
	var used [16]bool
	if l.Stride > len(used) {
		return fmt.Errorf("layout stride %d exceeds max %d", l.Stride, len(used))
	}
	var errs []error
	for i, a := range l.Attribs {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("attribute %d has no name", i))
		}
		for j := 0; j < i; j++ {
			if l.Attribs[j].Name == a.Name && a.Name != "" {
				errs = append(errs, fmt.Errorf("duplicate attribute %q", a.Name))
			}
		}
		if a.Components < 1 || a.Components > 4 {
			errs = append(errs, fmt.Errorf("attribute %q: components %d not in 1..4", a.Name, a.Components))
			continue
		}
		if a.Offset < 0 || a.Offset+a.Components > l.Stride {
			errs = append(errs, fmt.Errorf("attribute %q [%d:%d] out of stride %d", a.Name, a.Offset, a.Offset+a.Components, l.Stride))
			continue
		}
		for k := a.Offset; k < a.Offset+a.Components; k++ {
			if used[k] {
				errs = append(errs, fmt.Errorf("attribute %q overlaps at component %d", a.Name, k))
				break
			}
			used[k] = true
		}
	}
	return errors.Join(errs...)
}
