package gledge

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

// Vertex attribute names shared by the vertex layouts and the vertex shaders.
const (
	AttribPos   = "vPos"
	AttribShape = "vShape"
)

// Variant identifies how a mesh's shape-coordinate is interpreted by the fragment stage.
type Variant uint8

const (
	variantUndefined Variant = iota
	// VariantBlob is a single-sided ramp primitive such as an antialiased circle.
	VariantBlob
	// VariantCapsule is a double-sided ramp round line with extruded geometry.
	VariantCapsule
	// VariantTexture reuses the shape-coordinate as a texture coordinate.
	VariantTexture
)

func (v Variant) String() string {
	switch v {
	case VariantBlob:
		return "blob"
	case VariantCapsule:
		return "capsule"
	case VariantTexture:
		return "texture"
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Layout returns the interleaved vertex layout of the variant.
func (v Variant) Layout() Layout {
	switch v {
	case VariantBlob, VariantTexture:
		// Shape coordinate packed with width in a vec3.
		return Layout{Stride: 5, Attribs: []Attrib{
			{Name: AttribPos, Components: 2, Offset: 0},
			{Name: AttribShape, Components: 3, Offset: 2},
		}}
	case VariantCapsule:
		// Shape coordinate packed with extrusion vector in a vec4.
		return Layout{Stride: 6, Attribs: []Attrib{
			{Name: AttribPos, Components: 2, Offset: 0},
			{Name: AttribShape, Components: 4, Offset: 2},
		}}
	}
	return Layout{}
}

// BlobVertex is a vertex of a single-sided antialiased primitive.
type BlobVertex struct {
	Pos ms2.Vec
	// Normal is the shape-coordinate. Its length times Width is the distance to the shape's center.
	Normal ms2.Vec
	Width  float32
}

// CapsuleVertex is a vertex of a round line. Positions lie on the line's centerline
// and are extruded outward by the vertex stage.
type CapsuleVertex struct {
	Pos ms2.Vec
	// Normal is the shape-coordinate. X is 1 on round cap corners and 0 on the line body,
	// Y is +1 on the upper side and -1 on the lower side.
	Normal ms2.Vec
	// Extrude is the direction the vertex is displaced in, scaled by the outer width.
	Extrude ms2.Vec
}

// Extruded returns the position of the vertex after the vertex stage displaces it by outer width.
func (v CapsuleVertex) Extruded(outer float32) ms2.Vec {
	return ms2.Add(v.Pos, ms2.Scale(outer, v.Extrude))
}

// TexVertex is a vertex of a textured primitive.
type TexVertex struct {
	Pos ms2.Vec
	// UV is the texture coordinate, stored in the shape-coordinate slot.
	UV    ms2.Vec
	Width float32
}

// Mesh is an immutable indexed triangle list with interleaved float32 vertex data.
type Mesh struct {
	variant Variant
	layout  Layout
	data    []float32
	indices []uint32
}

// NewBlobMesh creates a single-sided antialiased mesh.
func NewBlobMesh(vertices []BlobVertex, indices []uint32) (*Mesh, error) {
	data := make([]float32, 0, len(vertices)*5)
	for _, v := range vertices {
		if v.Width <= 0 || isbad(v.Width) {
			return nil, fmt.Errorf("blob vertex width must be positive and finite, got %g", v.Width)
		}
		data = append(data, v.Pos.X, v.Pos.Y, v.Normal.X, v.Normal.Y, v.Width)
	}
	return newMesh(VariantBlob, data, indices)
}

// NewCapsuleMesh creates a round line mesh. See [NewRoundLine] for generating one from a segment.
func NewCapsuleMesh(vertices []CapsuleVertex, indices []uint32) (*Mesh, error) {
	data := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		data = append(data, v.Pos.X, v.Pos.Y, v.Normal.X, v.Normal.Y, v.Extrude.X, v.Extrude.Y)
	}
	return newMesh(VariantCapsule, data, indices)
}

// NewTextureMesh creates a textured mesh.
func NewTextureMesh(vertices []TexVertex, indices []uint32) (*Mesh, error) {
	data := make([]float32, 0, len(vertices)*5)
	for _, v := range vertices {
		data = append(data, v.Pos.X, v.Pos.Y, v.UV.X, v.UV.Y, v.Width)
	}
	return newMesh(VariantTexture, data, indices)
}

// NewRoundLine creates a capsule mesh for the segment a-b. The body of the line is a
// quad extruded perpendicular to the segment and each end is capped by a quad extruded
// along the segment; the fragment stage rounds the cap corners.
func NewRoundLine(a, b ms2.Vec) (*Mesh, error) {
	ab := ms2.Sub(b, a)
	length := ms2.Norm(ab)
	if length < 1e-6 || isbad(length) {
		return nil, errors.New("degenerate round line segment")
	}
	d := ms2.Scale(1/length, ab)
	n := ms2.Vec{X: -d.Y, Y: d.X}
	negd := ms2.Scale(-1, d)
	negn := ms2.Scale(-1, n)
	vertices := []CapsuleVertex{
		{Pos: a, Normal: ms2.Vec{X: 1, Y: 1}, Extrude: ms2.Add(negd, n)},
		{Pos: a, Normal: ms2.Vec{X: 1, Y: -1}, Extrude: ms2.Add(negd, negn)},
		{Pos: a, Normal: ms2.Vec{X: 0, Y: 1}, Extrude: n},
		{Pos: a, Normal: ms2.Vec{X: 0, Y: -1}, Extrude: negn},
		{Pos: b, Normal: ms2.Vec{X: 0, Y: 1}, Extrude: n},
		{Pos: b, Normal: ms2.Vec{X: 0, Y: -1}, Extrude: negn},
		{Pos: b, Normal: ms2.Vec{X: 1, Y: 1}, Extrude: ms2.Add(d, n)},
		{Pos: b, Normal: ms2.Vec{X: 1, Y: -1}, Extrude: ms2.Add(d, negn)},
	}
	return NewCapsuleMesh(vertices, stripIndices(len(vertices)))
}

// stripIndices returns the triangle list indices of a strip of quads formed by
// consecutive upper/lower vertex pairs.
func stripIndices(nverts int) []uint32 {
	var indices []uint32
	for i := uint32(0); int(i)+3 < nverts; i += 2 {
		indices = append(indices, i, i+1, i+2, i+1, i+3, i+2)
	}
	return indices
}

func newMesh(v Variant, data []float32, indices []uint32) (*Mesh, error) {
	layout := v.Layout()
	if len(data) == 0 {
		return nil, fmt.Errorf("%s mesh: %w", v, ErrEmptyBuffers)
	} else if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%s mesh: %w: index count %d not a positive multiple of 3", v, ErrBadIndices, len(indices))
	}
	nverts := len(data) / layout.Stride
	for i, idx := range indices {
		if int(idx) >= nverts {
			return nil, fmt.Errorf("%s mesh: %w: index %d at %d out of range of %d vertices", v, ErrBadIndices, idx, i, nverts)
		}
	}
	for i, f := range data {
		if isbad(f) {
			return nil, fmt.Errorf("%s mesh: non-finite vertex component %d", v, i)
		}
	}
	return &Mesh{
		variant: v,
		layout:  layout,
		data:    data,
		indices: append([]uint32{}, indices...),
	}, nil
}

// Variant returns how the mesh's shape-coordinate is interpreted.
func (m *Mesh) Variant() Variant { return m.variant }

// Layout returns the interleaved vertex layout of [Mesh.Vertices].
func (m *Mesh) Layout() Layout { return m.variant.Layout() }

// Vertices returns a copy of the interleaved vertex data.
func (m *Mesh) Vertices() []float32 { return append([]float32{}, m.data...) }

// Indices returns a copy of the triangle list indices.
func (m *Mesh) Indices() []uint32 { return append([]uint32{}, m.indices...) }

// NumVertices returns the amount of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.data) / m.layout.Stride }

// NumIndices returns the amount of indices in the mesh, three per triangle.
func (m *Mesh) NumIndices() int { return len(m.indices) }

// NumTriangles returns the amount of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.indices) / 3 }

// Triangle returns the vertex indices of the i'th triangle.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.indices[3*i], m.indices[3*i+1], m.indices[3*i+2]}
}

// Position returns the untransformed position of vertex i.
func (m *Mesh) Position(i int) ms2.Vec {
	v := m.vertex(i)
	return ms2.Vec{X: v[0], Y: v[1]}
}

// Shape returns the shape attribute of vertex i padded with zeros to four components.
func (m *Mesh) Shape(i int) [4]float32 {
	var s [4]float32
	a := m.layout.Attribs[1]
	copy(s[:], m.vertex(i)[a.Offset:a.Offset+a.Components])
	return s
}

// Blob returns vertex i of a [VariantBlob] mesh.
func (m *Mesh) Blob(i int) BlobVertex {
	m.mustVariant(VariantBlob)
	v := m.vertex(i)
	return BlobVertex{Pos: ms2.Vec{X: v[0], Y: v[1]}, Normal: ms2.Vec{X: v[2], Y: v[3]}, Width: v[4]}
}

// Capsule returns vertex i of a [VariantCapsule] mesh.
func (m *Mesh) Capsule(i int) CapsuleVertex {
	m.mustVariant(VariantCapsule)
	v := m.vertex(i)
	return CapsuleVertex{Pos: ms2.Vec{X: v[0], Y: v[1]}, Normal: ms2.Vec{X: v[2], Y: v[3]}, Extrude: ms2.Vec{X: v[4], Y: v[5]}}
}

// Tex returns vertex i of a [VariantTexture] mesh.
func (m *Mesh) Tex(i int) TexVertex {
	m.mustVariant(VariantTexture)
	v := m.vertex(i)
	return TexVertex{Pos: ms2.Vec{X: v[0], Y: v[1]}, UV: ms2.Vec{X: v[2], Y: v[3]}, Width: v[4]}
}

// Bounds returns the bounding box of the mesh as drawn. Capsule meshes are
// extruded by outer width, other variants ignore the argument.
func (m *Mesh) Bounds(outer float32) ms2.Box {
	bb := ms2.Box{
		Min: ms2.Vec{X: math32.Inf(1), Y: math32.Inf(1)},
		Max: ms2.Vec{X: math32.Inf(-1), Y: math32.Inf(-1)},
	}
	for i := 0; i < m.NumVertices(); i++ {
		p := m.Position(i)
		if m.variant == VariantCapsule {
			p = m.Capsule(i).Extruded(outer)
		}
		bb.Min = ms2.MinElem(bb.Min, p)
		bb.Max = ms2.MaxElem(bb.Max, p)
	}
	return bb
}

func (m *Mesh) vertex(i int) []float32 {
	stride := m.layout.Stride
	return m.data[i*stride : (i+1)*stride]
}

func (m *Mesh) mustVariant(v Variant) {
	if m.variant != v {
		panic("mesh is " + m.variant.String() + ", not " + v.String())
	}
}
