package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gledge"
	"github.com/soypat/gledge/glshader"
	"github.com/soypat/glgl/math/ms1"
)

// Config configures a [ImageRenderer].
type Config struct {
	Ramp gledge.Ramp
	// Color is the fill color of antialiased variants. The zero value selects the variant's
	// default color from [glshader].
	Color color.NRGBA
	// Background the image is cleared to before drawing. Nil selects opaque black.
	Background color.Color
	// Widths is the round line width pair, required by capsule meshes.
	Widths gledge.Widths
	// Texture sampled by texture meshes. Rows are in upload order: v=0 samples the first row.
	Texture image.Image
}

// ImageRenderer rasterizes meshes on the CPU the same way the GL pipeline draws them:
// orthographic projection from the image aspect ratio, varyings interpolated across each
// triangle, coverage from the analytic ramp and alpha-over blending onto the background.
// Each pixel is shaded once by the first triangle containing its center.
type ImageRenderer struct {
	cfg    Config
	shaded []bool
}

// NewImageRenderer instances a new [ImageRenderer].
func NewImageRenderer(cfg Config) (*ImageRenderer, error) {
	if cfg.Ramp.Blur < 0 || math32.IsNaN(cfg.Ramp.Blur) || math32.IsInf(cfg.Ramp.Blur, 0) {
		return nil, fmt.Errorf("invalid blur %g", cfg.Ramp.Blur)
	}
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	return &ImageRenderer{cfg: cfg}, nil
}

// vert is a vertex after the vertex stage.
type vert struct {
	screen ms2.Vec
	normal ms2.Vec
	width  float32
}

// Render clears img to the background color and draws m onto it.
func (ir *ImageRenderer) Render(m *gledge.Mesh, img *image.RGBA) error {
	if m == nil {
		return errors.New("nil mesh")
	}
	bounds := img.Bounds()
	dx, dy := bounds.Dx(), bounds.Dy()
	if dx == 0 || dy == 0 {
		return errors.New("empty image")
	}
	variant := m.Variant()
	fill := ir.fillColor(variant)
	switch variant {
	case gledge.VariantCapsule:
		if err := ir.cfg.Widths.Validate(); err != nil {
			return fmt.Errorf("capsule widths: %w", err)
		}
	case gledge.VariantTexture:
		if ir.cfg.Texture == nil || ir.cfg.Texture.Bounds().Empty() {
			return errors.New("texture mesh requires a texture")
		}
	}

	bg := color.RGBAModel.Convert(ir.cfg.Background).(color.RGBA)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	if cap(ir.shaded) < dx*dy {
		ir.shaded = make([]bool, dx*dy)
	}
	ir.shaded = ir.shaded[:dx*dy]
	clear(ir.shaded)

	mvp := gledge.OrthoMVP(dx, dy)
	verts := make([]vert, m.NumVertices())
	for i := range verts {
		verts[i] = ir.vertexStage(m, i, mvp, float32(dx), float32(dy))
	}
	for i := 0; i < m.NumTriangles(); i++ {
		tri := m.Triangle(i)
		ir.rasterize(img, variant, fill, verts[tri[0]], verts[tri[1]], verts[tri[2]])
	}
	return nil
}

func (ir *ImageRenderer) vertexStage(m *gledge.Mesh, i int, mvp mgl32.Mat4, dx, dy float32) vert {
	var v vert
	pos := m.Position(i)
	switch m.Variant() {
	case gledge.VariantBlob:
		bv := m.Blob(i)
		v.normal, v.width = bv.Normal, bv.Width
	case gledge.VariantCapsule:
		cv := m.Capsule(i)
		pos = cv.Extruded(ir.cfg.Widths.Outer)
		v.normal = cv.Normal
	case gledge.VariantTexture:
		tv := m.Tex(i)
		v.normal, v.width = tv.UV, tv.Width
	}
	ndc := gledge.ToNDC(mvp, pos)
	// Image rows grow downward, NDC Y grows upward.
	v.screen = ms2.Vec{
		X: (ndc.X + 1) / 2 * dx,
		Y: (1 - ndc.Y) / 2 * dy,
	}
	return v
}

func (ir *ImageRenderer) rasterize(img *image.RGBA, variant gledge.Variant, fill color.NRGBA, a, b, c vert) {
	area := edge(a.screen, b.screen, c.screen)
	if area == 0 || math32.IsNaN(area) || math32.IsInf(area, 0) {
		return // Degenerate or unrepresentable triangle.
	}
	bounds := img.Bounds()
	dx := bounds.Dx()
	xmax, ymax := float32(dx-1), float32(bounds.Dy()-1)
	minp := ms2.MinElem(a.screen, ms2.MinElem(b.screen, c.screen))
	maxp := ms2.MaxElem(a.screen, ms2.MaxElem(b.screen, c.screen))
	// Clamp before converting, float to int conversion is undefined out of int range.
	x0 := int(ms1.Clamp(math32.Floor(minp.X), 0, xmax))
	y0 := int(ms1.Clamp(math32.Floor(minp.Y), 0, ymax))
	x1 := int(ms1.Clamp(math32.Ceil(maxp.X), 0, xmax))
	y1 := int(ms1.Clamp(math32.Ceil(maxp.Y), 0, ymax))
	const eps = -1e-5
	inv := 1 / area
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			idx := py*dx + px
			if ir.shaded[idx] {
				continue
			}
			p := ms2.Vec{X: float32(px) + 0.5, Y: float32(py) + 0.5}
			la := edge(b.screen, c.screen, p) * inv
			lb := edge(c.screen, a.screen, p) * inv
			lc := edge(a.screen, b.screen, p) * inv
			if la < eps || lb < eps || lc < eps {
				continue
			}
			ir.shaded[idx] = true
			normal := ms2.Add(ms2.Scale(la, a.normal), ms2.Add(ms2.Scale(lb, b.normal), ms2.Scale(lc, c.normal)))
			width := la*a.width + lb*b.width + lc*c.width
			src := ir.fragmentStage(variant, fill, normal, width)
			x, y := px+bounds.Min.X, py+bounds.Min.Y
			img.SetRGBA(x, y, blendOver(src, img.RGBAAt(x, y)))
		}
	}
}

func (ir *ImageRenderer) fragmentStage(variant gledge.Variant, fill color.NRGBA, normal ms2.Vec, width float32) [4]float32 {
	switch variant {
	case gledge.VariantBlob:
		return withAlpha(fill, ir.cfg.Ramp.Blob(normal, width))
	case gledge.VariantCapsule:
		return withAlpha(fill, ir.cfg.Ramp.Capsule(normal, ir.cfg.Widths))
	case gledge.VariantTexture:
		return sampleBilinear(ir.cfg.Texture, normal)
	}
	return [4]float32{}
}

func (ir *ImageRenderer) fillColor(v gledge.Variant) color.NRGBA {
	if ir.cfg.Color != (color.NRGBA{}) {
		return ir.cfg.Color
	}
	c := glshader.BlobColor
	if v == gledge.VariantCapsule {
		c = glshader.CapsuleColor
	}
	return color.NRGBA{R: unorm8(c[0]), G: unorm8(c[1]), B: unorm8(c[2]), A: unorm8(c[3])}
}

// edge returns twice the signed area of triangle a, b, p.
func edge(a, b, p ms2.Vec) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func withAlpha(c color.NRGBA, alpha float32) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255 * alpha}
}

// blendOver blends non-premultiplied src over dst with SRC_ALPHA, ONE_MINUS_SRC_ALPHA
// applied to all four channels.
func blendOver(src [4]float32, dst color.RGBA) color.RGBA {
	a := ms1.Clamp(src[3], 0, 1)
	blend := func(s float32, d uint8) uint8 {
		return unorm8(s*a + float32(d)/255*(1-a))
	}
	return color.RGBA{
		R: blend(src[0], dst.R),
		G: blend(src[1], dst.G),
		B: blend(src[2], dst.B),
		A: blend(src[3], dst.A),
	}
}

// sampleBilinear samples img at uv with repeat wrapping and linear filtering.
func sampleBilinear(img image.Image, uv ms2.Vec) [4]float32 {
	b := img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	// Texel centers are at half integers.
	x := uv.X*w - 0.5
	y := uv.Y*h - 0.5
	fx, fy := math32.Floor(x), math32.Floor(y)
	tx, ty := x-fx, y-fy
	ix, iy := int(fx), int(fy)
	c00 := texel(img, ix, iy)
	c10 := texel(img, ix+1, iy)
	c01 := texel(img, ix, iy+1)
	c11 := texel(img, ix+1, iy+1)
	var out [4]float32
	for i := range out {
		top := ms1.Interp(c00[i], c10[i], tx)
		bottom := ms1.Interp(c01[i], c11[i], tx)
		out[i] = ms1.Interp(top, bottom, ty)
	}
	return out
}

func texel(img image.Image, x, y int) [4]float32 {
	b := img.Bounds()
	x = wrap(x, b.Dx()) + b.Min.X
	y = wrap(y, b.Dy()) + b.Min.Y
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func unorm8(f float32) uint8 {
	return uint8(ms1.Clamp(f, 0, 1)*255 + 0.5)
}
