//go:build !tinygo && cgo

package glview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/gledge"
	"github.com/soypat/gledge/glshader"
	"github.com/soypat/gledge/imgtex"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

func run(scene Scene, cfg Config) error {
	window, term, err := startGLFW(cfg)
	if err != nil {
		return err
	}
	defer term()
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	glfw.SwapInterval(cfg.SwapInterval)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	d, err := newDrawable(scene)
	defer d.delete()
	if err != nil {
		if cfg.StrictShaders {
			return err
		}
		cfg.logf("drawing disabled: %s", err)
	}

	ctx := cfg.Context
	bg := cfg.Background
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if d.ok() {
			d.draw(gledge.OrthoMVP(width, height))
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func startGLFW(cfg Config) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	term = func() {
		window.Destroy()
		glfw.Terminate()
	}
	return window, term, nil
}

// drawable holds the GL objects of a scene.
type drawable struct {
	variant  gledge.Variant
	widths   gledge.Widths
	prog     glgl.Program
	vao      uint32
	vbo      uint32
	ebo      uint32
	tex      uint32
	nindices int32
	ready    bool

	mvpLoc    int32
	widthsLoc int32
	imageLoc  int32
}

func newDrawable(scene Scene) (*drawable, error) {
	m := scene.Mesh
	d := &drawable{
		variant:  m.Variant(),
		widths:   scene.Widths,
		nindices: int32(m.NumIndices()),
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   scene.Shader.Vertex + "\x00",
		Fragment: scene.Shader.Fragment + "\x00",
	})
	if err != nil {
		return d, fmt.Errorf("compiling %s program: %w\n\nvertex shader:\n%s\nfragment shader:\n%s", d.variant, err, scene.Shader.Vertex, scene.Shader.Fragment)
	}
	d.prog = prog
	prog.Bind()
	d.mvpLoc, err = prog.UniformLocation(glshader.UniformMVP + "\x00")
	if err != nil {
		return d, err
	}
	switch d.variant {
	case gledge.VariantCapsule:
		d.widthsLoc, err = prog.UniformLocation(glshader.UniformWidths + "\x00")
	case gledge.VariantTexture:
		d.imageLoc, err = prog.UniformLocation(glshader.UniformImage + "\x00")
		if err == nil {
			d.tex, err = uploadTexture(scene)
		}
	}
	if err != nil {
		return d, err
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	vertices := m.Vertices()
	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	indices := m.Indices()
	gl.GenBuffers(1, &d.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	layout := m.Layout()
	for _, attr := range layout.Attribs {
		loc, err := prog.AttribLocation(attr.Name + "\x00")
		if err != nil {
			return d, fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, int32(attr.Components), gl.FLOAT, false, int32(layout.StrideBytes()), gl.PtrOffset(attr.OffsetBytes()))
	}
	err = glgl.Err()
	if err != nil {
		return d, fmt.Errorf("setting up %s buffers: %w", d.variant, err)
	}
	d.ready = true
	return d, nil
}

// textureParams are set on every uploaded texture. Only level 0 is uploaded
// so the filters must not sample mipmaps.
var textureParams = [...]struct {
	name  uint32
	value int32
}{
	{gl.TEXTURE_WRAP_S, gl.REPEAT},
	{gl.TEXTURE_WRAP_T, gl.REPEAT},
	{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
	{gl.TEXTURE_MAG_FILTER, gl.LINEAR},
}

func uploadTexture(scene Scene) (uint32, error) {
	img := scene.Texture
	b := img.Bounds()
	if img.Stride != 4*b.Dx() || b.Min.X != 0 || b.Min.Y != 0 {
		img = imgtex.ToRGBA(img)
		b = img.Bounds()
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	for _, p := range textureParams {
		gl.TexParameteri(gl.TEXTURE_2D, p.name, p.value)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	err := glgl.Err()
	if err != nil {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("uploading texture: %w", err)
	}
	return tex, nil
}

func (d *drawable) ok() bool {
	return d != nil && d.ready
}

func (d *drawable) draw(mvp mgl32.Mat4) {
	d.prog.Bind()
	gl.UniformMatrix4fv(d.mvpLoc, 1, false, &mvp[0])
	switch d.variant {
	case gledge.VariantCapsule:
		gl.Uniform2f(d.widthsLoc, d.widths.Outer, d.widths.Inner)
	case gledge.VariantTexture:
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, d.tex)
		gl.Uniform1i(d.imageLoc, 0)
	}
	gl.BindVertexArray(d.vao)
	gl.DrawElements(gl.TRIANGLES, d.nindices, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (d *drawable) delete() {
	if d == nil {
		return
	}
	if d.tex != 0 {
		gl.DeleteTextures(1, &d.tex)
	}
	if d.ebo != 0 {
		gl.DeleteBuffers(1, &d.ebo)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.prog.ID() != 0 {
		d.prog.Delete()
	}
}
