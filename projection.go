package gledge

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

// OrthoMVP returns the model-view-projection matrix for a framebuffer of the given size.
// The vertical extent spans [-1,1] and the horizontal extent is widened by the aspect ratio
// so shapes are not stretched. A non-positive height, such as that of a minimized window, uses
// an aspect ratio of 1.
func OrthoMVP(fbWidth, fbHeight int) mgl32.Mat4 {
	ratio := float32(1)
	if fbHeight > 0 && fbWidth > 0 {
		ratio = float32(fbWidth) / float32(fbHeight)
	}
	model := mgl32.Ident4()
	proj := mgl32.Ortho(-ratio, ratio, -1, 1, 1, -1)
	return proj.Mul4(model)
}

// ToNDC transforms a model space position by mvp into normalized device coordinates.
func ToNDC(mvp mgl32.Mat4, p ms2.Vec) ms2.Vec {
	clip := mvp.Mul4x1(mgl32.Vec4{p.X, p.Y, 0, 1})
	w := clip.W()
	if w == 0 {
		w = 1
	}
	return ms2.Vec{X: clip.X() / w, Y: clip.Y() / w}
}
