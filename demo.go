package gledge

import "github.com/soypat/geometry/ms2"

// RoundLineDemoWidths are the outer and inner widths the round line demo is drawn with.
var RoundLineDemoWidths = Widths{Outer: 0.2, Inner: 0.08}

// BlobDemo returns a quad whose shape-coordinates span [-1,1] at the corners. With width 0.6
// the fragment stage draws an antialiased ellipse inscribed in the quad.
func BlobDemo() *Mesh {
	m, err := NewBlobMesh([]BlobVertex{
		{Pos: ms2.Vec{X: -0.6, Y: 0.4}, Normal: ms2.Vec{X: 1, Y: 1}, Width: 0.6},
		{Pos: ms2.Vec{X: -0.6, Y: -0.4}, Normal: ms2.Vec{X: 1, Y: -1}, Width: 0.6},
		{Pos: ms2.Vec{X: 0.2, Y: 0.4}, Normal: ms2.Vec{X: -1, Y: 1}, Width: 0.6},
		{Pos: ms2.Vec{X: 0.2, Y: -0.4}, Normal: ms2.Vec{X: -1, Y: -1}, Width: 0.6},
	}, stripIndices(4))
	if err != nil {
		panic(err)
	}
	return m
}

// RoundLineDemo returns a horizontal round line from x=-0.8 to x=0.9.
// Draw it with [RoundLineDemoWidths].
func RoundLineDemo() *Mesh {
	m, err := NewRoundLine(ms2.Vec{X: -0.8}, ms2.Vec{X: 0.9})
	if err != nil {
		panic(err)
	}
	return m
}

// TextureStripDemo returns a strip of two quads mapping the full texture
// with the seam at u=0.666.
func TextureStripDemo() *Mesh {
	m, err := NewTextureMesh([]TexVertex{
		{Pos: ms2.Vec{X: -0.6, Y: 0.4}, UV: ms2.Vec{X: 0, Y: 1}, Width: 0.6},
		{Pos: ms2.Vec{X: -0.6, Y: -0.4}, UV: ms2.Vec{X: 0, Y: 0}, Width: 0.6},
		{Pos: ms2.Vec{X: 0.2, Y: 0.4}, UV: ms2.Vec{X: 0.666, Y: 1}, Width: 0.6},
		{Pos: ms2.Vec{X: 0.2, Y: -0.4}, UV: ms2.Vec{X: 0.666, Y: 0}, Width: 0.6},
		{Pos: ms2.Vec{X: 0.6, Y: 0.4}, UV: ms2.Vec{X: 1, Y: 1}, Width: 0.6},
		{Pos: ms2.Vec{X: 0.6, Y: -0.4}, UV: ms2.Vec{X: 1, Y: 0}, Width: 0.6},
	}, stripIndices(6))
	if err != nil {
		panic(err)
	}
	return m
}
