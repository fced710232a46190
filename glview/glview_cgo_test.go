//go:build !tinygo && cgo

package glview

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestTextureParamsSingleLevel(t *testing.T) {
	// Filters must match the bilinear sampling of glrender and never read mipmap levels.
	want := map[uint32]int32{
		gl.TEXTURE_WRAP_S:     gl.REPEAT,
		gl.TEXTURE_WRAP_T:     gl.REPEAT,
		gl.TEXTURE_MIN_FILTER: gl.LINEAR,
		gl.TEXTURE_MAG_FILTER: gl.LINEAR,
	}
	if len(textureParams) != len(want) {
		t.Fatalf("want %d texture parameters, got %d", len(want), len(textureParams))
	}
	for _, p := range textureParams {
		v, ok := want[p.name]
		if !ok {
			t.Errorf("unexpected texture parameter %#x", p.name)
		} else if v != p.value {
			t.Errorf("texture parameter %#x: want %#x, got %#x", p.name, v, p.value)
		}
		switch p.value {
		case gl.NEAREST_MIPMAP_NEAREST, gl.LINEAR_MIPMAP_NEAREST, gl.NEAREST_MIPMAP_LINEAR, gl.LINEAR_MIPMAP_LINEAR:
			t.Errorf("texture parameter %#x samples mipmaps which are never uploaded", p.name)
		}
	}
}
