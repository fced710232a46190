package glview

import (
	"image"
	"testing"

	"github.com/soypat/gledge"
	"github.com/soypat/gledge/glshader"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("want 640x480 default window, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Title != "gledge" || cfg.SwapInterval != 1 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	cfg = Config{Width: 100, Height: 50, SwapInterval: -1, Title: "t"}.withDefaults()
	if cfg.Width != 100 || cfg.Height != 50 || cfg.SwapInterval != 0 || cfg.Title != "t" {
		t.Errorf("defaults overrode config: %+v", cfg)
	}
}

func TestNewScene(t *testing.T) {
	scene, err := NewScene(gledge.BlobDemo(), glshader.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := scene.Validate(); err != nil {
		t.Errorf("blob scene invalid: %s", err)
	}
	_, err = NewScene(nil, glshader.Config{})
	if err == nil {
		t.Error("want error for nil mesh")
	}
}

func TestSceneValidate(t *testing.T) {
	line, err := NewScene(gledge.RoundLineDemo(), glshader.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := line.Validate(); err == nil {
		t.Error("want error for round line scene without widths")
	}
	line.Widths = gledge.RoundLineDemoWidths
	if err := line.Validate(); err != nil {
		t.Errorf("round line scene invalid: %s", err)
	}

	tex, err := NewScene(gledge.TextureStripDemo(), glshader.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tex.Validate(); err == nil {
		t.Error("want error for texture scene without texture")
	}
	tex.Texture = image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := tex.Validate(); err != nil {
		t.Errorf("texture scene invalid: %s", err)
	}

	if err := (Scene{Mesh: gledge.BlobDemo()}).Validate(); err == nil {
		t.Error("want error for scene without shaders")
	}
	// Run validates before touching the windowing system.
	if err := Run(Scene{}, Config{}); err == nil {
		t.Error("want error running empty scene")
	}
}
