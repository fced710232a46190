// Package glview opens a window and draws a single [gledge.Mesh] every frame
// until the window is closed, Escape is pressed or the configured context is done.
//
// GL calls must be made from the main OS thread; programs using glview
// should call runtime.LockOSThread from an init function.
package glview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/soypat/gledge"
	"github.com/soypat/gledge/glshader"
)

// Config configures the window and draw loop. The zero value is ready to use.
type Config struct {
	// Width and height of the window in screen coordinates. Zero selects 640x480.
	Width, Height int
	// Title of the window. Empty selects "gledge".
	Title string
	// SwapInterval is the number of screen updates to wait for before swapping buffers.
	// Zero selects 1 (vertical sync), negative values disable vertical sync.
	SwapInterval int
	// Background is the RGBA clear color.
	Background [4]float32
	// Context stops the draw loop when done. Run then returns the context's error.
	Context context.Context
	// Silent disables logging of diagnostics.
	Silent bool
	// StrictShaders makes shader compile and link failures end Run with an error.
	// Otherwise the failure is logged and the window stays open without drawing.
	StrictShaders bool
}

// Scene is what is drawn every frame.
type Scene struct {
	Mesh   *gledge.Mesh
	Shader glshader.Source
	// Widths of round lines, uploaded as the widths uniform of capsule meshes.
	Widths gledge.Widths
	// Texture bound to texture unit 0 for texture meshes.
	Texture *image.RGBA
}

// NewScene generates the shaders that draw m and returns the resulting scene.
func NewScene(m *gledge.Mesh, cfg glshader.Config) (Scene, error) {
	if m == nil {
		return Scene{}, errors.New("nil mesh")
	}
	src, err := glshader.For(m.Variant(), cfg)
	if err != nil {
		return Scene{}, err
	}
	return Scene{Mesh: m, Shader: src}, nil
}

// Validate checks the scene has all the resources its mesh variant needs.
func (s Scene) Validate() error {
	if s.Mesh == nil {
		return errors.New("scene has no mesh")
	} else if s.Shader.Vertex == "" || s.Shader.Fragment == "" {
		return errors.New("scene missing shader source")
	}
	switch s.Mesh.Variant() {
	case gledge.VariantCapsule:
		if err := s.Widths.Validate(); err != nil {
			return fmt.Errorf("scene widths: %w", err)
		}
	case gledge.VariantTexture:
		if s.Texture == nil || s.Texture.Bounds().Empty() {
			return errors.New("texture scene has no texture")
		}
	}
	return nil
}

// Run opens a window and draws scene until the window is closed, Escape is pressed
// or cfg.Context is done. All GL resources are released before returning.
func Run(scene Scene, cfg Config) error {
	if err := scene.Validate(); err != nil {
		return err
	}
	cfg = cfg.withDefaults()
	return run(scene, cfg)
}

func (cfg Config) withDefaults() Config {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	if cfg.Title == "" {
		cfg.Title = "gledge"
	}
	if cfg.SwapInterval == 0 {
		cfg.SwapInterval = 1
	} else if cfg.SwapInterval < 0 {
		cfg.SwapInterval = 0
	}
	return cfg
}

func (cfg Config) logf(format string, args ...any) {
	if !cfg.Silent {
		log.Printf(format, args...)
	}
}
