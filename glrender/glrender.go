// Package glrender draws gledge meshes without a GPU. It is used for headless
// previews of the demos and to check the GL pipeline's output in tests.
package glrender

import (
	"errors"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/soypat/gledge"
)

// WritePNG encodes img to w in PNG format.
func WritePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return errors.New("nil image")
	}
	return png.Encode(w, img)
}

// RenderPNGFile renders m into a width x height image and saves it to a PNG file with said filename.
func RenderPNGFile(filename string, m *gledge.Mesh, cfg Config, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("image dimensions must be positive")
	}
	renderer, err := NewImageRenderer(cfg)
	if err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	err = renderer.Render(m, img)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = WritePNG(fp, img)
	if err != nil {
		return err
	}
	return fp.Sync()
}
