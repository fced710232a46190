// Package imgtex prepares images for upload as GL textures.
//
// GL addresses texture rows bottom-up: the first row in memory is sampled at v=0.
// All images returned by this package are flipped vertically so that they show
// upright when mapped with v=1 at the top of a primitive.
package imgtex

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load decodes the image file with said filename into an upload-ready RGBA image.
// PNG, JPEG, GIF, BMP, TIFF and WebP files are supported.
func Load(filename string) (*image.RGBA, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, err := Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}
	return img, nil
}

// Decode decodes an image from r into an upload-ready RGBA image.
func Decode(r io.Reader) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("empty %s image", format)
	}
	img := ToRGBA(src)
	FlipVertical(img)
	return img, nil
}

// ToRGBA returns a copy of src as an RGBA image with origin at (0,0).
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	rowLen := 4 * b.Dx()
	tmp := make([]byte, rowLen)
	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		rt := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		rb := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, rt)
		copy(rt, rb)
		copy(rb, tmp)
	}
}
