package imgtex

import (
	"errors"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var errEmptyText = errors.New("empty label text")

// LabelConfig configures text texture generation. The zero value is ready to use.
type LabelConfig struct {
	// Size is the font size in points. Zero selects 48.
	Size float64
	// DPI is the resolution the font is rasterized at. Zero selects 72.
	DPI float64
	// Padding in pixels around the text.
	Padding int
	// Foreground is the text color. Nil selects black.
	Foreground color.Color
	// Background is the fill color. Nil selects white.
	Background color.Color
	// TTF is the font file used. Nil selects Go Regular.
	TTF []byte
}

// Label rasterizes a single line of text into an upload-ready RGBA image.
func Label(text string, cfg LabelConfig) (*image.RGBA, error) {
	if text == "" {
		return nil, errEmptyText
	} else if cfg.Size < 0 || cfg.DPI < 0 || cfg.Padding < 0 {
		return nil, errors.New("negative label size, DPI or padding")
	}
	if cfg.Size == 0 {
		cfg.Size = 48
	}
	if cfg.DPI == 0 {
		cfg.DPI = 72
	}
	if cfg.Foreground == nil {
		cfg.Foreground = color.Black
	}
	if cfg.Background == nil {
		cfg.Background = color.White
	}
	ttf := cfg.TTF
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: cfg.Size, DPI: cfg.DPI})
	defer face.Close()
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil() + 2*cfg.Padding
	height := metrics.Ascent.Ceil() + metrics.Descent.Ceil() + 2*cfg.Padding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)
	c := freetype.NewContext()
	c.SetDPI(cfg.DPI)
	c.SetFont(f)
	c.SetFontSize(cfg.Size)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(cfg.Foreground))
	c.SetHinting(font.HintingFull)
	_, err = c.DrawString(text, freetype.Pt(cfg.Padding, cfg.Padding+metrics.Ascent.Ceil()))
	if err != nil {
		return nil, err
	}
	FlipVertical(img)
	return img, nil
}
