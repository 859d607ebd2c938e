package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Image accumulates spectral contributions per pixel
type Image struct {
	width  int
	height int
	pixels []core.Spectrum
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid image size %dx%d", width, height))
	}
	return &Image{
		width:  width,
		height: height,
		pixels: make([]core.Spectrum, width*height),
	}
}

// Width returns the image width in pixels
func (img *Image) Width() int {
	return img.width
}

// Height returns the image height in pixels
func (img *Image) Height() int {
	return img.height
}

// Contribute adds a spectrum to a pixel. Non-finite spectra are dropped.
func (img *Image) Contribute(spectrum core.Spectrum, pixel core.Pixel) {
	if !spectrum.IsValid() {
		return
	}
	i := img.index(pixel.X, pixel.Y)
	img.pixels[i] = img.pixels[i].Add(spectrum)
}

// Scale multiplies every pixel by factor
func (img *Image) Scale(factor float64) {
	for i := range img.pixels {
		img.pixels[i] = img.pixels[i].Scale(factor)
	}
}

// Merge adds another image of the same size into this one
func (img *Image) Merge(other *Image) {
	if other.width != img.width || other.height != img.height {
		panic(fmt.Sprintf("cannot merge %dx%d image into %dx%d", other.width, other.height, img.width, img.height))
	}
	for i := range img.pixels {
		img.pixels[i] = img.pixels[i].Add(other.pixels[i])
	}
}

// At returns the accumulated value of a pixel; row 0 is the top of the image
func (img *Image) At(x, y int) core.Spectrum {
	return img.pixels[img.index(x, y)]
}

// AverageLuminance returns the mean luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	total := 0.0
	for _, p := range img.pixels {
		total += p.Luminance()
	}
	return total / float64(len(img.pixels))
}

func (img *Image) index(x, y int) int {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic(fmt.Sprintf("pixel (%d, %d) outside %dx%d image", x, y, img.width, img.height))
	}
	return y*img.width + x
}

// RGBA tone maps the image to 8 bits with gamma 2.2 and clamping
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			out.SetRGBA(x, y, toColor(img.At(x, y)))
		}
	}
	return out
}

// toColor converts a spectrum to RGBA with gamma correction and clamping
func toColor(s core.Spectrum) color.RGBA {
	s = s.GammaCorrect(2.2).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255*s.R + 0.5),
		G: uint8(255*s.G + 0.5),
		B: uint8(255*s.B + 0.5),
		A: 255,
	}
}
