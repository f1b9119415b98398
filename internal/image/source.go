package image

import (
	"image"

	"github.com/jmylchreest/nearestcolour/internal/colour"
)

// PixelSource presents the pixels of an image in row-major order. Alpha is
// dropped, so transparent pixels classify by their premultiplied colour.
type PixelSource struct {
	width, height int
	pixels        []colour.RGB
}

// NewPixelSource copies the pixels of img.
func NewPixelSource(img image.Image) *PixelSource {
	b := img.Bounds()
	src := &PixelSource{
		width:  b.Dx(),
		height: b.Dy(),
		pixels: make([]colour.RGB, 0, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			src.pixels = append(src.pixels, colour.ToRGB(img.At(x, y)))
		}
	}
	return src
}

// Len returns width * height.
func (p *PixelSource) Len() int {
	return len(p.pixels)
}

// At returns pixel i, counting left to right then top to bottom.
func (p *PixelSource) At(i int) colour.RGB {
	return p.pixels[i]
}

// Size returns the image dimensions.
func (p *PixelSource) Size() (width, height int) {
	return p.width, p.height
}
