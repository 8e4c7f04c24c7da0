package image

import (
	"image"
	"image/color"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
)

var (
	errWrongSize     = errors.New("image: image is wrong size")
	errTooManyColors = errors.New("image: too many colors after reduction")
)

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a < alphaThreshold
}

// Opaque colors in the image with the number of times each occurs
func countColors(m image.Image) map[color.Color]int {
	colors := make(map[color.Color]int)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := m.At(x, y); !transparent(c) {
				colors[c]++
			}
		}
	}
	return colors
}

func uniqueColors(m image.Image) color.Palette {
	h := countColors(m)
	p := make(color.Palette, 0, len(h))
	for c := range h {
		p = append(p, c)
	}
	return p
}

// reducePalette returns no more than opaqueColors colors representing the
// opaque part of m.
func reducePalette(m image.Image) color.Palette {
	p := uniqueColors(m)
	if len(p) <= opaqueColors {
		return p
	}
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, opaqueColors), m)
}

// Import converts a 16 by 16 image into sprite pixels and the user palette
// they should be drawn with.
func Import(m image.Image) (px [sprite.Size]uint8, up palette.UserPalette, err error) {
	b := m.Bounds()
	if b.Dx() != pixelX || b.Dy() != pixelY {
		return px, up, errWrongSize
	}

	reduced := reducePalette(m)
	mainPal := palette.Main()

	// main palette index -> local color
	slots := make(map[int]uint8)
	next := uint8(1)

	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			c := m.At(b.Min.X+x, b.Min.Y+y)
			if transparent(c) {
				continue
			}
			mi := mainPal.Index(reduced.Convert(c))
			s, ok := slots[mi]
			if !ok {
				if int(next) >= palette.UserSize {
					return px, up, errTooManyColors
				}
				s = next
				next++
				slots[mi] = s
				up[s] = uint8(mi)
			}
			px[y*pixelX+x] = s
		}
	}

	return px, up, nil
}

// Decode reads an image in any registered format from r and imports it.
func Decode(r io.Reader) ([sprite.Size]uint8, palette.UserPalette, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return [sprite.Size]uint8{}, palette.UserPalette{}, errors.Wrap(err, "image: decode")
	}
	return Import(m)
}
