package image

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
)

var (
	errBadScale  = errors.New("image: scale must be at least 1")
	errNoFrames  = errors.New("image: animation has no frames")
	errBadLength = errors.New("image: frame and delay counts differ")
)

// Render draws the pixels of a sprite through pal, scaled up by an integer
// factor.
func Render(px *[sprite.Size]uint8, pal color.Palette, scale int) (*image.Paletted, error) {
	if scale < 1 {
		return nil, errBadScale
	}
	if len(pal) == 0 {
		pal = color.Palette{color.Transparent}
	}

	m := image.NewPaletted(image.Rect(0, 0, pixelX*scale, pixelY*scale), pal)
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			i := px[y*pixelX+x]
			// Anything the palette can't resolve shows as transparency
			if int(i) >= len(pal) {
				i = 0
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					m.SetColorIndex(x*scale+dx, y*scale+dy, i)
				}
			}
		}
	}
	return m, nil
}

// EncodePNG writes a sprite rendered through pal to w in PNG format.
func EncodePNG(w io.Writer, px *[sprite.Size]uint8, pal color.Palette, scale int) error {
	m, err := Render(px, pal, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}

// EncodeGIF writes frames as a looping animated GIF. Each frame keeps its own
// palette and is shown for the matching entry of delays, in 100ths of a
// second.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delays []int) error {
	if len(frames) == 0 {
		return errNoFrames
	}
	if len(frames) != len(delays) {
		return errBadLength
	}

	g := &gif.GIF{
		Image:    frames,
		Delay:    delays,
		Disposal: make([]byte, len(frames)),
	}
	for i := range g.Disposal {
		g.Disposal[i] = gif.DisposalBackground
	}
	return gif.EncodeAll(w, g)
}
