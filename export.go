package smallsprite

import (
	stdimage "image"
	"io"
	"time"

	"github.com/MrRaffo/smallsprite/image"
	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	errNoSprite    = errors.New("smallsprite: no such sprite")
	errNoAnimation = errors.New("smallsprite: no such animation")
	errStoreFull   = errors.New("smallsprite: store is full")
)

// DefaultFrameTime is the duration of one editor frame at 60 frames per
// second.
const DefaultFrameTime = time.Second / 60

// ExportSprite writes sprite i to w as a PNG drawn through its user palette.
func (p *Project) ExportSprite(w io.Writer, i, scale int) error {
	sp, ok := p.Sprites.Sprite(i)
	if !ok {
		return errNoSprite
	}
	return image.EncodePNG(w, &sp.Pixels, p.Palettes.Colors(sp.PaletteRef), scale)
}

// addPalette returns the index of a user palette equal to up, adding one if
// necessary.
func (p *Project) addPalette(up palette.UserPalette) (int, error) {
	if i := p.Palettes.Find(up); i != -1 {
		return i, nil
	}
	if !p.Palettes.Load(up) {
		return -1, errors.Wrap(errStoreFull, "palette")
	}
	return p.Palettes.Len() - 1, nil
}

// addSprite appends a sprite with pixels px drawn through a user palette
// equal to up and returns its index.
func (p *Project) addSprite(px [sprite.Size]uint8, up palette.UserPalette) (int, error) {
	if p.Sprites.Len() >= sprite.MaxSprites {
		return -1, errors.Wrap(errStoreFull, "sprite")
	}
	ref, err := p.addPalette(up)
	if err != nil {
		return -1, err
	}
	if !p.Sprites.Load(sprite.Sprite{Pixels: px, PaletteRef: ref}) {
		return -1, errors.Wrap(errStoreFull, "sprite")
	}
	return p.Sprites.Len() - 1, nil
}

// ImportSprite decodes an image from r and appends it as a new sprite. An
// existing identical user palette is reused, otherwise a new one is added.
func (p *Project) ImportSprite(r io.Reader) (int, error) {
	px, up, err := image.Decode(r)
	if err != nil {
		return -1, err
	}
	i, err := p.addSprite(px, up)
	if err != nil {
		return -1, err
	}
	p.logger.Debug("imported sprite", zap.Int("sprite", i), zap.Int("palette", p.Sprites.PaletteRef(i)))
	return i, nil
}

// ExportAnimation writes animation a to w as an animated GIF. Each frame is
// drawn through its sprite's user palette and held for the animation's frame
// wait, one wait unit lasting frame. Frames referencing a missing sprite are
// drawn blank.
func (p *Project) ExportAnimation(w io.Writer, a, scale int, frame time.Duration) error {
	an, ok := p.Animations.Animation(a)
	if !ok {
		return errNoAnimation
	}
	if frame <= 0 {
		frame = DefaultFrameTime
	}

	delay := int(time.Duration(an.FrameWait) * frame / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}

	frames := make([]*stdimage.Paletted, 0, len(an.Frames))
	delays := make([]int, 0, len(an.Frames))
	for _, s := range an.Frames {
		var (
			px  [sprite.Size]uint8
			ref = -1
		)
		if sp, ok := p.Sprites.Sprite(s); ok {
			px, ref = sp.Pixels, sp.PaletteRef
		}
		m, err := image.Render(&px, p.Palettes.Colors(ref), scale)
		if err != nil {
			return err
		}
		frames = append(frames, m)
		delays = append(delays, delay)
	}

	return image.EncodeGIF(w, frames, delays)
}
