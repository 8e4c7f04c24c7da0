package project

import (
	"io"

	"github.com/MrRaffo/smallsprite/anim"
	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
)

type decoder struct {
	r io.Reader
	f File
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, &d.f.Header.Signature); err != nil {
		return err
	}
	if string(d.f.Header.Signature[:]) != Signature {
		return ErrSignature
	}

	var tmp [5]int32
	if err := readFull(d.r, &tmp); err != nil {
		return err
	}
	d.f.Header.Sprites = tmp[0]
	d.f.Header.Animations = tmp[1]
	d.f.Header.Palettes = tmp[2]
	d.f.Header.AnimationOffset = tmp[3]
	d.f.Header.PaletteOffset = tmp[4]

	switch {
	case tmp[0] < 0 || tmp[0] > sprite.MaxSprites:
		return errors.Wrapf(ErrCorrupt, "%d sprites", tmp[0])
	case tmp[1] < 0 || tmp[1] > anim.MaxAnimations:
		return errors.Wrapf(ErrCorrupt, "%d animations", tmp[1])
	case tmp[2] < 0 || tmp[2] > palette.MaxUserPalettes:
		return errors.Wrapf(ErrCorrupt, "%d palettes", tmp[2])
	}
	return nil
}

func (d *decoder) readSprites() error {
	d.f.Sprites = make([]*sprite.Sprite, d.f.Header.Sprites)
	for i := range d.f.Sprites {
		var rec spriteRecord
		if err := readFull(d.r, &rec); err != nil {
			return err
		}
		d.f.Sprites[i] = &sprite.Sprite{
			Pixels:     rec.Pixels,
			PaletteRef: int(rec.PaletteRef),
		}
	}
	return nil
}

func (d *decoder) readAnimations() error {
	d.f.Animations = make([]*anim.Animation, d.f.Header.Animations)
	for i := range d.f.Animations {
		var tmp [2]int32
		if err := readFull(d.r, &tmp); err != nil {
			return err
		}
		if tmp[0] < 1 || tmp[0] > anim.MaxFrames {
			return errors.Wrapf(ErrCorrupt, "animation %d has %d frames", i, tmp[0])
		}
		frames := make([]int32, tmp[0])
		if err := readFull(d.r, frames); err != nil {
			return err
		}
		a := &anim.Animation{
			Frames:    make([]int, len(frames)),
			FrameWait: int(tmp[1]),
		}
		for j, f := range frames {
			a.Frames[j] = int(f)
		}
		d.f.Animations[i] = a
	}
	return nil
}

func (d *decoder) readPalettes() error {
	d.f.Palettes = make([]*palette.UserPalette, d.f.Header.Palettes)
	for i := range d.f.Palettes {
		p := new(palette.UserPalette)
		if err := readFull(d.r, p); err != nil {
			return err
		}
		d.f.Palettes[i] = p
	}
	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	// The offsets in the header are not used for seeking; the sections are
	// read back to back
	if err := d.readSprites(); err != nil {
		return err
	}
	if err := d.readAnimations(); err != nil {
		return err
	}
	return d.readPalettes()
}

// Decode reads a complete project file from r. A file that does not start
// with Signature returns ErrSignature without reading any further.
func Decode(r io.Reader) (*File, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return &d.f, nil
}
