package project

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type spriteRecord struct {
	Pixels     [sprite.Size]uint8
	PaletteRef int32
}

type encoder struct {
	w     io.WriteSeeker
	start int64
	h     Header

	// Records that could not be written
	problems error
}

func (e *encoder) position() (int32, error) {
	n, err := e.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	return int32(n - e.start), nil
}

func (e *encoder) missing(section string, i int) {
	e.problems = multierr.Append(e.problems, fmt.Errorf("%s %d: %w", section, i, errMissingRecord))
}

func (e *encoder) writeSprites(sprites []*sprite.Sprite) error {
	for i, sp := range sprites {
		if sp == nil {
			e.missing("sprite", i)
			continue
		}
		rec := spriteRecord{
			Pixels:     sp.Pixels,
			PaletteRef: int32(sp.PaletteRef),
		}
		if err := binary.Write(e.w, byteOrder, &rec); err != nil {
			return err
		}
		e.h.Sprites++
	}
	return nil
}

func (e *encoder) writeAnimations(f *File) error {
	for i, a := range f.Animations {
		if a == nil {
			e.missing("animation", i)
			continue
		}
		frames := make([]int32, len(a.Frames))
		for j, fr := range a.Frames {
			frames[j] = int32(fr)
		}
		if err := binary.Write(e.w, byteOrder, [2]int32{int32(len(frames)), int32(a.FrameWait)}); err != nil {
			return err
		}
		if err := binary.Write(e.w, byteOrder, frames); err != nil {
			return err
		}
		e.h.Animations++
	}
	return nil
}

func (e *encoder) writePalettes(palettes []*palette.UserPalette) error {
	for i, p := range palettes {
		if p == nil {
			e.missing("palette", i)
			continue
		}
		if _, err := e.w.Write(p[:]); err != nil {
			return err
		}
		e.h.Palettes++
	}
	return nil
}

func (e *encoder) encode(f *File) (err error) {
	if e.start, err = e.w.Seek(0, io.SeekCurrent); err != nil {
		return err
	}

	// Placeholder, rewritten once the offsets are known
	copy(e.h.Signature[:], Signature)
	if err = binary.Write(e.w, byteOrder, &e.h); err != nil {
		return err
	}

	if err = e.writeSprites(f.Sprites); err != nil {
		return err
	}

	if e.h.AnimationOffset, err = e.position(); err != nil {
		return err
	}
	if err = e.writeAnimations(f); err != nil {
		return err
	}

	if e.h.PaletteOffset, err = e.position(); err != nil {
		return err
	}
	if err = e.writePalettes(f.Palettes); err != nil {
		return err
	}

	end, err := e.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err = e.w.Seek(e.start, io.SeekStart); err != nil {
		return err
	}
	if err = binary.Write(e.w, byteOrder, &e.h); err != nil {
		return err
	}
	_, err = e.w.Seek(end, io.SeekStart)
	return err
}

// Encode writes f to w, starting at the current position of w. The header is
// written last, once the section offsets are known. Missing records are
// skipped and reported with a *PartialWriteError after the rest of the file
// has been written.
func Encode(w io.WriteSeeker, f *File) error {
	e := encoder{w: w}
	if err := e.encode(f); err != nil {
		return errors.Wrap(err, "project: write")
	}
	f.Header = e.h
	if e.problems != nil {
		return &PartialWriteError{Err: e.problems}
	}
	return nil
}
