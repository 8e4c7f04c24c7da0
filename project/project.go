/*
Package project implements the smallsprite binary project file.

The file starts with a fixed header: the four byte signature "SPRT" followed by
the sprite, animation and palette counts and the byte offsets of the
animation and palette sections, each a 32-bit integer. Three sections follow in
order. Each sprite is 256 bytes of pixel data and a 32-bit palette reference.
Each animation is a 32-bit frame count, a 32-bit frame wait and then the frame
count number of 32-bit sprite indices. Each palette is 16 bytes of main
palette indices.

Integers are written in the byte order of the host; files are not intended to
move between machines of different endianness.
*/
package project

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/MrRaffo/smallsprite/anim"
	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
)

// Signature identifies a project file
const Signature = "SPRT"

const (
	headerSize          = 4 + 5*4
	spriteRecordSize    = sprite.Size + 4
	animationHeaderSize = 2 * 4
	paletteRecordSize   = palette.UserSize
)

var byteOrder = binary.NativeEndian

var (
	// ErrSignature is returned when a file does not start with Signature
	ErrSignature = errors.New("project: invalid signature")

	// ErrCorrupt is returned when a count in the file is out of range
	ErrCorrupt = errors.New("project: corrupt file")

	// ErrPartialWrite matches any *PartialWriteError
	ErrPartialWrite = errors.New("project: partial write")

	errMissingRecord = errors.New("missing record")
)

// Header is the fixed file header.
type Header struct {
	Signature       [4]byte
	Sprites         int32
	Animations      int32
	Palettes        int32
	AnimationOffset int32
	PaletteOffset   int32
}

// File is the decoded content of a project file. Nil entries in any of the
// slices are treated as missing records when writing.
type File struct {
	Header     Header
	Sprites    []*sprite.Sprite
	Animations []*anim.Animation
	Palettes   []*palette.UserPalette
}

// PartialWriteError reports the records that had to be skipped while writing
// a file. Everything else was written and the header agrees with what is on
// disk.
type PartialWriteError struct {
	Err error
}

func (e *PartialWriteError) Error() string {
	return ErrPartialWrite.Error() + ": " + e.Err.Error()
}

// Unwrap returns the combined record errors
func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPartialWrite) succeed
func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

// Consistent reports whether the offsets in the header agree with the
// sequential layout of the sections.
func (f *File) Consistent() bool {
	anims := int32(headerSize) + f.Header.Sprites*spriteRecordSize
	if f.Header.AnimationOffset != anims {
		return false
	}
	pals := anims
	for _, a := range f.Animations {
		if a != nil {
			pals += int32(animationHeaderSize + 4*len(a.Frames))
		}
	}
	return f.Header.PaletteOffset == pals
}

// MarshalBinary encodes the file into binary form and returns the result. A
// partial write still returns the encoded bytes.
func (f *File) MarshalBinary() ([]byte, error) {
	b := new(buffer)
	err := Encode(b, f)
	if err != nil && !errors.Is(err, ErrPartialWrite) {
		return nil, err
	}
	return b.Bytes(), err
}

// UnmarshalBinary decodes the file from binary form
func (f *File) UnmarshalBinary(b []byte) error {
	d, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*f = *d
	return nil
}

func readFull(r io.Reader, v interface{}) error {
	err := binary.Read(r, byteOrder, v)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
