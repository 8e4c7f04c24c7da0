/*
Package sprite implements the store of 16 by 16 indexed-color sprites.

Each pixel holds a local color index that is resolved through the user palette
named by the sprite's palette reference. The reference is weak; the palette
store owns the palettes and no existence check is made here.
*/
package sprite

import (
	"errors"

	"go.uber.org/zap"
)

const (
	// Width and Height are the sprite dimensions in pixels
	Width  = 16
	Height = 16

	// Size is the number of pixels in a sprite
	Size = Width * Height

	// MaxSprites is the capacity of the store
	MaxSprites = 1024

	// MaxPaletteRef bounds the palette reference a sprite may carry
	MaxPaletteRef = 1024
)

var (
	errInvalidSprite  = errors.New("sprite: invalid sprite index")
	errInvalidPixel   = errors.New("sprite: invalid pixel index")
	errInvalidPalette = errors.New("sprite: invalid palette reference")
	errLimit          = errors.New("sprite: sprite limit reached")
	errLastSprite     = errors.New("sprite: cannot remove the last sprite")
	errEmptyClipboard = errors.New("sprite: clipboard is empty")
)

// Sprite is a single sprite definition.
type Sprite struct {
	Pixels     [Size]uint8
	PaletteRef int
}

// Store owns the sprites and the shared copy/paste clipboard.
type Store struct {
	sprites   []*Sprite
	clipboard *Sprite
	logger    *zap.Logger
}

// New returns an empty store. A nil logger discards everything.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger: logger,
	}
}

// Len returns the number of sprites
func (s *Store) Len() int {
	return len(s.sprites)
}

func (s *Store) get(i int) (*Sprite, error) {
	if i < 0 || i >= len(s.sprites) {
		return nil, errInvalidSprite
	}
	return s.sprites[i], nil
}

func (s *Store) invalid(op string, err error, fields ...zap.Field) {
	s.logger.Debug(op, append(fields, zap.Error(err))...)
}

// AddSprite appends a blank sprite using palette 0 and returns its index, or
// -1 if the store is full.
func (s *Store) AddSprite() int {
	if len(s.sprites) >= MaxSprites {
		s.logger.Warn("add sprite", zap.Int("limit", MaxSprites), zap.Error(errLimit))
		return -1
	}
	s.sprites = append(s.sprites, new(Sprite))
	return len(s.sprites) - 1
}

// Load appends a complete sprite record as read from a project file. A
// palette reference outside [0, MaxPaletteRef) is clamped into it.
func (s *Store) Load(sp Sprite) bool {
	if len(s.sprites) >= MaxSprites {
		s.logger.Warn("load sprite", zap.Int("limit", MaxSprites), zap.Error(errLimit))
		return false
	}
	dup := sp
	switch {
	case dup.PaletteRef < 0:
		s.invalid("load sprite", errInvalidPalette, zap.Int("palette", dup.PaletteRef))
		dup.PaletteRef = 0
	case dup.PaletteRef >= MaxPaletteRef:
		s.invalid("load sprite", errInvalidPalette, zap.Int("palette", dup.PaletteRef))
		dup.PaletteRef = MaxPaletteRef - 1
	}
	s.sprites = append(s.sprites, &dup)
	return true
}

// RemoveSprite deletes sprite i, moving every later sprite down one index.
// The last remaining sprite is never removed.
func (s *Store) RemoveSprite(i int) bool {
	if _, err := s.get(i); err != nil {
		s.invalid("remove sprite", err, zap.Int("sprite", i))
		return false
	}
	if len(s.sprites) <= 1 {
		s.invalid("remove sprite", errLastSprite, zap.Int("sprite", i))
		return false
	}
	copy(s.sprites[i:], s.sprites[i+1:])
	s.sprites[len(s.sprites)-1] = nil
	s.sprites = s.sprites[:len(s.sprites)-1]
	return true
}

// Sprite returns a copy of sprite i
func (s *Store) Sprite(i int) (*Sprite, bool) {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("get sprite", err, zap.Int("sprite", i))
		return nil, false
	}
	dup := *sp
	return &dup, true
}

// SetPixel stores v, modulo 256, at pixel p of sprite i.
func (s *Store) SetPixel(i, p, v int) bool {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("set pixel", err, zap.Int("sprite", i))
		return false
	}
	if p < 0 || p >= Size {
		s.invalid("set pixel", errInvalidPixel, zap.Int("sprite", i), zap.Int("pixel", p))
		return false
	}
	sp.Pixels[p] = uint8(v)
	return true
}

// GetPixel returns the color index at pixel p of sprite i, 0 (transparency) if
// either index is invalid.
func (s *Store) GetPixel(i, p int) uint8 {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("get pixel", err, zap.Int("sprite", i))
		return 0
	}
	if p < 0 || p >= Size {
		s.invalid("get pixel", errInvalidPixel, zap.Int("sprite", i), zap.Int("pixel", p))
		return 0
	}
	return sp.Pixels[p]
}

// PaletteRef returns the user palette used by sprite i, -1 if there is no such
// sprite.
func (s *Store) PaletteRef(i int) int {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("get palette", err, zap.Int("sprite", i))
		return -1
	}
	return sp.PaletteRef
}

// SetPaletteRef points sprite i at user palette ref.
func (s *Store) SetPaletteRef(i, ref int) bool {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("set palette", err, zap.Int("sprite", i))
		return false
	}
	if ref < 0 || ref >= MaxPaletteRef {
		s.invalid("set palette", errInvalidPalette, zap.Int("sprite", i), zap.Int("palette", ref))
		return false
	}
	sp.PaletteRef = ref
	return true
}

// Copy places a copy of sprite i on the clipboard, replacing anything there.
func (s *Store) Copy(i int) bool {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("copy", err, zap.Int("sprite", i))
		return false
	}
	dup := *sp
	s.clipboard = &dup
	return true
}

// Paste overwrites sprite i with the clipboard contents, including the
// palette reference. The clipboard is left intact.
func (s *Store) Paste(i int) bool {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("paste", err, zap.Int("sprite", i))
		return false
	}
	if s.clipboard == nil {
		s.invalid("paste", errEmptyClipboard, zap.Int("sprite", i))
		return false
	}
	*sp = *s.clipboard
	return true
}

// HasClipboard reports whether anything has been copied
func (s *Store) HasClipboard() bool {
	return s.clipboard != nil
}

// Clear sets every pixel of sprite i to 0
func (s *Store) Clear(i int) bool {
	return s.Fill(i, 0)
}

// Fill sets every pixel of sprite i to v modulo 256
func (s *Store) Fill(i, v int) bool {
	sp, err := s.get(i)
	if err != nil {
		s.invalid("fill", err, zap.Int("sprite", i))
		return false
	}
	for p := range sp.Pixels {
		sp.Pixels[p] = uint8(v)
	}
	return true
}

// Free drops every sprite and the clipboard.
func (s *Store) Free() {
	for i := range s.sprites {
		s.sprites[i] = nil
	}
	s.sprites = nil
	s.clipboard = nil
}
