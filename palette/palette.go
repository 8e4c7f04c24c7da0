/*
Package palette implements the fixed main palette and the list of user
palettes.

The main palette is 64 opaque colors built from four levels of each of red,
green and blue. A user palette is a 16 entry indirection table where each
entry is an index into the main palette; local color 0 is by convention
transparent when a sprite is drawn.

A browsing cursor is kept separately from any sprite's palette reference so
the user can page through palettes without reassigning sprites.
*/
package palette

import (
	"errors"
	"image/color"

	"go.uber.org/zap"
)

const (
	// MainSize is the number of colors in the main palette
	MainSize = 64

	// UserSize is the number of entries in a user palette
	UserSize = 16

	// MaxUserPalettes is the capacity of the store
	MaxUserPalettes = 1024

	levels    = 4
	increment = 75
)

var (
	errInvalidPalette = errors.New("palette: invalid palette index")
	errInvalidColor   = errors.New("palette: invalid color index")
	errInvalidMain    = errors.New("palette: invalid main palette index")
	errLimit          = errors.New("palette: palette limit reached")
	errLastPalette    = errors.New("palette: cannot remove the last palette")
)

// UserPalette maps local color indices to main palette indices.
type UserPalette [UserSize]uint8

var mainPalette = generateMain()

func generateMain() (p [MainSize]color.RGBA) {
	for r := 0; r < levels; r++ {
		for g := 0; g < levels; g++ {
			for b := 0; b < levels; b++ {
				p[r*levels*levels+g*levels+b] = color.RGBA{
					uint8(r * increment),
					uint8(g * increment),
					uint8(b * increment),
					0xff,
				}
			}
		}
	}
	return
}

// MainColor returns color i of the main palette, or transparent if i is out
// of range.
func MainColor(i int) color.RGBA {
	if i < 0 || i >= MainSize {
		return color.RGBA{}
	}
	return mainPalette[i]
}

// Main returns a copy of the main palette
func Main() color.Palette {
	p := make(color.Palette, MainSize)
	for i, c := range mainPalette {
		p[i] = c
	}
	return p
}

// Store holds the user palettes and the browsing cursor.
type Store struct {
	palettes []*UserPalette
	current  int
	logger   *zap.Logger
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

// Len returns the number of user palettes
func (s *Store) Len() int {
	return len(s.palettes)
}

func (s *Store) get(p, c int) (*UserPalette, error) {
	if p < 0 || p >= len(s.palettes) {
		return nil, errInvalidPalette
	}
	if c < 0 || c >= UserSize {
		return nil, errInvalidColor
	}
	return s.palettes[p], nil
}

// AddUserPalette appends a palette with every entry pointing at main color 0
// and returns its index, or -1 if the store is full.
func (s *Store) AddUserPalette() int {
	if len(s.palettes) >= MaxUserPalettes {
		s.logger.Warn("add palette", zap.Int("limit", MaxUserPalettes), zap.Error(errLimit))
		return -1
	}
	s.palettes = append(s.palettes, new(UserPalette))
	return len(s.palettes) - 1
}

// Load appends a palette read from a project file. Entries beyond the main
// palette are clamped to its last color.
func (s *Store) Load(up UserPalette) bool {
	if len(s.palettes) >= MaxUserPalettes {
		s.logger.Warn("load palette", zap.Int("limit", MaxUserPalettes), zap.Error(errLimit))
		return false
	}
	for i, m := range up {
		if m >= MainSize {
			s.logger.Debug("load palette", zap.Int("color", i), zap.Uint8("main", m), zap.Error(errInvalidMain))
			up[i] = MainSize - 1
		}
	}
	s.palettes = append(s.palettes, &up)
	return true
}

// RemoveUserPalette deletes palette i, moving later palettes down one index.
// The last remaining palette is never removed. Sprites referring to moved
// palettes are not updated.
func (s *Store) RemoveUserPalette(i int) bool {
	if i < 0 || i >= len(s.palettes) {
		s.logger.Debug("remove palette", zap.Int("palette", i), zap.Error(errInvalidPalette))
		return false
	}
	if len(s.palettes) <= 1 {
		s.logger.Debug("remove palette", zap.Int("palette", i), zap.Error(errLastPalette))
		return false
	}
	copy(s.palettes[i:], s.palettes[i+1:])
	s.palettes[len(s.palettes)-1] = nil
	s.palettes = s.palettes[:len(s.palettes)-1]
	if s.current >= len(s.palettes) {
		s.current = len(s.palettes) - 1
	}
	return true
}

// UserPalette returns a copy of palette i
func (s *Store) UserPalette(i int) (UserPalette, bool) {
	up, err := s.get(i, 0)
	if err != nil {
		s.logger.Debug("get palette", zap.Int("palette", i), zap.Error(err))
		return UserPalette{}, false
	}
	return *up, true
}

// Find returns the index of the first palette equal to up, or -1.
func (s *Store) Find(up UserPalette) int {
	for i, p := range s.palettes {
		if *p == up {
			return i
		}
	}
	return -1
}

// UserPaletteIndex returns the main palette index of color c in palette p, or
// -1 on invalid input.
func (s *Store) UserPaletteIndex(p, c int) int {
	up, err := s.get(p, c)
	if err != nil {
		s.logger.Debug("get palette index", zap.Int("palette", p), zap.Int("color", c), zap.Error(err))
		return -1
	}
	return int(up[c])
}

// UserPaletteColor resolves color c of palette p through the main palette.
// Invalid input yields transparent.
func (s *Store) UserPaletteColor(p, c int) color.RGBA {
	up, err := s.get(p, c)
	if err != nil {
		s.logger.Debug("get palette color", zap.Int("palette", p), zap.Int("color", c), zap.Error(err))
		return color.RGBA{}
	}
	return MainColor(int(up[c]))
}

// SetUserPaletteIndex points color c of palette p at main color m.
func (s *Store) SetUserPaletteIndex(p, c, m int) bool {
	up, err := s.get(p, c)
	if err == nil && (m < 0 || m >= MainSize) {
		err = errInvalidMain
	}
	if err != nil {
		s.logger.Debug("set palette index", zap.Int("palette", p), zap.Int("color", c), zap.Int("main", m), zap.Error(err))
		return false
	}
	up[c] = uint8(m)
	return true
}

// Colors returns palette p resolved to RGBA with local color 0 transparent,
// ready to draw a sprite with. An invalid palette yields all transparent.
func (s *Store) Colors(p int) color.Palette {
	cp := make(color.Palette, UserSize)
	cp[0] = color.RGBA{}
	for c := 1; c < UserSize; c++ {
		cp[c] = s.UserPaletteColor(p, c)
	}
	return cp
}

// Current returns the cursor position
func (s *Store) Current() int {
	return s.current
}

// NextPalette advances the cursor, creating a new palette when it is already
// on the last one. It returns the new cursor or -1 if no palette could be
// created.
func (s *Store) NextPalette() int {
	if s.current < len(s.palettes)-1 {
		s.current++
		return s.current
	}
	i := s.AddUserPalette()
	if i < 0 {
		return -1
	}
	s.current = i
	return s.current
}

// PrevPalette moves the cursor back one, stopping at 0.
func (s *Store) PrevPalette() int {
	if s.current > 0 {
		s.current--
	}
	return s.current
}

// SetPalette moves the cursor to palette i, returning i or -1 if there is no
// such palette.
func (s *Store) SetPalette(i int) int {
	if i < 0 || i >= len(s.palettes) {
		s.logger.Debug("set cursor", zap.Int("palette", i), zap.Error(errInvalidPalette))
		return -1
	}
	s.current = i
	return s.current
}

// Free drops every user palette and resets the cursor.
func (s *Store) Free() {
	for i := range s.palettes {
		s.palettes[i] = nil
	}
	s.palettes = nil
	s.current = 0
}
