package sprite

import "go.uber.org/zap"

// Each transform is a permutation of the existing pixels; no color index is
// ever introduced or lost.

func (s *Store) transform(op string, i int, f func(*[Size]uint8)) bool {
	sp, err := s.get(i)
	if err != nil {
		s.invalid(op, err, zap.Int("sprite", i))
		return false
	}
	f(&sp.Pixels)
	return true
}

func row(px *[Size]uint8, y int) []uint8 {
	return px[y*Width : (y+1)*Width]
}

// ShiftLeft rotates every row of sprite i one pixel to the left, wrapping the
// leftmost pixel round to the right edge.
func (s *Store) ShiftLeft(i int) bool {
	return s.transform("shift left", i, func(px *[Size]uint8) {
		for y := 0; y < Height; y++ {
			r := row(px, y)
			first := r[0]
			copy(r, r[1:])
			r[Width-1] = first
		}
	})
}

// ShiftRight rotates every row of sprite i one pixel to the right.
func (s *Store) ShiftRight(i int) bool {
	return s.transform("shift right", i, func(px *[Size]uint8) {
		for y := 0; y < Height; y++ {
			r := row(px, y)
			last := r[Width-1]
			copy(r[1:], r[:Width-1])
			r[0] = last
		}
	})
}

// ShiftUp moves every row of sprite i up by one, the top row reappearing at
// the bottom.
func (s *Store) ShiftUp(i int) bool {
	return s.transform("shift up", i, func(px *[Size]uint8) {
		var top [Width]uint8
		copy(top[:], row(px, 0))
		copy(px[:], px[Width:])
		copy(row(px, Height-1), top[:])
	})
}

// ShiftDown moves every row of sprite i down by one, the bottom row
// reappearing at the top.
func (s *Store) ShiftDown(i int) bool {
	return s.transform("shift down", i, func(px *[Size]uint8) {
		var bottom [Width]uint8
		copy(bottom[:], row(px, Height-1))
		copy(px[Width:], px[:Size-Width])
		copy(row(px, 0), bottom[:])
	})
}

// FlipHorizontal mirrors sprite i left to right.
func (s *Store) FlipHorizontal(i int) bool {
	return s.transform("flip horizontal", i, func(px *[Size]uint8) {
		for y := 0; y < Height; y++ {
			r := row(px, y)
			for a, b := 0, Width-1; a < b; a, b = a+1, b-1 {
				r[a], r[b] = r[b], r[a]
			}
		}
	})
}

// FlipVertical mirrors sprite i top to bottom.
func (s *Store) FlipVertical(i int) bool {
	return s.transform("flip vertical", i, func(px *[Size]uint8) {
		var tmp [Width]uint8
		for y := 0; y < Height/2; y++ {
			a, b := row(px, y), row(px, Height-1-y)
			copy(tmp[:], a)
			copy(a, b)
			copy(b, tmp[:])
		}
	})
}
