package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainPalette(t *testing.T) {
	tables := []struct {
		index int
		want  color.RGBA
	}{
		{0, color.RGBA{0, 0, 0, 0xff}},
		{1, color.RGBA{0, 0, 75, 0xff}},
		{4, color.RGBA{0, 75, 0, 0xff}},
		{16, color.RGBA{75, 0, 0, 0xff}},
		{2*16 + 3*4 + 1, color.RGBA{150, 225, 75, 0xff}},
		{63, color.RGBA{225, 225, 225, 0xff}},
		{-1, color.RGBA{}},
		{64, color.RGBA{}},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, MainColor(table.index), "index %d", table.index)
	}

	p := Main()
	assert.Len(t, p, MainSize)
	assert.Equal(t, color.RGBA{225, 225, 225, 0xff}, p[63])
}

func TestAddUserPalette(t *testing.T) {
	s := New(nil)

	require.Equal(t, 0, s.AddUserPalette())
	up, ok := s.UserPalette(0)
	require.True(t, ok)
	assert.Equal(t, UserPalette{}, up)

	for i := 1; i < MaxUserPalettes; i++ {
		require.Equal(t, i, s.AddUserPalette())
	}
	assert.Equal(t, -1, s.AddUserPalette())
	assert.Equal(t, MaxUserPalettes, s.Len())
}

func TestLookups(t *testing.T) {
	s := New(nil)
	s.AddUserPalette()

	require.True(t, s.SetUserPaletteIndex(0, 5, 63))
	assert.Equal(t, 63, s.UserPaletteIndex(0, 5))
	assert.Equal(t, color.RGBA{225, 225, 225, 0xff}, s.UserPaletteColor(0, 5))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, s.UserPaletteColor(0, 0))

	tables := []struct {
		p, c, m int
	}{
		{-1, 0, 0},
		{1, 0, 0},
		{0, -1, 0},
		{0, UserSize, 0},
		{0, 0, -1},
		{0, 0, MainSize},
	}
	for _, table := range tables {
		assert.False(t, s.SetUserPaletteIndex(table.p, table.c, table.m))
	}
	assert.Equal(t, -1, s.UserPaletteIndex(1, 0))
	assert.Equal(t, -1, s.UserPaletteIndex(0, 16))
	assert.Equal(t, color.RGBA{}, s.UserPaletteColor(0, 16))
	assert.Equal(t, color.RGBA{}, s.UserPaletteColor(-1, 0))
}

func TestColors(t *testing.T) {
	s := New(nil)
	s.AddUserPalette()
	s.SetUserPaletteIndex(0, 0, 63)
	s.SetUserPaletteIndex(0, 1, 1)

	cp := s.Colors(0)
	require.Len(t, cp, UserSize)
	assert.Equal(t, color.RGBA{}, cp[0])
	assert.Equal(t, color.RGBA{0, 0, 75, 0xff}, cp[1])
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, cp[2])
}

func TestCursor(t *testing.T) {
	s := New(nil)
	s.AddUserPalette()

	assert.Equal(t, 0, s.PrevPalette())
	assert.Equal(t, 1, s.NextPalette())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.PrevPalette())
	assert.Equal(t, 1, s.NextPalette())
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, 0, s.SetPalette(0))
	assert.Equal(t, -1, s.SetPalette(2))
	assert.Equal(t, 0, s.Current())
}

func TestNextPaletteAtCapacity(t *testing.T) {
	s := New(nil)
	for i := 0; i < MaxUserPalettes; i++ {
		s.AddUserPalette()
	}
	require.Equal(t, MaxUserPalettes-1, s.SetPalette(MaxUserPalettes-1))

	assert.Equal(t, -1, s.NextPalette())
	assert.Equal(t, MaxUserPalettes-1, s.Current())
}

func TestRemoveUserPalette(t *testing.T) {
	s := New(nil)
	for i := 0; i < 3; i++ {
		s.AddUserPalette()
		s.SetUserPaletteIndex(i, 1, i+10)
	}
	s.SetPalette(2)

	require.True(t, s.RemoveUserPalette(0))
	assert.Equal(t, 11, s.UserPaletteIndex(0, 1))
	assert.Equal(t, 12, s.UserPaletteIndex(1, 1))
	assert.Equal(t, 1, s.Current())

	assert.False(t, s.RemoveUserPalette(2))
	require.True(t, s.RemoveUserPalette(1))
	assert.False(t, s.RemoveUserPalette(0))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Current())
}

func TestLoadClamps(t *testing.T) {
	s := New(nil)

	up := UserPalette{0: 3, 1: 64, 2: 200}
	require.True(t, s.Load(up))
	assert.Equal(t, 3, s.UserPaletteIndex(0, 0))
	assert.Equal(t, MainSize-1, s.UserPaletteIndex(0, 1))
	assert.Equal(t, MainSize-1, s.UserPaletteIndex(0, 2))
}

func TestFind(t *testing.T) {
	s := New(nil)
	s.AddUserPalette()
	s.AddUserPalette()
	s.SetUserPaletteIndex(1, 2, 9)

	up, _ := s.UserPalette(1)
	assert.Equal(t, 1, s.Find(up))
	assert.Equal(t, 0, s.Find(UserPalette{}))
	assert.Equal(t, -1, s.Find(UserPalette{1, 1}))
}

func TestFree(t *testing.T) {
	s := New(nil)
	s.AddUserPalette()
	s.NextPalette()
	s.Free()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Current())
}
