package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/MrRaffo/smallsprite"
)

// frameBuffer is an in-memory canvas
type frameBuffer struct {
	*image.RGBA
}

func newFrameBuffer() *frameBuffer {
	return &frameBuffer{image.NewRGBA(smallsprite.Bounds())}
}

func (fb *frameBuffer) PlotPixel(x, y int, c color.Color) {
	fb.Set(x, y, c)
}

func (fb *frameBuffer) writePNG(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, fb.RGBA); err != nil {
		return err
	}
	return f.Close()
}

type wallClock struct {
	frame time.Duration
}

func newWallClock(fps int) *wallClock {
	return &wallClock{
		frame: time.Second / time.Duration(fps),
	}
}

func (*wallClock) Now() time.Time {
	return time.Now()
}

func (c *wallClock) SleepUntilNextFrame(start time.Time) {
	if d := c.frame - time.Since(start); d > 0 {
		time.Sleep(d)
	}
}
