/*
Package image converts sprites to and from standard library images.

A sprite is rendered through a 16 color palette where local color 0 is
transparent; local indices outside the palette are drawn transparent too.
Importing goes the other way: an arbitrary 16 by 16 image is reduced to at
most 15 opaque colors, each is matched to the nearest main palette color and a
new user palette is built from the matches. Fully or mostly transparent
pixels become local color 0.
*/
package image

import "github.com/MrRaffo/smallsprite/sprite"

const (
	pixelX = sprite.Width
	pixelY = sprite.Height

	// colors available to opaque pixels, local color 0 being transparency
	opaqueColors = 15

	// alpha below this is treated as transparent when importing
	alphaThreshold = 0x8000
)
