/*
Package palette converts the fixed Commodore 64 hardware palette to RGB.

The VIC-II generates color as a luma level plus a chroma signal at one
of sixteen phase angles, so each of the sixteen colors is defined here
in polar YUV form: an angle, a luma level and a flag for whether the
color carries any chroma at all. The measurements are from
http://www.pepto.de/projects/colorvic/.
*/
package palette

import (
	"image/color"
	"math"
)

// Chroma amplitude of the VIC-II relative to full luma,
// 34.0081334493 / 255 per pepto.de.
const (
	uScale = 0.1331
	vScale = 0.1331
)

// A Color describes one hardware color: a chroma phase angle in
// sixteenths of a full turn, a luma level out of 32, and whether the
// color is saturated at all (the grays are not).
type Color struct {
	Angle, Luma int
	Chroma      bool
}

// Colors is the hardware palette indexed by C64 color code.
var Colors = [16]Color{
	{0, 0, false},   // black
	{0, 32, false},  // white
	{5, 10, true},   // red
	{13, 20, true},  // cyan
	{2, 12, true},   // purple
	{10, 16, true},  // green
	{0, 8, true},    // blue
	{8, 24, true},   // yellow
	{6, 12, true},   // orange
	{7, 8, true},    // brown
	{5, 16, true},   // light red
	{0, 10, false},  // dark gray
	{0, 15, false},  // gray
	{10, 24, true},  // light green
	{0, 15, true},   // light blue
	{0, 20, false},  // light gray
}

// yuv is gamma-compressed luma plus the two color difference
// components, all before conversion to RGB.
type yuv struct {
	y, u, v float64
}

func (c Color) toYUV(saturation float64) yuv {
	var chroma float64
	if c.Chroma {
		chroma = saturation
	}
	angle := float64(c.Angle) * math.Pi / 8
	return yuv{
		y: float64(c.Luma) / 32,
		u: chroma * uScale * math.Cos(angle),
		v: chroma * vScale * math.Sin(angle),
	}
}

func clamp(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// toByte scales a [0, 1] channel to a byte, rounding half up.
func toByte(x float64) uint8 {
	return uint8(255*x + 0.5)
}

// RGB converts c to RGB using the BT.601 matrix from
// https://en.wikipedia.org/wiki/YUV, scaling the chroma amplitude by
// saturation. Out of gamut channels are clamped.
func (c Color) RGB(saturation float64) color.RGBA {
	y := c.toYUV(saturation)
	r := y.y + 1.13983*y.v
	g := y.y - 0.39465*y.u - 0.58060*y.v
	b := y.y + 2.03211*y.u
	return color.RGBA{
		toByte(clamp(r)),
		toByte(clamp(g)),
		toByte(clamp(b)),
		0xff,
	}
}

// New returns the hardware palette converted to RGB with the given
// saturation scale. A scale of 1 is the nominal hardware output and 0
// yields grayscale. The palette is indexed by C64 color code.
func New(saturation float64) color.Palette {
	p := make(color.Palette, len(Colors))
	for i, c := range Colors {
		p[i] = c.RGB(saturation)
	}
	return p
}

// Default is the hardware palette at nominal saturation.
var Default = New(1)
