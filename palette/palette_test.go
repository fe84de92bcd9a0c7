package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEndpoints(t *testing.T) {
	assert.Equal(t, color.RGBA{0x00, 0x00, 0x00, 0xff}, Default[0], "black")
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, Default[1], "white")
}

func TestNewZeroSaturationIsGrayscale(t *testing.T) {
	for i, c := range New(0) {
		r, g, b, _ := c.RGBA()
		assert.Equal(t, r, g, "color %d", i)
		assert.Equal(t, g, b, "color %d", i)
	}
}

func TestNewGraysIgnoreSaturation(t *testing.T) {
	// The chroma-free entries must not move however far the
	// saturation is pushed.
	boosted := New(10)
	for _, i := range []int{0, 1, 11, 12, 15} {
		assert.Equal(t, Default[i], boosted[i], "color %d", i)
	}
}

func TestNewLumaOrdering(t *testing.T) {
	// The four grays are defined in increasing luma order.
	grays := []int{0, 11, 12, 15, 1}
	for i := 1; i < len(grays); i++ {
		prev := Default[grays[i-1]].(color.RGBA)
		cur := Default[grays[i]].(color.RGBA)
		assert.Greater(t, cur.R, prev.R)
	}
}

func TestNewDeterministic(t *testing.T) {
	for _, sat := range []float64{0, 0.5, 1, 2} {
		require.Equal(t, New(sat), New(sat))
	}
}

func TestRGBClamps(t *testing.T) {
	// An absurd saturation drives channels out of gamut; they must
	// clamp rather than wrap.
	for i, c := range New(1000) {
		rgba := c.(color.RGBA)
		require.Equal(t, uint8(0xff), rgba.A, "color %d", i)
	}
	// Blue at high saturation clips its blue channel to full.
	blue := Colors[6].RGB(5)
	assert.Equal(t, uint8(0xff), blue.B)
}

func TestRGBKnownValues(t *testing.T) {
	// Luma-only entries come straight out of the y = luma/32 ramp.
	assert.Equal(t, color.RGBA{80, 80, 80, 0xff}, Colors[11].RGB(1), "dark gray")
	assert.Equal(t, color.RGBA{120, 120, 120, 0xff}, Colors[12].RGB(1), "gray")
	assert.Equal(t, color.RGBA{159, 159, 159, 0xff}, Colors[15].RGB(1), "light gray")
}
