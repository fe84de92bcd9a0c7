package koala

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbrev/c64koala2ppm/palette"
)

// fullFile returns a well formed 10003 byte file with every bitmap byte
// set to bitmap, every video matrix byte to video, every color RAM byte
// to colorRAM and the given background.
func fullFile(bitmap, video, colorRAM, background byte) []byte {
	b := make([]byte, 0, 2+payloadBytes)
	b = append(b, loadAddress&0xff, loadAddress>>8)
	b = append(b, bytes.Repeat([]byte{bitmap}, bitmapBytes)...)
	b = append(b, bytes.Repeat([]byte{video}, videoBytes)...)
	b = append(b, bytes.Repeat([]byte{colorRAM}, colorBytes)...)
	b = append(b, background)
	return b
}

func TestPixelCode(t *testing.T) {
	// 0x1b packs the four codes in order: 00 01 10 11.
	for k, want := range []byte{0, 1, 2, 3} {
		assert.Equal(t, want, pixelCode(0x1b, k), "pixel %d", k)
	}
	for k := 0; k < 4; k++ {
		assert.Equal(t, byte(0), pixelCode(0x00, k))
		assert.Equal(t, byte(3), pixelCode(0xff, k))
	}
	// MSB pair is the leftmost pixel.
	assert.Equal(t, byte(3), pixelCode(0xc0, 0))
	assert.Equal(t, byte(0), pixelCode(0xc0, 3))
}

func TestDecodeFull(t *testing.T) {
	m, err := Decode(bytes.NewReader(fullFile(0x42, 0xa7, 0x0c, 0x0e)))
	require.NoError(t, err)

	assert.Equal(t, byte(0x42), m.Bitmap[24][39][7])
	assert.Equal(t, byte(0xa7), m.Video[0][39])
	assert.Equal(t, byte(0x0c), m.ColorRAM[12][20])
	assert.Equal(t, byte(0x0e), m.Background)
}

func TestDecodeEmpty(t *testing.T) {
	m, err := Decode(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrTruncated)
	require.NotNil(t, m)

	assert.Equal(t, byte(0x1b), m.Bitmap[0][0][0])
	assert.Equal(t, byte(0x1b), m.Bitmap[24][39][7])
	assert.Equal(t, byte(0x25), m.Video[12][20])
	assert.Equal(t, byte(0x06), m.ColorRAM[12][20])
	assert.Equal(t, byte(0x00), m.Background)
}

func TestDecodeTruncated(t *testing.T) {
	// Bitmap fully present, everything after it missing.
	m, err := Decode(bytes.NewReader(fullFile(0x00, 0, 0, 0)[:2+bitmapBytes]))
	require.ErrorIs(t, err, ErrTruncated)

	assert.Equal(t, byte(0x00), m.Bitmap[24][39][7])
	assert.Equal(t, byte(0x25), m.Video[0][0])
	assert.Equal(t, byte(0x06), m.ColorRAM[0][0])
}

func TestRenderDimensions(t *testing.T) {
	m, _ := Decode(bytes.NewReader(nil))
	out := m.Render(palette.Default)
	assert.Equal(t, image.Rect(0, 0, 160, 200), out.Bounds())
}

func TestRenderSentinels(t *testing.T) {
	// Sentinel planes: bitmap 0x1b selects slots 0 1 2 3 left to
	// right, video 0x25 maps those to colors 2 and 5, color RAM
	// 0x06 to color 6, background to color 0.
	m, err := Decode(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrTruncated)

	out := m.Render(palette.Default)
	want := []uint8{0, 2, 5, 6}
	for y := 0; y < 200; y++ {
		for x := 0; x < 160; x++ {
			require.Equal(t, want[x%4], out.ColorIndexAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestRenderAllBackground(t *testing.T) {
	// Pixel code 00 always selects the background.
	m, err := Decode(bytes.NewReader(fullFile(0x00, 0xa7, 0x0c, 0x03)))
	require.NoError(t, err)

	out := m.Render(palette.Default)
	for y := 0; y < 200; y++ {
		for x := 0; x < 160; x++ {
			require.Equal(t, uint8(3), out.ColorIndexAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestRenderAllColorRAM(t *testing.T) {
	// Pixel code 11 always selects the color RAM nibble.
	m, err := Decode(bytes.NewReader(fullFile(0xff, 0xa7, 0x09, 0x03)))
	require.NoError(t, err)

	out := m.Render(palette.Default)
	for y := 0; y < 200; y++ {
		for x := 0; x < 160; x++ {
			require.Equal(t, uint8(9), out.ColorIndexAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestRenderBackgroundHighNibbleIgnored(t *testing.T) {
	m, err := Decode(bytes.NewReader(fullFile(0x00, 0, 0, 0xf2)))
	require.NoError(t, err)

	out := m.Render(palette.Default)
	assert.Equal(t, uint8(2), out.ColorIndexAt(0, 0))
}

func TestDecodeImage(t *testing.T) {
	m, err := DecodeImage(bytes.NewReader(fullFile(0x00, 0, 0, 0x01)))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 160, 200), m.Bounds())
	assert.Equal(t, palette.Default[1], m.At(80, 100))
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewReader(nil))
	require.NoError(t, err)

	assert.Equal(t, 160, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Len(t, cfg.ColorModel, 16)
}
