package koala

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/abbrev/c64koala2ppm/palette"
)

// ErrTruncated reports that the input ended before the full payload was
// read. The returned Image is still usable; any plane bytes the input
// did not supply hold fixed sentinel values so that a short or corrupt
// file renders to a recognizable image rather than failing outright.
var ErrTruncated = errors.New("koala: file is too short")

// Sentinel fill values for planes missing from a truncated file.
const (
	fillBitmap     = 0x1b
	fillVideo      = 0x25
	fillColor      = 0x06
	fillBackground = 0x00
)

type decoder struct {
	r io.Reader

	image Image

	// Enough to hold the load address and the whole payload.
	tmp [2 + payloadBytes]byte
}

func (d *decoder) fill() {
	for cy := 0; cy < cardY; cy++ {
		for cx := 0; cx < cardX; cx++ {
			for y := 0; y < cardHeight; y++ {
				d.image.Bitmap[cy][cx][y] = fillBitmap
			}
			d.image.Video[cy][cx] = fillVideo
			d.image.ColorRAM[cy][cx] = fillColor
		}
	}
	d.image.Background = fillBackground
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r
	d.fill()

	n, err := io.ReadFull(d.r, d.tmp[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}

	// The load address is only present to make the file loadable on
	// the machine itself; it says nothing about the image.
	var b []byte
	if n > 2 {
		b = d.tmp[2:n]
	}

	for i, c := range b[:min(len(b), bitmapBytes)] {
		card := i / cardHeight
		d.image.Bitmap[card/cardX][card%cardX][i%cardHeight] = c
	}
	if len(b) > bitmapBytes {
		for i, c := range b[bitmapBytes:min(len(b), bitmapBytes+videoBytes)] {
			d.image.Video[i/cardX][i%cardX] = c
		}
	}
	if len(b) > bitmapBytes+videoBytes {
		for i, c := range b[bitmapBytes+videoBytes : min(len(b), bitmapBytes+videoBytes+colorBytes)] {
			d.image.ColorRAM[i/cardX][i%cardX] = c
		}
	}
	if len(b) == payloadBytes {
		d.image.Background = b[payloadBytes-1]
	}

	if n < len(d.tmp) {
		return ErrTruncated
	}
	return nil
}

// Decode reads a KoalaPaint file from r and returns its decoded planes.
// If r ends early the partially filled Image is returned together with
// ErrTruncated; every other error means no usable image was read.
func Decode(r io.Reader) (*Image, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		if err != ErrTruncated {
			return nil, err
		}
		return &d.image, err
	}
	return &d.image, nil
}

// Render resolves the planes against p and returns the 160 by 200
// raster. Color indices in the returned image are raw C64 color codes,
// so p should have sixteen entries, typically from the palette package.
func (m *Image) Render(p color.Palette) *image.Paletted {
	out := image.NewPaletted(image.Rect(0, 0, pixelX, pixelY), p)

	for cy := 0; cy < cardY; cy++ {
		for cx := 0; cx < cardX; cx++ {
			slots := [4]uint8{
				lowerNibble(m.Background),
				upperNibble(m.Video[cy][cx]),
				lowerNibble(m.Video[cy][cx]),
				lowerNibble(m.ColorRAM[cy][cx]),
			}

			for y := 0; y < cardHeight; y++ {
				b := m.Bitmap[cy][cx][y]
				for k := 0; k < cardWidth; k++ {
					out.SetColorIndex(cx*cardWidth+k, cy*cardHeight+y, slots[pixelCode(b, k)])
				}
			}
		}
	}

	return out
}

// DecodeImage reads a KoalaPaint file from r and returns it as an
// image.Image rendered with the default palette. Truncated input is not
// an error here; the sentinel filled planes are rendered as usual.
func DecodeImage(r io.Reader) (image.Image, error) {
	m, err := Decode(r)
	if err != nil && err != ErrTruncated {
		return nil, err
	}
	return m.Render(palette.Default), nil
}

// DecodeConfig returns the color model and dimensions of a KoalaPaint
// image. The format has no header to speak of so nothing is read.
func DecodeConfig(r io.Reader) (image.Config, error) {
	return image.Config{
		ColorModel: palette.Default,
		Width:      pixelX,
		Height:     pixelY,
	}, nil
}

func init() {
	// No magic number; KoalaPaint files are all payload. Sniffing on
	// the customary load address is the best available.
	image.RegisterFormat("koala", "\x00\x60", DecodeImage, DecodeConfig)
}
