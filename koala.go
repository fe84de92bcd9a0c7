/*
Package koala implements a decoder and encoder for the Commodore 64
KoalaPaint multicolor bitmap format.

The image is defined as 160 by 200 pixels exactly which is split into a
grid of 40 by 25 "cards" of 4 by 8 pixels each. Every pixel is one of
four colors: a background color shared by the whole image and three
colors chosen per card.

The file is written as a two byte load address, followed by 8000 bytes
of bitmap data filling one card at a time, eight bytes per card in
row-major card order. Each bitmap byte packs four two-bit pixels, most
significant pair leftmost. Then follow 1000 bytes of video matrix data,
one byte per card holding two color indices in its high and low nibbles,
1000 bytes of color RAM data, one byte per card with a color index in
the low nibble, and a single background color byte. There is no
compression so the file is always 10003 bytes in size.

A two-bit pixel selects its color as follows:

	00: global background color
	01: upper nibble of the video matrix byte for this card
	10: lower nibble of the video matrix byte for this card
	11: lower nibble of the color RAM byte for this card
*/
package koala

const (
	cardWidth  = 4
	cardHeight = 8
	cardX      = 40
	cardY      = 25
	numCards   = cardX * cardY
	pixelX     = cardWidth * cardX
	pixelY     = cardHeight * cardY

	bitmapBytes = numCards * cardHeight
	videoBytes  = numCards
	colorBytes  = numCards

	// Payload following the two byte load address.
	payloadBytes = bitmapBytes + videoBytes + colorBytes + 1
)

// KoalaPainter saved files at this address.
const loadAddress = 0x6000

// An Image holds the decoded planes of a KoalaPaint file. The intent is
// to keep the raw bytes around rather than a resolved raster so that
// the same planes can be rendered with different palettes.
type Image struct {
	// Bitmap holds eight bytes per card, one per scanline of the
	// card, each packing four two-bit pixels.
	Bitmap [cardY][cardX][cardHeight]byte

	// Video holds one video matrix byte per card; the high and low
	// nibbles are the colors selected by pixel codes 01 and 10.
	Video [cardY][cardX]byte

	// ColorRAM holds one byte per card; the low nibble is the color
	// selected by pixel code 11.
	ColorRAM [cardY][cardX]byte

	// Background is the color shared by every pixel code 00. Only
	// the low nibble is significant.
	Background byte
}

func upperNibble(b byte) byte {
	return b >> 4 & 0x0f
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// pixelCode extracts pixel k (0 = leftmost, 3 = rightmost) from a
// bitmap byte. The most significant bit pair is the leftmost pixel.
func pixelCode(b byte, k int) byte {
	return b >> (6 - 2*k) & 0x03
}
