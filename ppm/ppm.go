/*
Package ppm implements a binary Portable Pixmap (P6) encoder.

The format is a short ASCII header giving the magic, dimensions and
maximum channel value, followed by the pixels as raw RGB triples in
row-major order with no padding.
*/
package ppm

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

const maxVal = 255

// Encode writes the Image m to w as a binary PPM. Alpha is discarded;
// pixels are written as 8-bit RGB.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", b.Dx(), b.Dy(), maxVal); err != nil {
		return err
	}

	row := make([]byte, 3*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := m.At(x, y).RGBA()
			row[i+0] = byte(r >> 8)
			row[i+1] = byte(g >> 8)
			row[i+2] = byte(bl >> 8)
			i += 3
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}
