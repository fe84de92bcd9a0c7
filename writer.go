package koala

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/abbrev/c64koala2ppm/palette"
)

const maxCardColors = 4

type encoder struct {
	w io.Writer

	// codes holds one hardware color code per pixel.
	codes [pixelY][pixelX]byte

	background byte
}

// Copied from color.sqDiff
func sqDiff(x, y uint32) uint32 {
	d := x - y
	return (d * d) >> 2
}

func codeDistance(a, b byte) uint32 {
	r1, g1, b1, _ := palette.Default[a].RGBA()
	r2, g2, b2, _ := palette.Default[b].RGBA()
	return sqDiff(r1, r2) + sqDiff(g1, g2) + sqDiff(b1, b2)
}

// closestCode returns the member of codes nearest to c.
func closestCode(c byte, codes []byte) byte {
	best, bestDist := codes[0], uint32(1<<32-1)
	for _, o := range codes {
		if d := codeDistance(c, o); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

func (e *encoder) countCodes(cx, cy int) map[byte]int {
	count := make(map[byte]int)
	for y := cy * cardHeight; y < (cy+1)*cardHeight; y++ {
		for x := cx * cardWidth; x < (cx+1)*cardWidth; x++ {
			count[e.codes[y][x]]++
		}
	}
	return count
}

// chooseBackground picks the code appearing in the most cards; it is
// the only color every card gets for free.
func (e *encoder) chooseBackground() {
	cards := make(map[byte]int)
	for cy := 0; cy < cardY; cy++ {
		for cx := 0; cx < cardX; cx++ {
			for c := range e.countCodes(cx, cy) {
				cards[c]++
			}
		}
	}
	var best int
	for c, n := range cards {
		if n > best || (n == best && c < e.background) {
			e.background, best = c, n
		}
	}
}

// cardColors reduces the card at (cx, cy) to the background plus at
// most three other codes, rewriting excess pixels to the closest
// surviving color, and returns the non-background codes.
func (e *encoder) cardColors(cx, cy int) []byte {
	count := e.countCodes(cx, cy)
	delete(count, e.background)

	keep := make([]byte, 0, len(count))
	for c := range count {
		keep = append(keep, c)
	}

	for len(keep) > maxCardColors-1 {
		// Drop whichever color appears least in this card.
		worst := 0
		for i, c := range keep {
			if count[c] < count[keep[worst]] || (count[c] == count[keep[worst]] && c > keep[worst]) {
				worst = i
			}
		}
		dropped := keep[worst]
		keep = append(keep[:worst], keep[worst+1:]...)

		to := e.background
		if len(keep) > 0 {
			to = closestCode(dropped, keep)
		}
		for y := cy * cardHeight; y < (cy+1)*cardHeight; y++ {
			for x := cx * cardWidth; x < (cx+1)*cardWidth; x++ {
				if e.codes[y][x] == dropped {
					e.codes[y][x] = to
				}
			}
		}
		count[to] += count[dropped]
	}

	return keep
}

func (e *encoder) encode() error {
	e.chooseBackground()

	var bitmap [bitmapBytes]byte
	var video [videoBytes]byte
	var colorRAM [colorBytes]byte

	for cy := 0; cy < cardY; cy++ {
		for cx := 0; cx < cardX; cx++ {
			card := cy*cardX + cx

			// Slot 0 is the background; unused slots repeat it
			// so they select nothing new.
			slots := [maxCardColors]byte{e.background, e.background, e.background, e.background}
			copy(slots[1:], e.cardColors(cx, cy))

			slotOf := make(map[byte]byte, maxCardColors)
			for i := len(slots) - 1; i >= 0; i-- {
				slotOf[slots[i]] = byte(i)
			}

			for y := 0; y < cardHeight; y++ {
				var b byte
				for k := 0; k < cardWidth; k++ {
					b = b<<2 | slotOf[e.codes[cy*cardHeight+y][cx*cardWidth+k]]
				}
				bitmap[card*cardHeight+y] = b
			}

			video[card] = slots[1]<<4 | slots[2]
			colorRAM[card] = slots[3]
		}
	}

	for _, p := range [][]byte{
		{loadAddress & 0xff, loadAddress >> 8},
		bitmap[:],
		video[:],
		colorRAM[:],
		{e.background},
	} {
		if _, err := e.w.Write(p); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w in KoalaPaint format. The image must
// be 160 by 200 pixels. Colors are snapped to the hardware palette and
// each card is reduced to the background plus at most three colors.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() != pixelX || b.Dy() != pixelY {
		return errors.New("koala: image is wrong size")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > len(palette.Default) {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, len(palette.Default)), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Snap the working palette to hardware color codes.
	codeOf := make([]byte, len(pm.Palette))
	for i, c := range pm.Palette {
		codeOf[i] = byte(palette.Default.Index(c))
	}

	e := encoder{w: w}
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			e.codes[y][x] = codeOf[pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y)]
		}
	}

	return e.encode()
}
