package icon

import (
	"hash/fnv"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-enry/go-enry/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyph renders the fallback icon: a rounded tile with the file's initial.
// The result depends only on the file name and its first bytes.
func glyph(path string, head []byte, size int) *PixelBuffer {
	base := filepath.Base(path)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	drawTile(dst, glyphColor(base, head))
	drawInitial(dst, initial(base))

	return &PixelBuffer{Size: size, Pix: dst.Pix}
}

// glyphColor picks the linguist colour for recognizable scripts and a
// name-derived hue for everything else.
func glyphColor(name string, head []byte) color.RGBA {
	if len(head) > 0 && !enry.IsBinary(head) {
		if lang := enry.GetLanguage(name, head); lang != "" {
			if c, err := colorful.Hex(enry.GetColor(lang)); err == nil {
				return toRGBA(c)
			}
		}
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(stem(name))))
	hue := float64(h.Sum32() % 360)
	return toRGBA(colorful.Hsv(hue, 0.55, 0.80))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// drawTile fills a rounded square inset from the image edges.
func drawTile(dst *image.RGBA, fill color.RGBA) {
	size := dst.Rect.Dx()
	margin := size / 16
	radius := size / 5
	lo, hi := margin, size-margin-1

	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			cx := clamp(x, lo+radius, hi-radius)
			cy := clamp(y, lo+radius, hi-radius)
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			dst.SetRGBA(x, y, fill)
		}
	}
}

// drawInitial draws r in white, centred, scaled up from the 7x13 bitmap font.
func drawInitial(dst *image.RGBA, r rune) {
	face := basicfont.Face7x13
	size := dst.Rect.Dx()
	h := size * 9 / 16
	w := h * face.Width / face.Height
	if h < face.Height/2 || w < 1 {
		return
	}

	src := image.NewRGBA(image.Rect(0, 0, face.Width, face.Height))
	d := font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(r))

	x0 := (size - w) / 2
	y0 := (size - h) / 2
	draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, src.Bounds(), draw.Over, nil)
}

// initial is the first letter or digit of the name without extension,
// upper-cased; '#' when there is none the bitmap font can draw.
func initial(name string) rune {
	for _, r := range stem(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			r = unicode.ToUpper(r)
			if r > '~' {
				return '#'
			}
			return r
		}
	}
	return '#'
}

func stem(name string) string {
	if s := strings.TrimSuffix(name, filepath.Ext(name)); s != "" {
		return s
	}
	return name
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
