package icon

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// PixelBuffer is a square RGBA bitmap of side Size. Pix holds 4*Size*Size
// bytes in row-major R,G,B,A order with premultiplied alpha, the layout of
// image.RGBA.
type PixelBuffer struct {
	Size int
	Pix  []byte
}

// Image returns an image.RGBA view sharing Pix.
func (p *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.Pix,
		Stride: 4 * p.Size,
		Rect:   image.Rect(0, 0, p.Size, p.Size),
	}
}

// Clone returns a deep copy.
func (p *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]byte, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelBuffer{Size: p.Size, Pix: pix}
}

// EncodePNG writes the buffer as a PNG.
func (p *PixelBuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.Image())
}

// fit scales src into a transparent size×size square, preserving aspect
// ratio and centring it.
func fit(src image.Image, size int) *PixelBuffer {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return &PixelBuffer{Size: size, Pix: dst.Pix}
	}

	dw, dh := size, size
	if w > h {
		dh = max(1, h*size/w)
	} else if h > w {
		dw = max(1, w*size/h)
	}
	x0 := (size - dw) / 2
	y0 := (size - dh) / 2
	rect := image.Rect(x0, y0, x0+dw, y0+dh)

	if w == dw && h == dh {
		draw.Draw(dst, rect, src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, rect, src, b, draw.Over, nil)
	}
	return &PixelBuffer{Size: size, Pix: dst.Pix}
}
