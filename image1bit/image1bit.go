// Package image1bit provides a 1-bit monochrome image format for LED matrix
// displays.
//
// Pixels are stored in horizontal LSB packing where each byte contains 8
// pixels and bit 0 is the leftmost pixel.
// This package provides the Bit color type and HorizontalLSB image
// implementation.
package image1bit

import (
	"image"
	"image/color"
)

// Bit represents a binary pixel: On (lit) or Off (dark).
type Bit bool

// Possible bit values.
const (
	Off Bit = false
	On  Bit = true
)

// RGBA converts the Bit to standard RGBA: full white when On, black when Off.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// String returns "On" or "Off".
func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B,
	// thresholded at half intensity.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// HorizontalLSB is a 1-bit image where pixels are stored in horizontal LSB
// packing. Each byte contains 8 pixels: bit 0 = leftmost pixel.
type HorizontalLSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalLSB creates a new HorizontalLSB image with the specified
// bounds. Rows are padded to a whole number of bytes.
func NewHorizontalLSB(r image.Rectangle) *HorizontalLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalLSB{Rect: r}
	}

	stride := (w + 7) / 8
	return &HorizontalLSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *HorizontalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *HorizontalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y). Pixels outside the bounds
// are Off.
func (p *HorizontalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *HorizontalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *HorizontalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Memory layout: each byte contains 8 pixels horizontally, bit 0 leftmost.
func (p *HorizontalLSB) pixOffset(x, y int) (offset int, mask byte) {
	x -= p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + x/8
	mask = 1 << uint(x&7)
	return
}
