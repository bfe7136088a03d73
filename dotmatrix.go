// Package dotmatrix drives an 8x8 monochrome LED dot-matrix directly from
// 16 GPIO lines, one per row and one per column.
//
// See the examples for how to use this package.
package dotmatrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/flavioheleno/dotmatrix/image1bit"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Width and Height are the fixed dimensions of the matrix in pixels.
const (
	Width  = 8
	Height = 8
)

// DefaultDwell is the hold time for each phase of a pixel flash. Each drawn
// pixel energizes its LED for one dwell and de-energizes it for another,
// giving a 50% duty cycle.
const DefaultDwell = 5 * time.Microsecond

// Pixel is one logical pixel update: a coordinate and its level.
type Pixel struct {
	P image.Point
	B image1bit.Bit
}

// Opts is the configuration for the matrix.
type Opts struct {
	// Rows and Cols name the GPIO lines wired to the matrix, top to bottom
	// and left to right. Rows are driven active-high (source side), columns
	// active-low (sink side).
	Rows [Height]string
	Cols [Width]string

	// Dwell is the hold time for each phase of a pixel flash.
	// DefaultDwell is used when zero.
	Dwell time.Duration

	// ByName looks up a GPIO line by name and must return nil for unknown
	// names. gpioreg.ByName is used when nil.
	ByName func(name string) gpio.PinIO
}

// Dev is the device handle for the matrix.
//
// All 16 lines are owned exclusively by the Dev for the life of the process.
// Dev is not safe for concurrent use; it is meant to be driven from a single
// rendering goroutine.
type Dev struct {
	rows  [Height]gpio.PinOut
	cols  [Width]gpio.PinOut
	rect  image.Rectangle
	dwell time.Duration
}

// New acquires the 16 output lines named in opts and returns a device handle.
//
// Row lines are configured as outputs at the inactive (low) level and column
// lines at the inactive (high) level. If any single line cannot be looked up
// or configured, construction fails as a whole and no device is returned.
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		return nil, errors.New("dotmatrix: opts are required")
	}

	byName := opts.ByName
	if byName == nil {
		byName = gpioreg.ByName
	}

	dwell := opts.Dwell
	if dwell == 0 {
		dwell = DefaultDwell
	} else if dwell < 0 {
		return nil, errors.New("dotmatrix: dwell must be positive")
	}

	d := &Dev{
		rect:  image.Rect(0, 0, Width, Height),
		dwell: dwell,
	}

	for i, name := range opts.Rows {
		p, err := acquire(byName, name, gpio.Low)
		if err != nil {
			return nil, fmt.Errorf("dotmatrix: row %d: %w", i+1, err)
		}
		d.rows[i] = p
	}
	for i, name := range opts.Cols {
		p, err := acquire(byName, name, gpio.High)
		if err != nil {
			return nil, fmt.Errorf("dotmatrix: col %d: %w", i+1, err)
		}
		d.cols[i] = p
	}

	return d, nil
}

// acquire looks up one line and configures it as an output at its inactive
// level.
func acquire(byName func(string) gpio.PinIO, name string, idle gpio.Level) (gpio.PinOut, error) {
	if name == "" {
		return nil, errors.New("no pin name")
	}
	p := byName(name)
	if p == nil {
		return nil, fmt.Errorf("no such pin %q", name)
	}
	if err := p.Out(idle); err != nil {
		return nil, fmt.Errorf("configuring %q: %w", name, err)
	}
	return p, nil
}

// lineRole identifies which side of the matrix a line drives.
type lineRole int

const (
	roleRow lineRole = iota
	roleCol
)

// driveLevel maps a logical pixel level to the physical level written to a
// line. Rows source current (active-high), columns sink it (active-low), so
// the two sides are driven at complementary polarity. This is the only place
// the wiring polarity is encoded.
func driveLevel(role lineRole, l gpio.Level) gpio.Level {
	if role == roleCol {
		return !l
	}
	return l
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// DrawPixels flashes each pixel in the sequence, in order.
//
// Coordinates outside the 8x8 window are skipped silently; scrolled content
// is expected to fall partially off-screen. Each in-bounds pixel addresses
// exactly one row/column pair, holds it at the requested level for the dwell
// time and then at the complementary level for the same time, so only one
// LED is ever energized at once and every line is back at its resting level
// when the call returns. Brightness comes entirely from re-scanning the set
// of lit pixels at a high rate.
func (d *Dev) DrawPixels(pixels []Pixel) error {
	for _, px := range pixels {
		if !px.P.In(d.rect) {
			continue
		}
		if err := d.flash(px.P, gpio.Level(px.B)); err != nil {
			return err
		}
	}
	return nil
}

// flash performs the two-phase PWM pulse for a single in-bounds pixel.
func (d *Dev) flash(p image.Point, l gpio.Level) error {
	col := d.cols[p.X]
	row := d.rows[p.Y]

	if err := col.Out(driveLevel(roleCol, l)); err != nil {
		return fmt.Errorf("dotmatrix: col %d: %w", p.X+1, err)
	}
	if err := row.Out(driveLevel(roleRow, l)); err != nil {
		return fmt.Errorf("dotmatrix: row %d: %w", p.Y+1, err)
	}
	time.Sleep(d.dwell)

	if err := col.Out(driveLevel(roleCol, !l)); err != nil {
		return fmt.Errorf("dotmatrix: col %d: %w", p.X+1, err)
	}
	if err := row.Out(driveLevel(roleRow, !l)); err != nil {
		return fmt.Errorf("dotmatrix: row %d: %w", p.Y+1, err)
	}
	time.Sleep(d.dwell)

	return nil
}

// Draw draws an image onto the display.
//
// The dst rectangle specifies the destination region on the display and is
// clipped to the display bounds. Only pixels that convert to On under
// BitModel are flashed; dark pixels cost nothing. It implements
// display.Drawer.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			c := src.At(sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y)
			if !image1bit.BitModel.Convert(c).(image1bit.Bit) {
				continue
			}
			if err := d.flash(image.Point{X: x, Y: y}, gpio.High); err != nil {
				return err
			}
		}
	}
	return nil
}

// Halt drives every line to its resting level, blanking the display.
func (d *Dev) Halt() error {
	for i, p := range d.rows {
		if err := p.Out(driveLevel(roleRow, gpio.Low)); err != nil {
			return fmt.Errorf("dotmatrix: row %d: %w", i+1, err)
		}
	}
	for i, p := range d.cols {
		if err := p.Out(driveLevel(roleCol, gpio.Low)); err != nil {
			return fmt.Errorf("dotmatrix: col %d: %w", i+1, err)
		}
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("dotmatrix.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
