package dotmatrix

import (
	"errors"
	"fmt"
	"image"
	"testing"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/flavioheleno/dotmatrix/image1bit"
)

// Dev must satisfy the periph.io display contract.
var _ display.Drawer = &Dev{}

// recordPin wraps a gpiotest.Pin and records every level written to it.
type recordPin struct {
	gpiotest.Pin
	writes []gpio.Level
}

func (p *recordPin) Out(l gpio.Level) error {
	p.writes = append(p.writes, l)
	return p.Pin.Out(l)
}

// failPin fails every write.
type failPin struct {
	gpiotest.Pin
}

func (p *failPin) Out(l gpio.Level) error {
	return errors.New("injected fault")
}

type bench struct {
	pins map[string]*recordPin
	opts *Opts
}

func newBench() *bench {
	b := &bench{pins: map[string]*recordPin{}}
	b.opts = &Opts{
		Dwell: time.Microsecond,
		ByName: func(name string) gpio.PinIO {
			p, ok := b.pins[name]
			if !ok {
				return nil
			}
			return p
		},
	}
	for i := 0; i < Height; i++ {
		name := fmt.Sprintf("R%d", i+1)
		b.pins[name] = &recordPin{Pin: gpiotest.Pin{N: name, Num: i}}
		b.opts.Rows[i] = name
	}
	for i := 0; i < Width; i++ {
		name := fmt.Sprintf("C%d", i+1)
		b.pins[name] = &recordPin{Pin: gpiotest.Pin{N: name, Num: Height + i}}
		b.opts.Cols[i] = name
	}
	return b
}

func (b *bench) dev(t *testing.T) *Dev {
	t.Helper()
	d, err := New(b.opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// Discard the writes made while configuring the lines.
	for _, p := range b.pins {
		p.writes = nil
	}
	return d
}

func (b *bench) row(i int) *recordPin { return b.pins[fmt.Sprintf("R%d", i+1)] }
func (b *bench) col(i int) *recordPin { return b.pins[fmt.Sprintf("C%d", i+1)] }

func (b *bench) totalWrites() int {
	n := 0
	for _, p := range b.pins {
		n += len(p.writes)
	}
	return n
}

func TestNewInitialLevels(t *testing.T) {
	b := newBench()
	if _, err := New(b.opts); err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	for i := 0; i < Height; i++ {
		p := b.row(i)
		if len(p.writes) != 1 || p.L != gpio.Low {
			t.Errorf("row %d: writes = %v, level = %v, want one Low write", i+1, p.writes, p.L)
		}
	}
	for i := 0; i < Width; i++ {
		p := b.col(i)
		if len(p.writes) != 1 || p.L != gpio.High {
			t.Errorf("col %d: writes = %v, level = %v, want one High write", i+1, p.writes, p.L)
		}
	}
}

func TestNewFailsAsAWhole(t *testing.T) {
	tests := []struct {
		name   string
		breakf func(b *bench)
	}{
		{"missing row 3", func(b *bench) { delete(b.pins, "R3") }},
		{"missing col 8", func(b *bench) { delete(b.pins, "C8") }},
		{"unnamed row", func(b *bench) { b.opts.Rows[0] = "" }},
		{"unconfigurable col", func(b *bench) {
			byName := b.opts.ByName
			b.opts.ByName = func(name string) gpio.PinIO {
				if name == "C5" {
					return &failPin{Pin: gpiotest.Pin{N: name}}
				}
				return byName(name)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBench()
			tt.breakf(b)
			d, err := New(b.opts)
			if err == nil {
				t.Fatal("New() should have failed")
			}
			if d != nil {
				t.Error("New() returned a device alongside an error")
			}
		})
	}
}

func TestNewOptsValidation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should have failed")
	}

	b := newBench()
	b.opts.Dwell = -time.Microsecond
	if _, err := New(b.opts); err == nil {
		t.Error("New() with negative dwell should have failed")
	}
}

func TestDriveLevel(t *testing.T) {
	tests := []struct {
		name string
		role lineRole
		in   gpio.Level
		want gpio.Level
	}{
		{"row on", roleRow, gpio.High, gpio.High},
		{"row off", roleRow, gpio.Low, gpio.Low},
		{"col on", roleCol, gpio.High, gpio.Low},
		{"col off", roleCol, gpio.Low, gpio.High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := driveLevel(tt.role, tt.in); got != tt.want {
				t.Errorf("driveLevel(%v, %v) = %v, want %v", tt.role, tt.in, got, tt.want)
			}
		})
	}
}

func TestDrawPixelsOutOfBounds(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	err := d.DrawPixels([]Pixel{
		{P: image.Point{X: 8, Y: 0}, B: image1bit.On},
		{P: image.Point{X: 0, Y: 8}, B: image1bit.On},
		{P: image.Point{X: -1, Y: 3}, B: image1bit.On},
		{P: image.Point{X: 3, Y: -1}, B: image1bit.On},
	})
	if err != nil {
		t.Fatalf("DrawPixels() failed: %v", err)
	}
	if n := b.totalWrites(); n != 0 {
		t.Errorf("out-of-bounds pixels caused %d line writes, want 0", n)
	}
}

func TestDrawPixelsCorner(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	// (7,7) is the last addressable pixel: column 8 and row 8.
	if err := d.DrawPixels([]Pixel{{P: image.Point{X: 7, Y: 7}, B: image1bit.On}}); err != nil {
		t.Fatalf("DrawPixels() failed: %v", err)
	}
	if len(b.col(7).writes) != 2 || len(b.row(7).writes) != 2 {
		t.Errorf("col 8 writes = %v, row 8 writes = %v, want 2 each",
			b.col(7).writes, b.row(7).writes)
	}
	if n := b.totalWrites(); n != 4 {
		t.Errorf("total writes = %d, want 4 (no other line touched)", n)
	}
}

func TestDrawPixelsFlashSequence(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	if err := d.DrawPixels([]Pixel{{P: image.Point{X: 2, Y: 4}, B: image1bit.On}}); err != nil {
		t.Fatalf("DrawPixels() failed: %v", err)
	}

	// Column sinks: active Low then restored High.
	col := b.col(2)
	if len(col.writes) != 2 || col.writes[0] != gpio.Low || col.writes[1] != gpio.High {
		t.Errorf("col 3 writes = %v, want [Low High]", col.writes)
	}
	// Row sources: active High then restored Low.
	row := b.row(4)
	if len(row.writes) != 2 || row.writes[0] != gpio.High || row.writes[1] != gpio.Low {
		t.Errorf("row 5 writes = %v, want [High Low]", row.writes)
	}

	// The flash is transient: both lines end at their resting level.
	if col.L != gpio.High || row.L != gpio.Low {
		t.Errorf("resting levels = col %v, row %v, want High/Low", col.L, row.L)
	}
}

func TestDrawPixelsSequenceOrder(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	pixels := []Pixel{
		{P: image.Point{X: 0, Y: 0}, B: image1bit.On},
		{P: image.Point{X: 9, Y: 9}, B: image1bit.On}, // dropped
		{P: image.Point{X: 1, Y: 0}, B: image1bit.On},
	}
	if err := d.DrawPixels(pixels); err != nil {
		t.Fatalf("DrawPixels() failed: %v", err)
	}
	// One flash per in-bounds pixel, serialized on the shared row line.
	if got := b.row(0).writes; len(got) != 4 {
		t.Errorf("row 1 writes = %v, want 4 writes (two flashes)", got)
	}
}

func TestDrawImage(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	img := image1bit.NewHorizontalLSB(d.Bounds())
	for i := 0; i < Width; i++ {
		img.SetBit(i, i, image1bit.On)
	}

	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	// The diagonal flashes each row and column line exactly once.
	for i := 0; i < Width; i++ {
		if len(b.col(i).writes) != 2 {
			t.Errorf("col %d writes = %v, want 2", i+1, b.col(i).writes)
		}
		if len(b.row(i).writes) != 2 {
			t.Errorf("row %d writes = %v, want 2", i+1, b.row(i).writes)
		}
	}
}

func TestDrawOutsideBounds(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	img := image1bit.NewHorizontalLSB(image.Rect(0, 0, 8, 8))
	img.SetBit(0, 0, image1bit.On)

	if err := d.Draw(image.Rect(20, 20, 30, 30), img, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if n := b.totalWrites(); n != 0 {
		t.Errorf("draw outside bounds caused %d line writes, want 0", n)
	}
}

func TestHalt(t *testing.T) {
	b := newBench()
	d := b.dev(t)

	// Disturb a couple of lines, then halt.
	b.row(2).Pin.Out(gpio.High)
	b.col(5).Pin.Out(gpio.Low)

	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() failed: %v", err)
	}
	for i := 0; i < Height; i++ {
		if b.row(i).L != gpio.Low {
			t.Errorf("row %d level = %v after Halt, want Low", i+1, b.row(i).L)
		}
	}
	for i := 0; i < Width; i++ {
		if b.col(i).L != gpio.High {
			t.Errorf("col %d level = %v after Halt, want High", i+1, b.col(i).L)
		}
	}
}

func TestDevBounds(t *testing.T) {
	b := newBench()
	d := b.dev(t)
	want := image.Rect(0, 0, 8, 8)
	if got := d.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestDevColorModel(t *testing.T) {
	b := newBench()
	d := b.dev(t)
	if d.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}

func TestDevString(t *testing.T) {
	b := newBench()
	d := b.dev(t)
	want := "dotmatrix.Dev{8x8}"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
