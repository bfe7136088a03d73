// Package dotmatrix drives a monochrome 8×8 LED dot-matrix directly from 16
// GPIO lines.
//
// The matrix is row/column multiplexed: 8 row lines source current
// (active-high) and 8 column lines sink it (active-low), so driving one row
// high and one column low energizes exactly one LED. This driver implements
// the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 8×8 monochrome (on/off) pixels
// - One LED energized at a time, addressed by a row/column pair
// - Software PWM: each drawn pixel is held energized for a dwell time and
//   de-energized for the same time (50% duty cycle, 5µs per phase by default)
// - Brightness and persistence of vision come from continuously re-scanning
//   the lit pixel set
//
// # Hardware Connection
//
// Connect each matrix row anode to a GPIO through a current-limiting
// resistor and each column cathode to a GPIO. Row lines idle low, column
// lines idle high; both polarities are handled by the driver.
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"image"
//		"github.com/flavioheleno/dotmatrix"
//		"github.com/flavioheleno/dotmatrix/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Acquire the 16 output lines
//		dev, _ := dotmatrix.New(&dotmatrix.Opts{
//			Rows: [8]string{"GPIO8", "GPIO13", "GPIO7", "GPIO11", "GPIO0", "GPIO6", "GPIO1", "GPIO4"},
//			Cols: [8]string{"GPIO16", "GPIO2", "GPIO3", "GPIO9", "GPIO5", "GPIO10", "GPIO14", "GPIO15"},
//		})
//		defer dev.Halt()
//
//		// Draw a diagonal
//		img := image1bit.NewHorizontalLSB(dev.Bounds())
//		for i := 0; i < 8; i++ {
//			img.SetBit(i, i, image1bit.On)
//		}
//
//		// One call is one scan pass; keep calling to keep the LEDs lit
//		for {
//			dev.Draw(dev.Bounds(), img, image.Point{})
//		}
//	}
//
// # Drawing Modes
//
// The driver has two entry points:
//
// ## Pixel Stream
//
// DrawPixels flashes an explicit sequence of pixels. Coordinates outside the
// 8×8 window are skipped silently, which is what makes scrolled content that
// hangs off the edge of the display cheap to draw:
//
//	dev.DrawPixels([]dotmatrix.Pixel{
//		{P: image.Point{X: 3, Y: 5}, B: image1bit.On},
//	})
//
// ## display.Drawer
//
// Draw renders a region of any image.Image, converting colors through
// image1bit.BitModel. Use this with the standard image/draw machinery.
//
// # Scrolling Text
//
// The marquee subpackage rasterizes a message with the font5x8 face and
// animates it across the display, advancing one pixel per received tick:
//
//	scroller, _ := marquee.New("I bet you can't do this!")
//	ticks := make(chan struct{}, 16)
//	go scroller.Run(dev, ticks)
//	marquee.Tick(ticks, marquee.DefaultInterval)
//
// The render loop redraws the matrix as fast as the PWM dwell times allow;
// the tick interval only controls how fast the text moves.
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a
// display.Drawer.
package dotmatrix
