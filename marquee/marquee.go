// Package marquee scrolls a line of text horizontally across a dot-matrix
// display.
//
// The text is rasterized once at construction. A Scroller then redraws the
// matrix continuously from its render loop while the scroll position only
// advances when a tick is received, so the refresh rate of the matrix is
// decoupled from the animation speed.
package marquee

import (
	"errors"
	"image"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/flavioheleno/dotmatrix"
	"github.com/flavioheleno/dotmatrix/font5x8"
	"github.com/flavioheleno/dotmatrix/image1bit"
)

// DefaultInterval is the default time between animation frames (5 frames
// per second).
const DefaultInterval = 200 * time.Millisecond

// Display is the drawing surface a Scroller renders to. *dotmatrix.Dev
// implements it.
type Display interface {
	Bounds() image.Rectangle
	DrawPixels([]dotmatrix.Pixel) error
}

// Scroller animates a fixed message across a Display.
//
// A Scroller is not safe for concurrent use: Advance, Render and Run must
// all be called from the same goroutine. The tick channel is the only thing
// shared with other goroutines.
type Scroller struct {
	width  int           // bounding-box width of the rendered message
	lit    []image.Point // lit pixels of the message, row-major
	offset uint          // total ticks received; wraps

	buf []dotmatrix.Pixel // reused between frames
}

// New rasterizes msg with the 5x8 face and returns a Scroller positioned at
// offset zero. The message must render to at least one column.
func New(msg string) (*Scroller, error) {
	width := font.MeasureString(font5x8.Face, msg).Ceil() - font5x8.Gap
	if width <= 0 {
		return nil, errors.New("marquee: empty message")
	}

	strip := image1bit.NewHorizontalLSB(image.Rect(0, 0, width, font5x8.GlyphHeight))
	d := font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(image1bit.On),
		Face: font5x8.Face,
		Dot:  fixed.P(0, font5x8.Face.Ascent),
	}
	d.DrawString(msg)

	s := &Scroller{width: width}
	for y := 0; y < font5x8.GlyphHeight; y++ {
		for x := 0; x < width; x++ {
			if strip.BitAt(x, y) {
				s.lit = append(s.lit, image.Point{X: x, Y: y})
			}
		}
	}
	return s, nil
}

// Width returns the bounding-box width of the rendered message in pixels.
func (s *Scroller) Width() int {
	return s.width
}

// Advance moves the scroll position n frames forward. The position wraps
// modulo the message width.
func (s *Scroller) Advance(n int) {
	s.offset += uint(n)
}

// Offset returns the effective scroll offset, in [0, Width).
func (s *Scroller) Offset() int {
	return int(s.offset % uint(s.width))
}

// Render draws one frame: the lit pixels of the message translated left by
// the current offset. Pixels that fall outside the display are dropped by
// the display itself.
func (s *Scroller) Render(d Display) error {
	off := s.Offset()
	s.buf = s.buf[:0]
	for _, p := range s.lit {
		s.buf = append(s.buf, dotmatrix.Pixel{
			P: image.Point{X: p.X - off, Y: p.Y},
			B: image1bit.On,
		})
	}
	return d.DrawPixels(s.buf)
}

// Run renders frames in a tight loop until the tick channel is closed or the
// display reports an error.
//
// Each iteration drains every pending tick without blocking and advances the
// scroll position by exactly the number drained, so ticks that pile up while
// a frame is being drawn are coalesced into one multi-step advance rather
// than lost. When zero ticks are pending the same frame is drawn again,
// which is what keeps the LEDs lit between animation steps.
func (s *Scroller) Run(d Display, ticks <-chan struct{}) error {
	for {
		n, open := drainTicks(ticks)
		s.Advance(n)
		if err := s.Render(d); err != nil {
			return err
		}
		if !open {
			return nil
		}
	}
}

// drainTicks receives every immediately available tick. It reports false
// once the channel is closed.
func drainTicks(ticks <-chan struct{}) (n int, open bool) {
	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return n, false
			}
			n++
		default:
			return n, true
		}
	}
}

// Tick sends one tick on the channel at the given interval, forever. It is
// meant to run on its own goroutine (typically the main one, mirroring the
// render loop running on another). A send on a closed channel panics, which
// is the intended fatal path when the consumer is gone.
func Tick(ticks chan<- struct{}, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		ticks <- struct{}{}
	}
}
