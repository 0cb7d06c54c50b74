package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/pkg/browser"
)

var ErrNoURL = errors.New("no link url configured")

// Opener opens a URL outside the application.
type Opener func(url string) error

// Link is the clickable icon that opens an external page. It has no effect
// on the vortex or the toggle state.
type Link struct {
	URL    string
	Bounds image.Rectangle

	open Opener
	img  *image.RGBA
}

// NewLink creates a link that opens url in the system browser.
func NewLink(url string, bounds image.Rectangle) *Link {
	return &Link{URL: url, Bounds: bounds, open: browser.OpenURL}
}

// WithOpener replaces the browser launcher.
func (l *Link) WithOpener(open Opener) *Link {
	l.open = open
	return l
}

func (l *Link) Contains(x, y float64) bool {
	return contains(l.Bounds, x, y)
}

// Open launches the URL. Failures are returned for the caller to log; they
// never affect rendering.
func (l *Link) Open() error {
	if l.URL == "" {
		return ErrNoURL
	}
	log.Printf("overlay: opening %s", l.URL)
	if err := l.open(l.URL); err != nil {
		return fmt.Errorf("failed to open %s: %w", l.URL, err)
	}
	return nil
}

// Image returns the round link icon, drawn once per size.
func (l *Link) Image() (*image.RGBA, bool) {
	size := l.Bounds.Size()
	if l.img != nil && l.img.Bounds().Size() == size {
		return l.img, false
	}
	l.img = drawIcon(size)
	return l.img, true
}

var (
	iconFill = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	iconRing = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
)

func drawIcon(size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	cx, cy := float64(size.X)/2, float64(size.Y)/2
	r := min(cx, cy)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d2 := dx*dx + dy*dy
			switch {
			case d2 > r*r:
				// transparent outside the disc
			case d2 > (r-2)*(r-2):
				img.SetRGBA(x, y, iconRing)
			default:
				img.SetRGBA(x, y, iconFill)
			}
		}
	}
	drawCentredText(img, "www", iconRing)
	return img
}
