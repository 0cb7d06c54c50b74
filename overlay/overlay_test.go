package overlay

import (
	"errors"
	"image"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/richinsley/govortex/reveal"
)

func TestButtonFollowsMachine(t *testing.T) {
	m := reveal.New(reveal.Config{})
	b := NewButton(m, image.Rect(10, 10, 130, 46))

	first, changed := b.Image()
	if !changed || first == nil {
		t.Fatal("Expected the first Image call to draw")
	}
	if _, changed := b.Image(); changed {
		t.Error("Expected a cached image while the label is unchanged")
	}

	blue, _ := colorful.Hex(reveal.DefaultOpenAccent)
	r, g, bl := blue.RGB255()
	if got := first.RGBAAt(5, 5); got.R != r || got.G != g || got.B != bl {
		t.Errorf("Expected blue plate, got %v", got)
	}

	m.Toggle()
	second, changed := b.Image()
	if !changed {
		t.Fatal("Expected a redraw after the label flipped")
	}
	red, _ := colorful.Hex(reveal.DefaultCloseAccent)
	r, g, bl = red.RGB255()
	if got := second.RGBAAt(5, 5); got.R != r || got.G != g || got.B != bl {
		t.Errorf("Expected red plate, got %v", got)
	}
}

func TestButtonDrawsLabel(t *testing.T) {
	m := reveal.New(reveal.Config{})
	img, _ := NewButton(m, image.Rect(0, 0, 120, 36)).Image()

	white := 0
	for y := 0; y < 36; y++ {
		for x := 0; x < 120; x++ {
			if c := img.RGBAAt(x, y); c.R == 0xff && c.G == 0xff && c.B == 0xff {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("Expected label pixels on the plate")
	}
}

func TestHitTesting(t *testing.T) {
	button, link := Layout(800, 600)

	tests := []struct {
		name string
		rect image.Rectangle
		x, y float64
		want bool
	}{
		{"button centre", button, 400, float64(button.Min.Y + 5), true},
		{"button outside", button, 10, 10, false},
		{"link inside", link, float64(link.Min.X + 1), float64(link.Min.Y + 1), true},
		{"link right edge excluded", link, float64(link.Max.X), float64(link.Min.Y + 1), false},
	}
	for _, tc := range tests {
		if got := contains(tc.rect, tc.x, tc.y); got != tc.want {
			t.Errorf("%s: contains(%v, %v, %v) = %v", tc.name, tc.rect, tc.x, tc.y, got)
		}
	}
	if button.Overlaps(link) {
		t.Error("Button and link must not overlap")
	}
}

func TestLinkOpen(t *testing.T) {
	var opened []string
	l := NewLink("https://example.com/phone", image.Rect(0, 0, 40, 40)).
		WithOpener(func(url string) error {
			opened = append(opened, url)
			return nil
		})

	if err := l.Open(); err != nil {
		t.Fatal(err)
	}
	if len(opened) != 1 || opened[0] != "https://example.com/phone" {
		t.Errorf("Expected one open of the url, got %v", opened)
	}

	boom := errors.New("no browser")
	l.WithOpener(func(string) error { return boom })
	if err := l.Open(); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped opener error, got %v", err)
	}

	if err := NewLink("", image.Rectangle{}).Open(); !errors.Is(err, ErrNoURL) {
		t.Errorf("Expected ErrNoURL, got %v", err)
	}
}

func TestLinkIcon(t *testing.T) {
	l := NewLink("https://example.com", image.Rect(0, 0, 40, 40))
	img, changed := l.Image()
	if !changed {
		t.Fatal("Expected first draw")
	}
	if c := img.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("Expected transparent corner, got %v", c)
	}
	if c := img.RGBAAt(20, 0); c != iconRing {
		t.Errorf("Expected ring colour at the top edge, got %v", c)
	}
}
