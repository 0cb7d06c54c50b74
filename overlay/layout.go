package overlay

import "image"

const (
	buttonWidth  = 120
	buttonHeight = 36
	iconSize     = 40
	margin       = 24
)

// Layout places the toggle button at the bottom centre and the link icon in
// the top right corner of a framebuffer.
func Layout(fbWidth, fbHeight int) (button, link image.Rectangle) {
	bx := (fbWidth - buttonWidth) / 2
	by := fbHeight - margin - buttonHeight
	button = image.Rect(bx, by, bx+buttonWidth, by+buttonHeight)

	lx := fbWidth - margin - iconSize
	link = image.Rect(lx, margin, lx+iconSize, margin+iconSize)
	return button, link
}
