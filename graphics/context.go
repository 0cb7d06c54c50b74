package graphics

// Key identifies the keys the viewer reacts to.
type Key int

const (
	KeySpace Key = iota
	KeyEnter
	KeyL
	KeyEscape
)

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	IsGLES() bool
	// OnKeyPress registers fn to run when key is pressed.
	OnKeyPress(key Key, fn func())
	// OnMouseClick registers fn to run on a left click. Coordinates are in
	// framebuffer pixels with the origin at the top left.
	OnMouseClick(fn func(x, y float64))
}
