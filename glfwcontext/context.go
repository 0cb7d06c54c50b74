package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/govortex/graphics"
)

var keyMap = map[graphics.Key]glfw.Key{
	graphics.KeySpace:  glfw.KeySpace,
	graphics.KeyEnter:  glfw.KeyEnter,
	graphics.KeyL:      glfw.KeyL,
	graphics.KeyEscape: glfw.KeyEscape,
}

// Context dispatches key and click callbacks registered by the renderer.
type Context struct {
	window         *glfw.Window
	keyCallbacks   map[glfw.Key]func()
	clickCallbacks []func(x, y float64)
}

var _ graphics.Context = (*Context)(nil)

// New creates a GLFW window with a 4.1 core context. A hidden window is used
// for offscreen capture.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) OnKeyPress(key graphics.Key, fn func()) {
	k, ok := keyMap[key]
	if !ok {
		log.Printf("glfwcontext: no mapping for key %d", key)
		return
	}
	c.RegisterKeyCallback(k, fn)
}

func (c *Context) OnMouseClick(fn func(x, y float64)) {
	c.clickCallbacks = append(c.clickCallbacks, fn)
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	// Escape always closes, even when a callback is registered for it.
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return
	}
	x, y := c.cursorFramebufferPos()
	for _, fn := range c.clickCallbacks {
		fn(x, y)
	}
}

// cursorFramebufferPos converts the cursor from window coordinates to
// framebuffer pixels (they differ on HiDPI displays).
func (c *Context) cursorFramebufferPos() (float64, float64) {
	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}
	cursorX, cursorY := c.window.GetCursorPos()
	return cursorX * scaleX, cursorY * scaleY
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown only destroys the window; TerminateGraphics shuts GLFW down.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// IsGLES is always false; GLFW is configured for a desktop core profile.
func (c *Context) IsGLES() bool {
	return false
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
