package options

// VortexOptions carries the command line configuration. Fields are pointers
// so they can be bound directly to the flag package.
type VortexOptions struct {
	Help       *bool
	Mode       *string // "window", "record" or "snapshot"
	Duration   *float64
	FPS        *int
	Width      *int
	Height     *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string // "h264" or "hevc"
	Headless   *bool   // record through EGL instead of a hidden window

	// Effect tunables
	Speed      *float64
	Strength   *float64
	Brightness *float64
	Opacity    *float64
	Seed       *float64 // negative picks a random seed

	// Toggle / link behaviour
	RevealDuration *float64
	StartVisible   *bool
	LinkURL        *string

	// Software snapshot: shade at 1/Downscale and upscale
	Downscale *int
}

const (
	ModeWindow   = "window"
	ModeRecord   = "record"
	ModeSnapshot = "snapshot"
)
