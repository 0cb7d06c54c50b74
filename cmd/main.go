package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/richinsley/govortex/glfwcontext"
	"github.com/richinsley/govortex/graphics"
	"github.com/richinsley/govortex/headless"
	"github.com/richinsley/govortex/options"
	"github.com/richinsley/govortex/overlay"
	"github.com/richinsley/govortex/raster"
	"github.com/richinsley/govortex/renderer"
	"github.com/richinsley/govortex/reveal"
	"github.com/richinsley/govortex/vortex"
)

func newEffect(opts *options.VortexOptions) *vortex.Effect {
	var effect *vortex.Effect
	if *opts.Seed < 0 {
		effect = vortex.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	} else {
		effect = vortex.NewWithSeed(float32(*opts.Seed))
	}
	effect.SetSpeed(float32(*opts.Speed))
	effect.SetStrength(float32(*opts.Strength))
	effect.SetBrightness(float32(*opts.Brightness))
	effect.SetOpacity(float32(*opts.Opacity))
	effect.SetResolution(float32(*opts.Width), float32(*opts.Height))
	log.Printf("Vortex seed: %.4f", effect.Seed())
	return effect
}

func newMachine(opts *options.VortexOptions) *reveal.Machine {
	cfg := reveal.DefaultConfig()
	cfg.Duration = float32(*opts.RevealDuration)
	m := reveal.New(cfg)
	if *opts.StartVisible {
		m.Toggle()
		// settle immediately
		m.Update(cfg.Duration + 1)
	}
	return m
}

func runSnapshot(opts *options.VortexOptions, effect *vortex.Effect) {
	effect.Advance(float32(*opts.Duration))
	img, err := raster.RenderScaled(effect, *opts.Width, *opts.Height, *opts.Downscale, raster.DefaultOptions)
	if err != nil {
		log.Fatalf("Snapshot failed: %v", err)
	}
	f, err := os.Create(*opts.OutputFile)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *opts.OutputFile, err)
	}
	defer f.Close()
	if err := raster.WritePNG(f, img); err != nil {
		log.Fatalf("Failed to write %s: %v", *opts.OutputFile, err)
	}
	log.Printf("Successfully wrote %s", *opts.OutputFile)
}

func runVortex(opts *options.VortexOptions, effect *vortex.Effect, machine *reveal.Machine) {
	record := *opts.Mode == options.ModeRecord

	var ctx graphics.Context
	var err error
	if record && *opts.Headless {
		ctx, err = headless.New(*opts.Width, *opts.Height)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("Failed to initialize graphics: %v", err)
		}
		defer glfwcontext.TerminateGraphics()

		// If recording, the window will be hidden
		ctx, err = glfwcontext.New(*opts.Width, *opts.Height, "Vortex", !record)
		if err != nil {
			log.Fatalf("Failed to create window: %v", err)
		}
	}

	r, err := renderer.NewRenderer(opts, ctx, record)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	var link *overlay.Link
	if *opts.LinkURL != "" {
		link = overlay.NewLink(*opts.LinkURL, image.Rectangle{})
	}
	if err := r.InitScene(effect, machine, link); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	if record {
		log.Println("Starting offscreen render loop...")
		if err := r.RunOffscreen(opts); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}

	log.Println("Starting interactive render loop...")
	if err := r.Run(); err != nil {
		log.Fatalf("Render loop failed: %v", err)
	}
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.VortexOptions{
		Help:       flag.Bool("help", false, "Show help message"),
		Mode:       flag.String("mode", options.ModeWindow, "window, record or snapshot"),
		Duration:   flag.Float64("duration", 10.0, "Seconds to record, or effect time for a snapshot"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		Width:      flag.Int("width", 1280, "Width of the output"),
		Height:     flag.Int("height", 720, "Height of the output"),
		OutputFile: flag.String("output", "", "Output file (default vortex.mp4 or vortex.png)"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "Video codec: h264 or hevc"),
		Headless:   flag.Bool("headless", false, "Record through EGL without a display (Linux)"),

		Speed:      flag.Float64("speed", vortex.DefaultSpeed, "Animation speed"),
		Strength:   flag.Float64("strength", vortex.DefaultStrength, "Distortion strength"),
		Brightness: flag.Float64("brightness", vortex.DefaultBrightness, "Brightness multiplier"),
		Opacity:    flag.Float64("opacity", vortex.DefaultOpacity, "Base opacity"),
		Seed:       flag.Float64("seed", -1, "Noise seed in [0,1); negative picks a random one"),

		RevealDuration: flag.Float64("reveal", reveal.DefaultDuration, "Seconds for a full reveal or hide"),
		StartVisible:   flag.Bool("visible", false, "Start with the vortex revealed"),
		LinkURL:        flag.String("link", "", "URL opened by the link icon (VORTEX_LINK_URL if not set)"),

		Downscale: flag.Int("downscale", 1, "Snapshot: shade at 1/N resolution and upscale"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Vortex Viewer/Recorder")
		flag.PrintDefaults()
		return
	}

	if *opts.LinkURL == "" {
		*opts.LinkURL = os.Getenv("VORTEX_LINK_URL")
	}

	switch *opts.Mode {
	case options.ModeWindow, options.ModeRecord, options.ModeSnapshot:
	default:
		log.Fatalf("Unknown mode %q", *opts.Mode)
	}
	if *opts.OutputFile == "" {
		*opts.OutputFile = "vortex.mp4"
		if *opts.Mode == options.ModeSnapshot {
			*opts.OutputFile = "vortex.png"
		}
	}

	effect := newEffect(opts)
	if *opts.Mode == options.ModeSnapshot {
		runSnapshot(opts, effect)
		return
	}
	runVortex(opts, effect, newMachine(opts))
}
