package encoder

import (
	"strings"
	"testing"
	"time"

	"github.com/richinsley/govortex/options"
)

func testOptions(width, height, fps int, codec, output string) *options.VortexOptions {
	path := ""
	return &options.VortexOptions{
		Width:      &width,
		Height:     &height,
		FPS:        &fps,
		Codec:      &codec,
		OutputFile: &output,
		FFMPEGPath: &path,
	}
}

func TestVideoCodec(t *testing.T) {
	tests := []struct {
		pref, goos, want string
	}{
		{"h264", "linux", "libx264"},
		{"hevc", "linux", "libx265"},
		{"h264", "darwin", "h264_videotoolbox"},
		{"hevc", "darwin", "hevc_videotoolbox"},
		{"", "windows", "libx264"},
	}
	for _, tc := range tests {
		if got := videoCodec(tc.pref, tc.goos); got != tc.want {
			t.Errorf("videoCodec(%q, %q) = %q, want %q", tc.pref, tc.goos, got, tc.want)
		}
	}
}

func TestOutputArgs(t *testing.T) {
	args := outputArgs(testOptions(640, 480, 30, "hevc", "out.MP4"), "linux")
	if args["tag:v"] != "hvc1" {
		t.Errorf("Expected hvc1 tag for hevc in mp4, got %v", args["tag:v"])
	}
	if args["vf"] != "vflip" {
		t.Errorf("Expected vflip filter, got %v", args["vf"])
	}
	if _, ok := args["crf"]; !ok {
		t.Error("Expected crf for software encoding")
	}

	args = outputArgs(testOptions(640, 480, 30, "h264", "out.mov"), "darwin")
	if _, ok := args["tag:v"]; ok {
		t.Error("Unexpected hvc1 tag for h264")
	}
	if args["b:v"] != "12M" {
		t.Errorf("Expected bitrate for VideoToolbox, got %v", args["b:v"])
	}
}

func TestNewFFmpegEncoderValidates(t *testing.T) {
	tests := []struct {
		name string
		opts *options.VortexOptions
	}{
		{"zero width", testOptions(0, 480, 30, "h264", "a.mp4")},
		{"zero fps", testOptions(640, 480, 0, "h264", "a.mp4")},
		{"no output", testOptions(640, 480, 30, "h264", "")},
	}
	for _, tc := range tests {
		if _, err := NewFFmpegEncoder(tc.opts); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestEncoderArgs(t *testing.T) {
	e, err := NewFFmpegEncoder(testOptions(320, 240, 60, "h264", "vortex.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	cmd := strings.Join(e.Args(), " ")
	for _, want := range []string{"-f rawvideo", "-pix_fmt rgba", "-s 320x240", "vortex.mp4", "-y"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("Expected %q in %q", want, cmd)
		}
	}
	if e.frameSize != 320*240*4 {
		t.Errorf("Expected frame size %d, got %d", 320*240*4, e.frameSize)
	}
}

func TestEncoderFailsWhenFFmpegMissing(t *testing.T) {
	opts := testOptions(4, 4, 30, "h264", "missing.mp4")
	*opts.FFMPEGPath = "/nonexistent/ffmpeg"
	e, err := NewFFmpegEncoder(opts)
	if err != nil {
		t.Fatal(err)
	}
	go e.Run()

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 20; i++ {
			e.SendVideo(&Frame{Pixels: make([]byte, 4*4*4), PTS: int64(i)})
		}
		done <- e.Close()
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Expected an error when ffmpeg cannot start")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Encoder did not return after ffmpeg failed to start")
	}
}
