package encoder

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/richinsley/govortex/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered video frame's data, ready for encoding.
// Pixels are tightly packed RGBA rows, bottom row first as read back from GL.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// FFmpegEncoder pipes raw frames into an ffmpeg process.
type FFmpegEncoder struct {
	opts       *options.VortexOptions
	width      int
	height     int
	frameSize  int
	stream     *ffmpeg.Stream
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter

	videoFrames chan *Frame
	done        chan error
	closeOnce   sync.Once
}

// videoCodec picks an encoder for the platform. Hardware encoding is only
// assumed on macOS where VideoToolbox is always present.
func videoCodec(codecPref, goos string) string {
	hevc := codecPref == "hevc"
	switch goos {
	case "darwin":
		if hevc {
			return "hevc_videotoolbox"
		}
		return "h264_videotoolbox"
	default:
		if hevc {
			return "libx265"
		}
		return "libx264"
	}
}

func inputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       fps,
	}
}

func outputArgs(opts *options.VortexOptions, goos string) ffmpeg.KwArgs {
	codec := videoCodec(*opts.Codec, goos)
	args := ffmpeg.KwArgs{
		"c:v":     codec,
		"pix_fmt": "yuv420p",
		// GL readback is bottom-up
		"vf": "vflip",
	}
	if strings.HasSuffix(codec, "_videotoolbox") {
		args["b:v"] = "12M"
	} else {
		args["crf"] = 18
		args["preset"] = "medium"
	}
	if *opts.Codec == "hevc" && strings.EqualFold(filepath.Ext(*opts.OutputFile), ".mp4") {
		args["tag:v"] = "hvc1"
	}
	return args
}

// NewFFmpegEncoder validates the capture options and prepares the ffmpeg
// command. Nothing is started until Run.
func NewFFmpegEncoder(opts *options.VortexOptions) (*FFmpegEncoder, error) {
	width, height, fps := *opts.Width, *opts.Height, *opts.FPS
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", fps)
	}
	if *opts.OutputFile == "" {
		return nil, fmt.Errorf("no output file for recording")
	}

	pipeReader, pipeWriter := io.Pipe()
	stream := ffmpeg.Input("pipe:", inputArgs(width, height, fps)).
		Output(*opts.OutputFile, outputArgs(opts, runtime.GOOS)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != nil && *opts.FFMPEGPath != "" {
		stream = stream.SetFfmpegPath(*opts.FFMPEGPath)
	}

	return &FFmpegEncoder{
		opts:        opts,
		width:       width,
		height:      height,
		frameSize:   width * height * 4,
		stream:      stream,
		pipeReader:  pipeReader,
		pipeWriter:  pipeWriter,
		videoFrames: make(chan *Frame, 5),
		done:        make(chan error, 1),
	}, nil
}

// Args returns the ffmpeg command line that Run will execute.
func (e *FFmpegEncoder) Args() []string {
	return e.stream.GetArgs()
}

// Run is the consumer. It starts ffmpeg and writes frames until the frame
// channel is closed. It must be started in its own goroutine.
func (e *FFmpegEncoder) Run() {
	errc := make(chan error, 1)
	go func() {
		err := e.stream.Run()
		// nobody reads the pipe once ffmpeg is gone; fail pending writes
		if err != nil {
			e.pipeReader.CloseWithError(err)
		} else {
			e.pipeReader.CloseWithError(io.ErrClosedPipe)
		}
		errc <- err
	}()

	var writeErr error
	for frame := range e.videoFrames {
		// keep draining after a failure so SendVideo never blocks
		if writeErr != nil {
			continue
		}
		if len(frame.Pixels) != e.frameSize {
			writeErr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.frameSize)
			log.Printf("Error encoding frame: %v", writeErr)
			continue
		}
		if _, err := e.pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Printf("Error encoding frame: %v", writeErr)
		}
	}

	e.pipeWriter.Close()
	err := <-errc
	if err == nil {
		err = writeErr
	} else {
		err = fmt.Errorf("ffmpeg exited: %w", err)
	}
	e.done <- err
}

// SendVideo queues a frame for encoding.
func (e *FFmpegEncoder) SendVideo(frame *Frame) {
	e.videoFrames <- frame
}

// Close signals the end of the stream and waits for ffmpeg to finish.
func (e *FFmpegEncoder) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.videoFrames)
		err = <-e.done
		if err == nil {
			log.Printf("Encoder finished writing %s", *e.opts.OutputFile)
		}
	})
	return err
}
