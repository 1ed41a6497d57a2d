package renderer

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	options "github.com/richinsley/goshaderdemos/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Recorder pipes offscreen frames to an ffmpeg process.
type Recorder struct {
	offscreen *Offscreen
	frames    chan []byte
	done      chan error
	closed    bool
}

// encoderArgs picks the ffmpeg input and output arguments for raw RGBA
// frames of the given size.
func encoderArgs(goos, codec, outputFile string, width, height, fps int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}

	// GL rows arrive bottom first.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}

	switch goos {
	case "darwin":
		if codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}

	if codec == "hevc" && strings.HasSuffix(outputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// NewRecorder starts the encoder for frames rendered into o.
func NewRecorder(opts *options.DemoOptions, o *Offscreen) *Recorder {
	rec := &Recorder{
		offscreen: o,
		frames:    make(chan []byte, 3),
		done:      make(chan error, 1),
	}
	go rec.runEncoder(opts)
	return rec
}

// runEncoder is the consumer. It feeds frames to ffmpeg until the channel
// is closed or ffmpeg stops reading.
func (rec *Recorder) runEncoder(opts *options.DemoOptions) {
	width, height := rec.offscreen.Size()
	inputArgs, outputArgs := encoderArgs(runtime.GOOS, *opts.Codec, *opts.OutputFile, width, height, *opts.FPS)

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	var writeErr error
	for frame := range rec.frames {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame); err != nil {
			writeErr = fmt.Errorf("failed to write frame to ffmpeg: %w", err)
			log.Printf("Error: %v", writeErr)
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		rec.done <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	rec.done <- writeErr
}

// Capture reads the current offscreen frame and queues it for encoding.
// Encoder failures surface from Close.
func (rec *Recorder) Capture(frame int) error {
	if rec.closed {
		return fmt.Errorf("frame %d: recorder is closed", frame)
	}
	pixels := rec.offscreen.ReadPixels()
	buf := make([]byte, len(pixels))
	copy(buf, pixels)
	rec.frames <- buf
	return nil
}

// Close flushes the remaining frames and waits for ffmpeg to exit.
func (rec *Recorder) Close() error {
	if rec.closed {
		return nil
	}
	rec.closed = true
	close(rec.frames)
	return <-rec.done
}
