// Package audio drives microphone capture and speech playback through
// external tools found on PATH, so the rest of the application only
// sees byte slices.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"

	xexec "github.com/yfkiwi/voicefirst/pkg/exec"
)

// RecorderState tracks the capture sub-state machine.
type RecorderState int

const (
	// StateIdle means no capture is in progress.
	StateIdle RecorderState = iota
	// StateRecording means the capture process is running.
	StateRecording
)

// ErrNoCaptureTool is returned when no supported capture tool is
// installed.
var ErrNoCaptureTool = fmt.Errorf("no audio capture tool found (tried ffmpeg, sox, arecord)")

// captureTool describes one supported capture command.
type captureTool struct {
	name string
	args func(outPath string) []string
}

func captureTools() []captureTool {
	ffmpegInput := func() []string {
		if runtime.GOOS == "darwin" {
			return []string{"-f", "avfoundation", "-i", ":0"}
		}
		return []string{"-f", "alsa", "-i", "default"}
	}

	return []captureTool{
		{
			name: "ffmpeg",
			args: func(outPath string) []string {
				args := []string{"-y", "-loglevel", "error"}
				args = append(args, ffmpegInput()...)
				return append(args, outPath)
			},
		},
		{
			name: "sox",
			args: func(outPath string) []string {
				return []string{"-d", outPath}
			},
		},
		{
			name: "arecord",
			args: func(outPath string) []string {
				return []string{"-f", "cd", "-t", "wav", outPath}
			},
		},
	}
}

// Recorder captures microphone audio to a temporary file via an
// external tool. The capture process is released on every stop path,
// including errors and teardown, so a departing session never leaves
// the device held open.
type Recorder struct {
	executor xexec.CommandExecutor
	state    RecorderState
	proc     xexec.Process
	outPath  string
	log      *logrus.Entry
}

// NewRecorder creates a recorder using the given executor.
func NewRecorder(executor xexec.CommandExecutor) *Recorder {
	return &Recorder{
		executor: executor,
		log:      logrus.WithField("component", "recorder"),
	}
}

// State returns the current capture state.
func (r *Recorder) State() RecorderState {
	return r.state
}

// Filename is the upload name used for captured blobs.
func (r *Recorder) Filename() string {
	return "capture.wav"
}

// Start begins capturing. Failure to find a tool or to start it
// surfaces an error and leaves the recorder idle; Recording is only
// entered once the capture process is running.
func (r *Recorder) Start() error {
	if r.state == StateRecording {
		return fmt.Errorf("capture already in progress")
	}

	tool, err := r.findTool()
	if err != nil {
		return err
	}

	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("voicefirst-capture-%d.wav", os.Getpid()))
	proc, err := r.executor.Start(tool.name, tool.args(outPath)...)
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("start capture: %w", err)
	}

	r.proc = proc
	r.outPath = outPath
	r.state = StateRecording
	r.log.WithField("tool", tool.name).Debug("recording started")
	return nil
}

// Stop ends the capture and returns the recorded bytes. A clean stop
// with no captured data returns (nil, nil): no blob, no error. When
// not recording, Stop is a no-op.
func (r *Recorder) Stop() ([]byte, error) {
	if r.state != StateRecording {
		return nil, nil
	}
	defer r.reset()

	if err := r.proc.Interrupt(); err != nil {
		r.proc.Kill()
		return nil, fmt.Errorf("stop capture: %w", err)
	}
	// Capture tools exit non-zero on SIGINT after flushing the file;
	// the exit status is not a failure here.
	if err := r.proc.Wait(); err != nil {
		r.log.WithError(err).Debug("capture process exit")
	}

	data, err := os.ReadFile(r.outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read captured audio: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// Abort terminates any in-progress capture without returning audio.
// Safe to call on teardown regardless of state.
func (r *Recorder) Abort() {
	if r.state != StateRecording {
		return
	}
	r.proc.Kill()
	r.proc.Wait()
	r.reset()
}

func (r *Recorder) reset() {
	if r.outPath != "" {
		os.Remove(r.outPath)
	}
	r.proc = nil
	r.outPath = ""
	r.state = StateIdle
}

func (r *Recorder) findTool() (captureTool, error) {
	for _, tool := range captureTools() {
		if _, err := r.executor.LookPath(tool.name); err == nil {
			return tool, nil
		}
	}
	return captureTool{}, ErrNoCaptureTool
}
