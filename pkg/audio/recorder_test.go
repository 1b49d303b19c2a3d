package audio

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xexec "github.com/yfkiwi/voicefirst/pkg/exec"
)

func TestStartStopCapturesAudio(t *testing.T) {
	var proc *xexec.MockProcess
	executor := &xexec.MockCommandExecutor{
		StartFunc: func(name string, arg ...string) (xexec.Process, error) {
			outPath := arg[len(arg)-1]
			proc = &xexec.MockProcess{
				// The capture tool flushes the file when interrupted.
				OnInterrupt: func() {
					os.WriteFile(outPath, []byte("RIFFwavedata"), 0644)
				},
			}
			return proc, nil
		},
	}

	rec := NewRecorder(executor)
	assert.Equal(t, StateIdle, rec.State())

	require.NoError(t, rec.Start())
	assert.Equal(t, StateRecording, rec.State())
	require.Len(t, executor.Commands, 1)
	assert.True(t, strings.HasPrefix(executor.Commands[0], "ffmpeg "))

	data, err := rec.Stop()
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFFwavedata"), data)
	assert.True(t, proc.Interrupted)
	assert.Equal(t, StateIdle, rec.State())
}

func TestStopWithEmptyCaptureReturnsNothing(t *testing.T) {
	executor := &xexec.MockCommandExecutor{}

	rec := NewRecorder(executor)
	require.NoError(t, rec.Start())

	// The mock process never writes the output file.
	data, err := rec.Stop()
	assert.NoError(t, err, "an empty capture is not an error")
	assert.Nil(t, data)
	assert.Equal(t, StateIdle, rec.State())
}

func TestStopWhileIdleIsNoOp(t *testing.T) {
	rec := NewRecorder(&xexec.MockCommandExecutor{})
	data, err := rec.Stop()
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestStartFallsBackThroughTools(t *testing.T) {
	executor := &xexec.MockCommandExecutor{
		LookPathFunc: func(file string) (string, error) {
			if file == "sox" {
				return "/usr/bin/sox", nil
			}
			return "", fmt.Errorf("not found: %s", file)
		},
	}

	rec := NewRecorder(executor)
	require.NoError(t, rec.Start())
	defer rec.Abort()

	require.Len(t, executor.Commands, 1)
	assert.True(t, strings.HasPrefix(executor.Commands[0], "sox "))
}

func TestStartWithNoToolAvailable(t *testing.T) {
	executor := &xexec.MockCommandExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", fmt.Errorf("not found: %s", file)
		},
	}

	rec := NewRecorder(executor)
	err := rec.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCaptureTool)
	assert.Equal(t, StateIdle, rec.State())
	assert.Empty(t, executor.Commands)
}

func TestStartFailureLeavesRecorderIdle(t *testing.T) {
	executor := &xexec.MockCommandExecutor{
		StartFunc: func(name string, arg ...string) (xexec.Process, error) {
			return nil, errors.New("device busy")
		},
	}

	rec := NewRecorder(executor)
	err := rec.Start()
	require.Error(t, err)
	assert.Equal(t, StateIdle, rec.State())
}

func TestAbortKillsCapture(t *testing.T) {
	proc := &xexec.MockProcess{}
	executor := &xexec.MockCommandExecutor{
		StartFunc: func(name string, arg ...string) (xexec.Process, error) {
			return proc, nil
		},
	}

	rec := NewRecorder(executor)
	require.NoError(t, rec.Start())

	rec.Abort()
	assert.True(t, proc.Killed)
	assert.Equal(t, StateIdle, rec.State())

	// Abort when idle is safe.
	rec.Abort()
}

func TestDoubleStartRejected(t *testing.T) {
	executor := &xexec.MockCommandExecutor{}
	rec := NewRecorder(executor)
	require.NoError(t, rec.Start())
	defer rec.Abort()

	assert.Error(t, rec.Start())
	assert.Len(t, executor.Commands, 1)
}
