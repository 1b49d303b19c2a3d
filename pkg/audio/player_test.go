package audio

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xexec "github.com/yfkiwi/voicefirst/pkg/exec"
)

func TestPlayUsesPreferredTool(t *testing.T) {
	executor := &xexec.MockCommandExecutor{}

	player := NewPlayer(executor)
	player.Play([]byte{0xFF, 0xFB, 0x01})

	require.Len(t, executor.Commands, 1)
	assert.True(t, strings.HasPrefix(executor.Commands[0], "afplay "))
	assert.Contains(t, executor.Commands[0], ".mp3")
}

func TestPlayFallsBackThroughTools(t *testing.T) {
	executor := &xexec.MockCommandExecutor{
		LookPathFunc: func(file string) (string, error) {
			if file == "mpg123" {
				return "/usr/bin/mpg123", nil
			}
			return "", fmt.Errorf("not found: %s", file)
		},
	}

	player := NewPlayer(executor)
	player.Play([]byte{0xFF, 0xFB, 0x01})

	require.Len(t, executor.Commands, 1)
	assert.True(t, strings.HasPrefix(executor.Commands[0], "mpg123 -q "))
}

func TestPlaySwallowsFailures(t *testing.T) {
	executor := &xexec.MockCommandExecutor{
		ExecuteFunc: func(name string, arg ...string) error {
			return errors.New("no sound device")
		},
	}

	player := NewPlayer(executor)
	player.Play([]byte{0xFF, 0xFB, 0x01}) // Must not panic or surface anything.
	assert.Len(t, executor.Commands, 1)
}

func TestPlayEmptyDataIsNoOp(t *testing.T) {
	executor := &xexec.MockCommandExecutor{}
	player := NewPlayer(executor)
	player.Play(nil)
	assert.Empty(t, executor.Commands)
}

func TestPlayWithNoToolAvailable(t *testing.T) {
	executor := &xexec.MockCommandExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", fmt.Errorf("not found: %s", file)
		},
	}

	player := NewPlayer(executor)
	player.Play([]byte{0xFF})
	assert.Empty(t, executor.Commands)
}
