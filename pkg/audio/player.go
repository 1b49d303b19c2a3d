package audio

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	xexec "github.com/yfkiwi/voicefirst/pkg/exec"
)

// playbackTools in preference order. All accept a file path argument.
var playbackTools = [][]string{
	{"afplay"},
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
}

// Player plays MP3 audio through an external tool. Playback is
// fire-and-forget: failures are logged and swallowed, never surfaced
// to the user.
type Player struct {
	executor xexec.CommandExecutor
	log      *logrus.Entry
}

// NewPlayer creates a player using the given executor.
func NewPlayer(executor xexec.CommandExecutor) *Player {
	return &Player{
		executor: executor,
		log:      logrus.WithField("component", "player"),
	}
}

// Play writes the MP3 bytes to a temp file and plays it, blocking
// until playback finishes. Errors are swallowed.
func (p *Player) Play(data []byte) {
	if len(data) == 0 {
		return
	}

	tool, err := p.findTool()
	if err != nil {
		p.log.WithError(err).Debug("no playback tool available")
		return
	}

	f, err := os.CreateTemp("", "voicefirst-speech-*.mp3")
	if err != nil {
		p.log.WithError(err).Debug("create playback temp file")
		return
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		p.log.WithError(err).Debug("write playback temp file")
		return
	}
	f.Close()

	args := append(append([]string(nil), tool[1:]...), path)
	if err := p.executor.Execute(tool[0], args...); err != nil {
		p.log.WithError(err).Debug("playback failed")
	}
}

func (p *Player) findTool() ([]string, error) {
	for _, tool := range playbackTools {
		if _, err := p.executor.LookPath(tool[0]); err == nil {
			return tool, nil
		}
	}
	return nil, fmt.Errorf("no audio playback tool found")
}
