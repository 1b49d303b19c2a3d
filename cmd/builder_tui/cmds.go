package builder_tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yfkiwi/voicefirst/pkg/assistant"
	"github.com/yfkiwi/voicefirst/pkg/audio"
	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
)

// Message types
type chatResponseMsg struct {
	Exchange *assistant.Exchange
	Resp     *gateway.ChatResponse
	Err      error
}

type guidanceTickMsg struct{ Section int }

type recordingStoppedMsg struct {
	Data []byte
	Err  error
}

type transcriptionMsg struct {
	Text string
	Err  error
}

type draftSavedMsg struct{ Err error }

// sendChatCmd performs one backend exchange off the event loop. The
// exchange's own context carries cancellation.
func sendChatCmd(client *gateway.Client, ex *assistant.Exchange) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(ex.Context(), ex.Request)
		return chatResponseMsg{Exchange: ex, Resp: resp, Err: err}
	}
}

// guidanceCmd schedules the second beat of a section change.
func guidanceCmd(section int) tea.Cmd {
	return tea.Tick(assistant.GuidanceDelay, func(time.Time) tea.Msg {
		return guidanceTickMsg{Section: section}
	})
}

// stopRecordingCmd finalizes the capture and returns the recorded blob.
func stopRecordingCmd(rec *audio.Recorder) tea.Cmd {
	return func() tea.Msg {
		data, err := rec.Stop()
		return recordingStoppedMsg{Data: data, Err: err}
	}
}

// transcribeCmd uploads the recorded blob for speech recognition.
func transcribeCmd(client *gateway.Client, data []byte, filename string) tea.Cmd {
	return func() tea.Msg {
		text, err := client.Transcribe(context.Background(), data, filename)
		return transcriptionMsg{Text: text, Err: err}
	}
}

// saveDraftCmd persists the current proposal state.
func saveDraftCmd(path string, state proposal.State) tea.Cmd {
	return func() tea.Msg {
		return draftSavedMsg{Err: proposal.SaveDraft(path, state)}
	}
}
