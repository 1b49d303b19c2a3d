package builder_tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yfkiwi/voicefirst/pkg/assistant"
	"github.com/yfkiwi/voicefirst/pkg/audio"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
	"github.com/yfkiwi/voicefirst/pkg/sections"
)

func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		m.refreshChat()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case chatResponseMsg:
		m.Orch.Resolve(msg.Exchange, msg.Resp, msg.Err)
		m.refreshRows()
		m.refreshChat()
		return m, nil

	case guidanceTickMsg:
		if _, ok := m.Orch.Guidance(msg.Section); ok {
			m.refreshChat()
		}
		return m, nil

	case recordingStoppedMsg:
		if msg.Err != nil {
			m.Orch.NoteError("Recording failed: " + msg.Err.Error())
			m.refreshChat()
			return m, nil
		}
		if len(msg.Data) == 0 {
			m.Status = "Nothing recorded."
			return m, nil
		}
		m.Transcribing = true
		m.Status = "Transcribing..."
		return m, transcribeCmd(m.Client, msg.Data, m.Recorder.Filename())

	case transcriptionMsg:
		m.Transcribing = false
		m.Status = ""
		if msg.Err != nil {
			m.Orch.NoteError(assistant.ErrorDetail(msg.Err))
			m.refreshChat()
			return m, nil
		}
		return m.beginExchange(msg.Text)

	case draftSavedMsg:
		if msg.Err != nil {
			m.Status = "Save failed: " + msg.Err.Error()
		} else {
			m.Status = "Draft saved."
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.KeyMap

	// Quit always saves the draft first.
	if key.Matches(msg, keys.Quit) {
		m.Recorder.Abort()
		_ = proposal.SaveDraft(m.DraftPath, m.Store.Snapshot())
		return m, tea.Quit
	}

	if m.Editing {
		return m.handleEditKey(msg)
	}
	if m.AddingDoc {
		return m.handleDocKey(msg)
	}

	switch {
	case key.Matches(msg, keys.SwitchFocus):
		if m.Focus == FormPane {
			m.Focus = ChatPane
			m.ChatInput.Focus()
		} else {
			m.Focus = FormPane
			m.ChatInput.Blur()
		}
		return m, nil

	case key.Matches(msg, keys.Record):
		return m.toggleRecording()

	case key.Matches(msg, keys.Replay):
		if id, ok := m.LastAudioID(); ok {
			m.Orch.Replay(id)
		}
		return m, nil

	case key.Matches(msg, keys.Save):
		return m, saveDraftCmd(m.DraftPath, m.Store.Snapshot())
	}

	if m.Focus == FormPane {
		return m.handleFormKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.KeyMap
	switch {
	case key.Matches(msg, keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	case key.Matches(msg, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case key.Matches(msg, keys.PrevSection):
		return m.changeSection(m.Section - 1)
	case key.Matches(msg, keys.NextSection):
		return m.changeSection(m.Section + 1)
	case key.Matches(msg, keys.Edit):
		m.startEdit()
	case key.Matches(msg, keys.AddDoc):
		if m.Section == 0 {
			m.AddingDoc = true
			m.AddDocKind = proposal.CommunityDocuments
			m.DocInput.Reset()
			m.DocInput.Focus()
		}
	case key.Matches(msg, keys.AddFundingDoc):
		if m.Section == 0 {
			m.AddingDoc = true
			m.AddDocKind = proposal.FundingDocuments
			m.DocInput.Reset()
			m.DocInput.Focus()
		}
	case key.Matches(msg, keys.RemoveDoc):
		m.removeSelectedDocument()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		text := m.ChatInput.Value()
		m.ChatInput.Reset()
		return m.beginExchange(text)
	}
	var cmd tea.Cmd
	m.ChatInput, cmd = m.ChatInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.Editing = false
		m.EditInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.commitEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.EditInput, cmd = m.EditInput.Update(msg)
	return m, cmd
}

func (m Model) handleDocKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.AddingDoc = false
		m.DocInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.commitDocument()
		return m, nil
	}
	var cmd tea.Cmd
	m.DocInput, cmd = m.DocInput.Update(msg)
	return m, cmd
}

func (m *Model) startEdit() {
	if m.Cursor >= len(m.Rows) {
		return
	}
	row := m.Rows[m.Cursor]
	if row.Kind == rowNote || row.Kind == rowDocument {
		return
	}
	m.Editing = true
	m.EditInput.SetValue(row.Value)
	m.EditInput.CursorEnd()
	m.EditInput.Focus()
}

func (m *Model) commitEdit() {
	defer func() {
		m.Editing = false
		m.EditInput.Blur()
		m.refreshRows()
	}()

	if m.Cursor >= len(m.Rows) {
		return
	}
	row := m.Rows[m.Cursor]
	value := strings.TrimSpace(m.EditInput.Value())

	switch row.Kind {
	case rowField:
		if err := m.Store.SetField(row.Field, value); err != nil {
			m.Status = err.Error()
		}
	case rowMilestoneName, rowMilestoneDate:
		state := m.Store.Snapshot()
		milestone := state.Milestones[row.Index]
		if row.Kind == rowMilestoneName {
			milestone.Name = value
		} else {
			milestone.Date = value
		}
		if err := m.Store.SetMilestone(row.Index, milestone); err != nil {
			m.Status = err.Error()
		}
	}
}

func (m *Model) commitDocument() {
	defer func() {
		m.AddingDoc = false
		m.DocInput.Blur()
		m.refreshRows()
	}()

	path := strings.TrimSpace(m.DocInput.Value())
	if path == "" {
		return
	}
	doc := proposal.Document{Name: filepath.Base(path), Path: path}
	if info, err := os.Stat(path); err == nil {
		doc.Size = info.Size()
	}
	if err := m.Store.AppendDocument(m.AddDocKind, doc); err != nil {
		m.Status = err.Error()
	}
}

func (m *Model) removeSelectedDocument() {
	if m.Cursor >= len(m.Rows) {
		return
	}
	row := m.Rows[m.Cursor]
	if row.Kind != rowDocument || m.Section != 0 {
		return
	}
	if err := m.Store.RemoveDocument(row.DocKind, row.Index); err != nil {
		m.Status = err.Error()
		return
	}
	m.refreshRows()
}

func (m Model) changeSection(section int) (tea.Model, tea.Cmd) {
	if section < 0 || section >= sections.Count || section == m.Section {
		return m, nil
	}
	m.Section = section
	m.Cursor = 0
	if _, ok := m.Orch.SetSection(section); ok {
		m.refreshRows()
		m.refreshChat()
		return m, guidanceCmd(section)
	}
	m.refreshRows()
	return m, nil
}

func (m Model) beginExchange(text string) (tea.Model, tea.Cmd) {
	ex, ok := m.Orch.BeginExchange(text)
	if !ok {
		return m, nil
	}
	m.refreshChat()
	return m, sendChatCmd(m.Client, ex)
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.Recorder.State() == audio.StateRecording {
		m.Status = ""
		return m, stopRecordingCmd(m.Recorder)
	}
	if err := m.Recorder.Start(); err != nil {
		m.Orch.NoteError("Microphone unavailable: " + err.Error())
		m.refreshChat()
		return m, nil
	}
	m.Status = "Recording... press ctrl+r to stop."
	return m, nil
}
