// Package builder_tui is the interactive proposal builder: a
// section-by-section form on the left and the assistant conversation on
// the right. Voice input records through the microphone, transcribes on
// the backend, and feeds the same exchange path as typed text.
package builder_tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yfkiwi/voicefirst/pkg/assistant"
	"github.com/yfkiwi/voicefirst/pkg/audio"
	xexec "github.com/yfkiwi/voicefirst/pkg/exec"
	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
	"github.com/yfkiwi/voicefirst/pkg/sections"
)

type Focus int

const (
	FormPane Focus = iota
	ChatPane
)

type rowKind int

const (
	rowField rowKind = iota
	rowMilestoneName
	rowMilestoneDate
	rowDocument
	rowNote
)

// formRow is one navigable line of the section form.
type formRow struct {
	Kind    rowKind
	Field   string // registry name for rowField
	Label   string
	Value   string
	DocKind proposal.DocumentKind
	Index   int // milestone or document index
}

// Model is the builder TUI state.
type Model struct {
	Store     *proposal.Store
	Orch      *assistant.Orchestrator
	Client    *gateway.Client
	Recorder  *audio.Recorder
	DraftPath string

	Section   int
	Rows      []formRow
	Cursor    int
	Editing   bool
	EditInput textinput.Model

	AddingDoc  bool
	AddDocKind proposal.DocumentKind
	DocInput   textinput.Model

	Focus        Focus
	ChatInput    textinput.Model
	ChatView     viewport.Model
	Spinner      spinner.Model
	Transcribing bool
	Status       string

	KeyMap KeyMap
	Help   help.Model
	Width  int
	Height int

	accent lipgloss.Color
}

// New builds the model. The draft, if one exists at draftPath, seeds
// the store before the session welcome is produced.
func New(cfg Config) Model {
	executor := &xexec.RealCommandExecutor{}
	player := audio.NewPlayer(executor)

	store := proposal.NewStore()
	hasDraft := false
	if state, err := proposal.LoadDraft(cfg.DraftPath); err == nil {
		hasDraft = state.ProjectTitle != ""
		store.Replace(state)
	}

	client := gateway.NewClient(cfg.APIBaseURL, gateway.WithVoiceID(cfg.VoiceID))
	orch := assistant.New(store, client, assistant.WithPlayer(player))
	orch.Reset(hasDraft)

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask the assistant, or describe your project..."
	chatInput.CharLimit = 2000
	chatInput.Focus()

	editInput := textinput.New()
	editInput.CharLimit = 4000

	docInput := textinput.New()
	docInput.Placeholder = "path/to/document.pdf"

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	accent := lipgloss.Color("63")
	if !termenv.HasDarkBackground() {
		accent = lipgloss.Color("27")
	}

	m := Model{
		Store:     store,
		Orch:      orch,
		Client:    client,
		Recorder:  audio.NewRecorder(executor),
		DraftPath: cfg.DraftPath,
		ChatInput: chatInput,
		EditInput: editInput,
		DocInput:  docInput,
		Spinner:   spin,
		Focus:     ChatPane,
		KeyMap:    NewKeyMap(),
		Help:      help.New(),
		accent:    accent,
	}
	m.refreshRows()
	m.refreshChat()
	return m
}

// Config carries the settings the TUI needs.
type Config struct {
	APIBaseURL string
	VoiceID    string
	DraftPath  string
}

// refreshRows rebuilds the form rows for the active section from the
// store snapshot.
func (m *Model) refreshRows() {
	state := m.Store.Snapshot()
	var rows []formRow

	switch m.Section {
	case 0:
		rows = append(rows, formRow{Kind: rowNote, Label: "Upload supporting documents, or describe your project in the chat."})
		for i, doc := range state.CommunityDocs {
			rows = append(rows, formRow{Kind: rowDocument, Label: "Community document", Value: doc.Name, DocKind: proposal.CommunityDocuments, Index: i})
		}
		for i, doc := range state.FundingDocs {
			rows = append(rows, formRow{Kind: rowDocument, Label: "Funding document", Value: doc.Name, DocKind: proposal.FundingDocuments, Index: i})
		}
	case 6:
		for i, milestone := range state.Milestones {
			rows = append(rows,
				formRow{Kind: rowMilestoneName, Label: milestoneLabel(i, "name"), Value: milestone.Name, Index: i},
				formRow{Kind: rowMilestoneDate, Label: milestoneLabel(i, "target date"), Value: milestone.Date, Index: i},
			)
		}
	case 11:
		rows = append(rows, formRow{Kind: rowNote, Label: "Attachments are assembled from the documents uploaded in section 0."})
		for i, doc := range state.CommunityDocs {
			rows = append(rows, formRow{Kind: rowDocument, Label: "Community document", Value: doc.Name, DocKind: proposal.CommunityDocuments, Index: i})
		}
		for i, doc := range state.FundingDocs {
			rows = append(rows, formRow{Kind: rowDocument, Label: "Funding document", Value: doc.Name, DocKind: proposal.FundingDocuments, Index: i})
		}
	default:
		if cfg, ok := sections.FieldConfigFor(m.Section); ok {
			for _, name := range cfg.Fields {
				value, _ := proposal.FieldValue(&state, name)
				rows = append(rows, formRow{Kind: rowField, Field: name, Label: proposal.FieldLabel(name), Value: value})
			}
		}
	}

	m.Rows = rows
	if m.Cursor >= len(rows) {
		m.Cursor = len(rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func milestoneLabel(index int, part string) string {
	return "Milestone " + string(rune('1'+index)) + " " + part
}

// LastAudioID returns the newest timeline entry carrying audio, for the
// replay key.
func (m *Model) LastAudioID() (string, bool) {
	timeline := m.Orch.Timeline()
	for i := len(timeline) - 1; i >= 0; i-- {
		if len(timeline[i].Audio) > 0 {
			return timeline[i].ID, true
		}
	}
	return "", false
}
